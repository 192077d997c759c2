package gesture

// Linker is the dependency-link mode: armed from a source bar's link
// affordance, it waits for exactly one more click. Clicking a different
// item commits an edge from the source to it; clicking empty timeline
// background, or Escape, exits without creating anything. Self-loops are
// ignored and keep the mode armed so a stray click on the source bar does
// not silently swallow the gesture.
type Linker struct {
	sourceID string
	active   bool
}

// Arm enters link mode with the given source item or sub-item.
func (l *Linker) Arm(sourceID string) {
	l.sourceID = sourceID
	l.active = true
}

// Active reports whether link mode is armed.
func (l *Linker) Active() bool { return l.active }

// SourceID returns the armed source id, for render highlighting.
func (l *Linker) SourceID() string { return l.sourceID }

// Click handles a click while armed. It returns the edge to create and
// ok=true when the click lands on a different item; a self-click returns
// ok=false with the mode still armed.
func (l *Linker) Click(targetID string) (from, to string, ok bool) {
	if !l.active || targetID == l.sourceID || targetID == "" {
		return "", "", false
	}
	from, to = l.sourceID, targetID
	l.Cancel()
	return from, to, true
}

// Cancel exits link mode without creating an edge.
func (l *Linker) Cancel() {
	l.sourceID = ""
	l.active = false
}
