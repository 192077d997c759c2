package roadmap

// Overlap checks use half-open interval semantics: [s1,e1) and [s2,e2)
// overlap iff s1 < e2 and s2 < e1, so ranges that merely touch at an
// endpoint do not collide. The comparisons are plain string comparisons,
// valid because dates are "YYYY-MM-DD".

// HasOverlap reports whether the candidate range [start, end) collides with
// any sibling item other than excludeID.
func HasOverlap(items []Item, excludeID, start, end string) bool {
	for i := range items {
		if items[i].ID == excludeID {
			continue
		}
		if start < items[i].EndDate && items[i].StartDate < end {
			return true
		}
	}
	return false
}

// HasPhaseOverlap reports whether the candidate range [start, end) collides
// with any sibling phase bar other than excludeID.
func HasPhaseOverlap(bars []PhaseBar, excludeID, start, end string) bool {
	for i := range bars {
		if bars[i].ID == excludeID {
			continue
		}
		if start < bars[i].EndDate && bars[i].StartDate < end {
			return true
		}
	}
	return false
}
