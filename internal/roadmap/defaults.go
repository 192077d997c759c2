package roadmap

// MinItemDurationDays is the shortest span a bar may be resized to. The
// minimum is enforced at resize-commit time only; direct field edits are not
// clamped.
const MinItemDurationDays = 7

// Defaults applied when entities are created without explicit values.
const (
	DefaultItemDurationDays     = 28
	DefaultSubItemDurationDays  = 14
	DefaultPhaseBarDurationDays = 14
	DefaultPhaseBarColor        = "#4472C4"
)

// DefaultStreamColors is the palette cycled through when adding streams.
var DefaultStreamColors = []string{
	"#4472C4", // blue
	"#548235", // green
	"#BF8F00", // amber
	"#C00000", // red
	"#7030A0", // purple
	"#00B0F0", // cyan
	"#FFC000", // gold
	"#ED7D31", // orange
}

// DefaultSettings is the timeline span for freshly created documents.
var DefaultSettings = Settings{
	TimelineStartDate: "2025-12-22",
	TimelineEndDate:   "2026-12-31",
}

// NewData returns an empty document with default settings.
func NewData() *Data {
	return &Data{
		Streams:      []Stream{},
		Dependencies: []Dependency{},
		Milestones:   []Milestone{},
		Settings:     DefaultSettings,
	}
}
