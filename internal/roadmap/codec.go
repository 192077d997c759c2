package roadmap

import (
	"encoding/json"
	"fmt"

	toml "github.com/pelletier/go-toml/v2"
)

// EncodeJSON renders the document as JSON, the persistence blob format.
func EncodeJSON(d *Data) ([]byte, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("roadmap: encode json: %w", err)
	}
	return b, nil
}

// DecodeJSON parses a persisted JSON document and normalizes it.
func DecodeJSON(b []byte) (*Data, error) {
	var d Data
	if err := json.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("roadmap: decode json: %w", err)
	}
	d.Normalize()
	return &d, nil
}

// EncodeTOML renders the document as TOML for human-editable export.
func EncodeTOML(d *Data) ([]byte, error) {
	b, err := toml.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("roadmap: encode toml: %w", err)
	}
	return b, nil
}

// DecodeTOML parses a TOML document export and normalizes it.
func DecodeTOML(b []byte) (*Data, error) {
	var d Data
	if err := toml.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("roadmap: decode toml: %w", err)
	}
	d.Normalize()
	return &d, nil
}

// Normalize repairs a freshly decoded document: nil collections become empty
// slices, missing settings fall back to defaults, and order indices are
// re-densified so downstream code can rely on the 0..n-1 invariant.
func (d *Data) Normalize() {
	if d.Streams == nil {
		d.Streams = []Stream{}
	}
	if d.Dependencies == nil {
		d.Dependencies = []Dependency{}
	}
	if d.Milestones == nil {
		d.Milestones = []Milestone{}
	}
	if d.Settings.TimelineStartDate == "" || d.Settings.TimelineEndDate == "" {
		d.Settings = DefaultSettings
	}
	reindexStreams(d.Streams)
	for i := range d.Streams {
		reindexItems(d.Streams[i].Items)
		for j := range d.Streams[i].Items {
			reindexItems(d.Streams[i].Items[j].SubItems)
		}
	}
}
