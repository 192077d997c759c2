package docstore

import (
	"fmt"
	"os"

	"github.com/roadline-app/roadline/internal/roadmap"
)

// ExportTOML writes the document to path as TOML.
func ExportTOML(path string, data *roadmap.Data) error {
	b, err := roadmap.EncodeTOML(data)
	if err != nil {
		return fmt.Errorf("docstore: encode toml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("docstore: write %q: %w", path, err)
	}
	return nil
}

// ImportTOML reads a TOML document from path and normalizes it.
func ImportTOML(path string) (*roadmap.Data, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("docstore: read %q: %w", path, err)
	}
	data, err := roadmap.DecodeTOML(b)
	if err != nil {
		return nil, fmt.Errorf("docstore: decode toml %q: %w", path, err)
	}
	data.Normalize()
	return data, nil
}

// ExportJSON writes the document to path as JSON.
func ExportJSON(path string, data *roadmap.Data) error {
	b, err := roadmap.EncodeJSON(data)
	if err != nil {
		return fmt.Errorf("docstore: encode json: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("docstore: write %q: %w", path, err)
	}
	return nil
}

// ImportJSON reads a JSON document from path and normalizes it.
func ImportJSON(path string) (*roadmap.Data, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("docstore: read %q: %w", path, err)
	}
	data, err := roadmap.DecodeJSON(b)
	if err != nil {
		return nil, fmt.Errorf("docstore: decode json %q: %w", path, err)
	}
	data.Normalize()
	return data, nil
}
