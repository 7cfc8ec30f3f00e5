// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package journal

import (
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"
)

// ExportYAML writes the journal to w as YAML, newest first. A limit <= 0
// exports everything.
func (s *Store) ExportYAML(w io.Writer, limit int) error {
	recs, err := s.List(limit)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(recs); err != nil {
		return fmt.Errorf("encoding journal as YAML: %w", err)
	}
	return enc.Close()
}

// ExportJSON writes the journal to w as indented JSON, newest first. A
// limit <= 0 exports everything.
func (s *Store) ExportJSON(w io.Writer, limit int) error {
	recs, err := s.List(limit)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(recs)
}
