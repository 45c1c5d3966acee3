// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package admin

import (
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/project-match/pkg/types"
)

// ExportYAML writes the summary as YAML.
func ExportYAML(w io.Writer, summary types.AdminSummary) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(summary); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return enc.Close()
}

// ExportJSON writes the summary as indented JSON.
func ExportJSON(w io.Writer, summary types.AdminSummary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(summary); err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return nil
}
