//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Data groups targets that run the built binary against the data directory.
type Data mg.Namespace

// sampleFiles is a minimal dataset for trying the service locally.
var sampleFiles = map[string]string{
	"academicians_merged.json": `[
  {"Fullname": "Ada Lovelace", "Email": "ada@example.edu", "Title": "Prof. Dr.", "Image": "akademisyen_fotograflari/ada.jpg"},
  {"Fullname": "Charles Babbage", "Email": "charles@example.edu"}
]
`,
	"eu_projects_merged_tum.json": `[
  {"project_id": "101001", "title": "Analytical Engines", "overall_budget": "1500000", "status": "SIGNED", "url": "https://cordis.europa.eu/project/id/101001"},
  {"project_id": "101002", "acronym": "NOTES", "status": "CLOSED"}
]
`,
	"n8n_akademisyen_proje_onerileri.json": `[
  {"data": "academician_name", "Column3": "project_id", "Column7": "score"},
  {"data": "Ada Lovelace", "Column3": "101001", "Column7": 92, "Column6": "computing history"},
  {"data": "Ada Lovelace", "Column3": "101002", "Column7": 71},
  {"data": "Charles Babbage", "Column3": "101001", "Column7": 88}
]
`,
}

// Seed writes a small sample dataset into data/ without overwriting
// existing files.
func (Data) Seed() error {
	mg.Deps(Init)
	for name, body := range sampleFiles {
		path := filepath.Join("data", name)
		if _, err := os.Stat(path); err == nil {
			fmt.Println("  exists", path)
			continue
		}
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		fmt.Println("  wrote ", path)
	}
	return nil
}

// Load builds the binary and reports per-collection load counts.
func (Data) Load() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), "load")
}

// Serve builds the binary and runs the HTTP API.
func (Data) Serve() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), "serve")
}
