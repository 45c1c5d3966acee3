// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package persist

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/project-match/pkg/types"
)

// FileSaver writes each collection as a JSON array to its configured file
// under dir. Writes go to a temporary file that is then renamed over the
// target, so a reader never sees a half-written collection.
type FileSaver struct {
	dir   string
	files types.SourceFiles
}

// NewFileSaver creates a FileSaver.
func NewFileSaver(dir string, files types.SourceFiles) *FileSaver {
	return &FileSaver{dir: dir, files: files}
}

// Path returns the file a collection is written to.
func (s *FileSaver) Path(collection string) (string, error) {
	name := s.files.ByCollection(collection)
	if name == "" {
		return "", fmt.Errorf("no file configured for collection %q", collection)
	}
	return filepath.Join(s.dir, name), nil
}

// Save implements Saver.
func (s *FileSaver) Save(ctx context.Context, collection string, records any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.Path(collection)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", collection, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
