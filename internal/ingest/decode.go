// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"
)

// Format identifies how a source document is encoded.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor picks the decoder from a file extension; anything that is not
// .yaml or .yml is treated as JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

var errNotSequence = errors.New("expected a top-level array")

// DecodeRecords reads a source document and returns its top-level elements.
// With groups set, a top-level object is accepted as well: each of its
// array values is appended in document order and non-array values are
// ignored. An empty document yields no records.
func DecodeRecords(r io.Reader, format Format, groups bool) ([]any, error) {
	if format == FormatYAML {
		return decodeYAML(r, groups)
	}
	return decodeJSON(r, groups)
}

func decodeJSON(r io.Reader, groups bool) ([]any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading JSON: %w", err)
	}

	delim, ok := tok.(json.Delim)
	if !ok || (delim != '[' && delim != '{') {
		return nil, fmt.Errorf("unexpected top-level JSON value %v", tok)
	}
	if delim == '{' && !groups {
		return nil, errNotSequence
	}

	var out []any
	for dec.More() {
		if delim == '{' {
			// Group name; only its position matters.
			if _, err := dec.Token(); err != nil {
				return nil, fmt.Errorf("reading group key: %w", err)
			}
		}

		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, fmt.Errorf("decoding element %d: %w", len(out), err)
		}
		v = normalizeNumbers(v)

		if delim == '[' {
			out = append(out, v)
		} else if group, ok := v.([]any); ok {
			out = append(out, group...)
		}
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("reading JSON: %w", err)
	}
	return out, nil
}

func decodeYAML(r io.Reader, groups bool) ([]any, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading YAML: %w", err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}

	switch root.Kind {
	case yaml.SequenceNode:
		var out []any
		if err := root.Decode(&out); err != nil {
			return nil, fmt.Errorf("decoding YAML sequence: %w", err)
		}
		return out, nil

	case yaml.MappingNode:
		if !groups {
			return nil, errNotSequence
		}
		var out []any
		for i := 0; i+1 < len(root.Content); i += 2 {
			value := root.Content[i+1]
			if value.Kind != yaml.SequenceNode {
				continue
			}
			var group []any
			if err := value.Decode(&group); err != nil {
				return nil, fmt.Errorf("decoding group %q: %w", root.Content[i].Value, err)
			}
			out = append(out, group...)
		}
		return out, nil
	}

	return nil, fmt.Errorf("unexpected top-level YAML node kind %d", root.Kind)
}

// normalizeNumbers replaces json.Number values with int64 when they are
// integral and float64 otherwise, so downstream code sees the same numeric
// types whichever decoder produced the record.
func normalizeNumbers(v any) any {
	switch x := v.(type) {
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i
		}
		if f, err := x.Float64(); err == nil {
			return f
		}
		return x.String()
	case map[string]any:
		for k, e := range x {
			x[k] = normalizeNumbers(e)
		}
		return x
	case []any:
		for i, e := range x {
			x[i] = normalizeNumbers(e)
		}
		return x
	}
	return v
}
