// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// field lists the source keys that may carry one logical attribute, in
// priority order. The first key holding a non-empty value wins.
type field []string

var (
	matchResearcher = field{"data", "academician_name"}
	matchProjectID  = field{"Column3", "project_id"}
	matchScore      = field{"Column7", "score"}
	matchReason     = field{"Column6", "reason"}
)

// lookup returns the first non-empty candidate value.
func (f field) lookup(rec map[string]any) (any, bool) {
	for _, name := range f {
		if v, ok := rec[name]; ok && !isEmpty(v) {
			return v, true
		}
	}
	return nil, false
}

func (f field) str(rec map[string]any) string {
	v, _ := f.lookup(rec)
	return stringOf(v)
}

func (f field) integer(rec map[string]any) int {
	v, _ := f.lookup(rec)
	return intOf(v)
}

// isEmpty reports whether v should fall through to the next candidate:
// nil, empty strings, zero numbers, false, and empty collections.
func isEmpty(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case bool:
		return !x
	case int:
		return x == 0
	case int64:
		return x == 0
	case uint64:
		return x == 0
	case float64:
		return x == 0
	case []any:
		return len(x) == 0
	case map[string]any:
		return len(x) == 0
	}
	return false
}

// stringOf renders scalar values as text. Integral floats print without a
// fraction so numeric ids read the same from JSON and YAML.
func stringOf(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		if x == math.Trunc(x) && math.Abs(x) < 1e15 {
			return strconv.FormatInt(int64(x), 10)
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	return cast.ToString(v)
}

// intOf coerces v to an int, returning 0 when it has no integral reading.
func intOf(v any) int {
	n, err := parseInt(v)
	if err != nil {
		return 0
	}
	return n
}

// parseInt coerces numbers and numeric strings to int. Floats with a
// fractional part are rejected rather than truncated.
func parseInt(v any) (int, error) {
	switch x := v.(type) {
	case float64:
		if x != math.Trunc(x) {
			return 0, strconv.ErrSyntax
		}
		return int(x), nil
	case string:
		s := strings.TrimSpace(x)
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return parseInt(f)
		}
		return 0, strconv.ErrSyntax
	}
	return cast.ToIntE(v)
}

// ParseInt exposes the ingestion integer coercion to callers that accept
// user-supplied numbers.
func ParseInt(v any) (int, error) {
	return parseInt(v)
}

// stringsOf reads a list of strings; a single string becomes a one-element
// list.
func stringsOf(v any) []string {
	switch x := v.(type) {
	case nil:
		return []string{}
	case string:
		if strings.TrimSpace(x) == "" {
			return []string{}
		}
		return []string{x}
	case []any:
		out := make([]string, 0, len(x))
		for _, e := range x {
			if s := stringOf(e); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return []string{stringOf(v)}
}
