// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package identity canonicalizes free-text researcher names and emails into
// lookup keys. Both normalizers are total: any string, including the empty
// string, maps to a key, and the empty key never matches a directory entry.
package identity

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NormalizeName trims surrounding whitespace and upper-cases s using full
// Unicode case mapping, so "straße" and "STRASSE" share a key.
func NormalizeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	// Casers carry state and are not safe to share between goroutines.
	return cases.Upper(language.Und).String(s)
}

// NormalizeEmail trims surrounding whitespace and lower-cases s.
func NormalizeEmail(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return cases.Lower(language.Und).String(s)
}
