package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/pdiddy/project-match/pkg/errors"
	"github.com/pdiddy/project-match/pkg/types"
)

// --- test helpers ---

func testConfig(t *testing.T) types.DataConfig {
	t.Helper()
	cfg := types.DefaultConfig().Data
	cfg.Dir = t.TempDir()
	return cfg
}

func writeSource(t *testing.T, cfg types.DataConfig, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(cfg.Dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func decode(t *testing.T, doc string, format Format, groups bool) []any {
	t.Helper()
	raw, err := DecodeRecords(strings.NewReader(doc), format, groups)
	require.NoError(t, err)
	return raw
}

type fakeOverlay map[string]string

func (f fakeOverlay) Snapshot(_ context.Context, collection string) ([]byte, bool, error) {
	data, ok := f[collection]
	if data == "!error" {
		return nil, false, errors.New("snapshot store offline")
	}
	return []byte(data), ok, nil
}

// --- decode tests ---

func TestDecodeRecords(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		format  Format
		groups  bool
		wantLen int
		errMsg  string
	}{
		{name: "json array", doc: `[{"a":1},{"a":2}]`, format: FormatJSON, wantLen: 2},
		{name: "json groups", doc: `{"g1":[{"a":1}],"g2":[{"a":2},{"a":3}],"meta":"x"}`, format: FormatJSON, groups: true, wantLen: 3},
		{name: "json object without groups", doc: `{"a":1}`, format: FormatJSON, errMsg: "top-level array"},
		{name: "json scalar", doc: `42`, format: FormatJSON, errMsg: "unexpected top-level"},
		{name: "json truncated", doc: `[{"a":1},`, format: FormatJSON, errMsg: "decoding element"},
		{name: "empty json", doc: ``, format: FormatJSON, wantLen: 0},
		{name: "yaml sequence", doc: "- a: 1\n- a: 2\n", format: FormatYAML, wantLen: 2},
		{name: "yaml groups", doc: "g1:\n  - a: 1\ng2:\n  - a: 2\nnote: skip\n", format: FormatYAML, groups: true, wantLen: 2},
		{name: "yaml mapping without groups", doc: "a: 1\n", format: FormatYAML, errMsg: "top-level array"},
		{name: "empty yaml", doc: "", format: FormatYAML, wantLen: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := DecodeRecords(strings.NewReader(tt.doc), tt.format, tt.groups)
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Len(t, raw, tt.wantLen)
		})
	}
}

func TestDecodeGroupsKeepDocumentOrder(t *testing.T) {
	doc := `{"zeta":[{"data":"Z","Column3":"1"}],"alpha":[{"data":"A","Column3":"2"}],"mid":[{"data":"M","Column3":"3"}]}`
	got := Matches(decode(t, doc, FormatJSON, true), "", &CollectionSummary{})
	require.Len(t, got, 3)
	assert.Equal(t, "Z", got[0].Researcher)
	assert.Equal(t, "A", got[1].Researcher)
	assert.Equal(t, "M", got[2].Researcher)

	yamlDoc := "zeta:\n  - data: Z\n    Column3: 1\nalpha:\n  - data: A\n    Column3: 2\n"
	got = Matches(decode(t, yamlDoc, FormatYAML, true), "", &CollectionSummary{})
	require.Len(t, got, 2)
	assert.Equal(t, "Z", got[0].Researcher)
	assert.Equal(t, "1", got[0].ProjectID)
}

func TestDecodeJSONKeepsLargeIDs(t *testing.T) {
	raw := decode(t, `[{"project_id": 101234567890123, "overall_budget": 1500000.5}]`, FormatJSON, false)
	got := Projects(raw, &CollectionSummary{})
	require.Len(t, got, 1)
	assert.Equal(t, "101234567890123", got[0].ID)
	assert.Equal(t, "1500000.5", got[0].Budget)
}

func TestFormatFor(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatFor("matches.yaml"))
	assert.Equal(t, FormatYAML, FormatFor("Matches.YML"))
	assert.Equal(t, FormatJSON, FormatFor("matches.json"))
	assert.Equal(t, FormatJSON, FormatFor("matches"))
}

// --- record conversion tests ---

func TestMatchesSchemas(t *testing.T) {
	doc := `[
		{"data": " Ada Lovelace ", "Column3": "P1", "Column7": "90", "Column6": "engines"},
		{"academician_name": "Bob", "project_id": 2, "score": 40, "reason": "math"},
		{"data": "Cy", "Column3": "P3", "Column7": 0, "score": 15},
		{"data": "Dee", "Column3": "P4", "Column7": "high"},
		{"data": "Eve", "project_id": "P5", "Column7": 55.0}
	]`
	var sum CollectionSummary
	got := Matches(decode(t, doc, FormatJSON, false), "academician_name", &sum)

	want := []types.Match{
		{Researcher: "Ada Lovelace", ProjectID: "P1", Score: 90, Reason: "engines"},
		{Researcher: "Bob", ProjectID: "2", Score: 40, Reason: "math"},
		{Researcher: "Cy", ProjectID: "P3", Score: 15},
		{Researcher: "Dee", ProjectID: "P4", Score: 0},
		{Researcher: "Eve", ProjectID: "P5", Score: 55},
	}
	assert.Equal(t, want, got)
	assert.Equal(t, 5, sum.Loaded)
	assert.Zero(t, sum.Malformed)
}

func TestMatchesSkipsHeaderAndMalformed(t *testing.T) {
	doc := `[
		{"data": "academician_name", "Column3": "project_id"},
		{"data": "Ada", "Column3": "P1"},
		{"data": "Ada"},
		{"Column3": "P2"},
		{"Column7": 10},
		"not a record"
	]`
	sum := CollectionSummary{Collection: types.CollectionMatches}
	got := Matches(decode(t, doc, FormatJSON, false), "academician_name", &sum)

	require.Len(t, got, 1)
	assert.Equal(t, 1, sum.Loaded)
	assert.Equal(t, 1, sum.Skipped)
	assert.Equal(t, 4, sum.Malformed)
	for _, err := range sum.Errors {
		assert.True(t, errs.Is(err, errs.ErrMalformedInput))
	}
	assert.Contains(t, sum.Errors[2].Error(), "missing researcher name and project id")
}

func TestMatchesWithoutHeaderToken(t *testing.T) {
	doc := `[{"data": "academician_name", "Column3": "P1"}]`
	got := Matches(decode(t, doc, FormatJSON, false), "", &CollectionSummary{})
	assert.Len(t, got, 1)
}

func TestResearchers(t *testing.T) {
	doc := `[
		{"Fullname": "Ada Lovelace", "Email": "ada@x.edu", "Phone": 5551234, "Duties": ["Dean", "", "Chair"]},
		{"Fullname": "Bob", "Duties": "Advisor"},
		{"Email": "anon@x.edu"},
		{"Phone": "123"}
	]`
	var sum CollectionSummary
	got := Researchers(decode(t, doc, FormatJSON, false), &sum)

	require.Len(t, got, 3)
	assert.Equal(t, "5551234", got[0].Phone)
	assert.Equal(t, []string{"Dean", "Chair"}, got[0].Duties)
	assert.Equal(t, []string{"Advisor"}, got[1].Duties)
	assert.Equal(t, []string{}, got[2].Duties)
	assert.Equal(t, 1, sum.Malformed)
}

func TestDecisionsKeepExtras(t *testing.T) {
	doc := `[
		{"academician": "Ada Lovelace", "projId": "P1", "decision": "accepted", "rating": "5", "timestamp": "2026-01-02 03:04:05", "source": "ui"},
		{"academician": "Bob", "projId": 7, "decision": "rejected", "rating": "n/a"},
		{"academician": "", "projId": "P1"}
	]`
	var sum CollectionSummary
	got := Decisions(decode(t, doc, FormatJSON, false), &sum)

	require.Len(t, got, 2)
	assert.Equal(t, 5, got[0].Rating)
	assert.Equal(t, types.DecisionAccepted, got[0].Decision)
	assert.Equal(t, map[string]any{"source": "ui"}, got[0].Extra)
	assert.Equal(t, "7", got[1].ProjectID)
	assert.Zero(t, got[1].Rating)
	assert.Nil(t, got[1].Extra)
	assert.Equal(t, 1, sum.Malformed)
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		in      any
		want    int
		wantErr bool
	}{
		{5, 5, false},
		{int64(3), 3, false},
		{4.0, 4, false},
		{"2", 2, false},
		{" 3 ", 3, false},
		{"4.0", 4, false},
		{4.5, 0, true},
		{"x", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseInt(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %v", tt.in)
			continue
		}
		assert.NoError(t, err, "input %v", tt.in)
		assert.Equal(t, tt.want, got, "input %v", tt.in)
	}
}

// --- loader tests ---

func TestLoaderLoad(t *testing.T) {
	cfg := testConfig(t)
	writeSource(t, cfg, cfg.Files.Researchers, `[{"Fullname": "Ada Lovelace", "Email": "ada@x.edu"}]`)
	writeSource(t, cfg, cfg.Files.Projects, `[{"project_id": " P1 ", "title": "Engines"}, {"title": "orphan"}]`)
	writeSource(t, cfg, cfg.Files.Matches, `{"batch1": [{"data": "academician_name"}, {"data": "Ada Lovelace", "Column3": "P1", "Column7": "90"}]}`)
	writeSource(t, cfg, cfg.Files.Decisions, `not json`)
	writeSource(t, cfg, cfg.Files.Announcements, `[{"text": "hello"}]`)

	c, sum, err := NewLoader(cfg, nil).Load(context.Background())
	require.NoError(t, err)

	assert.Len(t, c.Researchers, 1)
	assert.Len(t, c.Projects, 1)
	assert.Len(t, c.Matches, 1)
	assert.Empty(t, c.Decisions)
	assert.Len(t, c.Announcements, 1)
	assert.Empty(t, c.Logs)

	projects, ok := sum.Get(types.CollectionProjects)
	require.True(t, ok)
	assert.Equal(t, 1, projects.Malformed)

	matches, _ := sum.Get(types.CollectionMatches)
	assert.Equal(t, 1, matches.Skipped)

	decisions, _ := sum.Get(types.CollectionDecisions)
	require.Error(t, decisions.FileErr)
	assert.Equal(t, 1, sum.FileErrors())

	logs, _ := sum.Get(types.CollectionLogs)
	assert.NoError(t, logs.FileErr, "missing file is an empty collection")

	var out strings.Builder
	sum.Write(&out)
	assert.Contains(t, out.String(), "failed  decisions")
	assert.Contains(t, out.String(), "malformed: 1, unreadable sources: 1")
}

func TestLoaderYAMLSources(t *testing.T) {
	cfg := testConfig(t)
	cfg.Files.Matches = "matches.yaml"
	writeSource(t, cfg, "matches.yaml", "group:\n  - academician_name: Bob\n    project_id: P2\n    score: 40\n")

	c, _, err := NewLoader(cfg, nil).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, c.Matches, 1)
	assert.Equal(t, types.Match{Researcher: "Bob", ProjectID: "P2", Score: 40}, c.Matches[0])
}

func TestLoaderOverlay(t *testing.T) {
	cfg := testConfig(t)
	writeSource(t, cfg, cfg.Files.Decisions, `[{"academician": "Ada", "projId": "P1", "decision": "waiting"}]`)
	writeSource(t, cfg, cfg.Files.Researchers, `[{"Fullname": "Ada"}]`)
	writeSource(t, cfg, cfg.Files.Logs, `[{"user": "file"}]`)

	overlay := fakeOverlay{
		types.CollectionDecisions:   `[{"academician": "Ada", "projId": "P1", "decision": "accepted"}]`,
		types.CollectionResearchers: `[]`,
		types.CollectionLogs:        "!error",
	}

	c, sum, err := NewLoader(cfg, nil).WithOverlay(overlay).Load(context.Background())
	require.NoError(t, err)

	require.Len(t, c.Decisions, 1)
	assert.Equal(t, types.DecisionAccepted, c.Decisions[0].Decision)

	// Directory collections never come from snapshots.
	assert.Len(t, c.Researchers, 1)

	// A failing snapshot store falls back to the file.
	require.Len(t, c.Logs, 1)
	assert.Equal(t, "file", c.Logs[0]["user"])

	decisions, _ := sum.Get(types.CollectionDecisions)
	assert.Equal(t, "snapshot:decisions", decisions.Source)
}

func TestLoaderCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := NewLoader(testConfig(t), nil).Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
