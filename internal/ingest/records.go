// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"slices"
	"strings"

	"github.com/pdiddy/project-match/pkg/types"
)

// Researchers converts raw directory records. Records with neither a name
// nor an email cannot be indexed and are counted as malformed.
func Researchers(raw []any, sum *CollectionSummary) []types.Researcher {
	out := make([]types.Researcher, 0, len(raw))
	for i, v := range raw {
		rec, ok := v.(map[string]any)
		if !ok {
			sum.malformed(i, "not an object")
			continue
		}
		r := types.Researcher{
			Fullname: stringOf(rec["Fullname"]),
			Email:    stringOf(rec["Email"]),
			Phone:    stringOf(rec["Phone"]),
			Title:    stringOf(rec["Title"]),
			Field:    stringOf(rec["Field"]),
			Image:    stringOf(rec["Image"]),
			Duties:   stringsOf(rec["Duties"]),
		}
		if strings.TrimSpace(r.Fullname) == "" && strings.TrimSpace(r.Email) == "" {
			sum.malformed(i, "missing Fullname and Email")
			continue
		}
		out = append(out, r)
		sum.Loaded++
	}
	return out
}

// Projects converts raw project records. The id is trimmed; records without
// one are malformed.
func Projects(raw []any, sum *CollectionSummary) []types.Project {
	out := make([]types.Project, 0, len(raw))
	for i, v := range raw {
		rec, ok := v.(map[string]any)
		if !ok {
			sum.malformed(i, "not an object")
			continue
		}
		p := types.Project{
			ID:            strings.TrimSpace(stringOf(rec["project_id"])),
			Title:         stringOf(rec["title"]),
			Acronym:       stringOf(rec["acronym"]),
			Objective:     stringOf(rec["objective"]),
			Budget:        stringOf(rec["overall_budget"]),
			Status:        stringOf(rec["status"]),
			CoordinatedBy: stringOf(rec["coordinated_by"]),
			URL:           stringOf(rec["url"]),
		}
		if p.ID == "" {
			sum.malformed(i, "missing project_id")
			continue
		}
		out = append(out, p)
		sum.Loaded++
	}
	return out
}

// Matches converts raw match records under either field schema. Rows whose
// researcher field equals headerToken are stray export headers and are
// skipped; rows lacking a researcher or a project id are malformed.
func Matches(raw []any, headerToken string, sum *CollectionSummary) []types.Match {
	out := make([]types.Match, 0, len(raw))
	for i, v := range raw {
		rec, ok := v.(map[string]any)
		if !ok {
			sum.malformed(i, "not an object")
			continue
		}

		name := strings.TrimSpace(matchResearcher.str(rec))
		if headerToken != "" && name == headerToken {
			sum.Skipped++
			continue
		}

		pid := strings.TrimSpace(matchProjectID.str(rec))
		switch {
		case name == "" && pid == "":
			sum.malformed(i, "missing researcher name and project id")
			continue
		case name == "":
			sum.malformed(i, "missing researcher name")
			continue
		case pid == "":
			sum.malformed(i, "missing project id")
			continue
		}

		out = append(out, types.Match{
			Researcher: name,
			ProjectID:  pid,
			Score:      matchScore.integer(rec),
			Reason:     matchReason.str(rec),
		})
		sum.Loaded++
	}
	return out
}

// Decisions converts raw decision records, keeping keys it does not
// interpret in Extra. Researcher and project strings are kept exactly as
// stored.
func Decisions(raw []any, sum *CollectionSummary) []types.Decision {
	out := make([]types.Decision, 0, len(raw))
	for i, v := range raw {
		rec, ok := v.(map[string]any)
		if !ok {
			sum.malformed(i, "not an object")
			continue
		}
		d := types.Decision{
			Academician:  stringOf(rec["academician"]),
			ProjectID:    stringOf(rec["projId"]),
			ProjectTitle: stringOf(rec["projectTitle"]),
			Decision:     types.DecisionState(stringOf(rec["decision"])),
			Note:         stringOf(rec["note"]),
			Rating:       intOf(rec["rating"]),
			Timestamp:    stringOf(rec["timestamp"]),
		}
		if d.Academician == "" || d.ProjectID == "" {
			sum.malformed(i, "missing academician or projId")
			continue
		}
		for k, val := range rec {
			if slices.Contains(types.DecisionFields, k) {
				continue
			}
			if d.Extra == nil {
				d.Extra = make(map[string]any)
			}
			d.Extra[k] = val
		}
		out = append(out, d)
		sum.Loaded++
	}
	return out
}

// Entries passes external records through unchanged; only non-objects are
// rejected.
func Entries(raw []any, sum *CollectionSummary) []types.Entry {
	out := make([]types.Entry, 0, len(raw))
	for i, v := range raw {
		rec, ok := v.(map[string]any)
		if !ok {
			sum.malformed(i, "not an object")
			continue
		}
		out = append(out, types.Entry(rec))
		sum.Loaded++
	}
	return out
}
