// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import "github.com/pdiddy/project-match/pkg/types"

// DecisionSet is an ordered decision sequence. Lookups compare the stored
// researcher and project strings exactly, the way matches were written.
//
// Directory lookups, by contrast, normalize case and whitespace. A decision
// whose researcher string differs from the match's only in case will not be
// found here.
type DecisionSet []types.Decision

// Index returns the position of the first decision for (researcher,
// projectID), or -1.
func (ds DecisionSet) Index(researcher, projectID string) int {
	for i, d := range ds {
		if d.Academician == researcher && d.ProjectID == projectID {
			return i
		}
	}
	return -1
}

// Find returns the first decision for (researcher, projectID).
func (ds DecisionSet) Find(researcher, projectID string) (types.Decision, bool) {
	i := ds.Index(researcher, projectID)
	if i < 0 {
		return types.Decision{}, false
	}
	return ds[i], true
}

// AcceptedOn returns, in decision order, every researcher other than
// exclude holding an accepted decision on projectID. Repeats are kept.
func (ds DecisionSet) AcceptedOn(projectID, exclude string) []string {
	var out []string
	for _, d := range ds {
		if d.ProjectID == projectID && d.Decision == types.DecisionAccepted && d.Academician != exclude {
			out = append(out, d.Academician)
		}
	}
	return out
}

// AcceptedProjects returns the set of project ids researcher has accepted.
func (ds DecisionSet) AcceptedProjects(researcher string) map[string]bool {
	out := make(map[string]bool)
	for _, d := range ds {
		if d.Academician == researcher && d.Decision == types.DecisionAccepted {
			out[d.ProjectID] = true
		}
	}
	return out
}

// Clone deep-copies the set.
func (ds DecisionSet) Clone() DecisionSet {
	if ds == nil {
		return nil
	}
	out := make(DecisionSet, len(ds))
	for i, d := range ds {
		out[i] = d.Clone()
	}
	return out
}
