// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package graph derives the collaboration graph around a researcher: an
// edge joins two researchers who both accepted the same project.
package graph

import (
	"time"

	"github.com/pdiddy/project-match/internal/identity"
	"github.com/pdiddy/project-match/internal/metrics"
	"github.com/pdiddy/project-match/internal/profile"
	"github.com/pdiddy/project-match/internal/store"
	"github.com/pdiddy/project-match/pkg/types"
)

// Options configures graph building.
type Options struct {
	PhotoPath string
}

// Empty returns a graph with no nodes or links. Slices are non-nil so the
// JSON form is {"nodes":[],"links":[]}.
func Empty() types.Graph {
	return types.Graph{Nodes: []types.Node{}, Links: []types.Link{}}
}

// Build returns center and every researcher holding an accepted decision on
// a project center also accepted. A center missing from the directory
// yields an empty graph. Collaborators are keyed by normalized name: each
// person appears once, under the first spelling seen, with a single link
// from the center. The center is never linked to itself.
func Build(s *store.Store, center string, opts Options) types.Graph {
	start := time.Now()
	defer func() {
		metrics.ComposeDuration.WithLabelValues("graph").Observe(time.Since(start).Seconds())
	}()

	r, ok := s.ResearcherByName(center)
	if !ok {
		return Empty()
	}

	decisions := s.Decisions()
	mine := decisions.AcceptedProjects(center)

	var (
		collaborators []string
		seen          = map[string]bool{identity.NormalizeName(center): true}
	)
	for _, d := range decisions {
		if d.Decision != types.DecisionAccepted || !mine[d.ProjectID] {
			continue
		}
		key := identity.NormalizeName(d.Academician)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		collaborators = append(collaborators, d.Academician)
	}

	g := types.Graph{
		Nodes: make([]types.Node, 0, len(collaborators)+1),
		Links: make([]types.Link, 0, len(collaborators)),
	}
	g.Nodes = append(g.Nodes, types.Node{
		ID:       center,
		IsCenter: true,
		Img:      profile.ResolveImage(r.Image, opts.PhotoPath),
	})

	for _, name := range collaborators {
		node := types.Node{ID: name}
		if cr, found := s.ResearcherByName(name); found {
			node.Img = profile.ResolveImage(cr.Image, opts.PhotoPath)
		}
		g.Nodes = append(g.Nodes, node)
		g.Links = append(g.Links, types.Link{Source: center, Target: name})
	}

	return g
}
