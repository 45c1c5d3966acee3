// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package admin rolls match and decision data up into per-researcher
// statistics for the administrator view.
package admin

import (
	"math"
	"time"

	"github.com/pdiddy/project-match/internal/metrics"
	"github.com/pdiddy/project-match/internal/profile"
	"github.com/pdiddy/project-match/internal/store"
	"github.com/pdiddy/project-match/pkg/types"
)

// Options configures aggregation.
type Options struct {
	PhotoPath string
}

type tally struct {
	stat        types.ResearcherStat
	totalRating int
	ratingCount int
}

// Aggregate groups matches by stored researcher string, in first-seen
// order. Ratings come from every decision by that researcher with a
// positive rating; a researcher with none averages 0.
func Aggregate(s *store.Store, opts Options) []types.ResearcherStat {
	start := time.Now()
	defer func() {
		metrics.ComposeDuration.WithLabelValues("admin").Observe(time.Since(start).Seconds())
	}()

	var (
		order   []string
		tallies = make(map[string]*tally)
	)

	for _, m := range s.Matches() {
		t, ok := tallies[m.Researcher]
		if !ok {
			t = &tally{stat: types.ResearcherStat{Name: m.Researcher, BestScore: m.Score}}
			if r, found := s.ResearcherByName(m.Researcher); found {
				t.stat.Email = r.Email
				t.stat.Image = profile.ResolveImage(r.Image, opts.PhotoPath)
			}
			tallies[m.Researcher] = t
			order = append(order, m.Researcher)
		}
		t.stat.ProjectCount++
		if m.Score > t.stat.BestScore {
			t.stat.BestScore = m.Score
		}
	}

	for _, d := range s.Decisions() {
		t, ok := tallies[d.Academician]
		if !ok || d.Rating <= 0 {
			continue
		}
		t.totalRating += d.Rating
		t.ratingCount++
	}

	out := make([]types.ResearcherStat, 0, len(order))
	for _, name := range order {
		t := tallies[name]
		if t.ratingCount > 0 {
			t.stat.AverageRating = round1(float64(t.totalRating) / float64(t.ratingCount))
		}
		out = append(out, t.stat)
	}
	return out
}

// Summarize builds the full administrator view: researcher statistics,
// every decision, access logs and announcements.
func Summarize(s *store.Store, opts Options) types.AdminSummary {
	summary := types.AdminSummary{
		Academicians:  Aggregate(s, opts),
		Feedbacks:     s.Decisions(),
		Logs:          s.Entries(types.CollectionLogs),
		Announcements: s.Entries(types.CollectionAnnouncements),
	}
	if summary.Feedbacks == nil {
		summary.Feedbacks = []types.Decision{}
	}
	if summary.Logs == nil {
		summary.Logs = []types.Entry{}
	}
	if summary.Announcements == nil {
		summary.Announcements = []types.Entry{}
	}
	return summary
}

// round1 rounds to one decimal place, halves to even.
func round1(x float64) float64 {
	return math.RoundToEven(x*10) / 10
}
