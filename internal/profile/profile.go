// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package profile composes a researcher's profile with the projects they
// were matched to, each carrying project metadata and the researcher's
// decision state. A researcher or project missing from the directory
// degrades to placeholders; composition never fails.
package profile

import (
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/project-match/internal/logging"
	"github.com/pdiddy/project-match/internal/metrics"
	"github.com/pdiddy/project-match/internal/store"
	errs "github.com/pdiddy/project-match/pkg/errors"
	"github.com/pdiddy/project-match/pkg/types"
)

// Placeholders used when directory data is missing.
const (
	DefaultTitle         = "Akademisyen"
	MissingValue         = "-"
	MissingURL           = "#"
	PlaceholderTitleStem = "Proje-"
)

// Options configures composition.
type Options struct {
	// PhotoPath is the virtual directory bare image filenames are served from.
	PhotoPath string

	Logger *zap.Logger
}

// Compose builds the profile view for name. The profile is looked up by
// normalized name; projects come from matches whose stored researcher
// string equals name exactly. Projects are ordered by score, highest
// first, keeping match order among equal scores.
func Compose(s *store.Store, name string, opts Options) types.ProfileResponse {
	start := time.Now()
	defer func() {
		metrics.ComposeDuration.WithLabelValues("profile").Observe(time.Since(start).Seconds())
	}()
	logger := logging.OrNop(opts.Logger)

	r, found := s.ResearcherByName(name)
	if !found {
		logger.Debug("composing profile without directory entry",
			zap.Error(errs.NewMissingRecordError("researcher", name)))
	}

	prof := types.Profile{
		Fullname: name,
		Email:    r.Email,
		Phone:    r.Phone,
		Title:    r.Title,
		Field:    r.Field,
		Image:    ResolveImage(r.Image, opts.PhotoPath),
		Duties:   r.Duties,
	}
	if prof.Title == "" {
		prof.Title = DefaultTitle
	}
	if prof.Duties == nil {
		prof.Duties = []string{}
	}

	decisions := s.Decisions()
	matches := s.MatchesFor(name)
	projects := make([]types.ComposedProject, 0, len(matches))

	for _, m := range matches {
		cp := types.ComposedProject{
			ID:       m.ProjectID,
			Score:    m.Score,
			Reason:   m.Reason,
			Title:    PlaceholderTitleStem + m.ProjectID,
			Budget:   MissingValue,
			Status:   MissingValue,
			URL:      MissingURL,
			Decision: types.DecisionWaiting,
		}

		if p, ok := s.Project(m.ProjectID); ok {
			if t := p.DisplayTitle(); t != "" {
				cp.Title = t
			}
			cp.Objective = p.Objective
			cp.Budget = orDefault(p.Budget, MissingValue)
			cp.Status = orDefault(p.Status, MissingValue)
			cp.URL = orDefault(p.URL, MissingURL)
		} else {
			logger.Debug("matched project missing from directory",
				zap.Error(errs.NewMissingRecordError("project", m.ProjectID)))
		}

		if d, ok := decisions.Find(name, m.ProjectID); ok {
			cp.Decision = d.Decision
			cp.Note = d.Note
			cp.Rating = d.Rating
		}

		cp.Collaborators = decisions.AcceptedOn(m.ProjectID, name)
		if cp.Collaborators == nil {
			cp.Collaborators = []string{}
		}

		projects = append(projects, cp)
	}

	sort.SliceStable(projects, func(i, j int) bool {
		return projects[i].Score > projects[j].Score
	})

	return types.ProfileResponse{Profile: prof, Projects: projects}
}

// ResolveImage returns raw unchanged when it is an absolute http(s) URL.
// Otherwise it drops any directory prefix and places the bare filename under
// photoPath, so a stale storage-relative path never reaches the client.
func ResolveImage(raw, photoPath string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, "http") {
		return raw
	}

	filename := raw
	if i := strings.LastIndexAny(filename, `/\`); i >= 0 {
		filename = filename[i+1:]
	}
	if filename == "" {
		return ""
	}

	photoPath = strings.TrimRight(photoPath, "/")
	if photoPath == "" {
		return filename
	}
	return photoPath + "/" + filename
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
