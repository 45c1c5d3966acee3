// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store holds the in-memory record collections and their lookup
// indexes. Directory data (researchers, projects, matches) is read-only
// after construction; decisions and external entries change only through
// UpdateDecisions and AppendEntry.
package store

import (
	"slices"
	"strings"
	"sync"

	"github.com/pdiddy/project-match/internal/identity"
	"github.com/pdiddy/project-match/pkg/types"
)

// Collections is the full set of records a Store is built from.
type Collections struct {
	Researchers   []types.Researcher
	Projects      []types.Project
	Matches       []types.Match
	Decisions     []types.Decision
	Logs          []types.Entry
	Announcements []types.Entry
	Messages      []types.Entry
}

// Store indexes researchers by normalized name and email and projects by
// trimmed id. Matches and decisions keep their insertion order.
type Store struct {
	mu sync.RWMutex

	researchers []types.Researcher
	byName      map[string]*types.Researcher
	byEmail     map[string]*types.Researcher

	projects map[string]*types.Project
	matches  []types.Match

	decisions DecisionSet
	entries   map[string][]types.Entry
}

// Load builds a Store from the four core collections.
func Load(researchers []types.Researcher, projects []types.Project, matches []types.Match, decisions []types.Decision) *Store {
	return New(Collections{
		Researchers: researchers,
		Projects:    projects,
		Matches:     matches,
		Decisions:   decisions,
	})
}

// New builds a Store from c. Duplicate name, email or project keys resolve
// to the last record seen. The input slices are copied.
func New(c Collections) *Store {
	s := &Store{
		researchers: slices.Clone(c.Researchers),
		byName:      make(map[string]*types.Researcher, len(c.Researchers)),
		byEmail:     make(map[string]*types.Researcher, len(c.Researchers)),
		projects:    make(map[string]*types.Project, len(c.Projects)),
		matches:     slices.Clone(c.Matches),
		decisions:   DecisionSet(c.Decisions).Clone(),
		entries: map[string][]types.Entry{
			types.CollectionLogs:          slices.Clone(c.Logs),
			types.CollectionAnnouncements: slices.Clone(c.Announcements),
			types.CollectionMessages:      slices.Clone(c.Messages),
		},
	}

	for i := range s.researchers {
		r := &s.researchers[i]
		if key := identity.NormalizeName(r.Fullname); key != "" {
			s.byName[key] = r
		}
		if key := identity.NormalizeEmail(r.Email); key != "" {
			s.byEmail[key] = r
		}
	}

	for i := range c.Projects {
		p := c.Projects[i]
		p.ID = strings.TrimSpace(p.ID)
		if p.ID == "" {
			continue
		}
		s.projects[p.ID] = &p
	}

	return s
}

// ResearcherByName looks up a researcher by case- and whitespace-insensitive
// full name.
func (s *Store) ResearcherByName(name string) (types.Researcher, bool) {
	key := identity.NormalizeName(name)
	if key == "" {
		return types.Researcher{}, false
	}
	r, ok := s.byName[key]
	if !ok {
		return types.Researcher{}, false
	}
	return *r, true
}

// ResearcherByEmail looks up a researcher by case- and whitespace-insensitive
// email address.
func (s *Store) ResearcherByEmail(email string) (types.Researcher, bool) {
	key := identity.NormalizeEmail(email)
	if key == "" {
		return types.Researcher{}, false
	}
	r, ok := s.byEmail[key]
	if !ok {
		return types.Researcher{}, false
	}
	return *r, true
}

// Project looks up a project by id, ignoring surrounding whitespace.
func (s *Store) Project(id string) (types.Project, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return types.Project{}, false
	}
	p, ok := s.projects[id]
	if !ok {
		return types.Project{}, false
	}
	return *p, true
}

// Matches returns every match in insertion order.
func (s *Store) Matches() []types.Match {
	return slices.Clone(s.matches)
}

// MatchesFor returns the matches whose stored researcher string equals
// researcher exactly, in insertion order.
func (s *Store) MatchesFor(researcher string) []types.Match {
	var out []types.Match
	for _, m := range s.matches {
		if m.Researcher == researcher {
			out = append(out, m)
		}
	}
	return out
}

// Decisions returns a snapshot of the decision sequence.
func (s *Store) Decisions() DecisionSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.decisions.Clone()
}

// UpdateDecisions replaces the decision sequence with the result of fn,
// holding the write lock while fn runs. fn receives a copy it may modify
// freely. The returned snapshot is what the store now holds.
func (s *Store) UpdateDecisions(fn func(DecisionSet) DecisionSet) DecisionSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.decisions = fn(s.decisions.Clone())
	return s.decisions.Clone()
}

// Entries returns a snapshot of an external collection (logs,
// announcements, messages). Unknown collections are empty.
func (s *Store) Entries(collection string) []types.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.entries[collection])
}

// AppendEntry adds e to the named external collection and returns a
// snapshot of the result.
func (s *Store) AppendEntry(collection string, e types.Entry) []types.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[collection] = append(s.entries[collection], e)
	return slices.Clone(s.entries[collection])
}

// Counts reports the size of each collection.
func (s *Store) Counts() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := map[string]int{
		types.CollectionResearchers: len(s.researchers),
		types.CollectionProjects:    len(s.projects),
		types.CollectionMatches:     len(s.matches),
		types.CollectionDecisions:   len(s.decisions),
	}
	for name, entries := range s.entries {
		counts[name] = len(entries)
	}
	return counts
}
