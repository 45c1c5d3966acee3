// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// DecisionState is a researcher's verdict on a proposed project match.
type DecisionState string

const (
	DecisionAccepted DecisionState = "accepted"
	DecisionRejected DecisionState = "rejected"
	DecisionWaiting  DecisionState = "waiting"
)

// Researcher is a directory entry for an academic. Only Fullname and Email
// take part in indexing; the rest passes through to composed views.
type Researcher struct {
	Fullname string   `json:"Fullname" yaml:"Fullname"`
	Email    string   `json:"Email" yaml:"Email"`
	Phone    string   `json:"Phone" yaml:"Phone"`
	Title    string   `json:"Title" yaml:"Title"`
	Field    string   `json:"Field" yaml:"Field"`
	Image    string   `json:"Image" yaml:"Image"`
	Duties   []string `json:"Duties" yaml:"Duties"`
}

// Project is a funded research project from the project directory.
type Project struct {
	// ID is the whitespace-trimmed project identifier.
	ID            string `json:"project_id" yaml:"project_id"`
	Title         string `json:"title" yaml:"title"`
	Acronym       string `json:"acronym" yaml:"acronym"`
	Objective     string `json:"objective" yaml:"objective"`
	Budget        string `json:"overall_budget" yaml:"overall_budget"`
	Status        string `json:"status" yaml:"status"`
	CoordinatedBy string `json:"coordinated_by" yaml:"coordinated_by"`
	URL           string `json:"url" yaml:"url"`
}

// DisplayTitle returns the title, falling back to the acronym.
func (p Project) DisplayTitle() string {
	if p.Title != "" {
		return p.Title
	}
	return p.Acronym
}

// Match is a computed researcher/project pairing with a relevance score.
type Match struct {
	// Researcher is the researcher string exactly as stored by the match
	// source (trimmed, not case-normalized).
	Researcher string `json:"academician_name" yaml:"academician_name"`
	ProjectID  string `json:"project_id" yaml:"project_id"`
	Score      int    `json:"score" yaml:"score"`
	Reason     string `json:"reason" yaml:"reason"`
}

// Decision is a researcher's recorded feedback on one matched project.
type Decision struct {
	Academician  string        `json:"academician" yaml:"academician"`
	ProjectID    string        `json:"projId" yaml:"projId"`
	ProjectTitle string        `json:"projectTitle" yaml:"projectTitle"`
	Decision     DecisionState `json:"decision" yaml:"decision"`
	Note         string        `json:"note" yaml:"note"`
	Rating       int           `json:"rating" yaml:"rating"`
	Timestamp    string        `json:"timestamp" yaml:"timestamp"`

	// Extra holds source fields this system does not interpret. They are
	// written back unchanged whenever the decision set is saved.
	Extra map[string]any `json:"-" yaml:"-"`
}

// Entry is an opaque record from an external collection (access logs,
// announcements, messages).
type Entry map[string]any
