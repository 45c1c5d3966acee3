// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Profile is the directory half of a composed profile response. Image is
// already resolved to an absolute URL or a path under the photo directory.
type Profile struct {
	Fullname string   `json:"Fullname" yaml:"Fullname"`
	Email    string   `json:"Email" yaml:"Email"`
	Phone    string   `json:"Phone" yaml:"Phone"`
	Title    string   `json:"Title" yaml:"Title"`
	Field    string   `json:"Field" yaml:"Field"`
	Image    string   `json:"Image" yaml:"Image"`
	Duties   []string `json:"Duties" yaml:"Duties"`
}

// ComposedProject is one matched project enriched with directory metadata
// and the researcher's decision state.
type ComposedProject struct {
	ID            string        `json:"id" yaml:"id"`
	Score         int           `json:"score" yaml:"score"`
	Reason        string        `json:"reason" yaml:"reason"`
	Title         string        `json:"title" yaml:"title"`
	Objective     string        `json:"objective" yaml:"objective"`
	Budget        string        `json:"budget" yaml:"budget"`
	Status        string        `json:"status" yaml:"status"`
	URL           string        `json:"url" yaml:"url"`
	Decision      DecisionState `json:"decision" yaml:"decision"`
	Note          string        `json:"note" yaml:"note"`
	Rating        int           `json:"rating" yaml:"rating"`
	Collaborators []string      `json:"collaborators" yaml:"collaborators"`
}

// ProfileResponse is the composed profile view.
type ProfileResponse struct {
	Profile  Profile           `json:"profile" yaml:"profile"`
	Projects []ComposedProject `json:"projects" yaml:"projects"`
}

// ResearcherStat is one row of the admin summary.
type ResearcherStat struct {
	Name          string  `json:"name" yaml:"name"`
	Email         string  `json:"email" yaml:"email"`
	ProjectCount  int     `json:"project_count" yaml:"project_count"`
	BestScore     int     `json:"best_score" yaml:"best_score"`
	Image         string  `json:"image" yaml:"image"`
	AverageRating float64 `json:"average_rating" yaml:"average_rating"`
}

// AdminSummary is the administrator's roll-up view.
type AdminSummary struct {
	Academicians  []ResearcherStat `json:"academicians" yaml:"academicians"`
	Feedbacks     []Decision       `json:"feedbacks" yaml:"feedbacks"`
	Logs          []Entry          `json:"logs" yaml:"logs"`
	Announcements []Entry          `json:"announcements" yaml:"announcements"`
}

// Node is a researcher in the collaboration graph.
type Node struct {
	ID       string `json:"id" yaml:"id"`
	IsCenter bool   `json:"isCenter" yaml:"isCenter"`
	Img      string `json:"img" yaml:"img"`
}

// Link is an undirected collaboration edge.
type Link struct {
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
}

// Graph is the collaboration graph around one researcher.
type Graph struct {
	Nodes []Node `json:"nodes" yaml:"nodes"`
	Links []Link `json:"links" yaml:"links"`
}
