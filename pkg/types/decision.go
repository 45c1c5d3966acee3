// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "encoding/json"

// TimestampLayout is the second-precision layout used for decision and
// journal timestamps.
const TimestampLayout = "2006-01-02 15:04:05"

// DecisionFields lists the keys a Decision owns when serialized. Any other
// key read from a source lands in Extra.
var DecisionFields = []string{"academician", "projId", "projectTitle", "decision", "note", "rating", "timestamp"}

// Fields flattens the decision into a single map, extras first so that the
// typed fields always win.
func (d Decision) Fields() map[string]any {
	out := make(map[string]any, len(d.Extra)+len(DecisionFields))
	for k, v := range d.Extra {
		out[k] = v
	}
	out["academician"] = d.Academician
	out["projId"] = d.ProjectID
	out["projectTitle"] = d.ProjectTitle
	out["decision"] = string(d.Decision)
	out["note"] = d.Note
	out["rating"] = d.Rating
	out["timestamp"] = d.Timestamp
	return out
}

// MarshalJSON writes the typed fields together with any preserved extras.
func (d Decision) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Fields())
}

// MarshalYAML mirrors MarshalJSON for YAML exports.
func (d Decision) MarshalYAML() (any, error) {
	return d.Fields(), nil
}

// Clone returns a copy that shares no mutable state with d.
func (d Decision) Clone() Decision {
	if d.Extra != nil {
		extra := make(map[string]any, len(d.Extra))
		for k, v := range d.Extra {
			extra[k] = v
		}
		d.Extra = extra
	}
	return d
}

// DecisionInput is a caller-supplied decision write. Rating is left untyped
// because callers send numbers, numeric strings, or nothing at all.
type DecisionInput struct {
	Academician  string `json:"academician"`
	ProjectID    string `json:"projId"`
	ProjectTitle string `json:"projectTitle"`
	Decision     string `json:"decision"`
	Note         string `json:"note"`
	Rating       any    `json:"rating"`
}
