package taskflow

import (
	"encoding/json"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// Todo describes a todo item as returned by the API. Mutating operations send back the whole todo (see
// Client.Update), so every field the API knows about must be carried here.
type Todo struct {
	ID         ID     `json:"id"`
	Heading    string `json:"heading"`
	Body       string `json:"body"`
	IsComplete bool   `json:"isComplete"`

	// ISO-8601 timestamps, maintained by whoever writes the todo. Either may be missing.
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// wireTodo is what we accept when decoding. Older payloads carry the completion flag as "completed"
// rather than "isComplete"; the alias never makes it past UnmarshalJSON.
type wireTodo struct {
	ID         ID     `json:"id"`
	Heading    string `json:"heading"`
	Body       string `json:"body"`
	IsComplete *bool  `json:"isComplete"`
	Completed  *bool  `json:"completed"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

// UnmarshalJSON implements json.Unmarshaler. If both isComplete and completed are present, isComplete wins.
func (t *Todo) UnmarshalJSON(b []byte) error {
	var w wireTodo
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*t = Todo{
		ID:        w.ID,
		Heading:   w.Heading,
		Body:      w.Body,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
	switch {
	case w.IsComplete != nil:
		t.IsComplete = *w.IsComplete
	case w.Completed != nil:
		t.IsComplete = *w.Completed
	}
	return nil
}

// Toggled returns a copy of the todo with the completion flag flipped.
func (t Todo) Toggled() Todo {
	t.IsComplete = !t.IsComplete
	return t
}

// Created parses CreatedAt. The second return value is false if the timestamp is missing or malformed.
func (t Todo) Created() (time.Time, bool) {
	return parseTimestamp(t.ID, "created_at", t.CreatedAt)
}

// Updated is analogous to Created.
func (t Todo) Updated() (time.Time, bool) {
	return parseTimestamp(t.ID, "updated_at", t.UpdatedAt)
}

// Validate checks the todo is fit to be sent as an update: the heading can't be blank.
func (t Todo) Validate() error {
	if strings.TrimSpace(t.Heading) == "" {
		return &ValidationError{Field: "heading"}
	}
	return nil
}

// Input holds what the user provides when creating a todo. The server assigns the id, and new todos always
// start incomplete.
type Input struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

// Validate requires both heading and body to be non-blank.
func (in Input) Validate() error {
	if strings.TrimSpace(in.Heading) == "" {
		return &ValidationError{Field: "heading"}
	}
	if strings.TrimSpace(in.Body) == "" {
		return &ValidationError{Field: "body"}
	}
	return nil
}

// MarshalJSON implements json.Marshaler. The isComplete property is always sent as false.
func (in Input) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Heading    string `json:"heading"`
		Body       string `json:"body"`
		IsComplete bool   `json:"isComplete"`
	}{in.Heading, in.Body, false})
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseTimestamp(id ID, field, value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	log.WithFields(log.Fields{
		"id":    id.String(),
		"field": field,
		"value": value,
	}).Warning("Could not parse timestamp")
	return time.Time{}, false
}
