package model

import "time"

// Commit represents a single commit in the range under consideration.
type Commit struct {
	SHA       string    `json:"sha"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body,omitempty"`
	Author    string    `json:"author,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Message returns the full commit message (subject plus body).
func (c Commit) Message() string {
	if c.Body == "" {
		return c.Subject
	}
	return c.Subject + "\n\n" + c.Body
}

// ShortSHA returns the abbreviated commit SHA.
func (c Commit) ShortSHA() string {
	if len(c.SHA) > 7 {
		return c.SHA[:7]
	}
	return c.SHA
}
