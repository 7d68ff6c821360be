package ledger

import (
	"errors"
	"fmt"
	"time"
)

type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

var ErrProjectNotFound = errors.New("project not found")

// ValidationError identifies the input field that failed a
// required-field check.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Project is a unit of work posted by a business account. Records are
// owned exclusively by the Ledger; callers always receive copies.
type Project struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Budget      string    `json:"budget"`
	Deadline    string    `json:"deadline"`
	Skills      []string  `json:"skills"`
	PostedBy    string    `json:"posted_by"`
	PostedDate  time.Time `json:"posted_date"`
	Status      Status    `json:"status"`
	Replies     []Reply   `json:"replies"`
}

// Reply is a message on a project thread. Append-only; never edited or
// removed.
type Reply struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	UserName   string    `json:"user_name"`
	Message    string    `json:"message"`
	Timestamp  time.Time `json:"timestamp"`
	IsBusiness bool      `json:"is_business"`
}

// ProjectInput carries the caller-supplied fields for AddProject. All
// text fields are required after trimming; Skills may be empty.
type ProjectInput struct {
	Title       string
	Description string
	Budget      string
	Deadline    string
	Skills      []string
	PostedBy    string
}

// ReplyInput carries the caller-supplied fields for AddReply.
type ReplyInput struct {
	UserID     string
	UserName   string
	Message    string
	Timestamp  time.Time
	IsBusiness bool
}

func cloneProject(p *Project) *Project {
	out := *p
	out.Skills = append([]string(nil), p.Skills...)
	out.Replies = append([]Reply(nil), p.Replies...)
	return &out
}
