package ledger

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Ledger is the in-memory source of truth for projects and their reply
// threads. The ordered sequence is most-recent-first; replies append to
// the tail of their thread. Every mutation is fanned out to subscribers
// so observers never need to poll.
type Ledger struct {
	mu      sync.RWMutex
	order   []*Project
	byID    map[string]*Project
	subs    map[int]chan Event
	nextSub int

	publisher EventPublisher
}

// New returns an empty ledger. publisher may be nil when cross-instance
// fan-out is not needed.
func New(publisher EventPublisher) *Ledger {
	return &Ledger{
		byID:      make(map[string]*Project),
		subs:      make(map[int]chan Event),
		publisher: publisher,
	}
}

// AddProject validates the input, assigns a unique identifier and
// inserts the new project at the head of the ordered sequence. Status
// is always "open" and the reply thread starts empty.
func (l *Ledger) AddProject(in ProjectInput) (*Project, error) {
	if err := validateProjectInput(&in); err != nil {
		return nil, err
	}

	p := &Project{
		ID:          uuid.New().String(),
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Budget:      strings.TrimSpace(in.Budget),
		Deadline:    strings.TrimSpace(in.Deadline),
		Skills:      append([]string(nil), in.Skills...),
		PostedBy:    strings.TrimSpace(in.PostedBy),
		PostedDate:  time.Now().UTC(),
		Status:      StatusOpen,
		Replies:     []Reply{},
	}

	l.mu.Lock()
	l.order = append([]*Project{p}, l.order...)
	l.byID[p.ID] = p
	l.mu.Unlock()

	l.notify(Event{Type: EventProjectCreated, ProjectID: p.ID})

	return cloneProject(p), nil
}

// AddReply appends a reply to the tail of the given project's thread.
// A missing project id is reported as ErrProjectNotFound rather than
// ignored.
func (l *Ledger) AddReply(projectID string, in ReplyInput) (*Reply, error) {
	if strings.TrimSpace(in.Message) == "" {
		return nil, &ValidationError{Field: "message", Message: "message is required"}
	}

	ts := in.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	r := Reply{
		ID:         uuid.New().String(),
		UserID:     in.UserID,
		UserName:   in.UserName,
		Message:    strings.TrimSpace(in.Message),
		Timestamp:  ts,
		IsBusiness: in.IsBusiness,
	}

	l.mu.Lock()
	p, ok := l.byID[projectID]
	if !ok {
		l.mu.Unlock()
		return nil, ErrProjectNotFound
	}
	p.Replies = append(p.Replies, r)
	l.mu.Unlock()

	l.notify(Event{Type: EventReplyAdded, ProjectID: projectID, ReplyID: r.ID})

	out := r
	return &out, nil
}

// FindProject is a keyed lookup; no scan.
func (l *Ledger) FindProject(id string) (*Project, error) {
	l.mu.RLock()
	p, ok := l.byID[id]
	if !ok {
		l.mu.RUnlock()
		return nil, ErrProjectNotFound
	}
	out := cloneProject(p)
	l.mu.RUnlock()
	return out, nil
}

// ListProjects returns a snapshot of the ordered sequence,
// most-recent-first.
func (l *Ledger) ListProjects() []*Project {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]*Project, 0, len(l.order))
	for _, p := range l.order {
		out = append(out, cloneProject(p))
	}
	return out
}

// Len reports the number of projects in the ledger.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.order)
}

func validateProjectInput(in *ProjectInput) error {
	checks := []struct {
		field string
		value string
	}{
		{"title", in.Title},
		{"description", in.Description},
		{"budget", in.Budget},
		{"deadline", in.Deadline},
		{"posted_by", in.PostedBy},
	}
	for _, c := range checks {
		if strings.TrimSpace(c.value) == "" {
			return &ValidationError{Field: c.field, Message: c.field + " is required"}
		}
	}
	return nil
}
