package signup

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/inovalink/inovalink-backend/internal/gateway"
)

// Registry holds one Flow per sign-up session, keyed by an opaque flow
// id handed to the client when the dialog opens.
type Registry struct {
	mu         sync.RWMutex
	flows      map[string]*Flow
	gw         gateway.Gateway
	onComplete CompletionFunc
}

func NewRegistry(gw gateway.Gateway, onComplete CompletionFunc) *Registry {
	return &Registry{
		flows:      make(map[string]*Flow),
		gw:         gw,
		onComplete: onComplete,
	}
}

// Create starts a new flow and returns its id.
func (r *Registry) Create() (string, *Flow) {
	f := NewFlow(r.gw, r.onComplete)
	id := uuid.New().String()

	r.mu.Lock()
	r.flows[id] = f
	r.mu.Unlock()

	return id, f
}

func (r *Registry) Get(id string) (*Flow, error) {
	r.mu.RLock()
	f, ok := r.flows[id]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrFlowNotFound
	}
	return f, nil
}

// GetOrCreate returns the flow for id, creating one when the id is
// empty or unknown. The returned id is always valid.
func (r *Registry) GetOrCreate(id string) (string, *Flow) {
	if id != "" {
		if f, err := r.Get(id); err == nil {
			return id, f
		}
	}
	return r.Create()
}

// Remove drops a flow. Closing the dialog mid-flight relies on the
// flow's own generation fence to discard the eventual result.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	f, ok := r.flows[id]
	if ok {
		delete(r.flows, id)
	}
	r.mu.Unlock()

	if ok {
		f.Reset()
	}
}

// SweepIdle removes flows with no activity for longer than ttl and
// reports how many were dropped.
func (r *Registry) SweepIdle(ttl time.Duration) int {
	cutoff := time.Now().Add(-ttl)

	r.mu.Lock()
	var stale []*Flow
	for id, f := range r.flows {
		if f.LastTouched().Before(cutoff) {
			stale = append(stale, f)
			delete(r.flows, id)
		}
	}
	r.mu.Unlock()

	for _, f := range stale {
		f.Reset()
	}
	return len(stale)
}

// Len reports the number of live flows.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.flows)
}
