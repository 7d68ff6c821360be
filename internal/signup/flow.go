package signup

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/inovalink/inovalink-backend/internal/gateway"
)

type State string

const (
	StateIdle                    State = "idle"
	StateEmailFormEntry          State = "email_form_entry"
	StateGoogleAuthPending       State = "google_auth_pending"
	StateGoogleProfileCompletion State = "google_profile_completion"
	StateSubmitting              State = "submitting"
	StateSucceeded               State = "succeeded"
	StateFailed                  State = "failed"
)

// CompletionFunc is invoked once when either path finishes persisting a
// completed account record.
type CompletionFunc func(id *gateway.Identity, role gateway.Role, displayName string)

// Flow is the two-path sign-up state machine. Both the credential and
// the federated path converge on SaveAccountProfile. Gateway calls run
// outside the lock; every completion is fenced by a generation counter
// so a response that lands after a path switch or reset is discarded
// instead of being applied to the now-active path.
type Flow struct {
	mu         sync.Mutex
	gw         gateway.Gateway
	onComplete CompletionFunc

	state   State
	errMsg  string
	gen     uint64
	draft   draft
	touched time.Time
}

func NewFlow(gw gateway.Gateway, onComplete CompletionFunc) *Flow {
	return &Flow{
		gw:         gw,
		onComplete: onComplete,
		state:      StateIdle,
		touched:    time.Now(),
	}
}

// Result is returned to the caller when a path completes.
type Result struct {
	UID         string       `json:"uid"`
	Email       string       `json:"email"`
	Role        gateway.Role `json:"role"`
	DisplayName string       `json:"display_name"`
}

// Snapshot is a read-only view of the flow for presentation.
type Snapshot struct {
	State       State  `json:"state"`
	Path        Path   `json:"path"`
	Error       string `json:"error,omitempty"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	HasIdentity bool   `json:"has_identity"`
}

// StartCredential switches to Path A, discarding any other draft and
// any in-flight result.
func (f *Flow) StartCredential() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resetLocked()
	f.draft = &credentialDraft{}
	f.state = StateEmailFormEntry
}

// StartFederated switches to Path B, discarding any other draft and
// any in-flight result.
func (f *Flow) StartFederated() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resetLocked()
	f.draft = &federatedDraft{}
	f.state = StateGoogleAuthPending
}

// Reset returns the flow to Idle and fences out in-flight results.
func (f *Flow) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resetLocked()
}

// Back leaves the federated completion step, discarding the captured
// identity and display name. The user must re-authenticate.
func (f *Flow) Back() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.draft.(*federatedDraft); !ok {
		return
	}
	f.gen++
	f.draft = &federatedDraft{}
	f.state = StateGoogleAuthPending
	f.errMsg = ""
	f.touched = time.Now()
}

func (f *Flow) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	s := Snapshot{State: f.state, Error: f.errMsg}
	switch d := f.draft.(type) {
	case *credentialDraft:
		s.Path = PathCredential
		s.Email = d.Email
		s.DisplayName = d.DisplayName
	case *federatedDraft:
		s.Path = PathFederated
		s.DisplayName = d.DisplayName
		s.HasIdentity = d.Identity != nil
		if d.Identity != nil {
			s.Email = d.Identity.Email
		}
	}
	return s
}

// LastTouched reports the last time the flow saw any activity; the
// janitor uses it to sweep abandoned flows.
func (f *Flow) LastTouched() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.touched
}

// CredentialInput carries the Path A form fields.
type CredentialInput struct {
	Email       string
	Password    string
	DisplayName string
	Role        gateway.Role
}

// SubmitCredential runs Path A end to end: local validation, account
// creation, then profile save. Validation failures never reach the
// gateway. On gateway failure the form is retained for retry.
func (f *Flow) SubmitCredential(ctx context.Context, in CredentialInput) (*Result, error) {
	f.mu.Lock()
	f.touched = time.Now()

	cd, ok := f.draft.(*credentialDraft)
	if !ok {
		f.resetLocked()
		cd = &credentialDraft{}
		f.draft = cd
	}
	f.state = StateEmailFormEntry
	cd.Email = in.Email
	cd.Password = in.Password
	cd.DisplayName = in.DisplayName
	cd.Role = in.Role

	if verr := validateCredential(in); verr != nil {
		f.state = StateFailed
		f.errMsg = verr.Message
		f.mu.Unlock()
		return nil, verr
	}

	email := strings.TrimSpace(in.Email)
	displayName := strings.TrimSpace(in.DisplayName)

	f.errMsg = ""
	f.state = StateSubmitting
	gen := f.gen
	f.mu.Unlock()

	id, err := f.gw.CreateAccountByCredential(ctx, email, in.Password)

	f.mu.Lock()
	if gen != f.gen {
		f.mu.Unlock()
		return nil, ErrStaleResponse
	}
	if err != nil {
		gerr := &GatewayError{Op: "create account", Message: err.Error(), Err: err}
		f.state = StateFailed
		f.errMsg = gerr.Message
		f.mu.Unlock()
		return nil, gerr
	}
	f.mu.Unlock()

	err = f.gw.SaveAccountProfile(ctx, id, in.Role, displayName)

	f.mu.Lock()
	if gen != f.gen {
		f.mu.Unlock()
		return nil, ErrStaleResponse
	}
	if err != nil {
		gerr := &GatewayError{Op: "save profile", Message: err.Error(), Err: err}
		f.state = StateFailed
		f.errMsg = gerr.Message
		f.mu.Unlock()
		return nil, gerr
	}

	f.state = StateSucceeded
	cb := f.onComplete
	f.resetLocked()
	f.mu.Unlock()

	if cb != nil {
		cb(id, in.Role, displayName)
	}

	return &Result{
		UID:         id.UID,
		Email:       id.Email,
		Role:        in.Role,
		DisplayName: displayName,
	}, nil
}

// AuthenticateFederated runs the Path B auth step. On success the
// captured identity pre-fills the completion form; on failure the flow
// stays on the auth step for retry.
func (f *Flow) AuthenticateFederated(ctx context.Context, idToken string) error {
	f.mu.Lock()
	f.touched = time.Now()

	if _, ok := f.draft.(*federatedDraft); !ok {
		f.resetLocked()
		f.draft = &federatedDraft{}
	}
	f.state = StateGoogleAuthPending
	f.errMsg = ""
	gen := f.gen
	f.mu.Unlock()

	id, err := f.gw.SignInFederated(ctx, idToken)

	f.mu.Lock()
	defer f.mu.Unlock()
	if gen != f.gen {
		return ErrStaleResponse
	}
	if err != nil {
		gerr := &GatewayError{Op: "federated sign-in", Message: err.Error(), Err: err}
		f.state = StateFailed
		f.errMsg = gerr.Message
		return gerr
	}

	fd := f.draft.(*federatedDraft)
	fd.Identity = id
	if id.DisplayName != "" {
		fd.DisplayName = id.DisplayName
	}
	f.state = StateGoogleProfileCompletion
	return nil
}

// CompleteFederated runs the Path B completion step. On gateway failure
// the flow remains on the completion step, identity intact, for retry.
func (f *Flow) CompleteFederated(ctx context.Context, displayName string, role gateway.Role) (*Result, error) {
	f.mu.Lock()
	f.touched = time.Now()

	fd, ok := f.draft.(*federatedDraft)
	if !ok || fd.Identity == nil {
		verr := &ValidationError{Field: "identity", Message: "no federated identity captured"}
		f.errMsg = verr.Message
		f.mu.Unlock()
		return nil, verr
	}

	fd.DisplayName = displayName
	fd.Role = role

	if strings.TrimSpace(displayName) == "" {
		verr := &ValidationError{Field: "display_name", Message: "display name is required"}
		f.errMsg = verr.Message
		f.mu.Unlock()
		return nil, verr
	}
	if role != gateway.RoleFreelancer && role != gateway.RoleBusiness {
		verr := &ValidationError{Field: "role", Message: "role is required"}
		f.errMsg = verr.Message
		f.mu.Unlock()
		return nil, verr
	}

	id := fd.Identity
	name := strings.TrimSpace(displayName)

	f.errMsg = ""
	f.state = StateSubmitting
	gen := f.gen
	f.mu.Unlock()

	err := f.gw.SaveAccountProfile(ctx, id, role, name)

	f.mu.Lock()
	if gen != f.gen {
		f.mu.Unlock()
		return nil, ErrStaleResponse
	}
	if err != nil {
		gerr := &GatewayError{Op: "save profile", Message: err.Error(), Err: err}
		// Stay on the completion step so the user can retry without
		// re-authenticating.
		f.state = StateGoogleProfileCompletion
		f.errMsg = gerr.Message
		f.mu.Unlock()
		return nil, gerr
	}

	f.state = StateSucceeded
	cb := f.onComplete
	f.resetLocked()
	f.mu.Unlock()

	if cb != nil {
		cb(id, role, name)
	}

	return &Result{
		UID:         id.UID,
		Email:       id.Email,
		Role:        role,
		DisplayName: name,
	}, nil
}

func (f *Flow) resetLocked() {
	f.gen++
	f.draft = nil
	f.state = StateIdle
	f.errMsg = ""
	f.touched = time.Now()
}

func validateCredential(in CredentialInput) *ValidationError {
	if strings.TrimSpace(in.DisplayName) == "" {
		return &ValidationError{Field: "display_name", Message: "display name is required"}
	}
	if strings.TrimSpace(in.Email) == "" {
		return &ValidationError{Field: "email", Message: "email is required"}
	}
	if strings.TrimSpace(in.Password) == "" {
		return &ValidationError{Field: "password", Message: "password is required"}
	}
	if len(in.Password) < 6 {
		return &ValidationError{Field: "password", Message: "password must be at least 6 characters"}
	}
	if in.Role != gateway.RoleFreelancer && in.Role != gateway.RoleBusiness {
		return &ValidationError{Field: "role", Message: "role is required"}
	}
	return nil
}
