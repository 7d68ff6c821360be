package signup

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inovalink/inovalink-backend/internal/gateway"
)

type fakeGateway struct {
	mu            sync.Mutex
	createCalls   int
	signInCalls   int
	saveCalls     int
	createErr     error
	signInErr     error
	saveErr       error
	federatedName string

	// When non-nil, CreateAccountByCredential signals createStarted
	// and blocks until createRelease is closed.
	createStarted chan struct{}
	createRelease chan struct{}
}

func (g *fakeGateway) CreateAccountByCredential(ctx context.Context, email, password string) (*gateway.Identity, error) {
	g.mu.Lock()
	g.createCalls++
	started, release := g.createStarted, g.createRelease
	g.mu.Unlock()

	if started != nil {
		close(started)
		<-release
	}
	if g.createErr != nil {
		return nil, g.createErr
	}
	return &gateway.Identity{UID: "cred-uid", Email: email}, nil
}

func (g *fakeGateway) SignInFederated(ctx context.Context, idToken string) (*gateway.Identity, error) {
	g.mu.Lock()
	g.signInCalls++
	g.mu.Unlock()

	if g.signInErr != nil {
		return nil, g.signInErr
	}
	return &gateway.Identity{UID: "google-uid", Email: "g@x.com", DisplayName: g.federatedName}, nil
}

func (g *fakeGateway) SaveAccountProfile(ctx context.Context, id *gateway.Identity, role gateway.Role, displayName string) error {
	g.mu.Lock()
	g.saveCalls++
	g.mu.Unlock()
	return g.saveErr
}

func (g *fakeGateway) FetchAccountProfile(ctx context.Context, uid string) (*gateway.Profile, error) {
	return nil, gateway.ErrProfileNotFound
}

func (g *fakeGateway) SignOut(ctx context.Context, uid string) error {
	return nil
}

func (g *fakeGateway) calls() (create, signIn, save int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.createCalls, g.signInCalls, g.saveCalls
}

func validCredential() CredentialInput {
	return CredentialInput{
		Email:       "new@x.com",
		Password:    "secret1",
		DisplayName: "Ana",
		Role:        gateway.RoleFreelancer,
	}
}

func TestSubmitCredential_ShortPassword_NoGatewayCall(t *testing.T) {
	g := &fakeGateway{}
	f := NewFlow(g, nil)

	in := validCredential()
	in.Password = "12345"

	_, err := f.SubmitCredential(context.Background(), in)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "password", verr.Field)

	create, _, save := g.calls()
	assert.Equal(t, 0, create)
	assert.Equal(t, 0, save)

	snap := f.Snapshot()
	assert.Equal(t, StateFailed, snap.State)
	assert.NotEmpty(t, snap.Error)
	// Form stays populated for retry.
	assert.Equal(t, "new@x.com", snap.Email)
}

func TestSubmitCredential_EmptyFields(t *testing.T) {
	g := &fakeGateway{}
	f := NewFlow(g, nil)

	for field, mutate := range map[string]func(*CredentialInput){
		"display_name": func(in *CredentialInput) { in.DisplayName = "  " },
		"email":        func(in *CredentialInput) { in.Email = "" },
		"password":     func(in *CredentialInput) { in.Password = "" },
		"role":         func(in *CredentialInput) { in.Role = "admin" },
	} {
		in := validCredential()
		mutate(&in)

		_, err := f.SubmitCredential(context.Background(), in)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "field %s", field)
		assert.Equal(t, field, verr.Field)
	}

	create, _, save := g.calls()
	assert.Equal(t, 0, create)
	assert.Equal(t, 0, save)
}

func TestSubmitCredential_Success(t *testing.T) {
	g := &fakeGateway{}

	var completed *gateway.Identity
	f := NewFlow(g, func(id *gateway.Identity, role gateway.Role, displayName string) {
		completed = id
	})

	result, err := f.SubmitCredential(context.Background(), validCredential())
	require.NoError(t, err)

	assert.Equal(t, "cred-uid", result.UID)
	assert.Equal(t, gateway.RoleFreelancer, result.Role)
	assert.Equal(t, "Ana", result.DisplayName)

	require.NotNil(t, completed)
	assert.Equal(t, "cred-uid", completed.UID)

	create, _, save := g.calls()
	assert.Equal(t, 1, create)
	assert.Equal(t, 1, save)

	// All local state reset after completion.
	snap := f.Snapshot()
	assert.Equal(t, StateIdle, snap.State)
	assert.Empty(t, snap.Email)
}

func TestSubmitCredential_GatewayFailureKeepsForm(t *testing.T) {
	g := &fakeGateway{createErr: gateway.ErrAlreadyExists}
	f := NewFlow(g, nil)

	_, err := f.SubmitCredential(context.Background(), validCredential())

	var gerr *GatewayError
	require.ErrorAs(t, err, &gerr)
	assert.ErrorIs(t, gerr, gateway.ErrAlreadyExists)

	snap := f.Snapshot()
	assert.Equal(t, StateFailed, snap.State)
	assert.Equal(t, PathCredential, snap.Path)
	assert.Equal(t, "new@x.com", snap.Email)
	assert.NotEmpty(t, snap.Error)

	_, _, save := g.calls()
	assert.Equal(t, 0, save)
}

func TestAuthenticateFederated_Success(t *testing.T) {
	g := &fakeGateway{federatedName: "Ana G"}
	f := NewFlow(g, nil)
	f.StartFederated()

	require.NoError(t, f.AuthenticateFederated(context.Background(), "token"))

	snap := f.Snapshot()
	assert.Equal(t, StateGoogleProfileCompletion, snap.State)
	assert.True(t, snap.HasIdentity)
	// Provider display name pre-fills the completion form.
	assert.Equal(t, "Ana G", snap.DisplayName)
}

func TestAuthenticateFederated_FailureStaysOnAuthStep(t *testing.T) {
	g := &fakeGateway{signInErr: errors.New("popup closed")}
	f := NewFlow(g, nil)
	f.StartFederated()

	err := f.AuthenticateFederated(context.Background(), "token")

	var gerr *GatewayError
	require.ErrorAs(t, err, &gerr)

	snap := f.Snapshot()
	assert.Equal(t, StateFailed, snap.State)
	assert.False(t, snap.HasIdentity)

	// Retry works without switching paths.
	g.signInErr = nil
	require.NoError(t, f.AuthenticateFederated(context.Background(), "token"))
	assert.Equal(t, StateGoogleProfileCompletion, f.Snapshot().State)
}

func TestCompleteFederated_EmptyDisplayName_NoSave(t *testing.T) {
	g := &fakeGateway{}
	f := NewFlow(g, nil)
	f.StartFederated()
	require.NoError(t, f.AuthenticateFederated(context.Background(), "token"))

	_, err := f.CompleteFederated(context.Background(), "   ", gateway.RoleBusiness)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "display_name", verr.Field)

	_, _, save := g.calls()
	assert.Equal(t, 0, save)
	assert.Equal(t, StateGoogleProfileCompletion, f.Snapshot().State)
}

func TestCompleteFederated_WithoutIdentity(t *testing.T) {
	g := &fakeGateway{}
	f := NewFlow(g, nil)
	f.StartFederated()

	_, err := f.CompleteFederated(context.Background(), "Ana", gateway.RoleBusiness)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "identity", verr.Field)
}

func TestCompleteFederated_SaveFailureAllowsRetry(t *testing.T) {
	g := &fakeGateway{saveErr: errors.New("network error")}
	f := NewFlow(g, nil)
	f.StartFederated()
	require.NoError(t, f.AuthenticateFederated(context.Background(), "token"))

	_, err := f.CompleteFederated(context.Background(), "Ana", gateway.RoleBusiness)
	require.Error(t, err)

	snap := f.Snapshot()
	assert.Equal(t, StateGoogleProfileCompletion, snap.State)
	assert.True(t, snap.HasIdentity, "identity survives a failed save")

	g.saveErr = nil
	result, err := f.CompleteFederated(context.Background(), "Ana", gateway.RoleBusiness)
	require.NoError(t, err)
	assert.Equal(t, "google-uid", result.UID)
}

func TestCompleteFederated_Success(t *testing.T) {
	g := &fakeGateway{federatedName: "Ana G"}

	var completedRole gateway.Role
	f := NewFlow(g, func(id *gateway.Identity, role gateway.Role, displayName string) {
		completedRole = role
	})

	f.StartFederated()
	require.NoError(t, f.AuthenticateFederated(context.Background(), "token"))

	result, err := f.CompleteFederated(context.Background(), "Ana G", gateway.RoleBusiness)
	require.NoError(t, err)
	assert.Equal(t, gateway.RoleBusiness, result.Role)
	assert.Equal(t, gateway.RoleBusiness, completedRole)

	assert.Equal(t, StateIdle, f.Snapshot().State)
}

func TestBack_DiscardsCapturedIdentity(t *testing.T) {
	g := &fakeGateway{federatedName: "Ana G"}
	f := NewFlow(g, nil)
	f.StartFederated()
	require.NoError(t, f.AuthenticateFederated(context.Background(), "token"))

	f.Back()

	snap := f.Snapshot()
	assert.Equal(t, StateGoogleAuthPending, snap.State)
	assert.False(t, snap.HasIdentity)
	assert.Empty(t, snap.DisplayName)
}

func TestSwitchPath_DiscardsDraftFields(t *testing.T) {
	g := &fakeGateway{}
	f := NewFlow(g, nil)

	in := validCredential()
	in.Password = "123" // fail locally so the draft is retained
	_, err := f.SubmitCredential(context.Background(), in)
	require.Error(t, err)

	f.StartFederated()

	snap := f.Snapshot()
	assert.Equal(t, PathFederated, snap.Path)
	assert.Empty(t, snap.Email)
	assert.Empty(t, snap.Error)
}

func TestAbandonedPathA_LateResponseDiscarded(t *testing.T) {
	g := &fakeGateway{
		createStarted: make(chan struct{}),
		createRelease: make(chan struct{}),
	}
	f := NewFlow(g, nil)

	done := make(chan error, 1)
	go func() {
		_, err := f.SubmitCredential(context.Background(), validCredential())
		done <- err
	}()

	// Wait for the Path A gateway call to be in flight, then abandon it.
	select {
	case <-g.createStarted:
	case <-time.After(2 * time.Second):
		t.Fatal("credential create never started")
	}
	f.StartFederated()

	// Let the abandoned call complete.
	close(g.createRelease)

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrStaleResponse)
	case <-time.After(2 * time.Second):
		t.Fatal("submit never returned")
	}

	// The late Path A result neither moved the state nor leaked fields
	// into the Path B draft.
	snap := f.Snapshot()
	assert.Equal(t, StateGoogleAuthPending, snap.State)
	assert.Equal(t, PathFederated, snap.Path)
	assert.Empty(t, snap.Email)
	assert.Empty(t, snap.DisplayName)

	// The abandoned path never reached the profile save.
	_, _, save := g.calls()
	assert.Equal(t, 0, save)
}
