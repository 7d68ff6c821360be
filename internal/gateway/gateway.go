package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Role is the two-valued account classification. It gates project
// creation and is immutable once a profile is saved.
type Role string

const (
	RoleFreelancer Role = "freelancer"
	RoleBusiness   Role = "business"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleFreelancer, RoleBusiness:
		return Role(s), nil
	default:
		return "", fmt.Errorf("invalid role %q", s)
	}
}

// Identity is the opaque handle returned by the identity platform.
type Identity struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name,omitempty"`
}

// Profile is the account record persisted in the users collection.
type Profile struct {
	Email       string    `json:"email" firestore:"email"`
	Role        Role      `json:"user_type" firestore:"userType"`
	DisplayName string    `json:"display_name" firestore:"displayName"`
	CreatedAt   time.Time `json:"created_at" firestore:"createdAt"`
}

var (
	ErrAlreadyExists     = errors.New("account already exists")
	ErrInvalidCredential = errors.New("invalid credential")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrProfileNotFound   = errors.New("profile not found")
)

// Gateway wraps the external identity provider and document store.
// Implementations must bound every call with their configured timeout;
// the platform's own defaults are not relied on.
type Gateway interface {
	// CreateAccountByCredential provisions a new account from an
	// email/password pair.
	CreateAccountByCredential(ctx context.Context, email, password string) (*Identity, error)

	// SignInFederated resolves a provider-issued ID token into an
	// identity. The display name, when the provider supplies one, is
	// carried on the returned identity.
	SignInFederated(ctx context.Context, idToken string) (*Identity, error)

	// SaveAccountProfile attaches role and display name to an identity,
	// completing sign-up. Merging into an existing record is allowed.
	SaveAccountProfile(ctx context.Context, id *Identity, role Role, displayName string) error

	// FetchAccountProfile reads the account record, falling back to a
	// locally cached copy when the store is unreachable.
	FetchAccountProfile(ctx context.Context, uid string) (*Profile, error)

	// SignOut revokes the account's refresh tokens.
	SignOut(ctx context.Context, uid string) error
}
