package gateway

import (
	"context"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const usersCollection = "users"

// FirebaseGateway implements Gateway on top of the Firebase Admin SDK
// (auth) and Firestore (profile documents), with a Redis-backed profile
// cache used as the offline fallback for reads.
type FirebaseGateway struct {
	auth    *fbauth.Client
	store   *firestore.Client
	cache   *ProfileCache
	timeout time.Duration
}

func NewFirebaseGateway(auth *fbauth.Client, store *firestore.Client, cache *ProfileCache, timeout time.Duration) *FirebaseGateway {
	return &FirebaseGateway{
		auth:    auth,
		store:   store,
		cache:   cache,
		timeout: timeout,
	}
}

func (g *FirebaseGateway) CreateAccountByCredential(ctx context.Context, email, password string) (*Identity, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	params := (&fbauth.UserToCreate{}).
		Email(email).
		Password(password)

	rec, err := g.auth.CreateUser(ctx, params)
	if err != nil {
		if fbauth.IsEmailAlreadyExists(err) {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	return &Identity{
		UID:   rec.UID,
		Email: rec.Email,
	}, nil
}

func (g *FirebaseGateway) SignInFederated(ctx context.Context, idToken string) (*Identity, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	token, err := g.auth.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, ErrInvalidCredential
	}

	rec, err := g.auth.GetUser(ctx, token.UID)
	if err != nil {
		return nil, fmt.Errorf("fetch federated user: %w", err)
	}

	return &Identity{
		UID:         rec.UID,
		Email:       rec.Email,
		DisplayName: rec.DisplayName,
	}, nil
}

func (g *FirebaseGateway) SaveAccountProfile(ctx context.Context, id *Identity, role Role, displayName string) error {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	profile := &Profile{
		Email:       id.Email,
		Role:        role,
		DisplayName: displayName,
		CreatedAt:   time.Now().UTC(),
	}

	// Merge so a partially provisioned record is completed rather than
	// replaced.
	_, err := g.store.Collection(usersCollection).Doc(id.UID).Set(ctx, map[string]interface{}{
		"email":       profile.Email,
		"userType":    profile.Role,
		"displayName": profile.DisplayName,
		"createdAt":   profile.CreatedAt,
	}, firestore.MergeAll)
	if err != nil {
		if status.Code(err) == codes.PermissionDenied {
			return ErrPermissionDenied
		}
		return fmt.Errorf("save profile: %w", err)
	}

	if g.cache != nil {
		if err := g.cache.Put(ctx, id.UID, profile); err != nil {
			log.Printf("profile cache write failed for %s: %v", id.UID, err)
		}
	}

	return nil
}

func (g *FirebaseGateway) FetchAccountProfile(ctx context.Context, uid string) (*Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	snap, err := g.store.Collection(usersCollection).Doc(uid).Get(ctx)
	if err != nil {
		switch status.Code(err) {
		case codes.NotFound:
			return nil, ErrProfileNotFound
		case codes.Unavailable, codes.DeadlineExceeded:
			// Store unreachable: serve the cached copy if we have one. The
			// request context may already be expired, so the cache read gets
			// its own deadline.
			if g.cache != nil {
				cctx, ccancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
				defer ccancel()
				if p, cerr := g.cache.Get(cctx, uid); cerr == nil {
					log.Printf("serving cached profile for %s", uid)
					return p, nil
				}
			}
			return nil, fmt.Errorf("fetch profile: %w", err)
		default:
			return nil, fmt.Errorf("fetch profile: %w", err)
		}
	}

	var p Profile
	if err := snap.DataTo(&p); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}

	if g.cache != nil {
		if err := g.cache.Put(ctx, uid, &p); err != nil {
			log.Printf("profile cache refresh failed for %s: %v", uid, err)
		}
	}

	return &p, nil
}

func (g *FirebaseGateway) SignOut(ctx context.Context, uid string) error {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	if err := g.auth.RevokeRefreshTokens(ctx, uid); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	return nil
}
