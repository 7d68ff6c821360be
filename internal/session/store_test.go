package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inovalink/inovalink-backend/internal/gateway"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewStore(client, time.Hour), mr
}

func testSession() *Session {
	return &Session{
		UID:         "uid-1",
		Email:       "ana@x.com",
		DisplayName: "Ana",
		Role:        gateway.RoleFreelancer,
		Language:    "pt",
	}
}

func TestStore_PutAndGet(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()

	s := testSession()
	require.NoError(t, st.Put(ctx, s))
	assert.False(t, s.CreatedAt.IsZero())

	got, err := st.Get(ctx, "uid-1")
	require.NoError(t, err)
	assert.Equal(t, "ana@x.com", got.Email)
	assert.Equal(t, gateway.RoleFreelancer, got.Role)
	assert.Equal(t, "pt", got.Language)
}

func TestStore_PutRequiresUID(t *testing.T) {
	st, _ := newTestStore(t)

	err := st.Put(context.Background(), &Session{})
	require.Error(t, err)
}

func TestStore_GetMissing(t *testing.T) {
	st, _ := newTestStore(t)

	_, err := st.Get(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestStore_SetLanguage(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.Put(ctx, testSession()))

	s, err := st.SetLanguage(ctx, "uid-1", "en")
	require.NoError(t, err)
	assert.Equal(t, "en", s.Language)

	got, err := st.Get(ctx, "uid-1")
	require.NoError(t, err)
	assert.Equal(t, "en", got.Language)
}

func TestStore_SetLanguageMissingSession(t *testing.T) {
	st, _ := newTestStore(t)

	_, err := st.SetLanguage(context.Background(), "nobody", "en")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestStore_Delete(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.Put(ctx, testSession()))
	require.NoError(t, st.Delete(ctx, "uid-1"))

	_, err := st.Get(ctx, "uid-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// Deleting a missing session is not an error.
	require.NoError(t, st.Delete(ctx, "uid-1"))
}

func TestStore_TTLExpiry(t *testing.T) {
	st, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.Put(ctx, testSession()))

	mr.FastForward(2 * time.Hour)

	_, err := st.Get(ctx, "uid-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
