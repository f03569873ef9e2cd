package filestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/bank-console/internal/models"
	"github.com/hongminglow/bank-console/internal/storage"
)

func TestSessionsSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.json")
	ctx := context.Background()

	store, err := Open(path)
	require.NoError(t, err)

	now := time.Now().UTC().Truncate(time.Second)
	rec := storage.SessionRecord{
		ID:          "sid-1",
		Identity:    models.Identity{CustomerID: 3, Email: "c@example.com", Role: models.RoleAdmin},
		SealedToken: "sealed",
		CreatedAt:   now,
		ExpiresAt:   now.Add(time.Hour),
	}
	require.NoError(t, store.SaveSession(ctx, rec))

	reopened, err := Open(path)
	require.NoError(t, err)
	got, err := reopened.FindSession(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, rec.Identity, got.Identity)
	assert.True(t, rec.ExpiresAt.Equal(got.ExpiresAt))

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, reopened.DeleteSession(ctx, "sid-1"))
	_, err = reopened.FindSession(ctx, "sid-1")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	require.NoError(t, reopened.DeleteSession(ctx, "sid-1"))
}

func TestPurgeExpired(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "nested", "sessions.json"))
	require.NoError(t, err)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, store.SaveSession(ctx, storage.SessionRecord{ID: "old", ExpiresAt: now.Add(-time.Minute)}))
	require.NoError(t, store.SaveSession(ctx, storage.SessionRecord{ID: "new", ExpiresAt: now.Add(time.Minute)}))

	n, err := store.PurgeExpired(ctx, now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	_, err = store.FindSession(ctx, "new")
	assert.NoError(t, err)
}

func TestOpenRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
	_, err := Open(path)
	assert.Error(t, err)
}
