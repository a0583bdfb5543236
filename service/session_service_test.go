package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"princegaming/models"
	"princegaming/repository"
)

func TestSessionService_SaveWritesBothKeys(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	s := NewSessionService(store)

	require.NoError(t, s.Save(ctx, "tok", models.User{Email: "admin@princegaming.co", Name: "Admin"}))

	token, err := store.Get(ctx, KeyAuthToken)
	require.NoError(t, err)
	assert.Equal(t, "tok", token)
	raw, err := store.Get(ctx, KeyUserData)
	require.NoError(t, err)
	assert.JSONEq(t, `{"email":"admin@princegaming.co","name":"Admin"}`, raw)
	assert.True(t, s.IsAuthenticated())
}

// failingStore refuses writes to one key
type failingStore struct {
	*repository.MemoryStore
	failKey string
}

func (f *failingStore) Set(ctx context.Context, key, value string) error {
	if key == f.failKey {
		return errors.New("disk full")
	}
	return f.MemoryStore.Set(ctx, key, value)
}

func TestSessionService_SaveRollsBackTokenWhenUserFails(t *testing.T) {
	ctx := context.Background()
	store := &failingStore{MemoryStore: repository.NewMemoryStore(), failKey: KeyUserData}
	s := NewSessionService(store)

	err := s.Save(ctx, "tok", models.User{Email: "a@b.co"})
	require.Error(t, err)

	_, err = store.Get(ctx, KeyAuthToken)
	assert.True(t, errors.Is(err, repository.ErrKeyNotFound))
	assert.False(t, s.IsAuthenticated())
}

func TestSessionService_ClearRemovesBothKeys(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	s := NewSessionService(store)
	require.NoError(t, s.Save(ctx, "tok", models.User{Email: "a@b.co"}))

	require.NoError(t, s.Clear(ctx))

	_, err := store.Get(ctx, KeyAuthToken)
	assert.True(t, errors.Is(err, repository.ErrKeyNotFound))
	_, err = store.Get(ctx, KeyUserData)
	assert.True(t, errors.Is(err, repository.ErrKeyNotFound))
	assert.False(t, s.IsAuthenticated())
	_, ok := s.User()
	assert.False(t, ok)
}

func TestSessionService_InitRestoresSavedSession(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	require.NoError(t, store.Set(ctx, KeyAuthToken, "persisted"))
	require.NoError(t, store.Set(ctx, KeyUserData, `{"email":"a@b.co","role":"admin"}`))

	s := NewSessionService(store)
	assert.False(t, s.IsAuthenticated())
	require.NoError(t, s.Init(ctx))

	token, ok := s.Token()
	require.True(t, ok)
	assert.Equal(t, "persisted", token)
	user, ok := s.User()
	require.True(t, ok)
	assert.Equal(t, "admin", user.Role)
}

func TestSessionService_InitIgnoresBrokenUser(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	require.NoError(t, store.Set(ctx, KeyAuthToken, "tok"))
	require.NoError(t, store.Set(ctx, KeyUserData, `{not json`))

	s := NewSessionService(store)
	require.NoError(t, s.Init(ctx))
	assert.True(t, s.IsAuthenticated())
	_, ok := s.User()
	assert.False(t, ok)
}

func TestSessionService_InitEmptyStore(t *testing.T) {
	s := NewSessionService(repository.NewMemoryStore())
	require.NoError(t, s.Init(context.Background()))
	assert.False(t, s.IsAuthenticated())
}
