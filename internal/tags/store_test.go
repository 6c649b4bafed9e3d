package tags

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"company-search/internal/common/logger"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewStore(client, logger.NewTestLogger(t)), mr
}

func TestStore_ListEmpty(t *testing.T) {
	store, _ := newTestStore(t)

	list, err := store.List(context.Background(), "user-1")
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestStore_CreateAndList(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, "user-1", "german fintech", map[string]interface{}{
		"industry":      []interface{}{"banking"},
		"country_scope": "de",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "german fintech", created.Name)

	second, err := store.Create(ctx, "user-1", "big tech", nil)
	require.NoError(t, err)
	assert.NotEqual(t, created.ID, second.ID)
	assert.NotNil(t, second.FilterSnapshot)

	list, err := store.List(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, created.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)
}

func TestStore_UsersAreIsolated(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	_, err := store.Create(ctx, "user-1", "mine", nil)
	require.NoError(t, err)

	list, err := store.List(ctx, "user-2")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestStore_Delete(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, "user-1", "to delete", nil)
	require.NoError(t, err)
	keep, err := store.Create(ctx, "user-1", "to keep", nil)
	require.NoError(t, err)

	deleted, err := store.Delete(ctx, "user-1", created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	list, err := store.List(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, keep.ID, list[0].ID)
}

func TestStore_DeleteMissing(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	deleted, err := store.Delete(ctx, "user-1", "no-such-id")
	require.NoError(t, err)
	assert.False(t, deleted)

	_, err = store.Create(ctx, "user-1", "a tag", nil)
	require.NoError(t, err)
	deleted, err = store.Delete(ctx, "user-1", "still-no-such-id")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestStore_CorruptValueResets(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, mr.Set("tags:user-1", "{definitely not json"))

	list, err := store.List(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, list)

	created, err := store.Create(ctx, "user-1", "fresh start", nil)
	require.NoError(t, err)

	list, err = store.List(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)
}

func TestStore_RedisDownSurfacesError(t *testing.T) {
	store, mr := newTestStore(t)
	mr.Close()

	_, err := store.List(context.Background(), "user-1")
	assert.Error(t, err)
}
