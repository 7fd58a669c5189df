package cart

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRedis backs the cart store with in-memory hashes.
type fakeRedis struct {
	hashes  map[string]map[string]string
	expired map[string]time.Duration
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{
		hashes:  make(map[string]map[string]string),
		expired: make(map[string]time.Duration),
	}
}

func (f *fakeRedis) HSet(ctx context.Context, key string, values ...any) error {
	hash, ok := f.hashes[key]
	if !ok {
		hash = make(map[string]string)
		f.hashes[key] = hash
	}
	for i := 0; i+1 < len(values); i += 2 {
		hash[values[i].(string)] = values[i+1].(string)
	}
	return nil
}

func (f *fakeRedis) HGet(ctx context.Context, key, field string) (string, error) {
	if value, ok := f.hashes[key][field]; ok {
		return value, nil
	}
	return "", errRedisNil{}
}

func (f *fakeRedis) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	out := make(map[string]string, len(f.hashes[key]))
	for field, value := range f.hashes[key] {
		out[field] = value
	}
	return out, nil
}

func (f *fakeRedis) HDel(ctx context.Context, key string, fields ...string) error {
	for _, field := range fields {
		delete(f.hashes[key], field)
	}
	return nil
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.hashes, key)
	}
	return nil
}

func (f *fakeRedis) Expire(ctx context.Context, key string, ttl time.Duration) error {
	f.expired[key] = ttl
	return nil
}

func (f *fakeRedis) CartKey(userID string) string { return "cart:" + userID }

type errRedisNil struct{}

func (errRedisNil) Error() string { return "redis: nil" }

func newTestStore(t *testing.T, redis *fakeRedis) *Store {
	t.Helper()
	store, err := NewStore(redis, time.Hour)
	require.NoError(t, err)
	return store
}

func TestStoreLinesSortedByAddedAt(t *testing.T) {
	redis := newFakeRedis()
	store := newTestStore(t, redis)
	ctx := context.Background()
	userID := uuid.New()

	first := uuid.New()
	second := uuid.New()
	third := uuid.New()

	base := time.Now()
	clock := base
	store.now = func() time.Time { return clock }

	require.NoError(t, store.SetLine(ctx, userID, second, 1))
	clock = base.Add(time.Second)
	require.NoError(t, store.SetLine(ctx, userID, third, 2))
	clock = base.Add(-time.Second)
	require.NoError(t, store.SetLine(ctx, userID, first, 3))

	lines, err := store.Lines(ctx, userID)
	require.NoError(t, err)
	require.Len(t, lines, 3)
	assert.Equal(t, first, lines[0].ProductID)
	assert.Equal(t, second, lines[1].ProductID)
	assert.Equal(t, third, lines[2].ProductID)
	assert.Equal(t, 3, lines[0].Quantity)
}

func TestStoreSetLinePreservesAddedAt(t *testing.T) {
	redis := newFakeRedis()
	store := newTestStore(t, redis)
	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	added := time.Now().Add(-time.Hour)
	store.now = func() time.Time { return added }
	require.NoError(t, store.SetLine(ctx, userID, productID, 1))

	store.now = time.Now
	require.NoError(t, store.SetLine(ctx, userID, productID, 5))

	lines, err := store.Lines(ctx, userID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
	assert.True(t, lines[0].AddedAt.Equal(added), "added-at must survive quantity updates")
}

func TestStoreSetLineRefreshesTTL(t *testing.T) {
	redis := newFakeRedis()
	store := newTestStore(t, redis)
	userID := uuid.New()

	require.NoError(t, store.SetLine(context.Background(), userID, uuid.New(), 1))
	assert.Equal(t, time.Hour, redis.expired[redis.CartKey(userID.String())])
}

func TestStoreRemoveAndClear(t *testing.T) {
	redis := newFakeRedis()
	store := newTestStore(t, redis)
	ctx := context.Background()
	userID := uuid.New()
	keep := uuid.New()
	drop := uuid.New()

	require.NoError(t, store.SetLine(ctx, userID, keep, 1))
	require.NoError(t, store.SetLine(ctx, userID, drop, 1))

	require.NoError(t, store.RemoveLine(ctx, userID, drop))
	lines, err := store.Lines(ctx, userID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, keep, lines[0].ProductID)

	require.NoError(t, store.Clear(ctx, userID))
	lines, err = store.Lines(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestStoreLinesSkipsMalformedEntries(t *testing.T) {
	redis := newFakeRedis()
	store := newTestStore(t, redis)
	ctx := context.Background()
	userID := uuid.New()
	key := redis.CartKey(userID.String())

	good := uuid.New()
	require.NoError(t, store.SetLine(ctx, userID, good, 2))
	require.NoError(t, redis.HSet(ctx, key, "not-a-uuid", "1|0"))
	require.NoError(t, redis.HSet(ctx, key, uuid.New().String(), "zero"))
	require.NoError(t, redis.HSet(ctx, key, uuid.New().String(), "0|0"))

	lines, err := store.Lines(ctx, userID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, good, lines[0].ProductID)
}
