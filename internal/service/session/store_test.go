package session

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/kapu/figures-review-go/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "figures:session:alice", Key(" alice "))
	assert.Equal(t, "figures:session:default", Key(""))
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, ok, err := store.Load(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, ok)

	snap := Snapshot{ActiveTab: "figures", FiguresFilter: "pending", FiguresPage: 3, ReviewCode: "ada"}
	require.NoError(t, store.Save(ctx, "alice", snap))

	got, ok, err := store.Load(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, snap, got)

	require.NoError(t, store.Clear(ctx, "alice"))
	_, ok, _ = store.Load(ctx, "alice")
	assert.False(t, ok)
	assert.NoError(t, store.Close())
}

func TestDecodeSnapshot(t *testing.T) {
	snap, err := decodeSnapshot([]byte(`{"active_tab":"videos","monthly_page":2,"saved_at":"2024-03-05T10:00:00Z"}`))
	require.NoError(t, err)
	assert.Equal(t, "videos", snap.ActiveTab)
	assert.Equal(t, 2, snap.MonthlyPage)
	assert.Equal(t, time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC), snap.SavedAt)

	_, err = decodeSnapshot([]byte(`not json`))
	assert.Error(t, err)
}

func TestNewRedisStoreUnreachable(t *testing.T) {
	_, err := NewRedisStore(RedisConfig{Host: "127.0.0.1", Port: 1}, zap.NewNop())
	require.Error(t, err)

	var cacheErr *errors.CacheError
	require.True(t, stderrors.As(err, &cacheErr))
	assert.Equal(t, "ping", cacheErr.Operation)
}
