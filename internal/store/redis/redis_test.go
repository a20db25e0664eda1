package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yukiacerium/socialmem/internal/store"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	s := NewWithClient(client, "")
	t.Cleanup(func() { s.Close() })
	return s, mr
}

func TestRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "alice", []byte(`{"v":1}`)))

	got, err := s.Load(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"v":1}`), got)

	require.NoError(t, s.Save(ctx, "alice", []byte(`{"v":2}`)))
	got, err = s.Load(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"v":2}`), got)
}

func TestLoadMissing(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.Load(context.Background(), "nobody")
	assert.True(t, store.IsNotFound(err))
}

func TestKeyPrefix(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "alice", []byte("data")))
	assert.True(t, mr.Exists("socialmem:profile:alice"), "keys carry the default prefix")
}

func TestCustomPrefix(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	s := NewWithClient(client, "custom:")
	defer s.Close()
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "alice", []byte("data")))
	assert.True(t, mr.Exists("custom:alice"))

	got, err := s.Load(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), got)
}

func TestOpenUnreachable(t *testing.T) {
	_, err := Open(context.Background(), Config{Addr: "127.0.0.1:1"})
	require.Error(t, err)

	var unavailable *store.UnavailableError
	assert.ErrorAs(t, err, &unavailable)
}
