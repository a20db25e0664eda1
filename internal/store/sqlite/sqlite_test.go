package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yukiacerium/socialmem/internal/store"
)

func TestRoundTrip(t *testing.T) {
	s, err := OpenMemory()
	require.NoError(t, err)
	defer s.Close()
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "alice", []byte(`{"v":1}`)))

	got, err := s.Load(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"v":1}`), got)

	require.NoError(t, s.Save(ctx, "alice", []byte(`{"v":2}`)))
	got, err = s.Load(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"v":2}`), got, "save upserts on key conflict")
}

func TestLoadMissing(t *testing.T) {
	s, err := OpenMemory()
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Load(context.Background(), "nobody")
	assert.True(t, store.IsNotFound(err))
}

func TestOpenCreatesFileAndDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "test.db")

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	require.NoError(t, s.Save(ctx, "alice", []byte("data")))

	got, err := s.Load(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), got)
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, "alice", []byte("durable")))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Load(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []byte("durable"), got)
}
