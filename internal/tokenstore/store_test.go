package tokenstore

import (
	"errors"
	"testing"

	"study_assistant/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseStore(t *testing.T, s Store) {
	t.Helper()

	_, err := s.Load()
	assert.True(t, errors.Is(err, util.ErrNoToken))
	assert.False(t, IsAuthenticated(s))

	require.NoError(t, s.Save("  abc.def.ghi \n"))
	token, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)
	assert.True(t, IsAuthenticated(s))

	require.NoError(t, s.Save("second"))
	token, err = s.Load()
	require.NoError(t, err)
	assert.Equal(t, "second", token, "save overwrites the single token key")

	assert.Error(t, s.Save("   "))

	require.NoError(t, s.Clear())
	_, err = s.Load()
	assert.True(t, errors.Is(err, util.ErrNoToken))
	require.NoError(t, s.Clear(), "clearing twice is harmless")
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore(""))
}

func TestMemoryStore_Preloaded(t *testing.T) {
	s := NewMemoryStore("tok")
	assert.True(t, IsAuthenticated(s))
}

func TestBadgerStore_InMemory(t *testing.T) {
	s, err := OpenBadger(BadgerConfig{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	exerciseStore(t, s)
}

func TestBadgerStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := OpenBadger(BadgerConfig{Path: dir})
	require.NoError(t, err)
	require.NoError(t, s.Save("persisted"))
	require.NoError(t, s.Close())

	s, err = OpenBadger(BadgerConfig{Path: dir})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	token, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "persisted", token)
}

func TestOpenBadger_RequiresPath(t *testing.T) {
	_, err := OpenBadger(BadgerConfig{})
	assert.Error(t, err)
}
