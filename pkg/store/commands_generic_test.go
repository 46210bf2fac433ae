package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeys(t *testing.T) {
	s := New()
	s.Set("user:1", "a")
	s.Set("user:2", "b")
	s.Set("other", "c")

	keys, err := s.Keys("user:*")
	require.NoError(t, err)
	assert.Equal(t, []string{"user:1", "user:2"}, keys)

	keys, err = s.Keys("*")
	require.NoError(t, err)
	assert.Equal(t, []string{"other", "user:1", "user:2"}, keys)

	keys, err = s.Keys("user:1")
	require.NoError(t, err)
	assert.Equal(t, []string{"user:1"}, keys)

	keys, err = s.Keys("nomatch:*")
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestRandomKey(t *testing.T) {
	s := New()
	_, ok := s.RandomKey()
	assert.False(t, ok)

	s.Set("only", "v")
	key, ok := s.RandomKey()
	assert.True(t, ok)
	assert.Equal(t, "only", key)
}

func TestRenameRoundTrip(t *testing.T) {
	s := New()
	s.Set("a", "v")

	require.NoError(t, s.Rename("a", "b"))
	require.NoError(t, s.Rename("b", "a"))

	v, ok, err := s.Get("a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
	assert.False(t, s.Has("b"))
}

func TestRenameErrors(t *testing.T) {
	s := New()
	s.Set("a", "v")

	assert.ErrorIs(t, s.Rename("a", "a"), ErrSameKey)
	assert.ErrorIs(t, s.Rename("missing", "b"), ErrNoSuchKey)
}

func TestRenameOverwritesDestination(t *testing.T) {
	s := New()
	s.Set("src", "sv")
	s.Set("dst", "dv")

	require.NoError(t, s.Rename("src", "dst"))
	v, _, err := s.Get("dst")
	require.NoError(t, err)
	assert.Equal(t, "sv", v)
	assert.False(t, s.Has("src"))
}

func TestRenamenx(t *testing.T) {
	s := New()
	s.Set("src", "sv")
	s.Set("dst", "dv")

	ok, err := s.Renamenx("src", "dst")
	require.NoError(t, err)
	assert.False(t, ok, "existing destination blocks the rename")
	assert.True(t, s.Has("src"))

	ok, err = s.Renamenx("src", "fresh")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, s.Has("src"))

	_, err = s.Renamenx("missing", "x")
	assert.ErrorIs(t, err, ErrNoSuchKey)
	_, err = s.Renamenx("fresh", "fresh")
	assert.ErrorIs(t, err, ErrSameKey)
}

func TestRenameEmitsRemoveAndAdd(t *testing.T) {
	s := New()
	s.Set("a", "v")
	events, _ := recordEvents(t, s, "*")

	require.NoError(t, s.Rename("a", "b"))
	require.Len(t, *events, 2)
	assert.Equal(t, "removed", (*events)[0].kind)
	assert.Equal(t, "a", (*events)[0].key)
	assert.Equal(t, "added", (*events)[1].kind)
	assert.Equal(t, "b", (*events)[1].key)
}

func TestType(t *testing.T) {
	s := New()
	s.Set("s", "v")
	_, err := s.Rpush("l", "x")
	require.NoError(t, err)
	require.NoError(t, s.Hmset("h", map[string]string{"f": "1"}))

	assert.Equal(t, "string", s.Type("s"))
	assert.Equal(t, "list", s.Type("l"))
	assert.Equal(t, "hash", s.Type("h"))
	assert.Equal(t, "none", s.Type("missing"))
}

func TestDel(t *testing.T) {
	s := New()
	s.Set("a", "1")
	s.Set("b", "2")

	assert.Equal(t, 2, s.Del("a", "b", "missing"))
	assert.False(t, s.Has("a"))
	assert.Equal(t, 0, s.Del("a"))
}
