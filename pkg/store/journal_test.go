package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJournalCapturesFirstOriginal(t *testing.T) {
	s := New()
	s.Set("k", "original")

	require.NoError(t, s.SaveOriginals())
	s.Set("k", "second")
	s.Set("k", "third")

	originals, err := s.RetrieveOriginals()
	require.NoError(t, err)
	require.Contains(t, originals, "k")
	assert.True(t, originals["k"].Existed)
	assert.Equal(t, StringValue("original"), originals["k"].Value)
}

func TestJournalAbsentKey(t *testing.T) {
	s := New()
	require.NoError(t, s.SaveOriginals())

	s.Set("fresh", "v")

	originals, err := s.RetrieveOriginals()
	require.NoError(t, err)
	require.Contains(t, originals, "fresh")
	assert.False(t, originals["fresh"].Existed)
	assert.Nil(t, originals["fresh"].Value)
}

func TestJournalRecordsRemovals(t *testing.T) {
	s := New()
	s.Set("k", "v")

	require.NoError(t, s.SaveOriginals())
	s.Remove("k")

	originals, err := s.RetrieveOriginals()
	require.NoError(t, err)
	require.Contains(t, originals, "k")
	assert.True(t, originals["k"].Existed)
	assert.Equal(t, StringValue("v"), originals["k"].Value)
}

func TestJournalIgnoresUntouchedKeys(t *testing.T) {
	s := New()
	s.Set("touched", "a")
	s.Set("untouched", "b")

	require.NoError(t, s.SaveOriginals())
	s.Set("touched", "c")

	originals, err := s.RetrieveOriginals()
	require.NoError(t, err)
	assert.Len(t, originals, 1)
	assert.NotContains(t, originals, "untouched")
}

func TestJournalSnapshotIsIsolated(t *testing.T) {
	s := New()
	_, err := s.Rpush("k", "a")
	require.NoError(t, err)

	require.NoError(t, s.SaveOriginals())
	_, err = s.Rpush("k", "b")
	require.NoError(t, err)

	originals, err := s.RetrieveOriginals()
	require.NoError(t, err)

	// The journaled list is a snapshot, not an alias of the live value
	captured := originals["k"].Value.(ListValue)
	require.Equal(t, ListValue{"a"}, captured)
	captured[0] = "mutated"
	cur, err := s.Lrange("k", 0, -1)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, cur)
}

func TestJournalDoubleOpen(t *testing.T) {
	s := New()
	require.NoError(t, s.SaveOriginals())
	assert.ErrorIs(t, s.SaveOriginals(), ErrJournalAlreadyOpen)
}

func TestJournalRetrieveWithoutOpen(t *testing.T) {
	s := New()
	_, err := s.RetrieveOriginals()
	assert.ErrorIs(t, err, ErrNoJournalOpen)
}

func TestJournalReopenAfterRetrieve(t *testing.T) {
	s := New()
	require.NoError(t, s.SaveOriginals())
	s.Set("a", "1")
	_, err := s.RetrieveOriginals()
	require.NoError(t, err)

	require.NoError(t, s.SaveOriginals())
	s.Set("b", "2")
	originals, err := s.RetrieveOriginals()
	require.NoError(t, err)
	assert.Len(t, originals, 1)
	assert.Contains(t, originals, "b")
}

func TestJournalDuringPause(t *testing.T) {
	s := New()
	s.Set("k", "before")

	require.NoError(t, s.SaveOriginals())
	s.PauseObservers()
	s.Set("k", "during1")
	s.Set("k", "during2")
	s.ResumeObservers()

	originals, err := s.RetrieveOriginals()
	require.NoError(t, err)
	assert.Equal(t, StringValue("before"), originals["k"].Value)
}
