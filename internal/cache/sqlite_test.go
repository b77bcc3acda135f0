// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cache

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/citeclass/pkg/types"
)

func openTestSQLite(t *testing.T, ttl time.Duration) (*SQLiteStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cache.db")
	s, err := OpenSQLite(path, ttl)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, path
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s, path := openTestSQLite(t, 0)

	require.NoError(t, s.Put(ctx, "doi:10.1/x", journalMeta))
	require.NoError(t, s.Put(ctx, "arxiv:2301.07041", nil))
	require.NoError(t, s.Close())

	reopened, err := OpenSQLite(path, 0)
	require.NoError(t, err)
	defer reopened.Close()

	got, found, err := reopened.Get(ctx, "doi:10.1/x")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, journalMeta, got)

	got, found, err = reopened.Get(ctx, "arxiv:2301.07041")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Nil(t, got)

	_, found, err = reopened.Get(ctx, "doi:10.1/missing")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSQLiteStore_PutOverwrites(t *testing.T) {
	ctx := context.Background()
	s, _ := openTestSQLite(t, 0)

	require.NoError(t, s.Put(ctx, "doi:10.1/x", nil))
	require.NoError(t, s.Put(ctx, "doi:10.1/x", &types.Metadata{Source: "crossref", Type: "journal-article"}))

	got, found, err := s.Get(ctx, "doi:10.1/x")
	require.NoError(t, err)
	assert.True(t, found)
	require.NotNil(t, got)
	assert.Equal(t, "journal-article", got.Type)

	st, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, Stats{Entries: 1}, st)
}

func TestSQLiteStore_NegativeTTL(t *testing.T) {
	ctx := context.Background()
	s, _ := openTestSQLite(t, time.Hour)

	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return start }
	require.NoError(t, s.Put(ctx, "doi:10.1/neg", nil))
	require.NoError(t, s.Put(ctx, "doi:10.1/pos", journalMeta))

	s.now = func() time.Time { return start.Add(30 * time.Minute) }
	_, found, err := s.Get(ctx, "doi:10.1/neg")
	require.NoError(t, err)
	assert.True(t, found, "negative still fresh")

	s.now = func() time.Time { return start.Add(2 * time.Hour) }
	_, found, err = s.Get(ctx, "doi:10.1/neg")
	require.NoError(t, err)
	assert.False(t, found, "expired negative reads as a miss")

	got, found, err := s.Get(ctx, "doi:10.1/pos")
	require.NoError(t, err)
	assert.True(t, found, "positive entries never expire")
	assert.Equal(t, journalMeta, got)
}

func TestSQLiteStore_Purge(t *testing.T) {
	ctx := context.Background()
	s, _ := openTestSQLite(t, 0)

	require.NoError(t, s.Put(ctx, "doi:10.1/a", journalMeta))
	require.NoError(t, s.Put(ctx, "doi:10.1/b", nil))
	require.NoError(t, s.Put(ctx, "arxiv:1.2", nil))

	st, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, Stats{Entries: 3, Negatives: 2}, st)

	n, err := s.Purge(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = s.Purge(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	st, err = s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, Stats{}, st)
}
