// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/citeclass/pkg/types"
)

var journalMeta = &types.Metadata{
	Source:    "openalex",
	Type:      "article",
	VenueType: "journal",
	Publisher: "Elsevier",
}

func TestJSONStore_MissingFileIsEmpty(t *testing.T) {
	ctx := context.Background()
	s := OpenJSON(filepath.Join(t.TempDir(), "cache.json"), nil)

	_, found, err := s.Get(ctx, "doi:10.1/x")
	require.NoError(t, err)
	assert.False(t, found)

	st, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, Stats{}, st)
}

func TestJSONStore_CorruptFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s := OpenJSON(path, nil)
	st, err := s.Stats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, st.Entries)

	// The next write replaces the corrupt file.
	require.NoError(t, s.Put(context.Background(), "doi:10.1/x", journalMeta))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, json.Valid(data))
}

func TestJSONStore_PutPersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "cache.json")

	s := OpenJSON(path, nil)
	require.NoError(t, s.Put(ctx, "doi:10.1016/j.x.2020.1", journalMeta))
	require.NoError(t, s.Put(ctx, "arxiv:2301.07041", nil))

	reopened := OpenJSON(path, nil)

	got, found, err := reopened.Get(ctx, "doi:10.1016/j.x.2020.1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, journalMeta, got)

	got, found, err = reopened.Get(ctx, "arxiv:2301.07041")
	require.NoError(t, err)
	assert.True(t, found, "negative entry is a hit")
	assert.Nil(t, got)
}

func TestJSONStore_FileFormat(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cache.json")

	s := OpenJSON(path, nil)
	require.NoError(t, s.Put(ctx, "arxiv:2301.07041", nil))
	require.NoError(t, s.Put(ctx, "doi:10.1/x", &types.Metadata{Source: "crossref", Type: "book-chapter"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Nil(t, raw["arxiv:2301.07041"])
	entry, ok := raw["doi:10.1/x"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "crossref", entry["source"])
	assert.Equal(t, "book-chapter", entry["type"])
	assert.Contains(t, string(data), "\n  \"", "indented two spaces")
}

func TestJSONStore_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := OpenJSON(filepath.Join(t.TempDir(), "cache.json"), nil)
	require.NoError(t, s.Put(ctx, "doi:10.1/x", journalMeta))

	got, _, err := s.Get(ctx, "doi:10.1/x")
	require.NoError(t, err)
	got.Type = "mutated"

	again, _, err := s.Get(ctx, "doi:10.1/x")
	require.NoError(t, err)
	assert.Equal(t, "article", again.Type)
}

func TestJSONStore_Purge(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cache.json")
	s := OpenJSON(path, nil)
	require.NoError(t, s.Put(ctx, "doi:10.1/a", journalMeta))
	require.NoError(t, s.Put(ctx, "doi:10.1/b", nil))
	require.NoError(t, s.Put(ctx, "arxiv:1.2", nil))

	st, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, Stats{Entries: 3, Negatives: 2}, st)
	assert.Equal(t, 1, st.Positives())

	n, err := s.Purge(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	reopened := OpenJSON(path, nil)
	st, err = reopened.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, Stats{Entries: 1}, st)

	n, err = reopened.Purge(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	_, found, err := reopened.Get(ctx, "doi:10.1/a")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestOpen_Backends(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(types.CacheConfig{Path: filepath.Join(dir, "c.json")}, nil)
	require.NoError(t, err)
	assert.IsType(t, &JSONStore{}, s)
	require.NoError(t, s.Close())

	s, err = Open(types.CacheConfig{Backend: types.CacheSQLite, Path: filepath.Join(dir, "c.db")}, nil)
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, s)
	require.NoError(t, s.Close())

	_, err = Open(types.CacheConfig{Backend: "redis"}, nil)
	assert.ErrorContains(t, err, "unsupported cache backend")
}

func TestOpen_SQLiteDefaultPath(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	s, err := Open(types.CacheConfig{Backend: types.CacheSQLite}, nil)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = os.Stat(filepath.Join(dir, "metadata_cache.db"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "metadata_cache.json"))
	assert.True(t, os.IsNotExist(err), "sqlite must not open the json cache file")
}

func TestResolvePath(t *testing.T) {
	assert.Equal(t, "metadata_cache.json", ResolvePath(types.CacheConfig{}))
	assert.Equal(t, "metadata_cache.json", ResolvePath(types.CacheConfig{Backend: types.CacheJSON}))
	assert.Equal(t, "metadata_cache.db", ResolvePath(types.CacheConfig{Backend: types.CacheSQLite}))
	assert.Equal(t, "x.sqlite", ResolvePath(types.CacheConfig{Backend: types.CacheSQLite, Path: "x.sqlite"}))
}
