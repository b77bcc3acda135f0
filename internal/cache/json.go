// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/pdiddy/citeclass/internal/logging"
	"github.com/pdiddy/citeclass/pkg/types"
)

// JSONStore keeps the whole cache in memory and rewrites a single JSON
// object file on every change:
//
//	{
//	  "doi:10.1145/1234567": {"source": "openalex", "type": "article", ...},
//	  "arxiv:2301.07041": null
//	}
type JSONStore struct {
	mu      sync.Mutex
	path    string
	entries map[string]*types.Metadata
	logger  *slog.Logger
}

// OpenJSON loads the cache file at path. A missing file is an empty cache.
// An unreadable or corrupt file is also treated as empty and logged; the
// next Put overwrites it.
func OpenJSON(path string, logger *slog.Logger) *JSONStore {
	if logger == nil {
		logger = logging.Discard()
	}
	s := &JSONStore{
		path:    path,
		entries: make(map[string]*types.Metadata),
		logger:  logger,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("cache file unreadable, starting empty", "path", path, "err", err)
		}
		return s
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return s
	}
	if err := json.Unmarshal(data, &s.entries); err != nil {
		logger.Warn("cache file corrupt, starting empty", "path", path, "err", err)
		s.entries = make(map[string]*types.Metadata)
	}
	return s
}

// Get implements Store.
func (s *JSONStore) Get(_ context.Context, key string) (*types.Metadata, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	meta, ok := s.entries[key]
	if !ok {
		return nil, false, nil
	}
	return copyMeta(meta), true, nil
}

// Put implements Store. The in-memory entry is kept even when the file
// write fails.
func (s *JSONStore) Put(_ context.Context, key string, meta *types.Metadata) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = copyMeta(meta)
	return s.persist()
}

// Purge implements Store.
func (s *JSONStore) Purge(_ context.Context, negativesOnly bool) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for k, v := range s.entries {
		if negativesOnly && v != nil {
			continue
		}
		delete(s.entries, k)
		n++
	}
	if n == 0 {
		return 0, nil
	}
	return n, s.persist()
}

// Stats implements Store.
func (s *JSONStore) Stats(_ context.Context) (Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Stats{Entries: len(s.entries)}
	for _, v := range s.entries {
		if v == nil {
			st.Negatives++
		}
	}
	return st, nil
}

// Close implements Store. Every change is already on disk.
func (s *JSONStore) Close() error {
	return nil
}

// persist writes the cache to a temp file and renames it over the target.
// Callers hold s.mu.
func (s *JSONStore) persist() error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s.entries); err != nil {
		return fmt.Errorf("encoding cache: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating cache directory %s: %w", dir, err)
	}

	tmpFile, err := os.CreateTemp(dir, ".cache-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, writeErr := tmpFile.Write(buf.Bytes())
	closeErr := tmpFile.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing cache: %w", writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

func copyMeta(m *types.Metadata) *types.Metadata {
	if m == nil {
		return nil
	}
	c := *m
	return &c
}
