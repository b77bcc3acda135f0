// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets reads the contact address citeclass sends to OpenAlex and
// CrossRef as the mailto parameter, which places requests in their polite
// pools. Values live in a local directory (.secrets/ by default) with one
// file per key: the file name is the key and the trimmed contents are the
// value. Recognized keys are openalex-email and crossref-mailto.
package secrets

import (
	"fmt"
	"log/slog"
	"net/mail"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/citeclass/internal/logging"
)

// Contact address keys, in lookup order.
const (
	KeyOpenAlexEmail  = "openalex-email"
	KeyCrossRefMailto = "crossref-mailto"
)

// Load returns the non-empty key files in dir. Dotfiles and subdirectories
// are skipped. A missing directory yields an empty map; a file that cannot
// be read is logged and skipped.
func Load(dir string, logger *slog.Logger) (map[string]string, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	values := make(map[string]string)
	for _, entry := range entries {
		key := entry.Name()
		if entry.IsDir() || strings.HasPrefix(key, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, key))
		if err != nil {
			logger.Warn("skipping unreadable secret", "key", key, "err", err)
			continue
		}
		if v := strings.TrimSpace(string(data)); v != "" {
			values[key] = v
		}
	}
	return values, nil
}

// Mailto returns the first contact key holding a valid e-mail address, or
// "" when none does.
func Mailto(values map[string]string) string {
	for _, k := range []string{KeyOpenAlexEmail, KeyCrossRefMailto} {
		v := values[k]
		if v == "" {
			continue
		}
		if addr, err := mail.ParseAddress(v); err == nil {
			return addr.Address
		}
	}
	return ""
}
