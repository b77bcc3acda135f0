// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package identifier pulls a DOI or arXiv identifier out of a citing
// record's source URL. The identifier is the key for metadata enrichment.
package identifier

import (
	"regexp"
	"strings"
)

// Kind classifies an extracted identifier.
type Kind int

const (
	KindNone Kind = iota
	KindDOI
	KindArxiv
)

func (k Kind) String() string {
	switch k {
	case KindDOI:
		return "doi"
	case KindArxiv:
		return "arxiv"
	default:
		return "none"
	}
}

// doiPattern matches a DOI anywhere in the text: "10.1145/1234567.1234568".
var doiPattern = regexp.MustCompile(`(?i)10\.\d{4,9}/[-._;()/:a-z0-9]+`)

// arxivPattern matches arXiv abstract and PDF links and captures the
// numeric id: "arxiv.org/abs/2301.07041" -> "2301.07041".
var arxivPattern = regexp.MustCompile(`arxiv\.org/(abs|pdf)/([0-9]+\.[0-9]+)`)

// Identifier holds the DOI and arXiv id found in a URL. Either may be empty.
type Identifier struct {
	DOI     string
	ArxivID string
}

// Extract searches the lower-cased URL for a DOI and an arXiv id. A missing
// or malformed URL yields the zero Identifier.
func Extract(rawURL string) Identifier {
	u := strings.ToLower(strings.TrimSpace(rawURL))
	if u == "" {
		return Identifier{}
	}
	var id Identifier
	id.DOI = doiPattern.FindString(u)
	if m := arxivPattern.FindStringSubmatch(u); m != nil {
		id.ArxivID = m[2]
	}
	return id
}

// IsZero reports whether neither a DOI nor an arXiv id was found.
func (id Identifier) IsZero() bool {
	return id.DOI == "" && id.ArxivID == ""
}

// Kind returns the identifier used for lookups: the DOI when present,
// otherwise the arXiv id.
func (id Identifier) Kind() Kind {
	switch {
	case id.DOI != "":
		return KindDOI
	case id.ArxivID != "":
		return KindArxiv
	default:
		return KindNone
	}
}

// Key returns the cache key: "doi:<doi>", else "arxiv:<id>", else "".
func (id Identifier) Key() string {
	switch id.Kind() {
	case KindDOI:
		return "doi:" + id.DOI
	case KindArxiv:
		return "arxiv:" + id.ArxivID
	default:
		return ""
	}
}

// String returns the cache key, or "-" when there is no identifier.
func (id Identifier) String() string {
	if k := id.Key(); k != "" {
		return k
	}
	return "-"
}
