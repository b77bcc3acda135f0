// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"regexp"
	"strings"

	"github.com/pdiddy/citeclass/pkg/types"
)

// Rule raises Label to Score when Match fires. Rules are independent: the
// order of Rules only fixes the order in which labels first appear.
type Rule struct {
	Name  string
	Label types.Label
	Score int
	Match func(in *Input) bool
}

// Filter removes Label after all rules ran. Filters correct for known
// false positives, such as book-publisher domains that also host journals.
type Filter struct {
	Name  string
	Label types.Label
	Match func(in *Input) bool
}

var (
	patentDomains = []string{"patents.google.com", "lens.org", "uspto.gov"}

	patentJurisdictionPatterns = compileAll(
		`\bUS[\s-]*\d+[\s-]*[AB]\d+\b`,
		`\bEP[\s-]*\d+\b`,
		`\bWO[\s-]*\d+\b`,
		`\bCN[\s-]*\d+\b`,
		`\bKR[\s-]*\d+\b`,
		`\bJP[\s-]*\d+\b`,
	)

	thesisDomains = []string{
		"search.proquest.com", "pqdtopen.proquest.com", "theses.fr", "ethos.bl.uk",
		"dspace", "etd.", "repository.", "hdl.handle.net", "openscholarship",
		"escholarship", ".library.",
	}
	thesisTitlePattern     = regexp.MustCompile(`\b(thesis|dissertation|doctoral|phd|master'?s)\b`)
	thesisFrontMatter      = compileAll(`submitted\s+(to|by)`, `in partial fulfillment of the requirements`, `this (thesis|dissertation)`)
	thesisContainerPattern = regexp.MustCompile(`thesis|dissertation|submitted to|graduate school|department`)
	reviewAbstractPhrases  = compileAll(
		`in this survey`, `in this review`, `this survey`, `this review`,
		`this paper (presents|provides|gives) (a )?(comprehensive )?(survey|review)`,
		`comprehensive survey`, `systematic review`, `literature review`,
		`overview of the state of the art`, `\bwe survey\b`, `\bwe review\b`,
	)
	reviewTitlePrefix    = regexp.MustCompile(`^(a\s+(comprehensive\s+)?(survey|review)|systematic review)`)
	reviewTitleKeyword   = regexp.MustCompile(`\bsurvey\b|\breview\b`)
	reviewTitleExclusion = regexp.MustCompile(`book review|peer review|double blind review`)
	lectureNotesPatterns = compileAll(
		`lecture notes in computer science`, `lecture notes in artificial intelligence`,
		`lecture notes in bioinformatics`, `\blncs\b`, `\blnai\b`, `\blnbi\b`,
		`/chapter/10\.1007/`,
	)

	bookMetadataTypes = []string{"book", "book-chapter", "edited-book", "monograph"}
	bookDOIPrefixes   = []string{"10.1007/978", "10.1016/B", "10.1201/", "10.1093/", "10.4324/"}
	bookPublishers    = []string{"cambridge.org", "elsevier", "taylorandfrancis", "oxfordacademic", "crcpress", "routledge"}
	bookKeywords      = compileAll(`\bhandbook\b`, `\bencyclopedia\b`, `\btextbook\b`, `\bmonograph\b`, `\bspringerbriefs\b`)
	isbnPattern       = regexp.MustCompile(`\b97[89][-\d]{10,}\b`)

	preprintDomains = []string{"researchgate.net", "academia.edu", "arxiv.org"}
)

// Rules is the scored rule table, grouped by label in evaluation order.
var Rules = []Rule{
	// Patent.
	{"patent-registry-id", types.LabelPatent, 5, func(in *Input) bool {
		for _, id := range in.PatentIDs {
			if isPatentField(id) {
				return true
			}
		}
		return false
	}},
	{"patent-office-domain", types.LabelPatent, 5, func(in *Input) bool {
		return containsAny(in.Surface, patentDomains...)
	}},
	// Upper-case patterns against the lower-cased Surface: never fires.
	{"patent-jurisdiction-number", types.LabelPatent, 5, func(in *Input) bool {
		return matchAny(patentJurisdictionPatterns, in.Surface)
	}},

	// Thesis.
	{"thesis-archive-domain", types.LabelThesis, 5, func(in *Input) bool {
		return containsAny(in.URL, thesisDomains...)
	}},
	{"thesis-metadata-type", types.LabelThesis, 5, func(in *Input) bool {
		return containsAny(in.MetaType, "thesis", "dissertation")
	}},
	{"thesis-title-keyword", types.LabelThesis, 4, func(in *Input) bool {
		return thesisTitlePattern.MatchString(in.Title)
	}},
	{"thesis-front-matter", types.LabelThesis, 5, func(in *Input) bool {
		return matchAny(thesisFrontMatter, in.Abstract)
	}},
	{"thesis-university-container", types.LabelThesis, 4, func(in *Input) bool {
		return strings.Contains(in.Container, "university") && thesisContainerPattern.MatchString(in.Container)
	}},

	// Review.
	{"review-abstract-framing", types.LabelReview, 5, func(in *Input) bool {
		return matchAny(reviewAbstractPhrases, in.Abstract)
	}},
	{"review-title-prefix", types.LabelReview, 5, func(in *Input) bool {
		return reviewTitlePrefix.MatchString(in.Title)
	}},
	{"review-title-keyword", types.LabelReview, 4, func(in *Input) bool {
		return reviewTitleKeyword.MatchString(in.Title) && !reviewTitleExclusion.MatchString(in.Title)
	}},

	// Conference.
	{"conference-lecture-notes", types.LabelConference, 4, func(in *Input) bool {
		return matchAny(lectureNotesPatterns, in.Surface)
	}},
	{"conference-venue", types.LabelConference, 4, func(in *Input) bool {
		return in.MetaVenueType == "conference"
	}},
	{"conference-proceedings-title", types.LabelConference, 4, func(in *Input) bool {
		return strings.Contains(in.Title, "proceedings")
	}},

	// Book.
	{"book-metadata-type", types.LabelBook, 5, func(in *Input) bool {
		for _, t := range bookMetadataTypes {
			if in.MetaType == t {
				return true
			}
		}
		return false
	}},
	{"book-doi-prefix", types.LabelBook, 5, func(in *Input) bool {
		return containsAny(in.URL, bookDOIPrefixes...)
	}},
	{"book-isbn", types.LabelBook, 5, func(in *Input) bool {
		return isbnPattern.MatchString(in.Container)
	}},
	{"book-platform-path", types.LabelBook, 5, func(in *Input) bool {
		return strings.Contains(in.URL, "link.springer.com/book/")
	}},
	{"book-publisher-domain", types.LabelBook, 2, func(in *Input) bool {
		return containsAny(in.URL, bookPublishers...) &&
			!(strings.Contains(in.Container, "journal") || journalArticle(in))
	}},
	{"book-keyword", types.LabelBook, 2, func(in *Input) bool {
		return matchAny(bookKeywords, in.Container) || matchAny(bookKeywords, in.Title)
	}},

	// Journal.
	{"journal-venue", types.LabelJournal, 4, journalArticle},
	{"journal-container", types.LabelJournal, 3, journalContainer},

	// Preprint.
	{"preprint-host", types.LabelPreprint, 3, func(in *Input) bool {
		return containsAny(in.URL, preprintDomains...)
	}},
}

// Filters run after Rules, in order.
var Filters = []Filter{
	{"book-in-lecture-notes", types.LabelBook, func(in *Input) bool {
		return containsAny(in.Container, "lncs", "lecture notes in computer science")
	}},
	{"book-in-journal-venue", types.LabelBook, journalArticle},
	{"book-in-journal-container", types.LabelBook, journalContainer},
	{"book-in-event-container", types.LabelBook, func(in *Input) bool {
		return containsAny(in.Container, "symposium", "conference", "workshop", "proceedings")
	}},
}

// journalArticle reports whether enrichment or the prior type tag marks the
// record as a journal article.
func journalArticle(in *Input) bool {
	return in.MetaVenueType == "journal" || strings.Contains(in.PriorType, "journal-article")
}

func journalContainer(in *Input) bool {
	return containsAny(in.Container, "journal", "transactions")
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func matchAny(patterns []*regexp.Regexp, s string) bool {
	for _, p := range patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

func compileAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(e)
	}
	return out
}
