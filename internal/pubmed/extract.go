// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pubmed

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pdiddy/get-papers-list/internal/affiliation"
	"github.com/pdiddy/get-papers-list/pkg/types"
)

// emailPattern matches a local@domain.tld shaped address. The domain is not
// validated beyond its shape.
var emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)

// AuthorAffiliation is one author with the raw affiliation strings listed
// under it, in document order.
type AuthorAffiliation struct {
	Name         string
	Affiliations []string
}

// Extractor turns PubmedArticle nodes into paper records.
type Extractor struct {
	classifier *affiliation.Classifier
}

// NewExtractor returns an extractor using c, or the default cascade when c
// is nil.
func NewExtractor(c *affiliation.Classifier) *Extractor {
	if c == nil {
		c = affiliation.Default()
	}
	return &Extractor{classifier: c}
}

// Extract builds a record from a. It returns nil without error when no
// author has a company affiliation, and an ErrExtraction fault when the
// article lacks its citation structure.
func (e *Extractor) Extract(a Article) (*types.PaperRecord, error) {
	if a.Citation == nil {
		return nil, fmt.Errorf("%w: article has no MedlineCitation", ErrExtraction)
	}
	pmid := strings.TrimSpace(a.Citation.PMID)
	if pmid == "" {
		pmid = types.UnknownID
	}
	detail := a.Citation.Article
	if detail == nil {
		return nil, fmt.Errorf("%w: article %s has no Article element", ErrExtraction, pmid)
	}

	var names, affiliations orderedSet
	for _, author := range authorsOf(detail) {
		company := false
		for _, aff := range author.Affiliations {
			if e.classifier.IsCompany(aff) {
				affiliations.add(aff)
				company = true
			}
		}
		if company {
			names.add(author.Name)
		}
	}
	if names.size() == 0 {
		return nil, nil
	}

	title := detail.Title.Value
	if title == "" {
		title = types.NoTitle
	}

	return &types.PaperRecord{
		PMID:                pmid,
		Title:               title,
		PublicationDate:     publicationDate(detail.PubDate),
		CompanyAuthors:      names.items(),
		CompanyAffiliations: affiliations.items(),
		ContactEmail:        contactEmail(detail.Abstract),
	}, nil
}

// Authors lists the authors of a with their affiliations.
func Authors(a Article) []AuthorAffiliation {
	if a.Citation == nil || a.Citation.Article == nil {
		return nil
	}
	return authorsOf(a.Citation.Article)
}

func authorsOf(detail *citationDetail) []AuthorAffiliation {
	authors := make([]AuthorAffiliation, 0, len(detail.Authors))
	for _, node := range detail.Authors {
		author := AuthorAffiliation{Name: authorName(node)}
		for _, info := range node.Affiliations {
			if aff := info.Affiliation.Value; aff != "" {
				author.Affiliations = append(author.Affiliations, aff)
			}
		}
		authors = append(authors, author)
	}
	return authors
}

// authorName returns "Fore Last", then the last name alone, the forename
// alone, the collective name, or types.UnknownAuthor.
func authorName(n authorNode) string {
	fore := strings.TrimSpace(n.ForeName)
	last := strings.TrimSpace(n.LastName)
	switch {
	case fore != "" && last != "":
		return fore + " " + last
	case last != "":
		return last
	case fore != "":
		return fore
	case strings.TrimSpace(n.CollectiveName) != "":
		return strings.TrimSpace(n.CollectiveName)
	default:
		return types.UnknownAuthor
	}
}

func publicationDate(d *pubDate) string {
	if d == nil {
		return types.UnknownDate
	}
	var parts []string
	for _, p := range []string{d.Year, d.Month, d.Day} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, "-")
	}
	if md := strings.TrimSpace(d.MedlineDate); md != "" {
		return md
	}
	return types.UnknownDate
}

// contactEmail scans abstract fragments in order and returns the first
// address found.
func contactEmail(fragments []text) string {
	for _, f := range fragments {
		if m := emailPattern.FindString(f.Value); m != "" {
			return m
		}
	}
	return types.NoContactEmail
}

// orderedSet keeps distinct strings in insertion order.
type orderedSet struct {
	seen  map[string]struct{}
	order []string
}

func (s *orderedSet) add(v string) {
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	if _, ok := s.seen[v]; ok {
		return
	}
	s.seen[v] = struct{}{}
	s.order = append(s.order, v)
}

func (s *orderedSet) size() int { return len(s.order) }

func (s *orderedSet) items() []string {
	return append([]string(nil), s.order...)
}
