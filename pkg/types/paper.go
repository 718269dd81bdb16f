// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the get-papers-list pipeline:
// the search criteria a run starts from, the paper records it produces, and
// the configuration for each stage.
package types

import (
	"fmt"
	"strings"
)

// Fallback values used when a PubMed article lacks the corresponding field.
const (
	UnknownID      = "Unknown"
	NoTitle        = "No title"
	UnknownDate    = "Unknown"
	UnknownAuthor  = "Unknown"
	NoContactEmail = "Not available"
	ListSeparator  = "; "
	DefaultQuota   = 20
	minimumQuota   = 1
)

// SearchCriteria is the immutable input of one run.
type SearchCriteria struct {
	// Query is the free-text PubMed query (e.g. "psychedelic therapy").
	Query string `json:"query" yaml:"query"`

	// Quota is the maximum number of qualifying records to return. Must be >= 1.
	Quota int `json:"quota" yaml:"quota"`

	// APIKey is the NCBI API key. Empty means keyless access at the lower
	// rate limit.
	APIKey string `json:"-" yaml:"-"`
}

// Validate checks the criteria before a run starts.
func (c SearchCriteria) Validate() error {
	if strings.TrimSpace(c.Query) == "" {
		return fmt.Errorf("query is empty: provide a PubMed search query")
	}
	if c.Quota < minimumQuota {
		return fmt.Errorf("quota must be at least %d, got %d", minimumQuota, c.Quota)
	}
	if c.APIKey != "" && !isUsableKey(c.APIKey) {
		return fmt.Errorf("API key %q is not usable: expected letters and digits only", maskKey(c.APIKey))
	}
	return nil
}

// ClampQuota returns q, or 1 when q is below 1.
func ClampQuota(q int) int {
	if q < minimumQuota {
		return minimumQuota
	}
	return q
}

func isUsableKey(key string) bool {
	for _, r := range key {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}

func maskKey(key string) string {
	if len(key) <= 4 {
		return "****"
	}
	return key[:4] + strings.Repeat("*", len(key)-4)
}

// PaperRecord is one paper with at least one company-affiliated author.
// Records are created by the extractor and never mutated afterwards.
type PaperRecord struct {
	// PMID is the PubMed identifier.
	PMID string `json:"pmid" yaml:"pmid"`

	// Title is the article title, or NoTitle.
	Title string `json:"title" yaml:"title"`

	// PublicationDate joins the available year, month and day with "-",
	// or is UnknownDate.
	PublicationDate string `json:"publication_date" yaml:"publication_date"`

	// CompanyAuthors holds the distinct names of authors with at least one
	// company affiliation, in order of first appearance.
	CompanyAuthors []string `json:"company_authors" yaml:"company_authors"`

	// CompanyAffiliations holds the distinct affiliation strings that were
	// classified as company, in order of first appearance.
	CompanyAffiliations []string `json:"company_affiliations" yaml:"company_affiliations"`

	// ContactEmail is the first email address found in the abstract, or
	// NoContactEmail.
	ContactEmail string `json:"contact_email" yaml:"contact_email"`
}

// AuthorsField returns the company authors joined for tabular output.
func (p PaperRecord) AuthorsField() string {
	return strings.Join(p.CompanyAuthors, ListSeparator)
}

// AffiliationsField returns the company affiliations joined for tabular output.
func (p PaperRecord) AffiliationsField() string {
	return strings.Join(p.CompanyAffiliations, ListSeparator)
}

// ResultSet is the ordered output of a run, in arrival order.
type ResultSet []PaperRecord
