// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pubmed

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/get-papers-list/internal/affiliation"
	"github.com/pdiddy/get-papers-list/pkg/types"
)

func parseOne(t *testing.T, articleXML string) Article {
	t.Helper()
	articles, err := ParseArticles(articleSetXML(articleXML))
	require.NoError(t, err)
	require.Len(t, articles, 1)
	return articles[0]
}

func TestExtractCompanyAndAcademicAuthors(t *testing.T) {
	a := parseOne(t, articleXML("101", "Acme trial", "",
		testAuthor{fore: "Ann", last: "Able", affiliations: []string{"Acme Therapeutics Inc"}},
		testAuthor{fore: "Bob", last: "Baker", affiliations: []string{"State University"}},
	))

	rec, err := NewExtractor(nil).Extract(a)
	require.NoError(t, err)
	require.NotNil(t, rec)

	assert.Equal(t, "101", rec.PMID)
	assert.Equal(t, "Acme trial", rec.Title)
	assert.Equal(t, "2024-Mar-07", rec.PublicationDate)
	assert.Equal(t, []string{"Ann Able"}, rec.CompanyAuthors)
	assert.Equal(t, []string{"Acme Therapeutics Inc"}, rec.CompanyAffiliations)
	assert.Equal(t, types.NoContactEmail, rec.ContactEmail)
}

func TestExtractNoCompanyAuthorsYieldsNil(t *testing.T) {
	a := parseOne(t, articleXML("102", "Academic only", "",
		testAuthor{fore: "Alan", last: "Turing", affiliations: []string{"State University"}},
		testAuthor{fore: "Grace", last: "Hopper"},
	))

	rec, err := NewExtractor(nil).Extract(a)
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestExtractDeduplicates(t *testing.T) {
	a := parseOne(t, articleXML("103", "Shared lab", "",
		testAuthor{fore: "Ann", last: "Able", affiliations: []string{"Pfizer Inc., New York", "Acme Biotech, Boston"}},
		testAuthor{fore: "Cy", last: "Cole", affiliations: []string{"Pfizer Inc., New York"}},
		testAuthor{fore: "Ann", last: "Able", affiliations: []string{"Pfizer Inc., New York"}},
		testAuthor{fore: "Di", last: "Dunn", affiliations: []string{"Department of Medicine, State University"}},
	))

	rec, err := NewExtractor(nil).Extract(a)
	require.NoError(t, err)
	require.NotNil(t, rec)

	assert.Equal(t, []string{"Ann Able", "Cy Cole"}, rec.CompanyAuthors)
	assert.Equal(t, []string{"Pfizer Inc., New York", "Acme Biotech, Boston"}, rec.CompanyAffiliations)
	assert.Equal(t, "Ann Able; Cy Cole", rec.AuthorsField())
}

// Every author named in a record must have at least one company affiliation.
func TestExtractCompanyAuthorsAreJustified(t *testing.T) {
	a := parseOne(t, articleXML("104", "Mixed", "",
		testAuthor{fore: "Ann", last: "Able", affiliations: []string{"State University", "Moderna, Cambridge"}},
		testAuthor{fore: "Bob", last: "Baker", affiliations: []string{"City Hospital"}},
		testAuthor{fore: "Cy", last: "Cole"},
	))

	rec, err := NewExtractor(nil).Extract(a)
	require.NoError(t, err)
	require.NotNil(t, rec)

	c := affiliation.Default()
	for _, name := range rec.CompanyAuthors {
		justified := false
		for _, author := range Authors(a) {
			if author.Name != name {
				continue
			}
			for _, aff := range author.Affiliations {
				if c.IsCompany(aff) {
					justified = true
				}
			}
		}
		assert.True(t, justified, "author %q has no company affiliation", name)
	}
	assert.Equal(t, []string{"Ann Able"}, rec.CompanyAuthors)
	assert.Equal(t, []string{"Moderna, Cambridge"}, rec.CompanyAffiliations)
}

func TestExtractContactEmail(t *testing.T) {
	tests := []struct {
		name     string
		abstract string
		want     string
	}{
		{"plain", "Contact: jdoe@acme.com for details", "jdoe@acme.com"},
		{"trailing period", "Write to lab.head@bio-corp.co.uk.", "lab.head@bio-corp.co.uk"},
		{"first wins", "a@x.org then b@y.org", "a@x.org"},
		{"none", "No address here, just @mentions and x@y", types.NoContactEmail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := parseOne(t, articleXML("105", "Email", tt.abstract,
				testAuthor{fore: "Ann", last: "Able", affiliations: []string{"Acme Therapeutics Inc"}}))
			rec, err := NewExtractor(nil).Extract(a)
			require.NoError(t, err)
			require.NotNil(t, rec)
			assert.Equal(t, tt.want, rec.ContactEmail)
		})
	}
}

func TestExtractEmailScansFragmentsInOrder(t *testing.T) {
	xml := `<PubmedArticle><MedlineCitation><PMID>106</PMID><Article>
<ArticleTitle>Structured</ArticleTitle>
<Abstract>
  <AbstractText Label="BACKGROUND">No contact here.</AbstractText>
  <AbstractText Label="METHODS">Reach first@acme.com.</AbstractText>
  <AbstractText Label="RESULTS">Or second@acme.com.</AbstractText>
</Abstract>
<AuthorList><Author><LastName>Able</LastName><ForeName>Ann</ForeName>
<AffiliationInfo><Affiliation>Acme Therapeutics Inc</Affiliation></AffiliationInfo></Author></AuthorList>
</Article></MedlineCitation></PubmedArticle>`

	rec, err := NewExtractor(nil).Extract(parseOne(t, xml))
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "first@acme.com", rec.ContactEmail)
}

func TestExtractFallbacks(t *testing.T) {
	xml := `<PubmedArticle><MedlineCitation><PMID>107</PMID><Article>
<AuthorList>
  <Author><LastName>Solo</LastName><AffiliationInfo><Affiliation>Acme Therapeutics Inc</Affiliation></AffiliationInfo></Author>
  <Author><ForeName>Mono</ForeName><AffiliationInfo><Affiliation>Widget GmbH</Affiliation></AffiliationInfo></Author>
  <Author><CollectiveName>Acme Study Group</CollectiveName><AffiliationInfo><Affiliation>Acme Therapeutics Inc</Affiliation></AffiliationInfo></Author>
  <Author><AffiliationInfo><Affiliation>Acme Therapeutics Inc</Affiliation></AffiliationInfo></Author>
</AuthorList>
</Article></MedlineCitation></PubmedArticle>`

	rec, err := NewExtractor(nil).Extract(parseOne(t, xml))
	require.NoError(t, err)
	require.NotNil(t, rec)

	assert.Equal(t, types.NoTitle, rec.Title)
	assert.Equal(t, types.UnknownDate, rec.PublicationDate)
	assert.Equal(t, []string{"Solo", "Mono", "Acme Study Group", types.UnknownAuthor}, rec.CompanyAuthors)
	assert.Equal(t, []string{"Acme Therapeutics Inc", "Widget GmbH"}, rec.CompanyAffiliations)
}

func TestExtractMissingPMID(t *testing.T) {
	xml := `<PubmedArticle><MedlineCitation><Article><ArticleTitle>No id</ArticleTitle>
<AuthorList><Author><LastName>Able</LastName><AffiliationInfo><Affiliation>Acme Therapeutics Inc</Affiliation></AffiliationInfo></Author></AuthorList>
</Article></MedlineCitation></PubmedArticle>`

	rec, err := NewExtractor(nil).Extract(parseOne(t, xml))
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, types.UnknownID, rec.PMID)
}

func TestPublicationDate(t *testing.T) {
	tests := []struct {
		name string
		date *pubDate
		want string
	}{
		{"nil", nil, types.UnknownDate},
		{"full", &pubDate{Year: "2023", Month: "Jan", Day: "5"}, "2023-Jan-5"},
		{"year only", &pubDate{Year: "2021"}, "2021"},
		{"year and month", &pubDate{Year: "2021", Month: "Dec"}, "2021-Dec"},
		{"medline date", &pubDate{MedlineDate: "2019 Nov-Dec"}, "2019 Nov-Dec"},
		{"parts win over medline date", &pubDate{Year: "2019", MedlineDate: "2019 Nov-Dec"}, "2019"},
		{"empty node", &pubDate{}, types.UnknownDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, publicationDate(tt.date))
		})
	}
}

func TestExtractTitleWithInlineMarkup(t *testing.T) {
	a := parseOne(t, articleXML("108", "Effects of <i>E. coli</i> on CO<sub>2</sub>\n   uptake", "",
		testAuthor{fore: "Ann", last: "Able", affiliations: []string{"Acme Therapeutics Inc"}}))

	rec, err := NewExtractor(nil).Extract(a)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "Effects of E. coli on CO2 uptake", rec.Title)
}

func TestExtractStructuralFaults(t *testing.T) {
	_, err := NewExtractor(nil).Extract(Article{})
	assert.True(t, errors.Is(err, ErrExtraction))

	_, err = NewExtractor(nil).Extract(Article{Citation: &medlineCitation{PMID: "9"}})
	assert.True(t, errors.Is(err, ErrExtraction))
	assert.Contains(t, err.Error(), "9")
}

func TestExtractUsesGivenClassifier(t *testing.T) {
	c := affiliation.New(affiliation.NewTermRule(affiliation.KindKnownCompany, affiliation.Company, "widget"))
	a := parseOne(t, articleXML("109", "Custom", "",
		testAuthor{fore: "Ann", last: "Able", affiliations: []string{"Widget Works"}},
		testAuthor{fore: "Bob", last: "Baker", affiliations: []string{"Acme Therapeutics Inc"}},
	))

	rec, err := NewExtractor(c).Extract(a)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, []string{"Ann Able"}, rec.CompanyAuthors)
}

func TestAuthors(t *testing.T) {
	a := parseOne(t, articleXML("110", "Authors", "",
		testAuthor{fore: "Ann", last: "Able", affiliations: []string{"One", "Two"}},
		testAuthor{fore: "Bob", last: "Baker"},
	))

	authors := Authors(a)
	require.Len(t, authors, 2)
	assert.Equal(t, AuthorAffiliation{Name: "Ann Able", Affiliations: []string{"One", "Two"}}, authors[0])
	assert.Equal(t, "Bob Baker", authors[1].Name)
	assert.Empty(t, authors[1].Affiliations)
	assert.Nil(t, Authors(Article{}))
}
