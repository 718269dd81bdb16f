// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pubmed

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/pdiddy/get-papers-list/pkg/types"
)

// fakeFetcher records calls and answers them with respond.
type fakeFetcher struct {
	mu      sync.Mutex
	calls   []fakeCall
	respond func(n int, endpoint string, params url.Values) ([]byte, error)
}

type fakeCall struct {
	endpoint string
	params   url.Values
}

func (f *fakeFetcher) Get(_ context.Context, endpoint string, params url.Values) ([]byte, error) {
	f.mu.Lock()
	n := len(f.calls)
	f.calls = append(f.calls, fakeCall{endpoint: endpoint, params: params})
	f.mu.Unlock()
	return f.respond(n, endpoint, params)
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func testConfig(pageSize int) types.SearchConfig {
	cfg := types.DefaultSearchConfig()
	cfg.PageSize = pageSize
	cfg.BatchDelay = 0
	return cfg
}

func noSleep(context.Context, time.Duration) error { return nil }

// esearchXML renders an ESearch response holding ids.
func esearchXML(count int, ids ...string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "<?xml version=\"1.0\"?>\n<eSearchResult><Count>%d</Count><RetMax>%d</RetMax><RetStart>0</RetStart><IdList>", count, len(ids))
	for _, id := range ids {
		fmt.Fprintf(&b, "<Id>%s</Id>", id)
	}
	b.WriteString("</IdList></eSearchResult>")
	return []byte(b.String())
}

type testAuthor struct {
	fore, last   string
	affiliations []string
}

// articleXML renders one PubmedArticle.
func articleXML(pmid, title, abstract string, authors ...testAuthor) string {
	var b strings.Builder
	b.WriteString("<PubmedArticle><MedlineCitation><PMID Version=\"1\">" + pmid + "</PMID><Article>")
	b.WriteString("<Journal><JournalIssue><PubDate><Year>2024</Year><Month>Mar</Month><Day>07</Day></PubDate></JournalIssue></Journal>")
	if title != "" {
		b.WriteString("<ArticleTitle>" + title + "</ArticleTitle>")
	}
	if abstract != "" {
		b.WriteString("<Abstract><AbstractText>" + abstract + "</AbstractText></Abstract>")
	}
	b.WriteString("<AuthorList>")
	for _, a := range authors {
		b.WriteString("<Author ValidYN=\"Y\">")
		if a.last != "" {
			b.WriteString("<LastName>" + a.last + "</LastName>")
		}
		if a.fore != "" {
			b.WriteString("<ForeName>" + a.fore + "</ForeName>")
		}
		for _, aff := range a.affiliations {
			b.WriteString("<AffiliationInfo><Affiliation>" + aff + "</Affiliation></AffiliationInfo>")
		}
		b.WriteString("</Author>")
	}
	b.WriteString("</AuthorList></Article></MedlineCitation></PubmedArticle>")
	return b.String()
}

// companyArticle renders an article with one company-affiliated author.
func companyArticle(pmid string) string {
	return articleXML(pmid, "Paper "+pmid, "",
		testAuthor{fore: "Ada", last: "Lovelace", affiliations: []string{"Acme Therapeutics Inc"}})
}

// academicArticle renders an article whose only author is academic.
func academicArticle(pmid string) string {
	return articleXML(pmid, "Paper "+pmid, "",
		testAuthor{fore: "Alan", last: "Turing", affiliations: []string{"State University"}})
}

func articleSetXML(articles ...string) []byte {
	return []byte("<?xml version=\"1.0\"?>\n<PubmedArticleSet>" + strings.Join(articles, "") + "</PubmedArticleSet>")
}

func ids(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%d", i+1)
	}
	return out
}
