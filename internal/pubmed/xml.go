// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pubmed

import (
	"encoding/xml"
	"strings"
)

// ESearch response.
type eSearchResult struct {
	Count    int      `xml:"Count"`
	RetMax   int      `xml:"RetMax"`
	RetStart int      `xml:"RetStart"`
	IDs      []string `xml:"IdList>Id"`
	Error    string   `xml:"ERROR"`
}

// EFetch response (db=pubmed, retmode=xml).
type articleSet struct {
	Articles []Article `xml:"PubmedArticle"`
}

// Article is one PubmedArticle node.
type Article struct {
	Citation *medlineCitation `xml:"MedlineCitation"`
}

type medlineCitation struct {
	PMID    string          `xml:"PMID"`
	Article *citationDetail `xml:"Article"`
}

type citationDetail struct {
	Title    text         `xml:"ArticleTitle"`
	PubDate  *pubDate     `xml:"Journal>JournalIssue>PubDate"`
	Abstract []text       `xml:"Abstract>AbstractText"`
	Authors  []authorNode `xml:"AuthorList>Author"`
}

type pubDate struct {
	Year        string `xml:"Year"`
	Month       string `xml:"Month"`
	Day         string `xml:"Day"`
	MedlineDate string `xml:"MedlineDate"`
}

type authorNode struct {
	LastName       string            `xml:"LastName"`
	ForeName       string            `xml:"ForeName"`
	CollectiveName string            `xml:"CollectiveName"`
	Affiliations   []affiliationInfo `xml:"AffiliationInfo"`
}

type affiliationInfo struct {
	Affiliation text `xml:"Affiliation"`
}

// text collects the character data of an element and all of its
// descendants, so titles and abstracts with inline markup such as <i> or
// <sup> keep their full text.
type text struct {
	Value string
}

func (t *text) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var b strings.Builder
	depth := 1
	for depth > 0 {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch tt := tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		case xml.CharData:
			b.Write(tt)
		}
	}
	t.Value = strings.Join(strings.Fields(b.String()), " ")
	return nil
}
