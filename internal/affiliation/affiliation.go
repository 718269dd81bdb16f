// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package affiliation decides whether an author affiliation names a
// commercial organization. Classification is an ordered cascade of typed
// rules over the lowercased affiliation; the first rule that matches decides.
// Matching is plain substring containment, so short terms can fire inside
// unrelated words.
package affiliation

import "strings"

// Label is the outcome of classifying one affiliation.
type Label string

const (
	Academic Label = "academic"
	Company  Label = "company"
	Unknown  Label = "unknown"
)

// RuleKind names the family of terms a rule matches.
type RuleKind string

const (
	KindAcademicExclusion RuleKind = "academic_exclusion"
	KindKnownCompany      RuleKind = "known_company"
	KindLegalSuffix       RuleKind = "legal_suffix"
	KindIndustryKeyword   RuleKind = "industry_keyword"
)

// Rule is a pure predicate over a normalized (lowercased, trimmed)
// affiliation string.
type Rule interface {
	Kind() RuleKind
	// Label is the verdict the rule produces when it matches.
	Label() Label
	// Match returns the first term found in normalized, if any.
	Match(normalized string) (term string, ok bool)
}

// TermRule matches when the text contains any of its terms.
type TermRule struct {
	kind  RuleKind
	label Label
	terms []string
}

// NewTermRule builds a rule from a term list. Terms are lowercased and
// copied, so later changes to the caller's slice have no effect.
func NewTermRule(kind RuleKind, label Label, terms ...string) TermRule {
	lowered := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			lowered = append(lowered, t)
		}
	}
	return TermRule{kind: kind, label: label, terms: lowered}
}

func (r TermRule) Kind() RuleKind { return r.kind }
func (r TermRule) Label() Label   { return r.label }

func (r TermRule) Match(normalized string) (string, bool) {
	for _, t := range r.terms {
		if strings.Contains(normalized, t) {
			return t, true
		}
	}
	return "", false
}

// Verdict records how an affiliation was classified. It is derived on each
// call and never cached.
type Verdict struct {
	Affiliation string
	Label       Label
	Rule        RuleKind
	Term        string
}

// IsCompany reports whether the verdict marks a commercial affiliation.
func (v Verdict) IsCompany() bool { return v.Label == Company }

// Classifier evaluates rules in order and stops at the first match.
type Classifier struct {
	rules []Rule
}

// New returns a classifier over rules, evaluated in the given order.
func New(rules ...Rule) *Classifier {
	return &Classifier{rules: append([]Rule(nil), rules...)}
}

// Default returns the standard cascade: academic exclusion, known company
// names, legal-entity suffixes, then industry keywords.
func Default() *Classifier {
	return New(
		NewTermRule(KindAcademicExclusion, Academic, academicTerms...),
		NewTermRule(KindKnownCompany, Company, knownCompanies...),
		NewTermRule(KindLegalSuffix, Company, legalSuffixes...),
		NewTermRule(KindIndustryKeyword, Company, industryKeywords...),
	)
}

// Classify runs the cascade over affiliation.
func (c *Classifier) Classify(affiliation string) Verdict {
	normalized := strings.ToLower(strings.TrimSpace(affiliation))
	v := Verdict{Affiliation: affiliation, Label: Unknown}
	if normalized == "" {
		return v
	}
	for _, r := range c.rules {
		if term, ok := r.Match(normalized); ok {
			v.Label = r.Label()
			v.Rule = r.Kind()
			v.Term = term
			return v
		}
	}
	return v
}

// IsCompany reports whether affiliation is classified as commercial.
func (c *Classifier) IsCompany(affiliation string) bool {
	return c.Classify(affiliation).IsCompany()
}

// Rules returns the cascade in evaluation order.
func (c *Classifier) Rules() []Rule {
	return append([]Rule(nil), c.rules...)
}
