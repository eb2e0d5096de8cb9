package usecase

import (
	"regexp"
	"strings"

	"org-assistant/internal/core/domain"
)

// Classifier routes questions between the structured personnel path and the
// semantic document path. Pure rule evaluation, no external calls.
type Classifier struct {
	vocab Vocabulary

	nounThenVerb *regexp.Regexp
	verbThenNoun *regexp.Regexp
}

func NewClassifier(vocab Vocabulary) *Classifier {
	return &Classifier{
		vocab:        vocab,
		nounThenVerb: regexp.MustCompile(`(?i)\b(employee|staff|personnel|member)s?\b.{0,60}\b(list|show|extract|enumerate|display)`),
		verbThenNoun: regexp.MustCompile(`(?i)\b(list|show|extract|enumerate|display)\b.{0,60}\b(employee|staff|personnel|member)s?\b`),
	}
}

// Classify applies the ordered rules, first match wins:
//  1. a document-context keyword forces the document path, regardless of any
//     co-occurring personnel terms;
//  2. a contextual-reference keyword without a personnel noun forces the
//     document path;
//  3. a listing keyword, a personnel-noun/action-verb co-occurrence, or a
//     department+role pair selects the structured path;
//  4. everything else is a document/general query.
//
// Department and role extraction is a case-sensitive substring scan over the
// fixed vocabularies; the first entry that matches wins.
func (c *Classifier) Classify(question string) domain.ClassificationResult {
	result := domain.ClassificationResult{
		Department: firstContained(question, c.vocab.Departments),
		Role:       firstContained(question, c.vocab.Roles),
	}

	lower := strings.ToLower(question)

	if containsAny(lower, c.vocab.DocumentContext) {
		return result
	}
	if containsAny(lower, c.vocab.ContextualReference) && !containsAny(lower, c.vocab.PersonnelNouns) {
		return result
	}

	switch {
	case containsAny(lower, c.vocab.ListingKeywords):
		result.Structured = true
	case c.hasDepartmentListCompound(lower):
		result.Structured = true
	case c.nounThenVerb.MatchString(question) || c.verbThenNoun.MatchString(question):
		result.Structured = true
	case result.Department != "" && result.Role != "":
		result.Structured = true
	}
	return result
}

// hasDepartmentListCompound matches explicit "<department> list" and
// "<department>-list" compounds.
func (c *Classifier) hasDepartmentListCompound(lower string) bool {
	for _, dept := range c.vocab.Departments {
		name := strings.ToLower(dept)
		if strings.Contains(lower, name+" list") || strings.Contains(lower, name+"-list") {
			return true
		}
	}
	return false
}

func containsAny(lower string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(lower, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}

func firstContained(question string, vocabulary []string) string {
	for _, entry := range vocabulary {
		if strings.Contains(question, entry) {
			return entry
		}
	}
	return ""
}
