package usecase

import (
	"fmt"
	"strings"

	"org-assistant/internal/core/domain"
)

const maxSecondaryCitations = 3

type citationKey struct {
	source string
	page   int
}

// FormatCitations turns ranked retrieval results into a primary citation and
// at most three secondary ones. Structured pseudo-documents back a different
// display surface and are filtered out before ranking. Pure and idempotent.
func FormatCitations(docs []domain.IndexedDocument) (*domain.Citation, []domain.Citation) {
	filtered := make([]domain.IndexedDocument, 0, len(docs))
	for _, doc := range docs {
		if doc.Kind == domain.KindStructuredRecord || doc.Kind == domain.KindStructuredSummary {
			continue
		}
		filtered = append(filtered, doc)
	}
	if len(filtered) == 0 {
		return nil, nil
	}

	primary := newCitation(filtered[0], true)

	seen := make(map[citationKey]struct{})
	secondary := make([]domain.Citation, 0, maxSecondaryCitations)
	for _, doc := range filtered[1:] {
		if doc.Source == primary.Source {
			continue
		}
		key := citationKey{source: doc.Source, page: doc.Page}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		secondary = append(secondary, newCitation(doc, false))
		if len(secondary) == maxSecondaryCitations {
			break
		}
	}
	return &primary, secondary
}

func newCitation(doc domain.IndexedDocument, primary bool) domain.Citation {
	return domain.Citation{
		Display: displayString(doc.Source, doc.Page),
		Icon:    iconFor(doc.Source),
		Primary: primary,
		Source:  doc.Source,
		Page:    doc.Page,
	}
}

func displayString(source string, page int) string {
	if strings.HasSuffix(source, ".pdf") && page > 0 {
		return fmt.Sprintf("%s (page %d)", source, page)
	}
	return source
}

func iconFor(source string) domain.IconKind {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return domain.IconLink
	}
	return domain.IconDocument
}
