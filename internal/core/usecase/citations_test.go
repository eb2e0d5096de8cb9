package usecase

import (
	"reflect"
	"testing"

	"org-assistant/internal/core/domain"
)

func fileDoc(source string, page int) domain.IndexedDocument {
	return domain.IndexedDocument{Content: "text", Source: source, Page: page, Kind: domain.KindFile}
}

func TestFormatCitationsStructuredDocumentsExcluded(t *testing.T) {
	docs := []domain.IndexedDocument{
		{Source: "roster.xlsx", Kind: domain.KindStructuredRecord},
		{Source: "roster.xlsx", Kind: domain.KindStructuredSummary},
		fileDoc("handbook.pdf", 2),
	}

	primary, secondary := FormatCitations(docs)
	if primary == nil {
		t.Fatalf("expected a primary citation")
	}
	if primary.Source != "handbook.pdf" {
		t.Fatalf("primary must be the first file document, got %s", primary.Source)
	}
	if len(secondary) != 0 {
		t.Fatalf("expected no secondary citations, got %d", len(secondary))
	}
}

func TestFormatCitationsPrimarySourceNeverInSecondary(t *testing.T) {
	docs := []domain.IndexedDocument{
		fileDoc("policy.pdf", 1),
		fileDoc("policy.pdf", 7),
		fileDoc("rules.txt", 0),
	}

	primary, secondary := FormatCitations(docs)
	for _, cit := range secondary {
		if cit.Source == primary.Source {
			t.Fatalf("secondary list contains the primary source %s", cit.Source)
		}
	}
	if len(secondary) != 1 || secondary[0].Source != "rules.txt" {
		t.Fatalf("unexpected secondary list: %+v", secondary)
	}
}

func TestFormatCitationsDeduplicatesBySourceAndPage(t *testing.T) {
	docs := []domain.IndexedDocument{
		fileDoc("guide.txt", 0),
		fileDoc("policy.pdf", 3),
		fileDoc("policy.pdf", 3),
		fileDoc("policy.pdf", 4),
	}

	_, secondary := FormatCitations(docs)
	keys := make(map[citationKey]int)
	for _, cit := range secondary {
		keys[citationKey{source: cit.Source, page: cit.Page}]++
	}
	for key, n := range keys {
		if n > 1 {
			t.Fatalf("duplicate secondary citation for %v", key)
		}
	}
	if len(secondary) != 2 {
		t.Fatalf("expected 2 secondary citations, got %d", len(secondary))
	}
}

func TestFormatCitationsSecondaryBounded(t *testing.T) {
	docs := []domain.IndexedDocument{
		fileDoc("a.txt", 0),
		fileDoc("b.txt", 0),
		fileDoc("c.txt", 0),
		fileDoc("d.txt", 0),
		fileDoc("e.txt", 0),
		fileDoc("f.txt", 0),
	}

	_, secondary := FormatCitations(docs)
	if len(secondary) != maxSecondaryCitations {
		t.Fatalf("expected %d secondary citations, got %d", maxSecondaryCitations, len(secondary))
	}
	if secondary[0].Source != "b.txt" || secondary[2].Source != "d.txt" {
		t.Fatalf("secondary citations must preserve retrieval order: %+v", secondary)
	}
}

func TestFormatCitationsDisplayAndIcon(t *testing.T) {
	docs := []domain.IndexedDocument{
		fileDoc("handbook.pdf", 12),
		fileDoc("https://wiki.internal/onboarding", 0),
		fileDoc("notes.pdf", 0),
	}

	primary, secondary := FormatCitations(docs)
	if primary.Display != "handbook.pdf (page 12)" {
		t.Fatalf("pdf display = %q", primary.Display)
	}
	if primary.Icon != domain.IconDocument {
		t.Fatalf("pdf icon = %s", primary.Icon)
	}
	if secondary[0].Icon != domain.IconLink {
		t.Fatalf("url icon = %s", secondary[0].Icon)
	}
	// A pdf without a page number renders unmodified.
	if secondary[1].Display != "notes.pdf" {
		t.Fatalf("pageless pdf display = %q", secondary[1].Display)
	}
}

func TestFormatCitationsIdempotent(t *testing.T) {
	docs := []domain.IndexedDocument{
		fileDoc("policy.pdf", 3),
		fileDoc("a.txt", 0),
		fileDoc("b.txt", 0),
	}

	p1, s1 := FormatCitations(docs)
	p2, s2 := FormatCitations(docs)
	if !reflect.DeepEqual(p1, p2) || !reflect.DeepEqual(s1, s2) {
		t.Fatalf("FormatCitations is not idempotent")
	}
}

func TestFormatCitationsEmptyInput(t *testing.T) {
	primary, secondary := FormatCitations(nil)
	if primary != nil || secondary != nil {
		t.Fatalf("expected no citations for empty input")
	}
}
