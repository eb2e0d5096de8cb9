package pdfdoc

import (
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"org-assistant/internal/core/domain"
)

// Extractor pulls text from PDF files one page at a time so downstream
// citations can point at the page the text came from.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

func (e *Extractor) Extract(ctx context.Context, path string) ([]domain.SourceSegment, error) {
	file, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer file.Close()

	var segments []domain.SourceSegment
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("extract pdf page %d: %w", pageNum, err)
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		segments = append(segments, domain.SourceSegment{Text: text, Page: pageNum})
	}
	return segments, nil
}
