package extractor

import (
	"context"
	"path/filepath"
	"strings"

	"org-assistant/internal/core/domain"
	"org-assistant/internal/core/ports"
	"org-assistant/internal/infrastructure/extractor/pdfdoc"
	"org-assistant/internal/infrastructure/extractor/plaintext"
)

// Router picks an extractor by file extension. Anything that is not a PDF
// is treated as plain text.
type Router struct {
	pdf   ports.SourceExtractor
	plain ports.SourceExtractor
}

func NewRouter() *Router {
	return &Router{
		pdf:   pdfdoc.NewExtractor(),
		plain: plaintext.NewExtractor(),
	}
}

func (r *Router) Extract(ctx context.Context, path string) ([]domain.SourceSegment, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return r.pdf.Extract(ctx, path)
	}
	return r.plain.Extract(ctx, path)
}
