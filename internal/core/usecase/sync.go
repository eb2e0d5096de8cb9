package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"org-assistant/internal/core/domain"
	"org-assistant/internal/core/ports"
)

// CorpusSyncUseCase feeds the semantic index: corpus files are extracted,
// chunked, embedded and indexed; the roster is mirrored into the index as
// structured pseudo-documents so personnel facts are also reachable from the
// semantic path.
type CorpusSyncUseCase struct {
	records      ports.RecordSource
	extractor    ports.SourceExtractor
	chunker      ports.Chunker
	embedder     ports.Embedder
	indexer      ports.VectorIndexer
	rosterSource string
}

func NewCorpusSyncUseCase(
	records ports.RecordSource,
	extractor ports.SourceExtractor,
	chunker ports.Chunker,
	embedder ports.Embedder,
	indexer ports.VectorIndexer,
	rosterSource string,
) *CorpusSyncUseCase {
	return &CorpusSyncUseCase{
		records:      records,
		extractor:    extractor,
		chunker:      chunker,
		embedder:     embedder,
		indexer:      indexer,
		rosterSource: rosterSource,
	}
}

// SyncPath indexes one corpus file and reports how many chunks it produced.
func (uc *CorpusSyncUseCase) SyncPath(ctx context.Context, path string) (int, error) {
	segments, err := uc.extractor.Extract(ctx, path)
	if err != nil {
		return 0, fmt.Errorf("extract %s: %w", path, err)
	}

	source := strings.ReplaceAll(path, "\\", "/")
	docs := make([]domain.IndexedDocument, 0, len(segments))
	for _, segment := range segments {
		for _, chunk := range uc.chunker.Split(segment.Text) {
			docs = append(docs, domain.IndexedDocument{
				Content: chunk,
				Source:  source,
				Page:    segment.Page,
				Kind:    domain.KindFile,
			})
		}
	}
	if len(docs) == 0 {
		return 0, domain.WrapError(domain.ErrInvalidInput, "sync path", errors.New("no indexable text"))
	}
	return uc.index(ctx, docs)
}

// SyncRoster mirrors the roster into the index and reports how many
// structured documents it produced.
func (uc *CorpusSyncUseCase) SyncRoster(ctx context.Context) (int, error) {
	records, err := uc.records.Records(ctx)
	if err != nil {
		return 0, fmt.Errorf("load roster: %w", err)
	}
	if len(records) == 0 {
		return 0, nil
	}

	docs := make([]domain.IndexedDocument, 0, len(records)+8)
	for _, rec := range records {
		docs = append(docs, domain.IndexedDocument{
			Content:    recordText(rec),
			Source:     uc.rosterSource,
			Kind:       domain.KindStructuredRecord,
			Department: rec.Department,
			Name:       rec.FullName,
			Role:       rec.Role,
		})
	}
	docs = append(docs, departmentSummaries(records, uc.rosterSource)...)
	return uc.index(ctx, docs)
}

func (uc *CorpusSyncUseCase) index(ctx context.Context, docs []domain.IndexedDocument) (int, error) {
	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = doc.Content
	}

	vectors, err := uc.embedder.Embed(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("embed documents: %w", err)
	}
	if len(vectors) != len(docs) {
		return 0, domain.WrapError(
			domain.ErrInvalidInput,
			"embed documents",
			fmt.Errorf("vectors/documents mismatch: %d/%d", len(vectors), len(docs)),
		)
	}

	if err := uc.indexer.IndexDocuments(ctx, docs, vectors); err != nil {
		return 0, fmt.Errorf("index documents: %w", err)
	}
	return len(docs), nil
}

func recordText(rec domain.Record) string {
	return fmt.Sprintf(
		"Employee %s (%s). Department: %s. Role: %s. Employment type: %s. Hired: %s. Skills: %s. Qualifications: %s.",
		rec.FullName, rec.ID, rec.Department, rec.Role,
		rec.EmploymentType, rec.HireDate, orNone(rec.Skills), orNone(rec.Qualifications),
	)
}

// departmentSummaries builds one structured-summary document per department
// with headcount and role distribution.
func departmentSummaries(records []domain.Record, source string) []domain.IndexedDocument {
	byDept := make(map[string][]domain.Record)
	for _, rec := range records {
		byDept[rec.Department] = append(byDept[rec.Department], rec)
	}

	departments := make([]string, 0, len(byDept))
	for dept := range byDept {
		departments = append(departments, dept)
	}
	sort.Strings(departments)

	out := make([]domain.IndexedDocument, 0, len(departments))
	for _, dept := range departments {
		rows := byDept[dept]
		roleCounts := make(map[string]int)
		for _, rec := range rows {
			roleCounts[rec.Role]++
		}
		roles := make([]string, 0, len(roleCounts))
		for role := range roleCounts {
			roles = append(roles, role)
		}
		sort.Strings(roles)

		var b strings.Builder
		fmt.Fprintf(&b, "%s department has %d employees.", dept, len(rows))
		for _, role := range roles {
			fmt.Fprintf(&b, " %s: %d.", role, roleCounts[role])
		}

		out = append(out, domain.IndexedDocument{
			Content:    b.String(),
			Source:     source,
			Kind:       domain.KindStructuredSummary,
			Department: dept,
		})
	}
	return out
}
