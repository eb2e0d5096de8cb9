package roster

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/xuri/excelize/v2"

	"org-assistant/internal/core/domain"
)

// Store loads the employee roster from an xlsx workbook. Rows are cached
// until the file's modification time changes.
type Store struct {
	path string

	mu      sync.Mutex
	cached  []domain.Record
	modTime time.Time
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Records(ctx context.Context) ([]domain.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.WrapError(domain.ErrDataSourceMissing, "stat roster", err)
		}
		return nil, fmt.Errorf("stat roster: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != nil && info.ModTime().Equal(s.modTime) {
		return s.cached, nil
	}

	records, err := s.load()
	if err != nil {
		return nil, err
	}
	s.cached = records
	s.modTime = info.ModTime()
	return records, nil
}

func (s *Store) load() ([]domain.Record, error) {
	book, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("open roster workbook: %w", err)
	}
	defer book.Close()

	sheet := book.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("roster workbook has no sheets")
	}

	rows, err := book.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read roster sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	columns := headerIndex(rows[0])
	records := make([]domain.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := domain.Record{
			ID:             cell(row, columns["id"]),
			FullName:       cell(row, columns["name"]),
			Gender:         cell(row, columns["gender"]),
			EmploymentType: cell(row, columns["employment type"]),
			Department:     cell(row, columns["department"]),
			Role:           cell(row, columns["role"]),
			HireDate:       cell(row, columns["hire date"]),
			Skills:         cell(row, columns["skills"]),
			Qualifications: cell(row, columns["qualifications"]),
		}
		if age := cell(row, columns["age"]); age != "" {
			if n, err := strconv.Atoi(age); err == nil {
				rec.Age = n
			}
		}
		if rec.FullName == "" && rec.ID == "" {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// headerIndex maps lowercased header names to column positions so the
// workbook's column order does not matter. Missing names map to -1.
func headerIndex(header []string) map[string]int {
	known := []string{
		"id", "name", "gender", "age", "employment type",
		"department", "role", "hire date", "skills", "qualifications",
	}
	index := make(map[string]int, len(known))
	for _, name := range known {
		index[name] = -1
	}
	for i, raw := range header {
		name := strings.ToLower(strings.TrimSpace(raw))
		if _, ok := index[name]; ok {
			index[name] = i
		}
	}
	return index
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
