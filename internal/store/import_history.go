package store

import (
	"context"
	"sort"
	"time"
)

var (
	StatusSuccess = "success"
	StatusFailure = "failure"
	StatusPartial = "partial"
)

// ImportHistory represents one entry of the 'import-history' collection.
type ImportHistory struct {
	ID            string    `json:"id"`
	Source        string    `json:"source"`
	ReferenceDate string    `json:"reference_date,omitempty"`
	ImportedAt    time.Time `json:"imported_at"`
	ImportedBy    string    `json:"imported_by,omitempty"`
	RowCount      int       `json:"row_count"`
	SkippedRows   int       `json:"skipped_rows"`
	Status        string    `json:"status"`
}

// ImportStatus classifies a batch: nothing parsed is a failure, some rows
// dropped is partial.
func ImportStatus(rows, skipped int) string {
	switch {
	case rows == 0:
		return StatusFailure
	case skipped > 0:
		return StatusPartial
	default:
		return StatusSuccess
	}
}

func (s *Storage) AppendImportHistory(ctx context.Context, h ImportHistory) error {
	return s.ImportHistory.Update(ctx, func(items []ImportHistory) ([]ImportHistory, error) {
		return append(items, h), nil
	})
}

// LatestImports returns up to limit entries, newest first. limit <= 0 returns all.
func (s *Storage) LatestImports(ctx context.Context, limit int) ([]ImportHistory, error) {
	items, err := s.ImportHistory.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].ImportedAt.After(items[j].ImportedAt)
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}
