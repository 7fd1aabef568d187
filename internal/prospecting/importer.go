package prospecting

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/farxc/carteira-devedores/internal/logger"
	"github.com/farxc/carteira-devedores/internal/store"
	"github.com/google/uuid"
)

// MaxImportBytes caps the size of one uploaded file.
const MaxImportBytes = 20 << 20

var ErrImportTooLarge = errors.New("import file exceeds size limit")

type Importer struct {
	store  *store.Storage
	logger *logger.Logger
	now    func() time.Time
}

type ImportResult struct {
	Metadata store.ImportMetadata `json:"metadata"`
	History  store.ImportHistory  `json:"history"`
}

func NewImporter(s *store.Storage, l *logger.Logger) *Importer {
	return &Importer{store: s, logger: l, now: time.Now}
}

// WithClock overrides the import timestamp source.
func (i *Importer) WithClock(now func() time.Time) *Importer {
	i.now = now
	return i
}

// ImportReader decodes r and hands the text to Import.
func (i *Importer) ImportReader(ctx context.Context, r io.Reader, source, actor string) (*ImportResult, error) {
	raw, err := io.ReadAll(io.LimitReader(r, MaxImportBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read import: %w", err)
	}
	if len(raw) > MaxImportBytes {
		return nil, ErrImportTooLarge
	}

	text, err := Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("decode import: %w", err)
	}
	return i.Import(ctx, text, source, actor)
}

// Import parses text and replaces the stored batch with it. A batch without
// rows is still stored, so the previous one never survives a re-import.
func (i *Importer) Import(ctx context.Context, text, source, actor string) (*ImportResult, error) {
	const component = "Importer"

	importedAt := i.now().UTC()
	meta, records := Parse(text, importedAt)
	meta.Source = source

	if len(records) == 0 {
		i.logger.Warn(component, "Import produced no rows: source=%s skippedRows=%d", source, meta.SkippedRows)
	}

	if err := i.replaceBatch(ctx, records, meta); err != nil {
		return nil, err
	}

	history := store.ImportHistory{
		ID:            uuid.NewString(),
		Source:        source,
		ReferenceDate: meta.ReferenceDate,
		ImportedAt:    importedAt,
		ImportedBy:    actor,
		RowCount:      meta.RowCount,
		SkippedRows:   meta.SkippedRows,
		Status:        store.ImportStatus(meta.RowCount, meta.SkippedRows),
	}
	if err := i.store.AppendImportHistory(ctx, history); err != nil {
		// The batch itself is stored; a missing history line is not worth failing the import.
		i.logger.Error(component, "Failed to record import history: source=%s error=%v", source, err)
	}

	i.logger.Info(component, "Import stored: source=%s rows=%d skippedRows=%d region=%s", source, meta.RowCount, meta.SkippedRows, meta.Region)
	return &ImportResult{Metadata: meta, History: history}, nil
}

// replaceBatch stores the rows and then the metadata. If the metadata write
// fails the previous rows are put back, so rows and metadata always belong to
// the same batch.
func (i *Importer) replaceBatch(ctx context.Context, records []store.DebtorRecord, meta store.ImportMetadata) error {
	const component = "Importer"

	previous, err := i.store.Debtors.List(ctx)
	if err != nil {
		return fmt.Errorf("load debtors: %w", err)
	}
	if err := i.store.Debtors.Replace(ctx, records); err != nil {
		return fmt.Errorf("store debtors: %w", err)
	}

	if err := i.store.ImportMetadata.Save(ctx, meta); err != nil {
		if restoreErr := i.store.Debtors.Replace(context.WithoutCancel(ctx), previous); restoreErr != nil {
			i.logger.Error(component, "Failed to restore previous batch: source=%s error=%v", meta.Source, restoreErr)
		}
		return fmt.Errorf("store import metadata: %w", err)
	}
	return nil
}

func (i *Importer) Debtors(ctx context.Context) ([]store.DebtorRecord, error) {
	return i.store.Debtors.List(ctx)
}

// CurrentMetadata returns store.ErrNotFound when nothing has been imported.
func (i *Importer) CurrentMetadata(ctx context.Context) (*store.ImportMetadata, error) {
	return i.store.ImportMetadata.Load(ctx)
}

// DeleteDebtors removes the given rows and reports how many were present.
func (i *Importer) DeleteDebtors(ctx context.Context, ids ...string) (int, error) {
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	removed := 0
	err := i.store.Debtors.Update(ctx, func(items []store.DebtorRecord) ([]store.DebtorRecord, error) {
		kept := items[:0]
		for _, d := range items {
			if _, ok := drop[d.ID]; ok {
				removed++
				continue
			}
			kept = append(kept, d)
		}
		if removed == 0 {
			return nil, store.ErrNoChange
		}
		return kept, nil
	})
	return removed, err
}

// Clear drops the current batch and its metadata. History is kept.
func (i *Importer) Clear(ctx context.Context) error {
	if err := i.store.Debtors.Clear(ctx); err != nil {
		return err
	}
	return i.store.ImportMetadata.Clear(ctx)
}
