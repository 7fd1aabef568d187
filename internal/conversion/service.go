package conversion

import (
	"context"
	"errors"

	"github.com/farxc/carteira-devedores/internal/auth"
	"github.com/farxc/carteira-devedores/internal/store"
)

var ErrNothingToConvert = errors.New("no matching debtors to convert")

// Service converts rows of the current import and drops converted rows from it.
type Service struct {
	store     *store.Storage
	converter *Converter
}

func NewService(s *store.Storage, c *Converter) *Service {
	return &Service{store: s, converter: c}
}

// ConvertSelected converts the debtors with the given ids. Rows that became
// clients leave the debtor collection; duplicates stay so they can be reviewed.
func (svc *Service) ConvertSelected(ctx context.Context, ids []string, s auth.Session) (*BulkResult, error) {
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	return svc.convert(ctx, s, func(d store.DebtorRecord) bool {
		_, ok := want[d.ID]
		return ok
	})
}

func (svc *Service) ConvertAll(ctx context.Context, s auth.Session) (*BulkResult, error) {
	return svc.convert(ctx, s, func(store.DebtorRecord) bool { return true })
}

func (svc *Service) convert(ctx context.Context, s auth.Session, keep func(store.DebtorRecord) bool) (*BulkResult, error) {
	all, err := svc.store.Debtors.List(ctx)
	if err != nil {
		return nil, err
	}

	selected := make([]store.DebtorRecord, 0, len(all))
	for _, d := range all {
		if keep(d) {
			selected = append(selected, d)
		}
	}
	if len(selected) == 0 {
		return nil, ErrNothingToConvert
	}

	meta, err := svc.store.ImportMetadata.Load(ctx)
	if errors.Is(err, store.ErrNotFound) {
		meta, err = nil, nil
	}
	if err != nil {
		return nil, err
	}

	result, err := svc.converter.ConvertMany(ctx, svc.store.Clients, selected, meta, s)
	if err != nil {
		return nil, err
	}

	if len(result.Added) > 0 {
		converted := make(map[string]struct{}, len(result.Added))
		for _, c := range result.Added {
			converted[c.ExtraInfo.Origin.DebtorID] = struct{}{}
		}
		// The clients are already stored; dropping their rows must not be cut short.
		err = svc.store.Debtors.Update(context.WithoutCancel(ctx), func(items []store.DebtorRecord) ([]store.DebtorRecord, error) {
			kept := items[:0]
			for _, d := range items {
				if _, ok := converted[d.ID]; !ok {
					kept = append(kept, d)
				}
			}
			return kept, nil
		})
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}
