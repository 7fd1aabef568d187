package conversion

import (
	"context"
	"fmt"

	"github.com/farxc/carteira-devedores/internal/auth"
	"github.com/farxc/carteira-devedores/internal/store"
	"github.com/farxc/carteira-devedores/internal/utils"
	"golang.org/x/sync/errgroup"
)

// BulkResult reports what ConvertMany did with each debtor. Duplicates and
// Invalid hold debtor ids.
type BulkResult struct {
	Added              []store.ClientCompany `json:"added"`
	Duplicates         []string              `json:"duplicates"`
	Invalid            []string              `json:"invalid,omitempty"`
	EnrichmentFailures int                   `json:"enrichment_failures"`
}

func (r *BulkResult) AddedCount() int {
	return len(r.Added)
}

// ConvertMany converts debtors and appends the new clients in one write.
// Debtors whose digits-only tax id is already a client, or repeats an earlier
// row of the batch, are reported as duplicates. When nothing is new the
// client collection is left untouched.
//
// Each lookup is bounded by the converter's lookup timeout and by ctx. Once
// ctx is done the remaining rows are converted without enrichment, and the
// write itself ignores ctx cancellation so finished work is never dropped.
func (c *Converter) ConvertMany(ctx context.Context, clients *store.Collection[store.ClientCompany], debtors []store.DebtorRecord, meta *store.ImportMetadata, s auth.Session) (*BulkResult, error) {
	const component = "BulkConverter"
	result := &BulkResult{Added: []store.ClientCompany{}, Duplicates: []string{}}

	existing, err := clients.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load clients: %w", err)
	}
	known := taxIDSet(existing)

	candidates := make([]store.DebtorRecord, 0, len(debtors))
	for _, d := range debtors {
		key := utils.DigitsOnly(d.TaxID)
		switch {
		case key == "":
			result.Invalid = append(result.Invalid, d.ID)
		case known[key]:
			result.Duplicates = append(result.Duplicates, d.ID)
		default:
			known[key] = true
			candidates = append(candidates, d)
		}
	}

	converted := make([]store.ClientCompany, len(candidates))
	failed := make([]bool, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i, d := range candidates {
		g.Go(func() error {
			client, lookupErr := c.convert(gctx, d, meta, nil, s)
			converted[i] = client
			failed[i] = lookupErr != nil
			return nil
		})
	}
	_ = g.Wait()

	for _, f := range failed {
		if f {
			result.EnrichmentFailures++
		}
	}

	err = clients.Update(context.WithoutCancel(ctx), func(current []store.ClientCompany) ([]store.ClientCompany, error) {
		// Another writer may have added some of these since the first read.
		fresh := taxIDSet(current)
		for _, client := range converted {
			key := utils.DigitsOnly(client.TaxID)
			if fresh[key] {
				result.Duplicates = append(result.Duplicates, client.ExtraInfo.Origin.DebtorID)
				continue
			}
			fresh[key] = true
			result.Added = append(result.Added, client)
		}
		if len(result.Added) == 0 {
			return nil, store.ErrNoChange
		}
		return append(current, result.Added...), nil
	})
	if err != nil {
		return nil, fmt.Errorf("store clients: %w", err)
	}

	c.logger.Info(component, "Bulk conversion finished: requested=%d added=%d duplicates=%d invalid=%d enrichmentFailures=%d",
		len(debtors), len(result.Added), len(result.Duplicates), len(result.Invalid), result.EnrichmentFailures)
	return result, nil
}

func taxIDSet(clients []store.ClientCompany) map[string]bool {
	set := make(map[string]bool, len(clients))
	for _, c := range clients {
		set[utils.DigitsOnly(c.TaxID)] = true
	}
	return set
}
