package conversion

import (
	"context"
	"time"

	"github.com/farxc/carteira-devedores/internal/auth"
	"github.com/farxc/carteira-devedores/internal/logger"
	"github.com/farxc/carteira-devedores/internal/registry"
	"github.com/farxc/carteira-devedores/internal/store"
	"github.com/farxc/carteira-devedores/internal/utils"
	"github.com/google/uuid"
)

const (
	// DefaultConcurrency bounds parallel registry lookups in ConvertMany.
	DefaultConcurrency = 4
	// DefaultLookupTimeout bounds a single registry lookup.
	DefaultLookupTimeout = 10 * time.Second
)

// Converter turns imported debtor rows into client companies. The registry
// lookup is optional; without one clients keep only the imported fields.
type Converter struct {
	lookup      registry.Lookup
	logger      *logger.Logger
	now           func() time.Time
	concurrency   int
	lookupTimeout time.Duration
}

func NewConverter(lookup registry.Lookup, l *logger.Logger) *Converter {
	return &Converter{
		lookup:        lookup,
		logger:        l,
		now:           time.Now,
		concurrency:   DefaultConcurrency,
		lookupTimeout: DefaultLookupTimeout,
	}
}

func (c *Converter) WithClock(now func() time.Time) *Converter {
	c.now = now
	return c
}

func (c *Converter) WithConcurrency(n int) *Converter {
	if n > 0 {
		c.concurrency = n
	}
	return c
}

func (c *Converter) WithLookupTimeout(d time.Duration) *Converter {
	if d > 0 {
		c.lookupTimeout = d
	}
	return c
}

// Convert builds a client from d. A nil reg triggers a lookup when one is
// configured; a failed lookup leaves the registry fields empty and the status
// pending. Convert never fails.
func (c *Converter) Convert(ctx context.Context, d store.DebtorRecord, meta *store.ImportMetadata, reg *store.RegistryData, s auth.Session) store.ClientCompany {
	client, _ := c.convert(ctx, d, meta, reg, s)
	return client
}

func (c *Converter) convert(ctx context.Context, d store.DebtorRecord, meta *store.ImportMetadata, reg *store.RegistryData, s auth.Session) (store.ClientCompany, error) {
	var lookupErr error
	if reg == nil {
		reg, lookupErr = c.enrich(ctx, d.TaxID)
	}
	return c.build(d, meta, reg, s), lookupErr
}

func (c *Converter) enrich(ctx context.Context, taxID string) (*store.RegistryData, error) {
	const component = "Converter"
	if c.lookup == nil {
		return nil, nil
	}

	digits := utils.DigitsOnly(taxID)
	if err := ctx.Err(); err != nil {
		c.logger.Warn(component, "Registry lookup skipped, converting without enrichment: taxId=%s error=%v", digits, err)
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.lookupTimeout)
	defer cancel()
	reg, err := c.lookup.Fetch(ctx, digits)
	if err != nil {
		c.logger.Warn(component, "Registry lookup failed, converting without enrichment: taxId=%s error=%v", digits, err)
		return nil, err
	}
	return reg, nil
}

func (c *Converter) build(d store.DebtorRecord, meta *store.ImportMetadata, reg *store.RegistryData, s auth.Session) store.ClientCompany {
	now := c.now().UTC()
	actor := s.Actor(now)

	client := store.ClientCompany{
		ID:                 clientID(d),
		TaxID:              d.TaxID,
		LegalName:          d.Name,
		TradeName:          d.TradeName,
		TotalDebtAmount:    utils.ParseAmount(d.TotalDebtAmount),
		SelectedDebtAmount: utils.ParseAmount(d.SelectedDebtAmount),
		RegistryStatus:     store.RegistryStatusPending,
		NegotiationStage:   store.StageProspecting,
		ExtraInfo: store.Provenance{
			AddedBy: &actor,
			Origin:  &store.Origin{DebtorID: d.ID, ImportedAt: now},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if meta != nil {
		client.Region = meta.Region
		client.DebtNature = meta.DebtNature
		client.ExtraInfo.Origin.Source = meta.Source
		client.ExtraInfo.Origin.Region = meta.Region
		client.ExtraInfo.Origin.DebtNature = meta.DebtNature
		client.ExtraInfo.Origin.ReferenceDate = meta.ReferenceDate
		client.ExtraInfo.Origin.ImportedAt = meta.ImportedAt
	}

	if reg != nil {
		client.RegistryData = reg
		client.LegalName = firstNonEmpty(reg.LegalName, client.LegalName)
		client.TradeName = firstNonEmpty(reg.TradeName, client.TradeName)
		client.Region = firstNonEmpty(reg.State, client.Region)
		client.RegistryStatus = firstNonEmpty(reg.Status, client.RegistryStatus)
	}
	return client
}

// clientID reuses the debtor id, which is unique across imports. Rows built
// outside an import may carry none.
func clientID(d store.DebtorRecord) string {
	if d.ID != "" {
		return d.ID
	}
	return uuid.NewString()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
