package conversion

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/farxc/carteira-devedores/internal/auth"
	"github.com/farxc/carteira-devedores/internal/logger"
	"github.com/farxc/carteira-devedores/internal/prospecting"
	"github.com/farxc/carteira-devedores/internal/registry"
	mock_registry "github.com/farxc/carteira-devedores/internal/registry/mocks"
	"github.com/farxc/carteira-devedores/internal/store"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

var (
	fixedNow = time.Date(2024, 5, 2, 15, 0, 0, 0, time.UTC)
	agent    = auth.Session{UserID: "e1", Name: "Ana", Title: "Analista", Role: auth.RoleAgent}
)

const threeLineImport = `UF: "SP"
Natureza da Dívida: "Previdenciária"
CNPJ;Nome;Fantasia;Total;Selecionado
12.345.678/0001-90;ACME LTDA;ACME;"1.234,56";"1.000,00"
98.765.432/0001-10;BETA SA;BETA;500,00
11.222.333/0001-44;GAMA ME;GAMA;"2.000,00";abc
`

func newConverter(lookup registry.Lookup) *Converter {
	return NewConverter(lookup, logger.Discard()).WithClock(func() time.Time { return fixedNow })
}

func TestConvertWithoutRegistry(t *testing.T) {
	meta := &store.ImportMetadata{Region: "SP", DebtNature: "Previdenciária", Source: "lista.csv", ReferenceDate: "02/05/2024"}
	d := store.DebtorRecord{ID: "1-3", TaxID: "12.345.678/0001-90", Name: "ACME LTDA", TradeName: "ACME", TotalDebtAmount: "R$ 1.234,56", SelectedDebtAmount: "garbage"}

	client := newConverter(nil).Convert(context.Background(), d, meta, nil, agent)

	if client.ID != "1-3" {
		t.Fatalf("expected client to reuse debtor id 1-3, got %s", client.ID)
	}
	if client.NegotiationStage != store.StageProspecting {
		t.Fatalf("expected prospecting stage, got %s", client.NegotiationStage)
	}
	if client.RegistryStatus != store.RegistryStatusPending {
		t.Fatalf("expected pending status, got %s", client.RegistryStatus)
	}
	if !client.TotalDebtAmount.Equal(decimal.RequireFromString("1234.56")) {
		t.Fatalf("unexpected total %s", client.TotalDebtAmount)
	}
	if !client.SelectedDebtAmount.IsZero() {
		t.Fatalf("expected garbage amount to coerce to zero, got %s", client.SelectedDebtAmount)
	}
	if client.Region != "SP" || client.DebtNature != "Previdenciária" {
		t.Fatalf("expected metadata fields, got region=%s nature=%s", client.Region, client.DebtNature)
	}
	added := client.ExtraInfo.AddedBy
	if added == nil || added.ID != "e1" || added.Name != "Ana" || added.Title != "Analista" || !added.At.Equal(fixedNow) {
		t.Fatalf("unexpected addedBy %+v", added)
	}
	origin := client.ExtraInfo.Origin
	if origin == nil || origin.DebtorID != "1-3" || origin.Source != "lista.csv" || origin.ReferenceDate != "02/05/2024" {
		t.Fatalf("unexpected origin %+v", origin)
	}
}

func TestConvertRegistryOverridesDebtorFields(t *testing.T) {
	reg := &store.RegistryData{LegalName: "ACME COMERCIO LTDA", TradeName: "", State: "RJ", Status: "ATIVA"}
	d := store.DebtorRecord{ID: "1", TaxID: "12345678000190", Name: "ACME LTDA", TradeName: "ACME"}

	client := newConverter(nil).Convert(context.Background(), d, &store.ImportMetadata{Region: "SP"}, reg, agent)

	if client.LegalName != "ACME COMERCIO LTDA" || client.TradeName != "ACME" || client.Region != "RJ" || client.RegistryStatus != "ATIVA" {
		t.Fatalf("unexpected precedence result %+v", client)
	}
	if client.RegistryData != reg {
		t.Fatalf("expected registry snapshot to be attached")
	}
}

func TestConvertLooksUpByDigitsOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	lookup := mock_registry.NewMockLookup(ctrl)

	lookup.EXPECT().Fetch(gomock.Any(), "12345678000190").Return(&store.RegistryData{Status: "ATIVA"}, nil)

	client := newConverter(lookup).Convert(context.Background(), store.DebtorRecord{TaxID: "12.345.678/0001-90"}, nil, nil, agent)
	if client.RegistryStatus != "ATIVA" {
		t.Fatalf("expected enriched status, got %s", client.RegistryStatus)
	}
}

func TestConvertLookupFailureDegrades(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	lookup := mock_registry.NewMockLookup(ctrl)

	lookup.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(nil, registry.ErrUnavailable)

	client := newConverter(lookup).Convert(context.Background(), store.DebtorRecord{TaxID: "12345678000190", Name: "ACME"}, nil, nil, agent)
	if client.LegalName != "ACME" || client.RegistryData != nil || client.RegistryStatus != store.RegistryStatusPending {
		t.Fatalf("expected debtor-only client, got %+v", client)
	}
}

func TestConvertManyScenario(t *testing.T) {
	ctx := context.Background()
	meta, debtors := prospecting.Parse(threeLineImport, fixedNow)
	if len(debtors) != 2 {
		t.Fatalf("expected 2 debtors from 3-line body, got %d", len(debtors))
	}

	clients := store.NewCollection[store.ClientCompany](store.NewMemoryStore(), store.CollectionClients)
	conv := newConverter(nil)

	first, err := conv.ConvertMany(ctx, clients, debtors, &meta, agent)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.AddedCount() != 2 || len(first.Duplicates) != 0 {
		t.Fatalf("expected 2 added and 0 duplicates, got %d/%d", first.AddedCount(), len(first.Duplicates))
	}
	for _, c := range first.Added {
		if c.NegotiationStage != store.StageProspecting {
			t.Fatalf("expected prospecting, got %s", c.NegotiationStage)
		}
	}

	second, err := conv.ConvertMany(ctx, clients, debtors, &meta, agent)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.AddedCount() != 0 || len(second.Duplicates) != 2 {
		t.Fatalf("expected 0 added and 2 duplicates, got %d/%d", second.AddedCount(), len(second.Duplicates))
	}

	all, _ := clients.List(ctx)
	if len(all) != 2 {
		t.Fatalf("expected client set unchanged at 2, got %d", len(all))
	}
}

func TestConvertManyNormalizesTaxIDs(t *testing.T) {
	ctx := context.Background()
	clients := store.NewCollection[store.ClientCompany](store.NewMemoryStore(), store.CollectionClients)
	_ = clients.Replace(ctx, []store.ClientCompany{{ID: "c1", TaxID: "12345678000190"}})

	debtors := []store.DebtorRecord{
		{ID: "a", TaxID: "12.345.678/0001-90"},
		{ID: "b", TaxID: "98.765.432/0001-10"},
		{ID: "c", TaxID: "98765432000110"},
		{ID: "d", TaxID: "n/a"},
	}

	res, err := newConverter(nil).ConvertMany(ctx, clients, debtors, nil, agent)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.AddedCount() != 1 || res.Added[0].ExtraInfo.Origin.DebtorID != "b" {
		t.Fatalf("expected only debtor b to be added, got %+v", res.Added)
	}
	if len(res.Duplicates) != 2 || res.Duplicates[0] != "a" || res.Duplicates[1] != "c" {
		t.Fatalf("unexpected duplicates %v", res.Duplicates)
	}
	if len(res.Invalid) != 1 || res.Invalid[0] != "d" {
		t.Fatalf("unexpected invalid %v", res.Invalid)
	}
}

func TestConvertManyAllDuplicatesSkipsWrite(t *testing.T) {
	ctx := context.Background()
	rs := &countingStore{RecordStore: store.NewMemoryStore()}
	clients := store.NewCollection[store.ClientCompany](rs, store.CollectionClients)
	_ = clients.Replace(ctx, []store.ClientCompany{{ID: "c1", TaxID: "12345678000190"}})
	rs.sets = 0

	res, err := newConverter(nil).ConvertMany(ctx, clients, []store.DebtorRecord{{ID: "a", TaxID: "12345678000190"}}, nil, agent)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.AddedCount() != 0 || rs.sets != 0 {
		t.Fatalf("expected no additions and no writes, got %d added / %d writes", res.AddedCount(), rs.sets)
	}
}

func TestConvertManyCountsEnrichmentFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	lookup := mock_registry.NewMockLookup(ctrl)

	lookup.EXPECT().Fetch(gomock.Any(), "12345678000190").Return(nil, errors.New("timeout"))
	lookup.EXPECT().Fetch(gomock.Any(), "98765432000110").Return(&store.RegistryData{Status: "ATIVA"}, nil)

	clients := store.NewCollection[store.ClientCompany](store.NewMemoryStore(), store.CollectionClients)
	debtors := []store.DebtorRecord{{ID: "a", TaxID: "12345678000190"}, {ID: "b", TaxID: "98765432000110"}}

	res, err := newConverter(lookup).WithConcurrency(2).ConvertMany(context.Background(), clients, debtors, nil, agent)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.AddedCount() != 2 || res.EnrichmentFailures != 1 {
		t.Fatalf("expected 2 added with 1 enrichment failure, got %d/%d", res.AddedCount(), res.EnrichmentFailures)
	}
}

func TestConvertManySurvivesExpiringContext(t *testing.T) {
	clients := store.NewCollection[store.ClientCompany](store.NewMemoryStore(), store.CollectionClients)
	debtors := []store.DebtorRecord{
		{ID: "a", TaxID: "11111111000111"},
		{ID: "b", TaxID: "22222222000122"},
		{ID: "c", TaxID: "33333333000133"},
		{ID: "d", TaxID: "44444444000144"},
	}
	lookup := &slowLookup{delay: 100 * time.Millisecond}

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()

	res, err := newConverter(lookup).WithConcurrency(1).ConvertMany(ctx, clients, debtors, nil, agent)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.AddedCount() != 4 {
		t.Fatalf("expected 4 added, got %d", res.AddedCount())
	}
	if res.EnrichmentFailures != 3 {
		t.Fatalf("expected 3 enrichment failures, got %d", res.EnrichmentFailures)
	}

	stored, err := clients.List(context.Background())
	if err != nil || len(stored) != 4 {
		t.Fatalf("expected 4 stored clients, got %d err=%v", len(stored), err)
	}
	for _, c := range stored[1:] {
		if c.RegistryStatus != store.RegistryStatusPending || c.RegistryData != nil {
			t.Fatalf("expected pending client without registry data, got %+v", c)
		}
	}
}

func TestConvertLookupTimeout(t *testing.T) {
	lookup := &slowLookup{delay: time.Second}
	conv := newConverter(lookup).WithLookupTimeout(20 * time.Millisecond)

	start := time.Now()
	client := conv.Convert(context.Background(), store.DebtorRecord{ID: "a", TaxID: "12345678000190", Name: "ACME"}, nil, nil, agent)
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Fatalf("expected lookup to give up early, took %s", elapsed)
	}
	if client.RegistryStatus != store.RegistryStatusPending || client.LegalName != "ACME" {
		t.Fatalf("expected debtor-only client, got %+v", client)
	}
}

// slowLookup answers after delay unless the context ends first.
type slowLookup struct {
	delay time.Duration
}

func (l *slowLookup) Fetch(ctx context.Context, taxID string) (*store.RegistryData, error) {
	select {
	case <-time.After(l.delay):
		return &store.RegistryData{Status: "ATIVA"}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

type countingStore struct {
	store.RecordStore
	sets int
}

func (c *countingStore) Set(ctx context.Context, collection string, payload json.RawMessage) error {
	c.sets++
	return c.RecordStore.Set(ctx, collection, payload)
}
