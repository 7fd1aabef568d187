package goals

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/farxc/carteira-devedores/internal/auth"
	"github.com/farxc/carteira-devedores/internal/logger"
	"github.com/farxc/carteira-devedores/internal/store"
	"github.com/farxc/carteira-devedores/internal/validation"
	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var (
	manager = auth.Session{UserID: "m1", Role: auth.RoleManager, Department: "cobranca"}
	ana     = auth.Session{UserID: "e1", Role: auth.RoleAgent, Department: "cobranca"}
	bruno   = auth.Session{UserID: "e2", Role: auth.RoleAgent, Department: "juridico"}
)

func TestProgress(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		current string
		want    float64
		display float64
	}{
		{"partial progress", "500000", "320000", 64, 64},
		{"zero target", "0", "100", 0, 0},
		{"negative target", "-10", "100", 0, 0},
		{"over target", "100", "250", 250, 100},
		{"negative current", "100", "-5", -5, 0},
		{"rounding", "3", "1", 33.33, 33.33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := store.Goal{TargetValue: d(tt.target), CurrentValue: d(tt.current)}
			got := Progress(g)
			if math.IsNaN(got) || math.IsInf(got, 0) || got != tt.want {
				t.Fatalf("Progress: expected %v, got %v", tt.want, got)
			}
			if disp := Display(g); disp != tt.display {
				t.Fatalf("Display: expected %v, got %v", tt.display, disp)
			}
		})
	}

	if got := Progress(store.Goal{}); got != 0 {
		t.Fatalf("expected 0 for absent target, got %v", got)
	}
}

func TestPolicy(t *testing.T) {
	own := store.Goal{Kind: store.GoalIndividual, EmployeeID: "e1"}
	dept := store.Goal{Kind: store.GoalDepartmental, Department: "cobranca"}

	if !CanView(own, ana) || CanView(own, bruno) || !CanView(own, manager) {
		t.Fatalf("unexpected individual visibility")
	}
	if !CanView(dept, ana) || CanView(dept, bruno) {
		t.Fatalf("unexpected departmental visibility")
	}
	if !CanUpdateProgress(own, ana) || CanUpdateProgress(dept, ana) || CanUpdateProgress(own, bruno) {
		t.Fatalf("unexpected progress permissions")
	}
	if CanEdit(ana) || !CanEdit(manager) {
		t.Fatalf("unexpected edit permissions")
	}
	if got := Visible([]store.Goal{own, dept}, bruno); len(got) != 0 {
		t.Fatalf("expected nothing visible to bruno, got %d", len(got))
	}
}

func TestAggregateCurrentValue(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	in := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	out := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)

	employees := []store.Employee{{ID: "e1", Department: "cobranca"}, {ID: "e2", Department: "cobranca"}, {ID: "e3", Department: "juridico"}}
	clients := []store.ClientCompany{
		{AssignedEmployeeID: "e1", Contracts: []store.Contract{
			{FeeValue: d("100"), Status: store.ContractActive, ContractDate: in},
			{FeeValue: d("50"), Status: store.ContractPending, ContractDate: in},
			{FeeValue: d("70"), Status: store.ContractConcluded, ContractDate: out},
		}},
		{AssignedEmployeeID: "e2", Contracts: []store.Contract{{FeeValue: d("30"), Status: store.ContractConcluded, ContractDate: in}}},
		{AssignedEmployeeID: "e3", Contracts: []store.Contract{{FeeValue: d("999"), Status: store.ContractActive, ContractDate: in}}},
		{Contracts: []store.Contract{{FeeValue: d("999"), Status: store.ContractActive, ContractDate: in}}},
	}

	individual := store.Goal{Kind: store.GoalIndividual, EmployeeID: "e1", StartDate: start, EndDate: end}
	if got := AggregateCurrentValue(individual, employees, clients); !got.Equal(d("100")) {
		t.Fatalf("expected 100, got %s", got)
	}

	departmental := store.Goal{Kind: store.GoalDepartmental, Department: "cobranca"}
	if got := AggregateCurrentValue(departmental, employees, clients); !got.Equal(d("200")) {
		t.Fatalf("expected 200 without period, got %s", got)
	}
}

func newTestService() *Service {
	storage := store.NewStorage(store.NewMemoryStore())
	return NewService(storage, logger.Discard())
}

func TestServiceLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	in := Input{Title: "Recuperar 500k", Kind: store.GoalIndividual, EmployeeID: "e1", TargetValue: d("500000")}
	if _, err := svc.Create(ctx, in, ana); !errors.Is(err, auth.ErrForbidden) {
		t.Fatalf("expected agent create to be forbidden, got %v", err)
	}

	created, err := svc.Create(ctx, in, manager)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	view, err := svc.UpdateProgress(ctx, created.ID, d("320000"), ana)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Progress != 64 {
		t.Fatalf("expected 64%%, got %v", view.Progress)
	}

	if _, err := svc.UpdateProgress(ctx, created.ID, d("1"), bruno); !errors.Is(err, auth.ErrForbidden) {
		t.Fatalf("expected other agent to be forbidden, got %v", err)
	}
	if _, err := svc.Update(ctx, created.ID, in, ana); !errors.Is(err, auth.ErrForbidden) {
		t.Fatalf("expected assignee full edit to be forbidden, got %v", err)
	}
	if err := svc.Delete(ctx, created.ID, ana); !errors.Is(err, auth.ErrForbidden) {
		t.Fatalf("expected assignee delete to be forbidden, got %v", err)
	}

	list, _ := svc.List(ctx, bruno)
	if len(list) != 0 {
		t.Fatalf("expected bruno to see no goals, got %d", len(list))
	}

	if err := svc.Delete(ctx, created.ID, manager); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Get(ctx, created.ID, manager); !errors.Is(err, ErrGoalNotFound) {
		t.Fatalf("expected ErrGoalNotFound, got %v", err)
	}
}

func TestServiceValidation(t *testing.T) {
	svc := newTestService()

	_, err := svc.Create(context.Background(), Input{Kind: store.GoalIndividual}, manager)
	fields, ok := validation.Fields(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	for _, f := range []string{"title", "employee_id", "target_value"} {
		if _, ok := fields[f]; !ok {
			t.Fatalf("expected violation for %s, got %v", f, fields)
		}
	}

	_, err = svc.Create(context.Background(), Input{Title: "x", Kind: store.GoalDepartmental, TargetValue: d("1")}, manager)
	if fields, _ := validation.Fields(err); fields["department"] == "" {
		t.Fatalf("expected department violation, got %v", err)
	}
}

func TestSyncFromContracts(t *testing.T) {
	ctx := context.Background()
	storage := store.NewStorage(store.NewMemoryStore())
	svc := NewService(storage, logger.Discard())

	_ = storage.Clients.Replace(ctx, []store.ClientCompany{{
		AssignedEmployeeID: "e1",
		Contracts:          []store.Contract{{FeeValue: d("125000"), Status: store.ContractActive}},
	}})
	created, _ := svc.Create(ctx, Input{Title: "meta", Kind: store.GoalIndividual, EmployeeID: "e1", TargetValue: d("500000")}, manager)

	view, err := svc.SyncFromContracts(ctx, created.ID, ana)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !view.CurrentValue.Equal(d("125000")) || view.Progress != 25 {
		t.Fatalf("unexpected synced goal %+v", view)
	}
}
