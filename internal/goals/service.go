package goals

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/farxc/carteira-devedores/internal/auth"
	"github.com/farxc/carteira-devedores/internal/logger"
	"github.com/farxc/carteira-devedores/internal/store"
	"github.com/farxc/carteira-devedores/internal/validation"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrGoalNotFound = errors.New("goal not found")

type Service struct {
	store  *store.Storage
	logger *logger.Logger
	now    func() time.Time
}

func NewService(s *store.Storage, l *logger.Logger) *Service {
	return &Service{store: s, logger: l, now: time.Now}
}

func (svc *Service) WithClock(now func() time.Time) *Service {
	svc.now = now
	return svc
}

type Input struct {
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Kind         store.GoalKind  `json:"kind"`
	EmployeeID   string          `json:"employee_id"`
	Department   string          `json:"department"`
	TargetValue  decimal.Decimal `json:"target_value"`
	CurrentValue decimal.Decimal `json:"current_value"`
	StartDate    time.Time       `json:"start_date"`
	EndDate      time.Time       `json:"end_date"`
}

func (in Input) apply(g *store.Goal) {
	g.Title = strings.TrimSpace(in.Title)
	g.Description = in.Description
	g.Kind = in.Kind
	g.EmployeeID = in.EmployeeID
	g.Department = in.Department
	g.TargetValue = in.TargetValue
	g.CurrentValue = in.CurrentValue
	g.StartDate = in.StartDate
	g.EndDate = in.EndDate
	if g.Kind == store.GoalIndividual {
		g.Department = ""
	} else {
		g.EmployeeID = ""
	}
}

func validate(g store.Goal) error {
	v := validation.Violations{}
	if fields, ok := validation.Fields(validation.Struct(g)); ok {
		v = fields
	}
	validation.Positive("target_value", g.TargetValue, v)
	validation.NotNegative("current_value", g.CurrentValue, v)
	if !g.StartDate.IsZero() && !g.EndDate.IsZero() && g.EndDate.Before(g.StartDate) {
		v["end_date"] = "must_be_after: start_date"
	}
	return v.AsError()
}

// List returns the goals s may see, with progress attached.
func (svc *Service) List(ctx context.Context, s auth.Session) ([]View, error) {
	all, err := svc.store.Goals.List(ctx)
	if err != nil {
		return nil, err
	}
	visible := Visible(all, s)
	views := make([]View, 0, len(visible))
	for _, g := range visible {
		views = append(views, NewView(g))
	}
	return views, nil
}

func (svc *Service) Get(ctx context.Context, id string, s auth.Session) (*View, error) {
	g, err := svc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanView(*g, s) {
		return nil, auth.ErrForbidden
	}
	v := NewView(*g)
	return &v, nil
}

func (svc *Service) Create(ctx context.Context, in Input, s auth.Session) (*View, error) {
	if !CanEdit(s) {
		return nil, auth.ErrForbidden
	}

	g := store.Goal{ID: uuid.NewString(), CreatedBy: s.UserID, UpdatedAt: svc.now().UTC()}
	in.apply(&g)
	if err := validate(g); err != nil {
		return nil, err
	}

	err := svc.store.Goals.Update(ctx, func(items []store.Goal) ([]store.Goal, error) {
		return append(items, g), nil
	})
	if err != nil {
		return nil, err
	}
	v := NewView(g)
	return &v, nil
}

func (svc *Service) Update(ctx context.Context, id string, in Input, s auth.Session) (*View, error) {
	if !CanEdit(s) {
		return nil, auth.ErrForbidden
	}
	return svc.mutate(ctx, id, func(g *store.Goal) error {
		next := *g
		in.apply(&next)
		if err := validate(next); err != nil {
			return err
		}
		*g = next
		return nil
	})
}

// UpdateProgress sets only currentValue. It is the one change an assignee may make.
func (svc *Service) UpdateProgress(ctx context.Context, id string, current decimal.Decimal, s auth.Session) (*View, error) {
	if current.IsNegative() {
		return nil, validation.Violations{"current_value": "must_not_be_negative"}.AsError()
	}
	return svc.mutate(ctx, id, func(g *store.Goal) error {
		if !CanUpdateProgress(*g, s) {
			return auth.ErrForbidden
		}
		g.CurrentValue = current
		return nil
	})
}

func (svc *Service) Delete(ctx context.Context, id string, s auth.Session) error {
	if !CanEdit(s) {
		return auth.ErrForbidden
	}
	return svc.store.Goals.Update(ctx, func(items []store.Goal) ([]store.Goal, error) {
		for i := range items {
			if items[i].ID == id {
				return append(items[:i], items[i+1:]...), nil
			}
		}
		return nil, ErrGoalNotFound
	})
}

// SyncFromContracts recomputes currentValue from the contracts owned by the goal's scope.
func (svc *Service) SyncFromContracts(ctx context.Context, id string, s auth.Session) (*View, error) {
	const component = "Goals"

	employees, err := svc.store.Employees.List(ctx)
	if err != nil {
		return nil, err
	}
	clients, err := svc.store.Clients.List(ctx)
	if err != nil {
		return nil, err
	}

	view, err := svc.mutate(ctx, id, func(g *store.Goal) error {
		if !CanUpdateProgress(*g, s) {
			return auth.ErrForbidden
		}
		g.CurrentValue = AggregateCurrentValue(*g, employees, clients)
		return nil
	})
	if err != nil {
		return nil, err
	}
	svc.logger.Info(component, "Goal synced from contracts: goalId=%s currentValue=%s progress=%.2f", id, view.CurrentValue, view.Progress)
	return view, nil
}

func (svc *Service) find(ctx context.Context, id string) (*store.Goal, error) {
	all, err := svc.store.Goals.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			return &all[i], nil
		}
	}
	return nil, ErrGoalNotFound
}

func (svc *Service) mutate(ctx context.Context, id string, fn func(g *store.Goal) error) (*View, error) {
	var result store.Goal
	err := svc.store.Goals.Update(ctx, func(items []store.Goal) ([]store.Goal, error) {
		for i := range items {
			if items[i].ID != id {
				continue
			}
			if err := fn(&items[i]); err != nil {
				return nil, err
			}
			items[i].UpdatedAt = svc.now().UTC()
			result = items[i]
			return items, nil
		}
		return nil, ErrGoalNotFound
	})
	if err != nil {
		return nil, err
	}
	v := NewView(result)
	return &v, nil
}
