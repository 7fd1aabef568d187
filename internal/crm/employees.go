package crm

import (
	"context"
	"strings"
	"time"

	"github.com/farxc/carteira-devedores/internal/auth"
	"github.com/farxc/carteira-devedores/internal/logger"
	"github.com/farxc/carteira-devedores/internal/store"
	"github.com/farxc/carteira-devedores/internal/utils"
	"github.com/farxc/carteira-devedores/internal/validation"
	"github.com/google/uuid"
)

func employeeID(e store.Employee) string { return e.ID }

type EmployeeService struct {
	store  *store.Storage
	logger *logger.Logger
	now    func() time.Time
}

func NewEmployeeService(s *store.Storage, l *logger.Logger) *EmployeeService {
	return &EmployeeService{store: s, logger: l, now: time.Now}
}

type EmployeeInput struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Title      string `json:"title"`
	Department string `json:"department"`
	Role       string `json:"role"`
	Active     *bool  `json:"active"`
}

func (in EmployeeInput) build(e *store.Employee) error {
	e.Name = strings.TrimSpace(in.Name)
	e.Email = strings.ToLower(strings.TrimSpace(in.Email))
	e.Title = strings.TrimSpace(in.Title)
	e.Department = strings.TrimSpace(in.Department)
	e.Role = in.Role
	if e.Role == "" {
		e.Role = auth.RoleAgent
	}
	if in.Active != nil {
		e.Active = *in.Active
	}

	v := validation.Violations{}
	if fields, ok := validation.Fields(validation.Struct(*e)); ok {
		v = fields
	}
	phone, err := utils.NormalizePhone(in.Phone, utils.DefaultRegion)
	if err != nil {
		v["phone"] = "invalid_phone"
	}
	e.Phone = phone
	return v.AsError()
}

func (svc *EmployeeService) List(ctx context.Context, activeOnly bool) ([]store.Employee, error) {
	all, err := svc.store.Employees.List(ctx)
	if err != nil || !activeOnly {
		return all, err
	}
	out := []store.Employee{}
	for _, e := range all {
		if e.Active {
			out = append(out, e)
		}
	}
	return out, nil
}

func (svc *EmployeeService) Get(ctx context.Context, id string) (*store.Employee, error) {
	all, err := svc.store.Employees.List(ctx)
	if err != nil {
		return nil, err
	}
	if i := indexOf(all, id, employeeID); i >= 0 {
		return &all[i], nil
	}
	return nil, ErrEmployeeNotFound
}

func (svc *EmployeeService) Create(ctx context.Context, in EmployeeInput, s auth.Session) (*store.Employee, error) {
	if !s.IsSupervisor() {
		return nil, auth.ErrForbidden
	}

	e := store.Employee{ID: uuid.NewString(), Active: true, CreatedAt: svc.now().UTC()}
	if err := in.build(&e); err != nil {
		return nil, err
	}

	err := svc.store.Employees.Update(ctx, func(items []store.Employee) ([]store.Employee, error) {
		if emailTaken(items, e.Email, "") {
			return nil, ErrDuplicateEmail
		}
		return append(items, e), nil
	})
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (svc *EmployeeService) Update(ctx context.Context, id string, in EmployeeInput, s auth.Session) (*store.Employee, error) {
	if !s.IsSupervisor() {
		return nil, auth.ErrForbidden
	}

	var result store.Employee
	err := svc.store.Employees.Update(ctx, func(items []store.Employee) ([]store.Employee, error) {
		i := indexOf(items, id, employeeID)
		if i < 0 {
			return nil, ErrEmployeeNotFound
		}
		next := items[i]
		if err := in.build(&next); err != nil {
			return nil, err
		}
		if emailTaken(items, next.Email, id) {
			return nil, ErrDuplicateEmail
		}
		items[i] = next
		result = next
		return items, nil
	})
	if err != nil {
		return nil, err
	}

	// Clients carry a copy of the owner's name.
	err = svc.store.Clients.Update(ctx, func(clients []store.ClientCompany) ([]store.ClientCompany, error) {
		changed := false
		for i := range clients {
			if clients[i].AssignedEmployeeID == id && clients[i].AssignedEmployeeName != result.Name {
				clients[i].AssignedEmployeeName = result.Name
				changed = true
			}
		}
		if !changed {
			return nil, store.ErrNoChange
		}
		return clients, nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Delete refuses to remove an employee who still owns clients. The ownership
// check and the removal both run while the client collection is held, the
// same lock assignments take.
func (svc *EmployeeService) Delete(ctx context.Context, id string, s auth.Session) error {
	const component = "Employees"
	if !s.IsSupervisor() {
		return auth.ErrForbidden
	}

	err := svc.store.Clients.Update(ctx, func(clients []store.ClientCompany) ([]store.ClientCompany, error) {
		for _, c := range clients {
			if c.AssignedEmployeeID == id {
				return nil, ErrEmployeeHasWork
			}
		}
		err := svc.store.Employees.Update(ctx, func(items []store.Employee) ([]store.Employee, error) {
			i := indexOf(items, id, employeeID)
			if i < 0 {
				return nil, ErrEmployeeNotFound
			}
			return remove(items, i), nil
		})
		if err != nil {
			return nil, err
		}
		return nil, store.ErrNoChange
	})
	if err != nil {
		return err
	}
	svc.logger.Info(component, "Employee removed: employeeId=%s by=%s", id, s.UserID)
	return nil
}

func emailTaken(items []store.Employee, email, exceptID string) bool {
	for _, e := range items {
		if e.ID != exceptID && e.Email == email {
			return true
		}
	}
	return false
}
