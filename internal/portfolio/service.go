package portfolio

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/farxc/carteira-devedores/internal/auth"
	"github.com/farxc/carteira-devedores/internal/logger"
	"github.com/farxc/carteira-devedores/internal/store"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrClientNotFound   = errors.New("client not found")
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEmployeeInactive = errors.New("employee is inactive")
	ErrInvalidStage     = errors.New("invalid negotiation stage")
	ErrInvalidContract  = errors.New("invalid contract")
	ErrContractNotFound = errors.New("contract not found")
)

var hundred = decimal.NewFromInt(100)

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

func (svc *Service) Clients(ctx context.Context, f FilterSpec) ([]store.ClientCompany, error) {
	all, err := svc.store.Clients.List(ctx)
	if err != nil {
		return nil, err
	}
	return FilterClients(all, f), nil
}

func (svc *Service) Client(ctx context.Context, id string) (*store.ClientCompany, error) {
	all, err := svc.store.Clients.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			return &all[i], nil
		}
	}
	return nil, ErrClientNotFound
}

type Overview struct {
	Portfolios      []View                `json:"portfolios"`
	Unassigned      []store.ClientCompany `json:"unassigned"`
	UnassignedValue decimal.Decimal       `json:"unassigned_value"`
}

// Overview builds every employee's portfolio over the clients matching f.
func (svc *Service) Overview(ctx context.Context, f FilterSpec) (*Overview, error) {
	filtered, err := svc.Clients(ctx, f)
	if err != nil {
		return nil, err
	}
	employees, err := svc.store.Employees.List(ctx)
	if err != nil {
		return nil, err
	}

	unassigned := Unassigned(filtered)
	return &Overview{
		Portfolios:      BuildPortfolios(employees, filtered),
		Unassigned:      unassigned,
		UnassignedValue: TotalSelected(unassigned),
	}, nil
}

// Assign hands a client to an active employee. Supervisors may assign anyone;
// other sessions may only claim an unassigned client for themselves. The
// employee is read while the client collection is held, so a concurrent
// employee removal cannot leave the client with an owner that no longer exists.
// Assigning a client to its current owner changes nothing.
func (svc *Service) Assign(ctx context.Context, clientID, employeeID string, s auth.Session) (*store.ClientCompany, error) {
	const component = "Portfolio"

	var employee *store.Employee
	updated, err := svc.mutate(ctx, clientID, func(c *store.ClientCompany) error {
		if !s.IsSupervisor() && (employeeID != s.UserID || c.AssignedEmployeeID != "") {
			return auth.ErrForbidden
		}
		e, err := svc.employee(ctx, employeeID)
		if err != nil {
			return err
		}
		if !e.Active {
			return ErrEmployeeInactive
		}
		if c.AssignedEmployeeID == e.ID {
			return store.ErrNoChange
		}
		employee = e

		c.AssignedEmployeeID = e.ID
		c.AssignedEmployeeName = e.Name
		c.ExtraInfo.Assignments = append(c.ExtraInfo.Assignments, store.Assignment{
			EmployeeID:   e.ID,
			EmployeeName: e.Name,
			AssignedBy:   s.UserID,
			AssignedAt:   svc.now().UTC(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	if employee != nil {
		svc.logger.Info(component, "Client assigned: clientId=%s employeeId=%s by=%s", clientID, employee.ID, s.UserID)
	}
	return updated, nil
}

// Unassign clears the owner and drops the owner's assignment entries.
func (svc *Service) Unassign(ctx context.Context, clientID string, s auth.Session) (*store.ClientCompany, error) {
	const component = "Portfolio"

	updated, err := svc.mutate(ctx, clientID, func(c *store.ClientCompany) error {
		if !s.IsSupervisor() && c.AssignedEmployeeID != s.UserID {
			return auth.ErrForbidden
		}
		if c.AssignedEmployeeID == "" {
			return store.ErrNoChange
		}

		kept := c.ExtraInfo.Assignments[:0]
		for _, a := range c.ExtraInfo.Assignments {
			if a.EmployeeID != c.AssignedEmployeeID {
				kept = append(kept, a)
			}
		}
		if len(kept) == 0 {
			kept = nil
		}
		c.ExtraInfo.Assignments = kept
		c.AssignedEmployeeID = ""
		c.AssignedEmployeeName = ""
		return nil
	})
	if err != nil {
		return nil, err
	}

	svc.logger.Info(component, "Client unassigned: clientId=%s by=%s", clientID, s.UserID)
	return updated, nil
}

func (svc *Service) UpdateStage(ctx context.Context, clientID string, stage store.Stage, s auth.Session) (*store.ClientCompany, error) {
	if !stage.Valid() {
		return nil, ErrInvalidStage
	}
	return svc.mutate(ctx, clientID, func(c *store.ClientCompany) error {
		if !svc.canWork(c, s) {
			return auth.ErrForbidden
		}
		c.NegotiationStage = stage
		return nil
	})
}

type ContractInput struct {
	ServiceName      string          `json:"service_name"`
	BaseDebtValue    decimal.Decimal `json:"base_debt_value"`
	AgreedPercentage decimal.Decimal `json:"agreed_percentage"`
	Status           string          `json:"status"`
	ContractDate     time.Time       `json:"contract_date"`
}

// AddContract appends a fee agreement. A client still in the early stages
// moves to contracted.
func (svc *Service) AddContract(ctx context.Context, clientID string, in ContractInput, s auth.Session) (*store.Contract, error) {
	contract, err := svc.newContract(in)
	if err != nil {
		return nil, err
	}

	_, err = svc.mutate(ctx, clientID, func(c *store.ClientCompany) error {
		if !svc.canWork(c, s) {
			return auth.ErrForbidden
		}
		c.Contracts = append(c.Contracts, *contract)
		switch c.NegotiationStage {
		case store.StageProspecting, store.StageNegotiating, store.StageProposal:
			c.NegotiationStage = store.StageContracted
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return contract, nil
}

func (svc *Service) SetContractStatus(ctx context.Context, clientID, contractID string, status store.ContractStatus, s auth.Session) (*store.ClientCompany, error) {
	if !validContractStatus(status) {
		return nil, ErrInvalidContract
	}
	return svc.mutate(ctx, clientID, func(c *store.ClientCompany) error {
		if !svc.canWork(c, s) {
			return auth.ErrForbidden
		}
		for i := range c.Contracts {
			if c.Contracts[i].ID == contractID {
				c.Contracts[i].Status = status
				return nil
			}
		}
		return ErrContractNotFound
	})
}

func (svc *Service) newContract(in ContractInput) (*store.Contract, error) {
	status := store.ContractStatus(in.Status)
	if status == "" {
		status = store.ContractPending
	}
	if strings.TrimSpace(in.ServiceName) == "" || !in.BaseDebtValue.IsPositive() ||
		!in.AgreedPercentage.IsPositive() || in.AgreedPercentage.GreaterThan(hundred) || !validContractStatus(status) {
		return nil, ErrInvalidContract
	}

	date := in.ContractDate
	if date.IsZero() {
		date = svc.now().UTC()
	}
	return &store.Contract{
		ID:               uuid.NewString(),
		ServiceName:      strings.TrimSpace(in.ServiceName),
		BaseDebtValue:    in.BaseDebtValue,
		AgreedPercentage: in.AgreedPercentage,
		FeeValue:         FeeValue(in.BaseDebtValue, in.AgreedPercentage),
		Status:           status,
		ContractDate:     date,
	}, nil
}

// FeeValue is base × percentage / 100, rounded to cents.
func FeeValue(base, percentage decimal.Decimal) decimal.Decimal {
	return base.Mul(percentage).Div(hundred).Round(2)
}

func validContractStatus(s store.ContractStatus) bool {
	switch s {
	case store.ContractPending, store.ContractActive, store.ContractConcluded, store.ContractCancelled:
		return true
	}
	return false
}

func (svc *Service) canWork(c *store.ClientCompany, s auth.Session) bool {
	return s.IsSupervisor() || c.AssignedEmployeeID == s.UserID
}

func (svc *Service) employee(ctx context.Context, id string) (*store.Employee, error) {
	employees, err := svc.store.Employees.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range employees {
		if employees[i].ID == id {
			return &employees[i], nil
		}
	}
	return nil, ErrEmployeeNotFound
}

// mutate applies fn to one client and persists the whole collection. When fn
// returns store.ErrNoChange the client is returned as it was.
func (svc *Service) mutate(ctx context.Context, clientID string, fn func(c *store.ClientCompany) error) (*store.ClientCompany, error) {
	var result store.ClientCompany
	err := svc.store.Clients.Update(ctx, func(items []store.ClientCompany) ([]store.ClientCompany, error) {
		for i := range items {
			if items[i].ID != clientID {
				continue
			}
			if err := fn(&items[i]); err != nil {
				result = items[i]
				return nil, err
			}
			items[i].UpdatedAt = svc.now().UTC()
			result = items[i]
			return items, nil
		}
		return nil, ErrClientNotFound
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
