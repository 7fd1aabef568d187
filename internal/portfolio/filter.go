package portfolio

import (
	"strings"

	"github.com/farxc/carteira-devedores/internal/store"
	"github.com/farxc/carteira-devedores/internal/utils"
	"github.com/shopspring/decimal"
)

// UnassignedFilter as FilterSpec.EmployeeID selects clients nobody owns.
const UnassignedFilter = "unassigned"

// FilterSpec fields are combined with AND. Zero values impose no constraint.
type FilterSpec struct {
	EmployeeID     string
	DebtNature     string
	MinSelected    *decimal.Decimal
	MaxSelected    *decimal.Decimal
	RegistryStatus string
	Stage          store.Stage
	Query          string
}

func (f FilterSpec) Match(c store.ClientCompany) bool {
	switch {
	case f.EmployeeID == UnassignedFilter:
		if c.AssignedEmployeeID != "" {
			return false
		}
	case f.EmployeeID != "":
		if c.AssignedEmployeeID != f.EmployeeID {
			return false
		}
	}

	if f.DebtNature != "" && !strings.EqualFold(c.DebtNature, f.DebtNature) {
		return false
	}
	if f.MinSelected != nil && c.SelectedDebtAmount.LessThan(*f.MinSelected) {
		return false
	}
	if f.MaxSelected != nil && c.SelectedDebtAmount.GreaterThan(*f.MaxSelected) {
		return false
	}
	if f.RegistryStatus != "" && !strings.EqualFold(c.RegistryStatus, f.RegistryStatus) {
		return false
	}
	if f.Stage != "" && c.NegotiationStage != f.Stage {
		return false
	}
	if q := strings.TrimSpace(f.Query); q != "" && !matchesQuery(c, q) {
		return false
	}
	return true
}

func matchesQuery(c store.ClientCompany, q string) bool {
	lower := strings.ToLower(q)
	if strings.Contains(strings.ToLower(c.LegalName), lower) || strings.Contains(strings.ToLower(c.TradeName), lower) {
		return true
	}
	digits := utils.DigitsOnly(q)
	return digits != "" && strings.Contains(utils.DigitsOnly(c.TaxID), digits)
}

// FilterClients keeps the input order.
func FilterClients(all []store.ClientCompany, f FilterSpec) []store.ClientCompany {
	out := make([]store.ClientCompany, 0, len(all))
	for _, c := range all {
		if f.Match(c) {
			out = append(out, c)
		}
	}
	return out
}
