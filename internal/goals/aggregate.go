package goals

import (
	"github.com/farxc/carteira-devedores/internal/store"
	"github.com/shopspring/decimal"
)

// AggregateCurrentValue sums fee values of active and concluded contracts on
// clients owned by the goal's scope: the goal's employee, or every employee
// of its department. Contracts dated outside the goal period are ignored
// when the period is set.
func AggregateCurrentValue(g store.Goal, employees []store.Employee, clients []store.ClientCompany) decimal.Decimal {
	scope := map[string]bool{}
	switch g.Kind {
	case store.GoalIndividual:
		scope[g.EmployeeID] = true
	case store.GoalDepartmental:
		for _, e := range employees {
			if e.Department == g.Department {
				scope[e.ID] = true
			}
		}
	}

	total := decimal.Zero
	for _, c := range clients {
		if c.AssignedEmployeeID == "" || !scope[c.AssignedEmployeeID] {
			continue
		}
		for _, ct := range c.Contracts {
			if ct.Status != store.ContractActive && ct.Status != store.ContractConcluded {
				continue
			}
			if !g.StartDate.IsZero() && ct.ContractDate.Before(g.StartDate) {
				continue
			}
			if !g.EndDate.IsZero() && ct.ContractDate.After(g.EndDate) {
				continue
			}
			total = total.Add(ct.FeeValue)
		}
	}
	return total
}
