package portfolio

import (
	"github.com/farxc/carteira-devedores/internal/store"
	"github.com/shopspring/decimal"
)

// View is one employee's share of a filtered client set.
type View struct {
	Employee store.Employee        `json:"employee"`
	Clients  []store.ClientCompany `json:"clients"`
	Count    int                   `json:"count"`
	Value    decimal.Decimal       `json:"value"`
}

// BuildPortfolios returns one View per employee, in the order given, even
// when the employee owns none of the filtered clients.
func BuildPortfolios(employees []store.Employee, filtered []store.ClientCompany) []View {
	byEmployee := make(map[string][]store.ClientCompany, len(employees))
	for _, c := range filtered {
		if c.AssignedEmployeeID != "" {
			byEmployee[c.AssignedEmployeeID] = append(byEmployee[c.AssignedEmployeeID], c)
		}
	}

	views := make([]View, 0, len(employees))
	for _, e := range employees {
		clients := byEmployee[e.ID]
		if clients == nil {
			clients = []store.ClientCompany{}
		}
		views = append(views, View{
			Employee: e,
			Clients:  clients,
			Count:    len(clients),
			Value:    TotalSelected(clients),
		})
	}
	return views
}

func Unassigned(filtered []store.ClientCompany) []store.ClientCompany {
	out := []store.ClientCompany{}
	for _, c := range filtered {
		if c.AssignedEmployeeID == "" {
			out = append(out, c)
		}
	}
	return out
}

func TotalSelected(clients []store.ClientCompany) decimal.Decimal {
	total := decimal.Zero
	for _, c := range clients {
		total = total.Add(c.SelectedDebtAmount)
	}
	return total
}

type StageTotal struct {
	Count int             `json:"count"`
	Value decimal.Decimal `json:"value"`
}

type Summary struct {
	Count           int                        `json:"count"`
	Value           decimal.Decimal            `json:"value"`
	UnassignedCount int                        `json:"unassigned_count"`
	UnassignedValue decimal.Decimal            `json:"unassigned_value"`
	ByStage         map[store.Stage]StageTotal `json:"by_stage"`
}

// Summarize totals selected debt overall, per stage and for the unassigned set.
func Summarize(filtered []store.ClientCompany) Summary {
	s := Summary{
		Value:           decimal.Zero,
		UnassignedValue: decimal.Zero,
		ByStage:         make(map[store.Stage]StageTotal, len(store.Stages)),
	}
	for _, stage := range store.Stages {
		s.ByStage[stage] = StageTotal{Value: decimal.Zero}
	}

	for _, c := range filtered {
		s.Count++
		s.Value = s.Value.Add(c.SelectedDebtAmount)

		st := s.ByStage[c.NegotiationStage]
		st.Count++
		st.Value = st.Value.Add(c.SelectedDebtAmount)
		s.ByStage[c.NegotiationStage] = st

		if c.AssignedEmployeeID == "" {
			s.UnassignedCount++
			s.UnassignedValue = s.UnassignedValue.Add(c.SelectedDebtAmount)
		}
	}
	return s
}
