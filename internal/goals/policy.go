package goals

import (
	"github.com/farxc/carteira-devedores/internal/auth"
	"github.com/farxc/carteira-devedores/internal/store"
)

// CanView: supervisors see everything, agents see their own individual goals
// and their department's goals.
func CanView(g store.Goal, s auth.Session) bool {
	if s.IsSupervisor() {
		return true
	}
	switch g.Kind {
	case store.GoalIndividual:
		return g.EmployeeID == s.UserID
	case store.GoalDepartmental:
		return s.Department != "" && g.Department == s.Department
	}
	return false
}

// CanEdit covers every field and deletion.
func CanEdit(s auth.Session) bool {
	return s.IsSupervisor()
}

// CanUpdateProgress lets an assignee move currentValue on their own goal.
func CanUpdateProgress(g store.Goal, s auth.Session) bool {
	return s.IsSupervisor() || (g.Kind == store.GoalIndividual && g.EmployeeID == s.UserID)
}

func Visible(all []store.Goal, s auth.Session) []store.Goal {
	out := []store.Goal{}
	for _, g := range all {
		if CanView(g, s) {
			out = append(out, g)
		}
	}
	return out
}
