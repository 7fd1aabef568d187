package goals

import (
	"github.com/farxc/carteira-devedores/internal/store"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Progress is currentValue / targetValue as a percentage, not clamped, so a
// goal beaten twice over reports 200. A non-positive target yields 0.
func Progress(g store.Goal) float64 {
	if !g.TargetValue.IsPositive() {
		return 0
	}
	return g.CurrentValue.Div(g.TargetValue).Mul(hundred).Round(2).InexactFloat64()
}

// Display clamps Progress to [0, 100] for bars and rankings.
func Display(g store.Goal) float64 {
	p := Progress(g)
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}

type View struct {
	store.Goal
	Progress        float64 `json:"progress"`
	DisplayProgress float64 `json:"display_progress"`
}

func NewView(g store.Goal) View {
	return View{Goal: g, Progress: Progress(g), DisplayProgress: Display(g)}
}
