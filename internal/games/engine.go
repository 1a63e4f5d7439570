package games

import (
	"github.com/shopspring/decimal"

	"github.com/osse101/SlotHouse_Go/internal/domain"
)

// Engine is the draw and evaluation pair of one game.
// Draw never fails. Evaluate is pure: the same draw always yields the same outcome.
type Engine interface {
	ID() domain.GameID
	ReelCount() int
	Symbols() []domain.Symbol
	Draw(rng RandomSource) domain.ReelDraw
	Evaluate(draw domain.ReelDraw) domain.SpinOutcome
}

// Spin draws and evaluates in one step
func Spin(e Engine, rng RandomSource) domain.SpinOutcome {
	return e.Evaluate(e.Draw(rng))
}

// uniform picks one of symbols with equal probability
func uniform(rng RandomSource, symbols []domain.Symbol) domain.Symbol {
	return symbols[rng.IntN(len(symbols))]
}

// finish fills the win flag and clamps a negative multiplier to zero
func finish(out domain.SpinOutcome) domain.SpinOutcome {
	if out.Multiplier.IsNegative() {
		out.Multiplier = decimal.Zero
	}
	out.Win = out.Multiplier.IsPositive()
	return out
}
