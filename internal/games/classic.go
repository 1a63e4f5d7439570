package games

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/osse101/SlotHouse_Go/internal/domain"
)

// Classic is the 3 reel Classic 777 game. Every symbol is equally likely.
type Classic struct{}

func (Classic) ID() domain.GameID { return domain.GameClassic777 }

func (Classic) ReelCount() int { return ClassicReels }

func (Classic) Symbols() []domain.Symbol { return append([]domain.Symbol(nil), classicSymbols...) }

func (Classic) Draw(rng RandomSource) domain.ReelDraw {
	draw := make(domain.ReelDraw, ClassicReels)
	for i := range draw {
		draw[i] = domain.Reel{Symbol: uniform(rng, classicSymbols)}
	}
	return draw
}

// Evaluate checks the exact payline table first, then falls back to counting cherries
func (Classic) Evaluate(draw domain.ReelDraw) domain.SpinOutcome {
	combination := joinSymbols(draw)
	out := domain.SpinOutcome{
		Game:        domain.GameClassic777,
		Reels:       draw,
		Combination: combination,
		Multiplier:  decimal.Zero,
	}

	if payout, ok := ClassicPaylines[combination]; ok {
		out.Multiplier = decimal.NewFromInt(payout)
	} else {
		switch draw.Count(SymbolCherry) {
		case 2:
			out.Combination = CombinationTwoCherries
			out.Multiplier = decimal.NewFromInt(TwoCherryPayout)
		case 1:
			out.Combination = CombinationOneCherry
			out.Multiplier = decimal.NewFromInt(OneCherryPayout)
		}
	}

	out.BaseWin = out.Multiplier
	out.TotalWin = out.Multiplier
	return finish(out)
}

func joinSymbols(draw domain.ReelDraw) string {
	parts := make([]string, len(draw))
	for i, r := range draw {
		parts[i] = string(r.Symbol)
	}
	return strings.Join(parts, "-")
}
