package games

import (
	"github.com/shopspring/decimal"

	"github.com/osse101/SlotHouse_Go/internal/domain"
)

var multiplierFactors = parseFactors(MultiplierValues)

func parseFactors(values []string) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		out[i] = decimal.RequireFromString(v)
	}
	return out
}

// Ancient is the 5 reel Ancient Gold game. MULTIPLIER appears on 10% of reels
// and carries its factor in Reel.Value, drawn together with the symbol.
type Ancient struct{}

func (Ancient) ID() domain.GameID { return domain.GameAncientGold }

func (Ancient) ReelCount() int { return AncientReels }

func (Ancient) Symbols() []domain.Symbol { return append([]domain.Symbol(nil), ancientSymbols...) }

func (Ancient) Draw(rng RandomSource) domain.ReelDraw {
	regular := ancientSymbols[:len(ancientSymbols)-1]
	draw := make(domain.ReelDraw, AncientReels)
	for i := range draw {
		if rng.Float64() < MultiplierProbability {
			draw[i] = domain.Reel{
				Symbol: SymbolMultiplier,
				Value:  multiplierFactors[rng.IntN(len(multiplierFactors))],
			}
			continue
		}
		draw[i] = domain.Reel{Symbol: uniform(rng, regular)}
	}
	return draw
}

// Evaluate pays the first left-to-right run of at least three identical paying
// symbols, scaled by the product of every MULTIPLIER on the reels.
// A spin without a run loses even when multipliers landed.
func (Ancient) Evaluate(draw domain.ReelDraw) domain.SpinOutcome {
	out := domain.SpinOutcome{
		Game:             domain.GameAncientGold,
		Reels:            draw,
		BaseWin:          decimal.Zero,
		MultiplierFactor: decimal.NewFromInt(1),
		Multiplier:       decimal.Zero,
		TotalWin:         decimal.Zero,
	}

	for _, r := range draw {
		if r.Symbol != SymbolMultiplier {
			continue
		}
		// A zero value means the draw came from bare symbols, count it as neutral
		factor := r.Value
		if factor.IsZero() {
			factor = decimal.NewFromInt(1)
		}
		out.MultiplierValues = append(out.MultiplierValues, factor)
		out.MultiplierFactor = out.MultiplierFactor.Mul(factor)
	}

	for i := 0; i+MinRunLength <= len(draw); i++ {
		symbol := draw[i].Symbol
		payout, ok := AncientPayouts[symbol]
		if !ok {
			continue
		}
		run := runLength(draw, i)
		if run < MinRunLength {
			continue
		}
		out.BaseWin = decimal.NewFromInt(payout * int64(run))
		out.Matches = []domain.PatternMatch{{
			Pattern: PatternPayline,
			Symbol:  symbol,
			Count:   run,
			Payout:  out.BaseWin,
		}}
		break
	}

	if out.BaseWin.IsPositive() {
		out.TotalWin = out.BaseWin.Mul(out.MultiplierFactor).Floor()
	}
	out.Multiplier = out.TotalWin
	return finish(out)
}

func runLength(draw domain.ReelDraw, start int) int {
	n := 0
	for i := start; i < len(draw) && draw[i].Symbol == draw[start].Symbol; i++ {
		n++
	}
	return n
}
