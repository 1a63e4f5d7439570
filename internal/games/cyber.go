package games

import (
	"github.com/shopspring/decimal"

	"github.com/osse101/SlotHouse_Go/internal/domain"
)

// Cyber is the 5 reel Neon Cyber game. WILD appears on 5% of reels,
// the other symbols share the rest equally.
type Cyber struct{}

func (Cyber) ID() domain.GameID { return domain.GameNeonCyber }

func (Cyber) ReelCount() int { return CyberReels }

func (Cyber) Symbols() []domain.Symbol { return append([]domain.Symbol(nil), cyberSymbols...) }

func (Cyber) Draw(rng RandomSource) domain.ReelDraw {
	regular := cyberSymbols[:len(cyberSymbols)-1]
	draw := make(domain.ReelDraw, CyberReels)
	for i := range draw {
		if rng.Float64() < WildProbability {
			draw[i] = domain.Reel{Symbol: SymbolWild}
			continue
		}
		draw[i] = domain.Reel{Symbol: uniform(rng, regular)}
	}
	return draw
}

// Evaluate scores every non-wild symbol by its count, with wilds promoting a
// 2 or 3 count one tier. Matches are listed in symbol-set order.
func (Cyber) Evaluate(draw domain.ReelDraw) domain.SpinOutcome {
	wilds := draw.Count(SymbolWild)
	out := domain.SpinOutcome{
		Game:       domain.GameNeonCyber,
		Reels:      draw,
		WildCount:  wilds,
		Multiplier: decimal.Zero,
	}

	for _, symbol := range cyberSymbols {
		if symbol == SymbolWild {
			continue
		}
		count := draw.Count(symbol)
		pattern, payout := cyberTier(count, wilds)
		if payout == 0 {
			continue
		}
		out.Matches = append(out.Matches, domain.PatternMatch{
			Pattern: pattern,
			Symbol:  symbol,
			Count:   count,
			Payout:  decimal.NewFromInt(payout),
		})
	}

	if wilds >= WildBonusThreshold {
		out.Matches = append(out.Matches, domain.PatternMatch{
			Pattern: PatternWildBonus,
			Symbol:  SymbolWild,
			Count:   wilds,
			Payout:  decimal.NewFromInt(WildBonusPayout),
		})
	}

	for _, m := range out.Matches {
		out.Multiplier = out.Multiplier.Add(m.Payout)
	}
	out.BaseWin = out.Multiplier
	out.TotalWin = out.Multiplier
	return finish(out)
}

func cyberTier(count, wilds int) (string, int64) {
	switch {
	case count == 5:
		return PatternFullMatch, FullMatchPayout
	case count == 4 || (count == 3 && wilds > 0):
		return PatternFourMatch, FourMatchPayout
	case count == 3 || (count == 2 && wilds > 0):
		return PatternThreeMatch, ThreeMatchPayout
	case count == 2:
		return PatternTwoMatch, TwoMatchPayout
	default:
		return "", 0
	}
}
