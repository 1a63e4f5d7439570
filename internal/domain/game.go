package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// GameID identifies one of the supported slot games
type GameID string

const (
	GameClassic777  GameID = "classic777"
	GameNeonCyber   GameID = "neoncyber"
	GameAncientGold GameID = "ancientgold"
)

// ParseGameID normalises a caller supplied identifier. Lookup is case-insensitive.
func ParseGameID(s string) GameID {
	return GameID(strings.ToLower(strings.TrimSpace(s)))
}

// Volatility is an informational tag describing payout variance
type Volatility string

const (
	VolatilityLow    Volatility = "low"
	VolatilityMedium Volatility = "medium"
	VolatilityHigh   Volatility = "high"
)

// Symbol is a reel symbol name, e.g. "CHERRY" or "WILD"
type Symbol string

// GameConfig describes a game. Defined once at startup and never mutated.
type GameConfig struct {
	ID            GameID          `json:"id" yaml:"id"`
	DisplayName   string          `json:"name" yaml:"display_name"`
	ReelCount     int             `json:"reels" yaml:"reels"`
	MinBet        int64           `json:"min_bet" yaml:"min_bet"`
	MaxBet        int64           `json:"max_bet" yaml:"max_bet"`
	Volatility    Volatility      `json:"volatility" yaml:"volatility"`
	RTP           decimal.Decimal `json:"rtp" yaml:"-"`
	Symbols       []Symbol        `json:"symbols" yaml:"symbols"`
	HasMultiplier bool            `json:"has_multiplier" yaml:"has_multiplier"`
}

// Clone returns a deep copy so callers cannot mutate registry state
func (c GameConfig) Clone() GameConfig {
	out := c
	out.Symbols = append([]Symbol(nil), c.Symbols...)
	return out
}

// AllowsBet reports whether amount lies within [MinBet, MaxBet]
func (c GameConfig) AllowsBet(amount int64) bool {
	return amount > 0 && amount >= c.MinBet && amount <= c.MaxBet
}

// Reel is one position of a spin.
// Value carries the factor drawn for a multiplier symbol and is zero otherwise.
type Reel struct {
	Symbol Symbol          `json:"symbol"`
	Value  decimal.Decimal `json:"value,omitzero"`
}

// ReelDraw is the ordered result of drawing every reel of a game once
type ReelDraw []Reel

// Symbols returns the plain symbol sequence
func (d ReelDraw) Symbols() []Symbol {
	out := make([]Symbol, len(d))
	for i, r := range d {
		out[i] = r.Symbol
	}
	return out
}

// Count returns how many reels show s
func (d ReelDraw) Count(s Symbol) int {
	n := 0
	for _, r := range d {
		if r.Symbol == s {
			n++
		}
	}
	return n
}

// NewReelDraw builds a draw from bare symbols, used mostly by tests and replays
func NewReelDraw(symbols ...Symbol) ReelDraw {
	d := make(ReelDraw, len(symbols))
	for i, s := range symbols {
		d[i] = Reel{Symbol: s}
	}
	return d
}

// PatternMatch is one winning pattern found in a spin
type PatternMatch struct {
	Pattern string          `json:"pattern"`
	Symbol  Symbol          `json:"symbol"`
	Count   int             `json:"count"`
	Payout  decimal.Decimal `json:"payout"`
}

// SpinOutcome is the evaluated result of a ReelDraw.
// Multiplier is always the payout ratio applied to the bet: win = floor(bet * Multiplier).
type SpinOutcome struct {
	Game             GameID            `json:"game"`
	Reels            ReelDraw          `json:"reels"`
	Combination      string            `json:"combination,omitempty"`
	Matches          []PatternMatch    `json:"wins,omitempty"`
	WildCount        int               `json:"wild_count,omitempty"`
	BaseWin          decimal.Decimal   `json:"base_win,omitzero"`
	MultiplierValues []decimal.Decimal `json:"multipliers,omitempty"`
	MultiplierFactor decimal.Decimal   `json:"multiplier_factor,omitzero"`
	Multiplier       decimal.Decimal   `json:"multiplier"`
	TotalWin         decimal.Decimal   `json:"total_win"`
	Win              bool              `json:"win"`
}
