package games

import "github.com/osse101/SlotHouse_Go/internal/domain"

// Second PCG word for seeded sources
const seedStream = 0x9e3779b97f4a7c15

// Classic 777 symbols
const (
	SymbolSeven  domain.Symbol = "7"
	SymbolCherry domain.Symbol = "CHERRY"
	SymbolLemon  domain.Symbol = "LEMON"
	SymbolOrange domain.Symbol = "ORANGE"
	SymbolBell   domain.Symbol = "BELL"
	SymbolBar    domain.Symbol = "BAR"
)

// Neon Cyber symbols
const (
	SymbolSkull  domain.Symbol = "SKULL"
	SymbolCode   domain.Symbol = "CODE"
	SymbolMatrix domain.Symbol = "MATRIX"
	SymbolNeon   domain.Symbol = "NEON"
	SymbolGlitch domain.Symbol = "GLITCH"
	SymbolCyber  domain.Symbol = "CYBER"
	SymbolWild   domain.Symbol = "WILD"
)

// Ancient Gold symbols
const (
	SymbolPyramid    domain.Symbol = "PYRAMID"
	SymbolScarab     domain.Symbol = "SCARAB"
	SymbolPharaoh    domain.Symbol = "PHARAOH"
	SymbolGold       domain.Symbol = "GOLD"
	SymbolAnkh       domain.Symbol = "ANKH"
	SymbolEye        domain.Symbol = "EYE"
	SymbolMultiplier domain.Symbol = "MULTIPLIER"
)

// Reel counts
const (
	ClassicReels = 3
	CyberReels   = 5
	AncientReels = 5
)

// Special symbol probabilities
const (
	WildProbability       = 0.05 // 5% per reel
	MultiplierProbability = 0.10 // 10% per reel
)

// Classic combination labels
const (
	CombinationTwoCherries = "CHERRY-CHERRY-*"
	CombinationOneCherry   = "CHERRY-*-*"

	TwoCherryPayout = 20
	OneCherryPayout = 5
)

// Cyber pattern names and payouts
const (
	PatternFullMatch  = "full-match"
	PatternFourMatch  = "4-match"
	PatternThreeMatch = "3-match"
	PatternTwoMatch   = "2-match"
	PatternWildBonus  = "wild-bonus"

	FullMatchPayout  = 1000
	FourMatchPayout  = 300
	ThreeMatchPayout = 100
	TwoMatchPayout   = 25
	WildBonusPayout  = 50

	WildBonusThreshold = 3
)

// Ancient left-to-right payline
const (
	PatternPayline = "payline"

	MinRunLength = 3
)

var classicSymbols = []domain.Symbol{SymbolSeven, SymbolCherry, SymbolLemon, SymbolOrange, SymbolBell, SymbolBar}

var cyberSymbols = []domain.Symbol{SymbolSkull, SymbolCode, SymbolMatrix, SymbolNeon, SymbolGlitch, SymbolCyber, SymbolWild}

var ancientSymbols = []domain.Symbol{SymbolPyramid, SymbolScarab, SymbolPharaoh, SymbolGold, SymbolAnkh, SymbolEye, SymbolMultiplier}

// ClassicPaylines maps an exact "R1-R2-R3" combination to its multiplier
var ClassicPaylines = map[string]int64{
	"7-7-7":                500, // Jackpot
	"CHERRY-CHERRY-CHERRY": 100,
	"LEMON-LEMON-LEMON":    50,
	"ORANGE-ORANGE-ORANGE": 40,
	"BELL-BELL-BELL":       30,
	"BAR-BAR-BAR":          25,
	"CHERRY-CHERRY-7":      20,
	"CHERRY-LEMON-CHERRY":  15,
	"LEMON-LEMON-7":        10,
}

// AncientPayouts is the per-symbol payout, multiplied by run length
var AncientPayouts = map[domain.Symbol]int64{
	SymbolPyramid: 200,
	SymbolScarab:  150,
	SymbolPharaoh: 250,
	SymbolGold:    300,
	SymbolAnkh:    100,
	SymbolEye:     120,
}

// MultiplierValues are the factors a MULTIPLIER reel can carry, drawn uniformly
var MultiplierValues = []string{"1.5", "2", "2.5", "3", "4", "5"}
