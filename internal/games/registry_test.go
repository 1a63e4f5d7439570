package games

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/SlotHouse_Go/internal/domain"
)

func TestNewRegistry_DefaultCatalog(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)

	configs := r.List()
	require.Len(t, configs, 3)
	assert.Equal(t, domain.GameClassic777, configs[0].ID)
	assert.Equal(t, domain.GameNeonCyber, configs[1].ID)
	assert.Equal(t, domain.GameAncientGold, configs[2].ID)

	classic := configs[0]
	assert.Equal(t, "Classic 777", classic.DisplayName)
	assert.Equal(t, 3, classic.ReelCount)
	assert.Equal(t, int64(10), classic.MinBet)
	assert.Equal(t, int64(1000), classic.MaxBet)
	assert.Equal(t, domain.VolatilityLow, classic.Volatility)
	assert.Equal(t, "0.96", classic.RTP.String())
	assert.False(t, classic.HasMultiplier)

	cyber := configs[1]
	assert.Equal(t, int64(20), cyber.MinBet)
	assert.Equal(t, int64(2000), cyber.MaxBet)
	assert.Equal(t, domain.VolatilityHigh, cyber.Volatility)
	assert.Equal(t, "0.94", cyber.RTP.String())

	ancient := configs[2]
	assert.Equal(t, int64(15), ancient.MinBet)
	assert.Equal(t, int64(1500), ancient.MaxBet)
	assert.Equal(t, domain.VolatilityMedium, ancient.Volatility)
	assert.True(t, ancient.HasMultiplier)
	assert.Contains(t, ancient.Symbols, SymbolMultiplier)
}

func TestRegistry_Resolve(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)

	tests := []struct {
		input   string
		want    domain.GameID
		wantErr bool
	}{
		{"classic777", domain.GameClassic777, false},
		{"NeonCyber", domain.GameNeonCyber, false},
		{" ANCIENTGOLD ", domain.GameAncientGold, false},
		{"poker", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			g, err := r.Resolve(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrUnknownGame)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, g.Config.ID)
			assert.Equal(t, tt.want, g.Engine.ID())
		})
	}
}

func TestRegistry_ConfigIsIdempotentCopy(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)

	first, err := r.Config("classic777")
	require.NoError(t, err)
	first.Symbols[0] = "MUTATED"
	first.MaxBet = 1

	second, err := r.Config("classic777")
	require.NoError(t, err)
	assert.Equal(t, SymbolSeven, second.Symbols[0])
	assert.Equal(t, int64(1000), second.MaxBet)

	third, err := r.Config("CLASSIC777")
	require.NoError(t, err)
	assert.Equal(t, second, third)
}

func TestLoadRegistry_Validation(t *testing.T) {
	tests := []struct {
		name    string
		catalog string
		errMsg  string
	}{
		{
			name:    "Malformed YAML",
			catalog: "games: [",
			errMsg:  "failed to parse game catalog",
		},
		{
			name:    "Empty catalog",
			catalog: "games: []",
			errMsg:  "game catalog is empty",
		},
		{
			name: "Unknown engine",
			catalog: `games:
  - id: poker
    display_name: Poker
    reels: 5
    min_bet: 1
    max_bet: 10
    volatility: low
    rtp: "0.9"
    symbols: [A]`,
			errMsg: "no engine registered",
		},
		{
			name: "Reel count mismatch",
			catalog: `games:
  - id: classic777
    display_name: Classic 777
    reels: 5
    min_bet: 10
    max_bet: 1000
    volatility: low
    rtp: "0.96"
    symbols: ["7", CHERRY, LEMON, ORANGE, BELL, BAR]`,
			errMsg: "reel count 5 does not match engine",
		},
		{
			name: "Symbol mismatch",
			catalog: `games:
  - id: classic777
    display_name: Classic 777
    reels: 3
    min_bet: 10
    max_bet: 1000
    volatility: low
    rtp: "0.96"
    symbols: ["7", CHERRY]`,
			errMsg: "symbol set",
		},
		{
			name: "Inverted bet bounds",
			catalog: `games:
  - id: classic777
    display_name: Classic 777
    reels: 3
    min_bet: 100
    max_bet: 10
    volatility: low
    rtp: "0.96"
    symbols: ["7", CHERRY, LEMON, ORANGE, BELL, BAR]`,
			errMsg: "invalid bet bounds",
		},
		{
			name: "Bad volatility",
			catalog: `games:
  - id: classic777
    display_name: Classic 777
    reels: 3
    min_bet: 10
    max_bet: 1000
    volatility: extreme
    rtp: "0.96"
    symbols: ["7", CHERRY, LEMON, ORANGE, BELL, BAR]`,
			errMsg: "unknown volatility",
		},
		{
			name: "RTP out of range",
			catalog: `games:
  - id: classic777
    display_name: Classic 777
    reels: 3
    min_bet: 10
    max_bet: 1000
    volatility: low
    rtp: "1.5"
    symbols: ["7", CHERRY, LEMON, ORANGE, BELL, BAR]`,
			errMsg: "out of range",
		},
		{
			name: "Duplicate entry",
			catalog: `games:
  - id: classic777
    display_name: Classic 777
    reels: 3
    min_bet: 10
    max_bet: 1000
    volatility: low
    rtp: "0.96"
    symbols: ["7", CHERRY, LEMON, ORANGE, BELL, BAR]
  - id: Classic777
    display_name: Classic 777
    reels: 3
    min_bet: 10
    max_bet: 1000
    volatility: low
    rtp: "0.96"
    symbols: ["7", CHERRY, LEMON, ORANGE, BELL, BAR]`,
			errMsg: "duplicate catalog entry",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadRegistry([]byte(tt.catalog), DefaultEngines()...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
