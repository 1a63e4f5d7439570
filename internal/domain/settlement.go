package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the ledger entry kind of a settled wager
type TransactionType string

const (
	TransactionWin  TransactionType = "WIN"
	TransactionLoss TransactionType = "LOSS"
)

// Wager is a request to settle one spin
type Wager struct {
	UserID         string `json:"user_id"`
	GameID         GameID `json:"game"`
	BetAmount      int64  `json:"bet_amount"`
	IdempotencyKey string `json:"idempotency_key,omitempty"` // Optional, replays return the first record
}

// SettlementRecord is the immutable result of a settled wager.
// BalanceAfter == BalanceBefore + NetChange always holds.
type SettlementRecord struct {
	ID            string      `json:"id"`
	Wager         Wager       `json:"wager"`
	Game          GameID      `json:"game"` // Canonical id
	Outcome       SpinOutcome `json:"outcome"`
	WinAmount     int64       `json:"win_amount"` // floor(bet * outcome.multiplier)
	NetChange     int64       `json:"net_change"` // WinAmount - BetAmount
	BalanceBefore int64       `json:"balance_before"`
	BalanceAfter  int64       `json:"balance_after"`
	Message       string      `json:"message"`
	CreatedAt     time.Time   `json:"created_at"`
}

// TransactionEntry is one persisted ledger row per settled wager
type TransactionEntry struct {
	ID            int64           `json:"id"`
	SettlementID  string          `json:"settlement_id"`
	UserID        string          `json:"user_id"`
	Amount        int64           `json:"amount"` // Bet amount
	Type          TransactionType `json:"type"`
	Game          GameID          `json:"game"`
	Result        json.RawMessage `json:"result"` // Serialized SpinOutcome
	BalanceBefore int64           `json:"balance_before"`
	BalanceAfter  int64           `json:"balance_after"`
	CreatedAt     time.Time       `json:"created_at"`
}

// GameHistoryEntry is one persisted play-summary row per settled wager
type GameHistoryEntry struct {
	ID            int64           `json:"id"`
	SettlementID  string          `json:"settlement_id"`
	UserID        string          `json:"user_id"`
	Game          GameID          `json:"game"`
	BetAmount     int64           `json:"bet_amount"`
	WinAmount     int64           `json:"win_amount"`
	ReelPositions json.RawMessage `json:"reel_positions"` // Serialized ReelDraw
	Multiplier    decimal.Decimal `json:"multiplier"`
	CreatedAt     time.Time       `json:"created_at"`
}

// GameTotal aggregates wagered and paid-out credits for one game
type GameTotal struct {
	Game    GameID `json:"game"`
	Spins   int64  `json:"spins"`
	Wagered int64  `json:"wagered"`
	PaidOut int64  `json:"paid_out"`
}

// ObservedRTP returns paid-out / wagered, zero when nothing was wagered
func (t GameTotal) ObservedRTP() decimal.Decimal {
	if t.Wagered == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(t.PaidOut).Div(decimal.NewFromInt(t.Wagered))
}

// Page is a paginated list response
type Page[T any] struct {
	Entries []T   `json:"entries"`
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
	Offset  int   `json:"offset"`
}

// Payout returns floor(bet * multiplier). Negative multipliers pay nothing.
func Payout(bet int64, multiplier decimal.Decimal) int64 {
	if !multiplier.IsPositive() || bet <= 0 {
		return 0
	}
	return decimal.NewFromInt(bet).Mul(multiplier).Floor().IntPart()
}
