package slots

import "time"

// Service defaults, used when Config leaves a field zero
const (
	DefaultStartingBalance      = 1000
	DefaultSettlementTimeout    = 5 * time.Second
	DefaultIdempotencyCacheSize = 10000
	DefaultIdempotencyTTL       = 24 * time.Hour
)

// Pagination
const (
	DefaultTransactionLimit = 50
	DefaultHistoryLimit     = 100
	MaxPageLimit            = 500
)

// Username bounds for OpenAccount
const (
	MinUsernameLength = 3
	MaxUsernameLength = 32
)

// Log messages
const (
	LogMsgWagerSettled       = "Wager settled"
	LogMsgWagerRejected      = "Wager rejected"
	LogMsgSettlementFailed   = "Settlement failed"
	LogMsgSettlementUnknown  = "Settlement commit failed, outcome unknown"
	LogMsgIdempotentReplay   = "Returning cached settlement for idempotency key"
	LogMsgAccountOpened      = "Account opened"
	LogMsgServiceShutdown    = "Slots service shutting down"
	LogMsgWaitingForInFlight = "Waiting for in-flight settlements"
)

// Player facing result messages (golang.org/x/text/message formats)
const (
	MsgWin       = "%s pays %d credits on a %d bet (net %+d)"
	MsgBreakEven = "%s returns your %d bet"
	MsgLoss      = "No win on %s. You lost %d credits"
)
