package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	ErrMsgUnknownGame          = "unknown game"
	ErrMsgInvalidBet           = "invalid bet"
	ErrMsgUserNotFound         = "user not found"
	ErrMsgInsufficientFunds    = "insufficient funds"
	ErrMsgPersistenceFailure   = "persistence failure"
	ErrMsgSettlementIncomplete = "settlement incomplete"
	ErrMsgInvalidInput         = "invalid input"
	ErrMsgServiceUnavailable   = "service unavailable"

	// Returned by pgx/database/sql when rolling back an already finished transaction
	ErrMsgTxClosed = "tx is closed"
)

// Settlement errors. Wrap with fmt.Errorf("%w: %s", domain.ErrXxx, details) for context;
// the HTTP layer matches them with errors.Is.
var (
	ErrUnknownGame       = errors.New(ErrMsgUnknownGame)
	ErrInvalidBet        = errors.New(ErrMsgInvalidBet)
	ErrUserNotFound      = errors.New(ErrMsgUserNotFound)
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)

	// ErrPersistenceFailure wraps storage I/O errors. The transaction was rolled back,
	// so no money moved.
	ErrPersistenceFailure = errors.New(ErrMsgPersistenceFailure)

	// ErrSettlementIncomplete means the commit itself failed and its outcome is unknown.
	// Operators must reconcile the wager against the ledger before any retry.
	ErrSettlementIncomplete = errors.New(ErrMsgSettlementIncomplete)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)

	// ErrServiceUnavailable is returned once shutdown has begun
	ErrServiceUnavailable = errors.New(ErrMsgServiceUnavailable)
)

// ErrorKind is the stable, machine-readable name of a settlement failure
type ErrorKind string

const (
	KindUnknownGame          ErrorKind = "UnknownGame"
	KindInvalidBet           ErrorKind = "InvalidBet"
	KindUserNotFound         ErrorKind = "UserNotFound"
	KindInsufficientFunds    ErrorKind = "InsufficientFunds"
	KindPersistenceFailure   ErrorKind = "PersistenceFailure"
	KindSettlementIncomplete ErrorKind = "SettlementIncomplete"
	KindInvalidInput         ErrorKind = "InvalidInput"
	KindUnavailable          ErrorKind = "Unavailable"
	KindInternal             ErrorKind = "Internal"
)

var errorKinds = []struct {
	err  error
	kind ErrorKind
}{
	// SettlementIncomplete is checked before PersistenceFailure since a failed commit
	// may wrap the underlying storage error as well
	{ErrSettlementIncomplete, KindSettlementIncomplete},
	{ErrUnknownGame, KindUnknownGame},
	{ErrInvalidBet, KindInvalidBet},
	{ErrUserNotFound, KindUserNotFound},
	{ErrInsufficientFunds, KindInsufficientFunds},
	{ErrPersistenceFailure, KindPersistenceFailure},
	{ErrInvalidInput, KindInvalidInput},
	{ErrServiceUnavailable, KindUnavailable},
}

// KindOf classifies err into one of the settlement error kinds.
// Returns an empty kind for a nil error and KindInternal for anything unrecognised.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindInternal
}
