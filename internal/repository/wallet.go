package repository

import (
	"context"

	"github.com/osse101/SlotHouse_Go/internal/domain"
)

// Wallet defines the interface for account, ledger and play history persistence.
// Lookups of a missing account return domain.ErrUserNotFound.
type Wallet interface {
	CreateAccount(ctx context.Context, account *domain.Account) error
	GetAccount(ctx context.Context, userID string) (*domain.Account, error)
	GetBalance(ctx context.Context, userID string) (int64, error)

	ListTransactions(ctx context.Context, userID string, limit, offset int) ([]domain.TransactionEntry, error)
	CountTransactions(ctx context.Context, userID string) (int64, error)
	ListGameHistory(ctx context.Context, userID string, limit, offset int) ([]domain.GameHistoryEntry, error)
	CountGameHistory(ctx context.Context, userID string) (int64, error)

	// GameTotals aggregates the game history per game
	GameTotals(ctx context.Context) ([]domain.GameTotal, error)

	BeginTx(ctx context.Context) (WalletTx, error)
}

// WalletTx defines the interface for a settlement transaction
type WalletTx interface {
	Tx
	// GetBalanceForUpdate reads the balance and holds the account row until the transaction ends
	GetBalanceForUpdate(ctx context.Context, userID string) (int64, error)
	// AdjustBalance adds delta to the balance and returns the new balance.
	// Fails with domain.ErrInsufficientFunds instead of going negative.
	AdjustBalance(ctx context.Context, userID string, delta int64) (int64, error)
	AppendTransaction(ctx context.Context, entry *domain.TransactionEntry) error
	AppendGameHistory(ctx context.Context, entry *domain.GameHistoryEntry) error
}
