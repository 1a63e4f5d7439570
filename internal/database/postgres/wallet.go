package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/SlotHouse_Go/internal/domain"
	"github.com/osse101/SlotHouse_Go/internal/repository"
)

// querier is satisfied by both the pool and a transaction
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// WalletRepository implements repository.Wallet for PostgreSQL
type WalletRepository struct {
	db *pgxpool.Pool
}

// NewWalletRepository creates a new WalletRepository
func NewWalletRepository(db *pgxpool.Pool) *WalletRepository {
	return &WalletRepository{db: db}
}

// CreateAccount inserts a new account. Timestamps are set by the database.
func (r *WalletRepository) CreateAccount(ctx context.Context, account *domain.Account) error {
	id, err := parseUserUUID(account.ID)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO accounts (user_id, username, balance, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err = r.db.QueryRow(ctx, query, id, account.Username, account.Balance).
		Scan(&account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == PgErrorCodeUniqueViolation {
			return fmt.Errorf("%w: username %q is taken", domain.ErrInvalidInput, account.Username)
		}
		return fmt.Errorf("failed to insert account: %w", err)
	}
	return nil
}

// GetAccount returns the account for userID
func (r *WalletRepository) GetAccount(ctx context.Context, userID string) (*domain.Account, error) {
	id, err := parseUserUUID(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID)
	}

	query := `
		SELECT user_id::text, username, balance, created_at, updated_at
		FROM accounts
		WHERE user_id = $1
	`
	var a domain.Account
	err = r.db.QueryRow(ctx, query, id).Scan(&a.ID, &a.Username, &a.Balance, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID)
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &a, nil
}

// GetBalance returns the current balance without locking
func (r *WalletRepository) GetBalance(ctx context.Context, userID string) (int64, error) {
	return getBalance(ctx, r.db, userID, false)
}

// ListTransactions returns the newest ledger entries first
func (r *WalletRepository) ListTransactions(ctx context.Context, userID string, limit, offset int) ([]domain.TransactionEntry, error) {
	id, err := parseUserUUID(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID)
	}

	query := `
		SELECT id, settlement_id::text, user_id::text, amount, type, game, result,
		       balance_before, balance_after, created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, id, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.TransactionEntry, 0, limit)
	for rows.Next() {
		var e domain.TransactionEntry
		if err := rows.Scan(&e.ID, &e.SettlementID, &e.UserID, &e.Amount, &e.Type, &e.Game, &e.Result,
			&e.BalanceBefore, &e.BalanceAfter, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}
	return entries, nil
}

// CountTransactions returns the number of ledger entries of userID
func (r *WalletRepository) CountTransactions(ctx context.Context, userID string) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM transactions WHERE user_id = $1`, userID)
}

// ListGameHistory returns the newest plays first
func (r *WalletRepository) ListGameHistory(ctx context.Context, userID string, limit, offset int) ([]domain.GameHistoryEntry, error) {
	id, err := parseUserUUID(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID)
	}

	query := `
		SELECT id, settlement_id::text, user_id::text, game, bet_amount, win_amount,
		       reel_positions, multiplier, created_at
		FROM game_history
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, id, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list game history: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.GameHistoryEntry, 0, limit)
	for rows.Next() {
		var e domain.GameHistoryEntry
		if err := rows.Scan(&e.ID, &e.SettlementID, &e.UserID, &e.Game, &e.BetAmount, &e.WinAmount,
			&e.ReelPositions, &e.Multiplier, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan game history: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate game history: %w", err)
	}
	return entries, nil
}

// CountGameHistory returns the number of plays of userID
func (r *WalletRepository) CountGameHistory(ctx context.Context, userID string) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM game_history WHERE user_id = $1`, userID)
}

// GameTotals aggregates spins, wagered and paid-out credits per game
func (r *WalletRepository) GameTotals(ctx context.Context) ([]domain.GameTotal, error) {
	query := `
		SELECT game, COUNT(*), COALESCE(SUM(bet_amount), 0), COALESCE(SUM(win_amount), 0)
		FROM game_history
		GROUP BY game
		ORDER BY game
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate game totals: %w", err)
	}
	defer rows.Close()

	var totals []domain.GameTotal
	for rows.Next() {
		var t domain.GameTotal
		if err := rows.Scan(&t.Game, &t.Spins, &t.Wagered, &t.PaidOut); err != nil {
			return nil, fmt.Errorf("failed to scan game total: %w", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate game totals: %w", err)
	}
	return totals, nil
}

func (r *WalletRepository) count(ctx context.Context, query, userID string) (int64, error) {
	id, err := parseUserUUID(userID)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID)
	}
	var n int64
	if err := r.db.QueryRow(ctx, query, id).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count rows: %w", err)
	}
	return n, nil
}

// BeginTx starts a settlement transaction
func (r *WalletRepository) BeginTx(ctx context.Context) (repository.WalletTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &walletTx{tx: tx}, nil
}

type walletTx struct {
	tx pgx.Tx
}

func (t *walletTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *walletTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// GetBalanceForUpdate locks the account row with SELECT ... FOR UPDATE
func (t *walletTx) GetBalanceForUpdate(ctx context.Context, userID string) (int64, error) {
	return getBalance(ctx, t.tx, userID, true)
}

func (t *walletTx) AdjustBalance(ctx context.Context, userID string, delta int64) (int64, error) {
	id, err := parseUserUUID(userID)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID)
	}

	query := `
		UPDATE accounts
		SET balance = balance + $2, updated_at = NOW()
		WHERE user_id = $1 AND balance + $2 >= 0
		RETURNING balance
	`
	var balance int64
	err = t.tx.QueryRow(ctx, query, id, delta).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Either the account is gone or the update would overdraw it
			if _, getErr := getBalance(ctx, t.tx, userID, false); getErr != nil {
				return 0, getErr
			}
			return 0, fmt.Errorf("%w: cannot apply %d", domain.ErrInsufficientFunds, delta)
		}
		return 0, fmt.Errorf("failed to adjust balance: %w", err)
	}
	return balance, nil
}

func (t *walletTx) AppendTransaction(ctx context.Context, e *domain.TransactionEntry) error {
	userID, err := parseUserUUID(e.UserID)
	if err != nil {
		return err
	}
	settlementID, err := parseUUID("settlement", e.SettlementID)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO transactions (settlement_id, user_id, amount, type, game, result,
		                          balance_before, balance_after, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	err = t.tx.QueryRow(ctx, query, settlementID, userID, e.Amount, string(e.Type), string(e.Game),
		[]byte(e.Result), e.BalanceBefore, e.BalanceAfter, e.CreatedAt).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

func (t *walletTx) AppendGameHistory(ctx context.Context, e *domain.GameHistoryEntry) error {
	userID, err := parseUserUUID(e.UserID)
	if err != nil {
		return err
	}
	settlementID, err := parseUUID("settlement", e.SettlementID)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO game_history (settlement_id, user_id, game, bet_amount, win_amount,
		                          reel_positions, multiplier, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	err = t.tx.QueryRow(ctx, query, settlementID, userID, string(e.Game), e.BetAmount, e.WinAmount,
		[]byte(e.ReelPositions), e.Multiplier.String(), e.CreatedAt).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("failed to insert game history: %w", err)
	}
	return nil
}

func getBalance(ctx context.Context, q querier, userID string, forUpdate bool) (int64, error) {
	id, err := parseUserUUID(userID)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID)
	}

	query := `SELECT balance FROM accounts WHERE user_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var balance int64
	if err := q.QueryRow(ctx, query, id).Scan(&balance); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID)
		}
		return 0, fmt.Errorf("failed to get balance: %w", err)
	}
	return balance, nil
}
