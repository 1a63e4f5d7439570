package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	moderncsqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/osse101/SlotHouse_Go/internal/domain"
	"github.com/osse101/SlotHouse_Go/internal/repository"
)

// querier is satisfied by both *sql.DB and *sql.Tx
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WalletRepository implements repository.Wallet for SQLite.
// Open the handle with database.OpenSQLite so writers share one connection.
type WalletRepository struct {
	db *sql.DB
}

// NewWalletRepository creates a new WalletRepository
func NewWalletRepository(db *sql.DB) *WalletRepository {
	return &WalletRepository{db: db}
}

// CreateAccount inserts a new account and stamps its timestamps
func (r *WalletRepository) CreateAccount(ctx context.Context, account *domain.Account) error {
	if account.ID == "" {
		return fmt.Errorf("%w: account id is required", domain.ErrInvalidInput)
	}

	now := time.Now().UTC()
	query := `
		INSERT INTO accounts (user_id, username, balance, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query, account.ID, account.Username, account.Balance, now.UnixMilli(), now.UnixMilli())
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: username %q is taken", domain.ErrInvalidInput, account.Username)
		}
		return fmt.Errorf("failed to insert account: %w", err)
	}
	account.CreatedAt = time.UnixMilli(now.UnixMilli()).UTC()
	account.UpdatedAt = account.CreatedAt
	return nil
}

// GetAccount returns the account for userID
func (r *WalletRepository) GetAccount(ctx context.Context, userID string) (*domain.Account, error) {
	query := `
		SELECT user_id, username, balance, created_at, updated_at
		FROM accounts
		WHERE user_id = ?
	`
	var a domain.Account
	var created, updated int64
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&a.ID, &a.Username, &a.Balance, &created, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID)
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	a.CreatedAt = fromMillis(created)
	a.UpdatedAt = fromMillis(updated)
	return &a, nil
}

// GetBalance returns the current balance
func (r *WalletRepository) GetBalance(ctx context.Context, userID string) (int64, error) {
	return getBalance(ctx, r.db, userID)
}

// ListTransactions returns the newest ledger entries first
func (r *WalletRepository) ListTransactions(ctx context.Context, userID string, limit, offset int) ([]domain.TransactionEntry, error) {
	query := `
		SELECT id, settlement_id, user_id, amount, type, game, result,
		       balance_before, balance_after, created_at
		FROM transactions
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`
	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.TransactionEntry, 0, limit)
	for rows.Next() {
		var e domain.TransactionEntry
		var result string
		var created int64
		if err := rows.Scan(&e.ID, &e.SettlementID, &e.UserID, &e.Amount, &e.Type, &e.Game, &result,
			&e.BalanceBefore, &e.BalanceAfter, &created); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		e.Result = []byte(result)
		e.CreatedAt = fromMillis(created)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}
	return entries, nil
}

// CountTransactions returns the number of ledger entries of userID
func (r *WalletRepository) CountTransactions(ctx context.Context, userID string) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM transactions WHERE user_id = ?`, userID)
}

// ListGameHistory returns the newest plays first
func (r *WalletRepository) ListGameHistory(ctx context.Context, userID string, limit, offset int) ([]domain.GameHistoryEntry, error) {
	query := `
		SELECT id, settlement_id, user_id, game, bet_amount, win_amount,
		       reel_positions, multiplier, created_at
		FROM game_history
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`
	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list game history: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.GameHistoryEntry, 0, limit)
	for rows.Next() {
		var e domain.GameHistoryEntry
		var reels string
		var created int64
		if err := rows.Scan(&e.ID, &e.SettlementID, &e.UserID, &e.Game, &e.BetAmount, &e.WinAmount,
			&reels, &e.Multiplier, &created); err != nil {
			return nil, fmt.Errorf("failed to scan game history: %w", err)
		}
		e.ReelPositions = []byte(reels)
		e.CreatedAt = fromMillis(created)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate game history: %w", err)
	}
	return entries, nil
}

// CountGameHistory returns the number of plays of userID
func (r *WalletRepository) CountGameHistory(ctx context.Context, userID string) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM game_history WHERE user_id = ?`, userID)
}

// GameTotals aggregates spins, wagered and paid-out credits per game
func (r *WalletRepository) GameTotals(ctx context.Context) ([]domain.GameTotal, error) {
	query := `
		SELECT game, COUNT(*), COALESCE(SUM(bet_amount), 0), COALESCE(SUM(win_amount), 0)
		FROM game_history
		GROUP BY game
		ORDER BY game
	`
	rows, err := r.db.QueryContext(ctx, query)
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
	var n int64
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count rows: %w", err)
	}
	return n, nil
}

// BeginTx starts a settlement transaction. The single connection handle makes
// it exclusive until commit or rollback.
func (r *WalletRepository) BeginTx(ctx context.Context) (repository.WalletTx, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &walletTx{tx: tx}, nil
}

type walletTx struct {
	tx *sql.Tx
}

func (t *walletTx) Commit(_ context.Context) error {
	return t.tx.Commit()
}

func (t *walletTx) Rollback(_ context.Context) error {
	if err := t.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return err
	}
	return nil
}

func (t *walletTx) GetBalanceForUpdate(ctx context.Context, userID string) (int64, error) {
	return getBalance(ctx, t.tx, userID)
}

func (t *walletTx) AdjustBalance(ctx context.Context, userID string, delta int64) (int64, error) {
	query := `
		UPDATE accounts
		SET balance = balance + ?1, updated_at = ?2
		WHERE user_id = ?3 AND balance + ?1 >= 0
		RETURNING balance
	`
	var balance int64
	err := t.tx.QueryRowContext(ctx, query, delta, time.Now().UTC().UnixMilli(), userID).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Either the account is gone or the update would overdraw it
			if _, getErr := getBalance(ctx, t.tx, userID); getErr != nil {
				return 0, getErr
			}
			return 0, fmt.Errorf("%w: cannot apply %d", domain.ErrInsufficientFunds, delta)
		}
		return 0, fmt.Errorf("failed to adjust balance: %w", err)
	}
	return balance, nil
}

func (t *walletTx) AppendTransaction(ctx context.Context, e *domain.TransactionEntry) error {
	query := `
		INSERT INTO transactions (settlement_id, user_id, amount, type, game, result,
		                          balance_before, balance_after, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	res, err := t.tx.ExecContext(ctx, query, e.SettlementID, e.UserID, e.Amount, string(e.Type), string(e.Game),
		string(e.Result), e.BalanceBefore, e.BalanceAfter, e.CreatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	if e.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("failed to read transaction id: %w", err)
	}
	return nil
}

func (t *walletTx) AppendGameHistory(ctx context.Context, e *domain.GameHistoryEntry) error {
	query := `
		INSERT INTO game_history (settlement_id, user_id, game, bet_amount, win_amount,
		                          reel_positions, multiplier, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	res, err := t.tx.ExecContext(ctx, query, e.SettlementID, e.UserID, string(e.Game), e.BetAmount, e.WinAmount,
		string(e.ReelPositions), e.Multiplier.String(), e.CreatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to insert game history: %w", err)
	}
	if e.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("failed to read game history id: %w", err)
	}
	return nil
}

func getBalance(ctx context.Context, q querier, userID string) (int64, error) {
	var balance int64
	err := q.QueryRowContext(ctx, `SELECT balance FROM accounts WHERE user_id = ?`, userID).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID)
		}
		return 0, fmt.Errorf("failed to get balance: %w", err)
	}
	return balance, nil
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure from the driver
func isUniqueViolation(err error) bool {
	var sqliteErr *moderncsqlite.Error
	return errors.As(err, &sqliteErr) && sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}
