package postgres

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/SlotHouse_Go/internal/domain"
	"github.com/osse101/SlotHouse_Go/internal/repository"
)

func createTestAccount(t *testing.T, repo *WalletRepository, username string, balance int64) *domain.Account {
	t.Helper()
	account := &domain.Account{ID: uuid.NewString(), Username: username, Balance: balance}
	require.NoError(t, repo.CreateAccount(context.Background(), account))
	return account
}

func settleOne(ctx context.Context, repo *WalletRepository, userID string, bet, win int64) error {
	tx, err := repo.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer repository.SafeRollback(ctx, tx)

	before, err := tx.GetBalanceForUpdate(ctx, userID)
	if err != nil {
		return err
	}
	if _, err := tx.AdjustBalance(ctx, userID, -bet); err != nil {
		return err
	}
	after := before - bet
	if win > 0 {
		if after, err = tx.AdjustBalance(ctx, userID, win); err != nil {
			return err
		}
	}

	settlementID := uuid.NewString()
	now := time.Now().UTC()
	txType := domain.TransactionLoss
	if win > 0 {
		txType = domain.TransactionWin
	}
	if err := tx.AppendTransaction(ctx, &domain.TransactionEntry{
		SettlementID:  settlementID,
		UserID:        userID,
		Amount:        bet,
		Type:          txType,
		Game:          domain.GameClassic777,
		Result:        json.RawMessage(`{"win":true}`),
		BalanceBefore: before,
		BalanceAfter:  after,
		CreatedAt:     now,
	}); err != nil {
		return err
	}
	if err := tx.AppendGameHistory(ctx, &domain.GameHistoryEntry{
		SettlementID:  settlementID,
		UserID:        userID,
		Game:          domain.GameClassic777,
		BetAmount:     bet,
		WinAmount:     win,
		ReelPositions: json.RawMessage(`[{"symbol":"7"},{"symbol":"7"},{"symbol":"7"}]`),
		Multiplier:    decimal.NewFromInt(win).Div(decimal.NewFromInt(bet)),
		CreatedAt:     now,
	}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func TestWalletRepository_Integration(t *testing.T) {
	pool := setupTestPool(t)
	repo := NewWalletRepository(pool)
	ctx := context.Background()

	t.Run("CreateAccount and GetAccount", func(t *testing.T) {
		account := createTestAccount(t, repo, "alice", 1000)
		assert.False(t, account.CreatedAt.IsZero())

		got, err := repo.GetAccount(ctx, account.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice", got.Username)
		assert.Equal(t, int64(1000), got.Balance)
	})

	t.Run("Duplicate username", func(t *testing.T) {
		createTestAccount(t, repo, "bob", 1000)
		err := repo.CreateAccount(ctx, &domain.Account{ID: uuid.NewString(), Username: "bob", Balance: 1000})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("Unknown user", func(t *testing.T) {
		_, err := repo.GetBalance(ctx, uuid.NewString())
		assert.ErrorIs(t, err, domain.ErrUserNotFound)

		_, err = repo.GetBalance(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("Settlement round trip", func(t *testing.T) {
		account := createTestAccount(t, repo, "carol", 1000)
		require.NoError(t, settleOne(ctx, repo, account.ID, 100, 500))
		require.NoError(t, settleOne(ctx, repo, account.ID, 50, 0))

		balance, err := repo.GetBalance(ctx, account.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1350), balance)

		entries, err := repo.ListTransactions(ctx, account.ID, 10, 0)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, domain.TransactionLoss, entries[0].Type)
		assert.Equal(t, int64(1400), entries[0].BalanceBefore)
		assert.Equal(t, int64(1350), entries[0].BalanceAfter)
		assert.JSONEq(t, `{"win":true}`, string(entries[1].Result))

		total, err := repo.CountTransactions(ctx, account.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)

		history, err := repo.ListGameHistory(ctx, account.ID, 1, 1)
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, int64(500), history[0].WinAmount)
		assert.True(t, history[0].Multiplier.Equal(decimal.NewFromInt(5)))

		plays, err := repo.CountGameHistory(ctx, account.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), plays)
	})

	t.Run("Overdraw is rejected and rolled back", func(t *testing.T) {
		account := createTestAccount(t, repo, "dave", 30)
		err := settleOne(ctx, repo, account.ID, 100, 0)
		assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

		balance, err := repo.GetBalance(ctx, account.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(30), balance)

		total, err := repo.CountTransactions(ctx, account.ID)
		require.NoError(t, err)
		assert.Zero(t, total)
	})

	t.Run("Concurrent settlements never overdraw", func(t *testing.T) {
		account := createTestAccount(t, repo, "erin", 100)

		var wg sync.WaitGroup
		errs := make(chan error, 20)
		for range 20 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs <- settleOne(ctx, repo, account.ID, 10, 0)
			}()
		}
		wg.Wait()
		close(errs)

		succeeded := 0
		for err := range errs {
			if err == nil {
				succeeded++
				continue
			}
			assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
		}
		assert.Equal(t, 10, succeeded)

		balance, err := repo.GetBalance(ctx, account.ID)
		require.NoError(t, err)
		assert.Zero(t, balance)
	})

	t.Run("GameTotals", func(t *testing.T) {
		totals, err := repo.GameTotals(ctx)
		require.NoError(t, err)
		require.Len(t, totals, 1)
		assert.Equal(t, domain.GameClassic777, totals[0].Game)
		assert.Equal(t, int64(12), totals[0].Spins)
		assert.Equal(t, int64(250), totals[0].Wagered)
		assert.Equal(t, int64(500), totals[0].PaidOut)
	})
}
