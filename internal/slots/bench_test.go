package slots

import (
	"context"
	"testing"

	"github.com/osse101/SlotHouse_Go/internal/domain"
	"github.com/osse101/SlotHouse_Go/internal/games"
	"github.com/osse101/SlotHouse_Go/internal/repository"
)

// --- Stubs (zero-overhead wallet for benchmarking) ---

type stubWallet struct{}

func (stubWallet) CreateAccount(context.Context, *domain.Account) error { return nil }
func (stubWallet) GetAccount(_ context.Context, id string) (*domain.Account, error) {
	return &domain.Account{ID: id, Balance: 1 << 40}, nil
}
func (stubWallet) GetBalance(context.Context, string) (int64, error) { return 1 << 40, nil }
func (stubWallet) ListTransactions(context.Context, string, int, int) ([]domain.TransactionEntry, error) {
	return nil, nil
}
func (stubWallet) CountTransactions(context.Context, string) (int64, error) { return 0, nil }
func (stubWallet) ListGameHistory(context.Context, string, int, int) ([]domain.GameHistoryEntry, error) {
	return nil, nil
}
func (stubWallet) CountGameHistory(context.Context, string) (int64, error) { return 0, nil }
func (stubWallet) GameTotals(context.Context) ([]domain.GameTotal, error)  { return nil, nil }
func (stubWallet) BeginTx(context.Context) (repository.WalletTx, error) {
	return &stubTx{balance: 1 << 40}, nil
}

type stubTx struct{ balance int64 }

func (t *stubTx) Commit(context.Context) error   { return nil }
func (t *stubTx) Rollback(context.Context) error { return nil }
func (t *stubTx) GetBalanceForUpdate(context.Context, string) (int64, error) {
	return t.balance, nil
}
func (t *stubTx) AdjustBalance(_ context.Context, _ string, delta int64) (int64, error) {
	t.balance += delta
	return t.balance, nil
}
func (t *stubTx) AppendTransaction(context.Context, *domain.TransactionEntry) error { return nil }
func (t *stubTx) AppendGameHistory(context.Context, *domain.GameHistoryEntry) error { return nil }

func benchService(b *testing.B) Service {
	b.Helper()
	registry, err := games.NewRegistry()
	if err != nil {
		b.Fatal(err)
	}
	return NewService(stubWallet{}, registry, Config{}, WithRandomSource(games.NewSeededSource(1)))
}

// BenchmarkSettle measures one full settlement per game without storage cost
func BenchmarkSettle(b *testing.B) {
	svc := benchService(b)
	ctx := context.Background()

	for _, cfg := range svc.Games() {
		b.Run(string(cfg.ID), func(b *testing.B) {
			wager := domain.Wager{UserID: "bench-user", GameID: cfg.ID, BetAmount: cfg.MinBet}
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := svc.Settle(ctx, wager); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkSettle_Parallel settles for many distinct users at once
func BenchmarkSettle_Parallel(b *testing.B) {
	svc := benchService(b)
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			i++
			wager := domain.Wager{UserID: "u" + string(rune('a'+i%26)), GameID: "classic777", BetAmount: 10}
			if _, err := svc.Settle(ctx, wager); err != nil {
				b.Error(err)
				return
			}
		}
	})
}
