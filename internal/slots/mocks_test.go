package slots

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/SlotHouse_Go/internal/domain"
	"github.com/osse101/SlotHouse_Go/internal/repository"
)

var (
	errDiskFull   = errors.New("disk full")
	errConnection = errors.New("connection reset")
)

// MockWallet is an in-memory repository.Wallet. Transactions stage their writes
// and apply them on commit; only one transaction is open at a time.
type MockWallet struct {
	mu           sync.Mutex
	txLock       sync.Mutex
	accounts     map[string]*domain.Account
	transactions []domain.TransactionEntry
	history      []domain.GameHistoryEntry
	nextID       int64

	// Failure injection
	BeginErr          error
	AppendTxErr       error
	AppendHistoryErr  error
	CommitErr         error
	CreditErr         error
	beginCalls        int
	committedSettles  int
	rolledBackSettles int
}

func NewMockWallet() *MockWallet {
	return &MockWallet{accounts: make(map[string]*domain.Account)}
}

func (m *MockWallet) addAccount(id string, balance int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[id] = &domain.Account{ID: id, Username: "user-" + id, Balance: balance}
}

func (m *MockWallet) CreateAccount(_ context.Context, account *domain.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if a.Username == account.Username {
			return fmt.Errorf("%w: username %q is taken", domain.ErrInvalidInput, account.Username)
		}
	}
	now := time.Now().UTC()
	account.CreatedAt, account.UpdatedAt = now, now
	stored := *account
	m.accounts[account.ID] = &stored
	return nil
}

func (m *MockWallet) GetAccount(_ context.Context, userID string) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[userID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID)
	}
	out := *a
	return &out, nil
}

func (m *MockWallet) GetBalance(ctx context.Context, userID string) (int64, error) {
	a, err := m.GetAccount(ctx, userID)
	if err != nil {
		return 0, err
	}
	return a.Balance, nil
}

func (m *MockWallet) ListTransactions(_ context.Context, userID string, limit, offset int) ([]domain.TransactionEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var mine []domain.TransactionEntry
	for i := len(m.transactions) - 1; i >= 0; i-- {
		if m.transactions[i].UserID == userID {
			mine = append(mine, m.transactions[i])
		}
	}
	return window(mine, limit, offset), nil
}

func (m *MockWallet) CountTransactions(_ context.Context, userID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, e := range m.transactions {
		if e.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (m *MockWallet) ListGameHistory(_ context.Context, userID string, limit, offset int) ([]domain.GameHistoryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var mine []domain.GameHistoryEntry
	for i := len(m.history) - 1; i >= 0; i-- {
		if m.history[i].UserID == userID {
			mine = append(mine, m.history[i])
		}
	}
	return window(mine, limit, offset), nil
}

func (m *MockWallet) CountGameHistory(_ context.Context, userID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, e := range m.history {
		if e.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (m *MockWallet) GameTotals(_ context.Context) ([]domain.GameTotal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	totals := map[domain.GameID]*domain.GameTotal{}
	var order []domain.GameID
	for _, e := range m.history {
		t, ok := totals[e.Game]
		if !ok {
			t = &domain.GameTotal{Game: e.Game}
			totals[e.Game] = t
			order = append(order, e.Game)
		}
		t.Spins++
		t.Wagered += e.BetAmount
		t.PaidOut += e.WinAmount
	}
	out := make([]domain.GameTotal, 0, len(order))
	for _, g := range order {
		out = append(out, *totals[g])
	}
	return out, nil
}

func (m *MockWallet) BeginTx(_ context.Context) (repository.WalletTx, error) {
	m.mu.Lock()
	m.beginCalls++
	err := m.BeginErr
	m.mu.Unlock()
	if err != nil {
		return nil, err
	}
	m.txLock.Lock()
	return &MockWalletTx{wallet: m, balances: map[string]int64{}}, nil
}

func (m *MockWallet) ledgerSize() (int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.transactions), len(m.history)
}

func (m *MockWallet) counts() (begins, commits, rollbacks int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.beginCalls, m.committedSettles, m.rolledBackSettles
}

// MockWalletTx stages balance changes and ledger rows until Commit
type MockWalletTx struct {
	wallet       *MockWallet
	balances     map[string]int64
	transactions []domain.TransactionEntry
	history      []domain.GameHistoryEntry
	credits      int
	done         bool
}

func (t *MockWalletTx) balance(userID string) (int64, error) {
	if b, ok := t.balances[userID]; ok {
		return b, nil
	}
	b, err := t.wallet.GetBalance(context.Background(), userID)
	if err != nil {
		return 0, err
	}
	t.balances[userID] = b
	return b, nil
}

func (t *MockWalletTx) GetBalanceForUpdate(_ context.Context, userID string) (int64, error) {
	return t.balance(userID)
}

func (t *MockWalletTx) AdjustBalance(_ context.Context, userID string, delta int64) (int64, error) {
	if delta > 0 {
		t.credits++
		if t.wallet.CreditErr != nil {
			return 0, t.wallet.CreditErr
		}
	}
	b, err := t.balance(userID)
	if err != nil {
		return 0, err
	}
	if b+delta < 0 {
		return 0, fmt.Errorf("%w: cannot apply %d", domain.ErrInsufficientFunds, delta)
	}
	t.balances[userID] = b + delta
	return b + delta, nil
}

func (t *MockWalletTx) AppendTransaction(_ context.Context, e *domain.TransactionEntry) error {
	if t.wallet.AppendTxErr != nil {
		return t.wallet.AppendTxErr
	}
	t.transactions = append(t.transactions, *e)
	return nil
}

func (t *MockWalletTx) AppendGameHistory(_ context.Context, e *domain.GameHistoryEntry) error {
	if t.wallet.AppendHistoryErr != nil {
		return t.wallet.AppendHistoryErr
	}
	t.history = append(t.history, *e)
	return nil
}

func (t *MockWalletTx) Commit(_ context.Context) error {
	if t.done {
		return errors.New(domain.ErrMsgTxClosed)
	}
	t.done = true
	defer t.wallet.txLock.Unlock()

	m := t.wallet
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CommitErr != nil {
		m.rolledBackSettles++
		return m.CommitErr
	}
	for id, b := range t.balances {
		m.accounts[id].Balance = b
	}
	for _, e := range t.transactions {
		m.nextID++
		e.ID = m.nextID
		m.transactions = append(m.transactions, e)
	}
	for _, e := range t.history {
		m.nextID++
		e.ID = m.nextID
		m.history = append(m.history, e)
	}
	m.committedSettles++
	return nil
}

func (t *MockWalletTx) Rollback(_ context.Context) error {
	if t.done {
		return errors.New(domain.ErrMsgTxClosed)
	}
	t.done = true
	t.wallet.mu.Lock()
	t.wallet.rolledBackSettles++
	t.wallet.mu.Unlock()
	t.wallet.txLock.Unlock()
	return nil
}

func window[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

// fixedSource replays ints and floats in order, wrapping around. Safe for concurrent use.
type fixedSource struct {
	mu     sync.Mutex
	ints   []int
	floats []float64
	i, f   int
}

func (s *fixedSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.ints[s.i%len(s.ints)] % n
	s.i++
	return v
}

func (s *fixedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.floats) == 0 {
		return 0.99
	}
	v := s.floats[s.f%len(s.floats)]
	s.f++
	return v
}

// Classic reels are drawn as uniform indexes into 7, CHERRY, LEMON, ORANGE, BELL, BAR.

// tripleBells always draws BELL-BELL-BELL, which pays 30x
func tripleBells() *fixedSource { return &fixedSource{ints: []int{4}} }

// noMatch always draws BAR-BELL-LEMON, which pays nothing
func noMatch() *fixedSource { return &fixedSource{ints: []int{5, 4, 2}} }

// spyRecorder counts Recorder calls
type spyRecorder struct {
	mu       sync.Mutex
	settled  int
	wagered  int64
	paid     int64
	failures map[string]int
	replays  int
}

func newSpyRecorder() *spyRecorder {
	return &spyRecorder{failures: map[string]int{}}
}

func (r *spyRecorder) ObserveSettlement(_ string, bet, win int64, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.settled++
	r.wagered += bet
	r.paid += win
}

func (r *spyRecorder) ObserveFailure(kind string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures[kind]++
}

func (r *spyRecorder) ObserveReplay() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.replays++
}
