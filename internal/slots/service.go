package slots

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/osse101/SlotHouse_Go/internal/concurrency"
	"github.com/osse101/SlotHouse_Go/internal/domain"
	"github.com/osse101/SlotHouse_Go/internal/games"
	"github.com/osse101/SlotHouse_Go/internal/logger"
	"github.com/osse101/SlotHouse_Go/internal/repository"
)

// Recorder receives settlement telemetry
type Recorder interface {
	ObserveSettlement(game string, bet, win int64, elapsed time.Duration)
	ObserveFailure(kind string)
	ObserveReplay()
}

// Service defines the interface for wager settlement and wallet reads
type Service interface {
	Settle(ctx context.Context, wager domain.Wager) (*domain.SettlementRecord, error)
	GameConfig(id string) (domain.GameConfig, error)
	Games() []domain.GameConfig
	Balance(ctx context.Context, userID string) (int64, error)
	Transactions(ctx context.Context, userID string, limit, offset int) (*domain.Page[domain.TransactionEntry], error)
	GameHistory(ctx context.Context, userID string, limit, offset int) (*domain.Page[domain.GameHistoryEntry], error)
	OpenAccount(ctx context.Context, username string) (*domain.Account, error)
	Shutdown(ctx context.Context) error
}

// Config tunes the settlement service. Zero fields fall back to the package defaults.
type Config struct {
	StartingBalance      int64
	SettlementTimeout    time.Duration
	IdempotencyCacheSize int
	IdempotencyTTL       time.Duration
}

func (c Config) withDefaults() Config {
	if c.StartingBalance <= 0 {
		c.StartingBalance = DefaultStartingBalance
	}
	if c.SettlementTimeout <= 0 {
		c.SettlementTimeout = DefaultSettlementTimeout
	}
	if c.IdempotencyCacheSize <= 0 {
		c.IdempotencyCacheSize = DefaultIdempotencyCacheSize
	}
	if c.IdempotencyTTL <= 0 {
		c.IdempotencyTTL = DefaultIdempotencyTTL
	}
	return c
}

// Option customises a service at construction
type Option func(*service)

// WithRandomSource replaces the process-wide random source
func WithRandomSource(rng games.RandomSource) Option {
	return func(s *service) { s.rng = rng }
}

// WithRecorder sets the telemetry sink
func WithRecorder(r Recorder) Option {
	return func(s *service) { s.recorder = r }
}

// WithClock replaces time.Now, used by tests
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

type service struct {
	wallet   repository.Wallet
	registry *games.Registry
	cfg      Config
	locks    *concurrency.LockManager
	replays  *expirable.LRU[string, *domain.SettlementRecord]
	// unresolved holds keys whose commit failed; their outcome is unknown
	unresolved *expirable.LRU[string, string]
	printer    *message.Printer
	rng        games.RandomSource // Injectable for testing
	recorder   Recorder
	now        func() time.Time

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewService creates a new slots service
func NewService(wallet repository.Wallet, registry *games.Registry, cfg Config, opts ...Option) Service {
	cfg = cfg.withDefaults()
	s := &service{
		wallet:     wallet,
		registry:   registry,
		cfg:        cfg,
		locks:      concurrency.NewLockManager(),
		replays:    expirable.NewLRU[string, *domain.SettlementRecord](cfg.IdempotencyCacheSize, nil, cfg.IdempotencyTTL),
		unresolved: expirable.NewLRU[string, string](cfg.IdempotencyCacheSize, nil, cfg.IdempotencyTTL),
		printer:    message.NewPrinter(language.English),
		rng:        games.DefaultSource,
		recorder:   noopRecorder{},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Settle runs one wager end to end inside a single persistence transaction
func (s *service) Settle(ctx context.Context, wager domain.Wager) (*domain.SettlementRecord, error) {
	if err := s.enter(); err != nil {
		return nil, err
	}
	defer s.wg.Done()

	ctx = logger.WithUserID(ctx, wager.UserID)
	log := logger.FromContext(ctx)

	record, err := s.settle(ctx, wager)
	if err != nil {
		kind := domain.KindOf(err)
		s.recorder.ObserveFailure(string(kind))
		switch kind {
		case domain.KindSettlementIncomplete:
			log.Error(LogMsgSettlementUnknown, "game", wager.GameID, "bet", wager.BetAmount, "error", err)
		case domain.KindPersistenceFailure, domain.KindInternal:
			log.Error(LogMsgSettlementFailed, "game", wager.GameID, "bet", wager.BetAmount, "error", err)
		default:
			log.Warn(LogMsgWagerRejected, "game", wager.GameID, "bet", wager.BetAmount, "kind", kind, "error", err)
		}
		return nil, err
	}
	return record, nil
}

func (s *service) settle(ctx context.Context, wager domain.Wager) (*domain.SettlementRecord, error) {
	log := logger.FromContext(ctx)
	start := s.now()

	game, err := s.registry.Resolve(string(wager.GameID))
	if err != nil {
		return nil, err
	}
	cfg := game.Config
	wager.GameID = cfg.ID

	if wager.UserID == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}
	if !cfg.AllowsBet(wager.BetAmount) {
		return nil, fmt.Errorf("%w: %d is outside [%d, %d] for %s",
			domain.ErrInvalidBet, wager.BetAmount, cfg.MinBet, cfg.MaxBet, cfg.ID)
	}

	unlock := s.locks.Lock(wager.UserID)
	defer unlock()

	replayKey := idempotencyKey(wager)
	if replayKey != "" {
		if settlementID, ok := s.unresolved.Get(replayKey); ok {
			return nil, fmt.Errorf("%w: idempotency key %q belongs to settlement %s whose commit failed; reconcile before retrying",
				domain.ErrSettlementIncomplete, wager.IdempotencyKey, settlementID)
		}
		if cached, ok := s.replays.Get(replayKey); ok {
			if cached.Wager.GameID != wager.GameID || cached.Wager.BetAmount != wager.BetAmount {
				return nil, fmt.Errorf("%w: idempotency key %q was used for a different wager",
					domain.ErrInvalidInput, wager.IdempotencyKey)
			}
			s.recorder.ObserveReplay()
			log.Info(LogMsgIdempotentReplay, "settlement_id", cached.ID)
			return cached, nil
		}
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.SettlementTimeout)
	defer cancel()

	tx, err := s.wallet.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: begin transaction: %w", domain.ErrPersistenceFailure, err)
	}
	defer repository.SafeRollback(ctx, tx)

	balanceBefore, err := tx.GetBalanceForUpdate(ctx, wager.UserID)
	if err != nil {
		return nil, storageError("load balance", err)
	}
	if balanceBefore < wager.BetAmount {
		return nil, fmt.Errorf("%w: balance %d is below bet %d", domain.ErrInsufficientFunds, balanceBefore, wager.BetAmount)
	}

	stored, err := tx.AdjustBalance(ctx, wager.UserID, -wager.BetAmount)
	if err != nil {
		return nil, storageError("debit bet", err)
	}

	outcome := games.Spin(game.Engine, s.rng)
	winAmount := domain.Payout(wager.BetAmount, outcome.Multiplier)
	netChange := winAmount - wager.BetAmount
	balanceAfter := balanceBefore + netChange

	if winAmount > 0 {
		if stored, err = tx.AdjustBalance(ctx, wager.UserID, winAmount); err != nil {
			return nil, storageError("credit winnings", err)
		}
	}
	if stored != balanceAfter {
		return nil, fmt.Errorf("%w: store reports balance %d, expected %d",
			domain.ErrPersistenceFailure, stored, balanceAfter)
	}

	record := &domain.SettlementRecord{
		ID:            uuid.NewString(),
		Wager:         wager,
		Game:          cfg.ID,
		Outcome:       outcome,
		WinAmount:     winAmount,
		NetChange:     netChange,
		BalanceBefore: balanceBefore,
		BalanceAfter:  balanceAfter,
		Message:       s.formatMessage(cfg.DisplayName, wager.BetAmount, winAmount),
		CreatedAt:     s.now().UTC(),
	}

	if err := s.appendLedger(ctx, tx, record); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		if replayKey != "" {
			s.unresolved.Add(replayKey, record.ID)
		}
		return nil, fmt.Errorf("%w: commit settlement %s: %w", domain.ErrSettlementIncomplete, record.ID, err)
	}

	if replayKey != "" {
		s.replays.Add(replayKey, record)
	}
	s.recorder.ObserveSettlement(string(cfg.ID), wager.BetAmount, winAmount, s.now().Sub(start))

	log.Info(LogMsgWagerSettled,
		"settlement_id", record.ID,
		"game", cfg.ID,
		"bet", wager.BetAmount,
		"win", winAmount,
		"balance_after", balanceAfter)

	return record, nil
}

// appendLedger writes the transaction and game-history rows of record
func (s *service) appendLedger(ctx context.Context, tx repository.WalletTx, record *domain.SettlementRecord) error {
	result, err := json.Marshal(record.Outcome)
	if err != nil {
		return fmt.Errorf("%w: encode outcome: %w", domain.ErrPersistenceFailure, err)
	}
	reels, err := json.Marshal(record.Outcome.Reels)
	if err != nil {
		return fmt.Errorf("%w: encode reels: %w", domain.ErrPersistenceFailure, err)
	}

	txType := domain.TransactionLoss
	if record.Outcome.Win {
		txType = domain.TransactionWin
	}

	if err := tx.AppendTransaction(ctx, &domain.TransactionEntry{
		SettlementID:  record.ID,
		UserID:        record.Wager.UserID,
		Amount:        record.Wager.BetAmount,
		Type:          txType,
		Game:          record.Game,
		Result:        result,
		BalanceBefore: record.BalanceBefore,
		BalanceAfter:  record.BalanceAfter,
		CreatedAt:     record.CreatedAt,
	}); err != nil {
		return storageError("append transaction", err)
	}

	if err := tx.AppendGameHistory(ctx, &domain.GameHistoryEntry{
		SettlementID:  record.ID,
		UserID:        record.Wager.UserID,
		Game:          record.Game,
		BetAmount:     record.Wager.BetAmount,
		WinAmount:     record.WinAmount,
		ReelPositions: reels,
		Multiplier:    record.Outcome.Multiplier,
		CreatedAt:     record.CreatedAt,
	}); err != nil {
		return storageError("append game history", err)
	}
	return nil
}

// GameConfig returns a copy of the configuration of id
func (s *service) GameConfig(id string) (domain.GameConfig, error) {
	return s.registry.Config(id)
}

// Games lists every configured game in catalog order
func (s *service) Games() []domain.GameConfig {
	return s.registry.List()
}

// Balance returns the current balance of userID
func (s *service) Balance(ctx context.Context, userID string) (int64, error) {
	balance, err := s.wallet.GetBalance(ctx, userID)
	if err != nil {
		return 0, storageError("get balance", err)
	}
	return balance, nil
}

// Transactions returns one page of the ledger of userID, newest first
func (s *service) Transactions(ctx context.Context, userID string, limit, offset int) (*domain.Page[domain.TransactionEntry], error) {
	limit, offset = pageBounds(limit, offset, DefaultTransactionLimit)

	if _, err := s.wallet.GetBalance(ctx, userID); err != nil {
		return nil, storageError("get account", err)
	}
	entries, err := s.wallet.ListTransactions(ctx, userID, limit, offset)
	if err != nil {
		return nil, storageError("list transactions", err)
	}
	total, err := s.wallet.CountTransactions(ctx, userID)
	if err != nil {
		return nil, storageError("count transactions", err)
	}
	return &domain.Page[domain.TransactionEntry]{Entries: entries, Total: total, Limit: limit, Offset: offset}, nil
}

// GameHistory returns one page of the plays of userID, newest first
func (s *service) GameHistory(ctx context.Context, userID string, limit, offset int) (*domain.Page[domain.GameHistoryEntry], error) {
	limit, offset = pageBounds(limit, offset, DefaultHistoryLimit)

	if _, err := s.wallet.GetBalance(ctx, userID); err != nil {
		return nil, storageError("get account", err)
	}
	entries, err := s.wallet.ListGameHistory(ctx, userID, limit, offset)
	if err != nil {
		return nil, storageError("list game history", err)
	}
	total, err := s.wallet.CountGameHistory(ctx, userID)
	if err != nil {
		return nil, storageError("count game history", err)
	}
	return &domain.Page[domain.GameHistoryEntry]{Entries: entries, Total: total, Limit: limit, Offset: offset}, nil
}

// OpenAccount creates an account credited with the configured starting balance
func (s *service) OpenAccount(ctx context.Context, username string) (*domain.Account, error) {
	username = strings.TrimSpace(username)
	if n := len(username); n < MinUsernameLength || n > MaxUsernameLength {
		return nil, fmt.Errorf("%w: username must be %d-%d characters", domain.ErrInvalidInput, MinUsernameLength, MaxUsernameLength)
	}

	account := &domain.Account{
		ID:       uuid.NewString(),
		Username: username,
		Balance:  s.cfg.StartingBalance,
	}
	if err := s.wallet.CreateAccount(ctx, account); err != nil {
		return nil, storageError("create account", err)
	}

	logger.FromContext(logger.WithUserID(ctx, account.ID)).Info(LogMsgAccountOpened,
		"username", account.Username, "balance", account.Balance)
	return account, nil
}

// Shutdown stops accepting wagers and waits for in-flight settlements
func (s *service) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	logger.Info(LogMsgServiceShutdown)

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		logger.Warn(LogMsgWaitingForInFlight, "error", ctx.Err())
		return ctx.Err()
	}
}

// enter registers an in-flight settlement unless shutdown has begun
func (s *service) enter() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return domain.ErrServiceUnavailable
	}
	s.wg.Add(1)
	return nil
}

func (s *service) formatMessage(game string, bet, win int64) string {
	switch win {
	case 0:
		return s.printer.Sprintf(MsgLoss, game, bet)
	case bet:
		return s.printer.Sprintf(MsgBreakEven, game, bet)
	default:
		return s.printer.Sprintf(MsgWin, game, win, bet, win-bet)
	}
}

// storageError keeps domain errors from the store and tags everything else as a persistence failure
func storageError(op string, err error) error {
	for _, known := range []error{domain.ErrUserNotFound, domain.ErrInsufficientFunds, domain.ErrInvalidInput} {
		if errors.Is(err, known) {
			return err
		}
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrPersistenceFailure, op, err)
}

func idempotencyKey(w domain.Wager) string {
	if w.IdempotencyKey == "" {
		return ""
	}
	return w.UserID + "|" + w.IdempotencyKey
}

func pageBounds(limit, offset, def int) (int, int) {
	if limit <= 0 {
		limit = def
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

type noopRecorder struct{}

func (noopRecorder) ObserveSettlement(string, int64, int64, time.Duration) {}
func (noopRecorder) ObserveFailure(string)                                 {}
func (noopRecorder) ObserveReplay()                                        {}
