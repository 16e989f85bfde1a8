package ledger

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/hrwallet-backend/internal/domain"
)

type walletRepo interface {
	Ensure(ctx context.Context, userID uuid.UUID, currency domain.Currency) (*domain.Wallet, error)
	Get(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error)
	GetForUpdate(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error)
	SetCurrency(ctx context.Context, userID uuid.UUID, currency domain.Currency) (bool, error)
	PostTransaction(ctx context.Context, p domain.PostTransactionParams) (*domain.WalletTransaction, error)
	GetTransaction(ctx context.Context, id uuid.UUID) (*domain.WalletTransaction, error)
	ListTransactions(ctx context.Context, userID uuid.UUID, filter domain.TransactionFilter) ([]domain.WalletTransaction, error)
	MarkRedeemed(ctx context.Context, txID, redemptionID uuid.UUID) error
	SumByType(ctx context.Context, userID uuid.UUID) (decimal.Decimal, decimal.Decimal, error)
}

type currencyResolver interface {
	Authoritative(ctx context.Context, userID uuid.UUID) (domain.Currency, *domain.User, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type walletLocker interface {
	Obtain(ctx context.Context, key string) (func(), error)
}

// Service owns wallets and their append-only transaction ledger. Every post
// happens against a wallet row locked for the duration of the caller's
// transaction, so the cached balance always equals the ledger sum.
type Service struct {
	wallets  walletRepo
	currency currencyResolver
	tx       txManager
	locker   walletLocker
	log      *slog.Logger
}

// NewService creates a new ledger Service.
func NewService(
	log *slog.Logger,
	wallets walletRepo,
	currency currencyResolver,
	tx txManager,
) *Service {
	return &Service{
		wallets:  wallets,
		currency: currency,
		tx:       tx,
		log:      log.With("service", "ledger"),
	}
}

// SetLocker enables a cross-instance lock taken before the wallet row lock.
func (s *Service) SetLocker(l walletLocker) {
	s.locker = l
}
