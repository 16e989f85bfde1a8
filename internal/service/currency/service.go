package currency

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/hrwallet-backend/internal/domain"
)

// DefaultWorkers bounds ReconcileAll when no worker count is configured.
const DefaultWorkers = 4

type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	ListIDs(ctx context.Context) ([]uuid.UUID, error)
	UpdateCurrency(ctx context.Context, id uuid.UUID, currency domain.Currency) (bool, error)
}

type walletRepo interface {
	SetCurrency(ctx context.Context, userID uuid.UUID, currency domain.Currency) (bool, error)
	UpdateCurrencyForUser(ctx context.Context, userID uuid.UUID, currency domain.Currency) (int64, error)
}

type creditRequestRepo interface {
	UpdateCurrencyForUser(ctx context.Context, userID uuid.UUID, currency domain.Currency) (int64, error)
}

type redemptionRepo interface {
	UpdateCurrencyForUser(ctx context.Context, userID uuid.UUID, currency domain.Currency) (int64, error)
}

type auditLogger interface {
	Log(ctx context.Context, record domain.AuditRecord) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service resolves the authoritative currency of a user and rewrites every
// monetary record that disagrees with it.
type Service struct {
	users       userRepo
	wallets     walletRepo
	requests    creditRequestRepo
	redemptions redemptionRepo
	audit       auditLogger
	tx          txManager
	workers     int
	log         *slog.Logger
}

// NewService creates a new currency Service.
func NewService(
	log *slog.Logger,
	users userRepo,
	wallets walletRepo,
	requests creditRequestRepo,
	redemptions redemptionRepo,
	audit auditLogger,
	tx txManager,
	workers int,
) *Service {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Service{
		users:       users,
		wallets:     wallets,
		requests:    requests,
		redemptions: redemptions,
		audit:       audit,
		tx:          tx,
		workers:     workers,
		log:         log.With("service", "currency"),
	}
}
