package creditrequest

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/hrwallet-backend/internal/domain"
	"github.com/heartmarshall/hrwallet-backend/internal/metrics"
	"github.com/heartmarshall/hrwallet-backend/pkg/ctxutil"
)

const (
	MaxAttachments    = 20
	MaxDescriptionLen = 2000
	MaxReasonLen      = 1000
	MaxSignatureIDLen = 200
	DefaultMaxAmount  = 10_000_000
)

const entityCreditRequest = "credit_request"

type creditRequestRepo interface {
	Create(ctx context.Context, cr *domain.CreditRequest) (*domain.CreditRequest, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CreditRequest, error)
	List(ctx context.Context, filter domain.CreditRequestFilter) ([]domain.CreditRequest, error)
	Transition(ctx context.Context, t domain.CreditTransition) (*domain.CreditRequest, error)
}

type userDirectory interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.User, error)
}

type policyDirectory interface {
	GetAssignment(ctx context.Context, userID, policyID uuid.UUID) (*domain.PolicyAssignment, error)
	InitiatorsForAssignment(ctx context.Context, assignmentID uuid.UUID) ([]domain.Initiator, error)
	InitiatorsForEmployee(ctx context.Context, employeeID uuid.UUID) ([]domain.Initiator, error)
}

type walletLedger interface {
	Exclusive(ctx context.Context, userID uuid.UUID, fn func(ctx context.Context) error) error
	LockWallet(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error)
	Post(ctx context.Context, w *domain.Wallet, p domain.LedgerPosting) (*domain.WalletTransaction, error)
}

type dispatcher interface {
	Publish(ctx context.Context, fx domain.SideEffects)
}

// Service runs the credit request workflow from creation to wallet credit.
type Service struct {
	requests  creditRequestRepo
	users     userDirectory
	policies  policyDirectory
	ledger    walletLedger
	dispatch  dispatcher
	maxAmount decimal.Decimal
	now       func() time.Time
	log       *slog.Logger
}

// NewService creates a new credit request Service. A non-positive maxAmount
// falls back to DefaultMaxAmount.
func NewService(
	log *slog.Logger,
	requests creditRequestRepo,
	users userDirectory,
	policies policyDirectory,
	ledger walletLedger,
	dispatch dispatcher,
	maxAmount decimal.Decimal,
) *Service {
	if !maxAmount.IsPositive() {
		maxAmount = decimal.NewFromInt(DefaultMaxAmount)
	}
	return &Service{
		requests:  requests,
		users:     users,
		policies:  policies,
		ledger:    ledger,
		dispatch:  dispatch,
		maxAmount: maxAmount,
		now:       func() time.Time { return time.Now().UTC() },
		log:       log.With("service", "creditrequest"),
	}
}

// Result is the outcome of a transition. Transaction is set when the
// transition credited the wallet.
type Result struct {
	Request     *domain.CreditRequest
	Transaction *domain.WalletTransaction
}

// caller loads the authenticated user. The directory role is authoritative.
func (s *Service) caller(ctx context.Context) (*domain.User, error) {
	id, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	u, err := s.users.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func observe(transition string, err error) {
	metrics.CreditTransitions.WithLabelValues(transition, metrics.Outcome(err)).Inc()
}

func stateError(err error, id uuid.UUID, op string, from domain.CreditRequestStatus) error {
	if errors.Is(err, domain.ErrInvalidStateTransition) {
		return domain.NewTransitionError(entityCreditRequest, id, op, string(from))
	}
	return err
}
