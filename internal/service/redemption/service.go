package redemption

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/hrwallet-backend/internal/domain"
	"github.com/heartmarshall/hrwallet-backend/internal/metrics"
	"github.com/heartmarshall/hrwallet-backend/pkg/ctxutil"
)

const (
	MaxNotesLen         = 1000
	MaxReferenceLen     = 200
	DefaultProofTimeout = 30 * time.Second
)

const entityRedemption = "redemption_request"

type redemptionRepo interface {
	Create(ctx context.Context, rr *domain.RedemptionRequest) (*domain.RedemptionRequest, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.RedemptionRequest, error)
	List(ctx context.Context, filter domain.RedemptionFilter) ([]domain.RedemptionRequest, error)
	AttachDebit(ctx context.Context, id, debitTransactionID uuid.UUID, entries []domain.TimelineEntry) (*domain.RedemptionRequest, error)
	MarkProcessing(ctx context.Context, id uuid.UUID, entries []domain.TimelineEntry) (*domain.RedemptionRequest, error)
	Complete(ctx context.Context, id uuid.UUID, c domain.RedemptionCompletion, entries []domain.TimelineEntry) (*domain.RedemptionRequest, error)
	Reject(ctx context.Context, id uuid.UUID, rj domain.RedemptionRejection, entries []domain.TimelineEntry) (*domain.RedemptionRequest, error)
	SetProofRef(ctx context.Context, id uuid.UUID, ref string) error
}

type walletLedger interface {
	Exclusive(ctx context.Context, userID uuid.UUID, fn func(ctx context.Context) error) error
	LockWallet(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error)
	Post(ctx context.Context, w *domain.Wallet, p domain.LedgerPosting) (*domain.WalletTransaction, error)
	GetTransaction(ctx context.Context, id uuid.UUID) (*domain.WalletTransaction, error)
	MarkRedeemed(ctx context.Context, txID, redemptionID uuid.UUID) error
}

type currencyResolver interface {
	Authoritative(ctx context.Context, userID uuid.UUID) (domain.Currency, *domain.User, error)
}

type userDirectory interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.User, error)
	ListByRole(ctx context.Context, roles ...domain.Role) ([]domain.User, error)
}

type dispatcher interface {
	Publish(ctx context.Context, fx domain.SideEffects)
}

type proofRenderer interface {
	RenderTimelineProof(doc domain.ProofDocument) ([]byte, error)
}

type documentStore interface {
	StoreDocument(ctx context.Context, data []byte, filename string, metadata map[string]string) (string, error)
}

type queueExporter interface {
	ExportRedemptions(w io.Writer, rows []domain.RedemptionRequest, users map[uuid.UUID]domain.User) error
}

// Service runs the redemption workflow: request, payout processing or
// rejection, and the proof document that accompanies each request.
type Service struct {
	redemptions  redemptionRepo
	ledger       walletLedger
	currency     currencyResolver
	users        userDirectory
	dispatch     dispatcher
	exporter     queueExporter
	renderer     proofRenderer
	store        documentStore
	proofTimeout time.Duration
	proofs       sync.WaitGroup
	now          func() time.Time
	log          *slog.Logger
}

// NewService creates a new redemption Service. Proof documents stay disabled
// until EnableProofs is called.
func NewService(
	log *slog.Logger,
	redemptions redemptionRepo,
	ledger walletLedger,
	currency currencyResolver,
	users userDirectory,
	dispatch dispatcher,
	exporter queueExporter,
) *Service {
	return &Service{
		redemptions:  redemptions,
		ledger:       ledger,
		currency:     currency,
		users:        users,
		dispatch:     dispatch,
		exporter:     exporter,
		proofTimeout: DefaultProofTimeout,
		now:          func() time.Time { return time.Now().UTC() },
		log:          log.With("service", "redemption"),
	}
}

// EnableProofs turns on proof generation after every redemption request.
func (s *Service) EnableProofs(renderer proofRenderer, store documentStore, timeout time.Duration) {
	s.renderer = renderer
	s.store = store
	if timeout > 0 {
		s.proofTimeout = timeout
	}
}

// Wait blocks until in-flight proof generation has finished.
func (s *Service) Wait() {
	s.proofs.Wait()
}

// Result is the outcome of a transition that moved money.
type Result struct {
	Redemption  *domain.RedemptionRequest
	Transaction *domain.WalletTransaction
}

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

func (s *Service) payoutCaller(ctx context.Context) (*domain.User, error) {
	u, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	if !u.Role.CanProcessPayouts() {
		return nil, fmt.Errorf("%w: payouts are handled by account users", domain.ErrForbidden)
	}
	return u, nil
}

func observe(transition string, err error) {
	metrics.RedemptionTransitions.WithLabelValues(transition, metrics.Outcome(err)).Inc()
}

func stateError(err error, id uuid.UUID, op string, from domain.RedemptionStatus) error {
	if errors.Is(err, domain.ErrInvalidStateTransition) {
		return domain.NewTransitionError(entityRedemption, id, op, string(from))
	}
	return err
}
