// Package redemption implements RedemptionRequest persistence using PostgreSQL.
package redemption

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/hrwallet-backend/internal/adapter/postgres"
	"github.com/heartmarshall/hrwallet-backend/internal/domain"
)

const (
	columns = `id, user_id, amount, currency, credit_transaction_id, debit_transaction_id, status, notes,
	proof_document_ref, processed_by, processed_at, transaction_reference, payment_notes, rejection_reason,
	timeline_log, created_at, updated_at`

	creditUniqueConstraint = "redemption_requests_credit_transaction_id_key"
)

// Repo provides redemption request persistence.
type Repo struct {
	pool postgres.Querier
}

// New creates a new redemption repository.
func New(pool postgres.Querier) *Repo {
	return &Repo{pool: pool}
}

type row struct {
	ID                   uuid.UUID       `db:"id"`
	UserID               uuid.UUID       `db:"user_id"`
	Amount               decimal.Decimal `db:"amount"`
	Currency             string          `db:"currency"`
	CreditTransactionID  uuid.UUID       `db:"credit_transaction_id"`
	DebitTransactionID   *uuid.UUID      `db:"debit_transaction_id"`
	Status               string          `db:"status"`
	Notes                string          `db:"notes"`
	ProofDocumentRef     *string         `db:"proof_document_ref"`
	ProcessedBy          *uuid.UUID      `db:"processed_by"`
	ProcessedAt          *time.Time      `db:"processed_at"`
	TransactionReference *string         `db:"transaction_reference"`
	PaymentNotes         *string         `db:"payment_notes"`
	RejectionReason      *string         `db:"rejection_reason"`
	TimelineLog          []byte          `db:"timeline_log"`
	CreatedAt            time.Time       `db:"created_at"`
	UpdatedAt            time.Time       `db:"updated_at"`
}

func (r row) toDomain() (*domain.RedemptionRequest, error) {
	log, err := postgres.UnmarshalTimeline(r.TimelineLog)
	if err != nil {
		return nil, err
	}
	return &domain.RedemptionRequest{
		ID:                   r.ID,
		UserID:               r.UserID,
		Amount:               r.Amount,
		Currency:             domain.Currency(r.Currency),
		CreditTransactionID:  r.CreditTransactionID,
		DebitTransactionID:   r.DebitTransactionID,
		Status:               domain.RedemptionStatus(r.Status),
		Notes:                r.Notes,
		ProofDocumentRef:     r.ProofDocumentRef,
		ProcessedBy:          r.ProcessedBy,
		ProcessedAt:          r.ProcessedAt,
		TransactionReference: r.TransactionReference,
		PaymentNotes:         r.PaymentNotes,
		RejectionReason:      r.RejectionReason,
		TimelineLog:          log,
		CreatedAt:            r.CreatedAt,
		UpdatedAt:            r.UpdatedAt,
	}, nil
}

// Create inserts a pending redemption. A second redemption of the same credit
// transaction yields domain.ErrInvalidStateTransition.
func (r *Repo) Create(ctx context.Context, rr *domain.RedemptionRequest) (*domain.RedemptionRequest, error) {
	log, err := postgres.MarshalTimeline(rr.TimelineLog)
	if err != nil {
		return nil, err
	}

	var out row
	err = pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &out,
		`INSERT INTO redemption_requests (id, user_id, amount, currency, credit_transaction_id, status, notes,
			timeline_log, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		 RETURNING `+columns,
		rr.ID, rr.UserID, rr.Amount, string(rr.Currency), rr.CreditTransactionID, string(rr.Status), rr.Notes,
		log, rr.CreatedAt,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err, creditUniqueConstraint) {
			return nil, fmt.Errorf("wallet_transaction %s: already redeemed: %w", rr.CreditTransactionID, domain.ErrInvalidStateTransition)
		}
		return nil, postgres.MapError(err, "redemption_request", rr.ID)
	}
	return out.toDomain()
}

// GetByID returns a redemption request by id.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.RedemptionRequest, error) {
	var out row
	err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &out,
		`SELECT `+columns+` FROM redemption_requests WHERE id = $1`, id)
	if err != nil {
		return nil, postgres.MapError(err, "redemption_request", id)
	}
	return out.toDomain()
}

// List returns redemptions matching the filter. A user's own history is
// newest first; the processing queue (no user filter) is oldest first.
func (r *Repo) List(ctx context.Context, f domain.RedemptionFilter) ([]domain.RedemptionRequest, error) {
	q := postgres.Builder().
		Select(columns).
		From("redemption_requests").
		Limit(uint64(domain.ClampLimit(f.Limit)))
	if f.Offset > 0 {
		q = q.Offset(uint64(f.Offset))
	}
	if f.UserID != nil {
		q = q.Where(squirrel.Eq{"user_id": *f.UserID}).OrderBy("created_at DESC", "id")
	} else {
		q = q.OrderBy("created_at ASC", "id")
	}
	if len(f.Statuses) > 0 {
		statuses := make([]string, len(f.Statuses))
		for i, s := range f.Statuses {
			statuses[i] = string(s)
		}
		q = q.Where(squirrel.Eq{"status": statuses})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build redemption query: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.pool), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list redemptions: %w", err)
	}

	out := make([]domain.RedemptionRequest, 0, len(rows))
	for _, rw := range rows {
		rr, err := rw.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, *rr)
	}
	return out, nil
}

// AttachDebit links the posted debit to a pending redemption and appends entries.
func (r *Repo) AttachDebit(ctx context.Context, id, debitTransactionID uuid.UUID, entries []domain.TimelineEntry) (*domain.RedemptionRequest, error) {
	log, err := postgres.MarshalTimeline(entries)
	if err != nil {
		return nil, err
	}

	return r.transition(ctx, id,
		`UPDATE redemption_requests
		 SET debit_transaction_id = $2, timeline_log = timeline_log || $3::jsonb, updated_at = now()
		 WHERE id = $1 AND status = 'pending' AND debit_transaction_id IS NULL
		 RETURNING `+columns,
		id, debitTransactionID, log)
}

// MarkProcessing moves a pending redemption to processing.
func (r *Repo) MarkProcessing(ctx context.Context, id uuid.UUID, entries []domain.TimelineEntry) (*domain.RedemptionRequest, error) {
	log, err := postgres.MarshalTimeline(entries)
	if err != nil {
		return nil, err
	}

	return r.transition(ctx, id,
		`UPDATE redemption_requests
		 SET status = 'processing', timeline_log = timeline_log || $2::jsonb, updated_at = now()
		 WHERE id = $1 AND status = 'pending'
		 RETURNING `+columns,
		id, log)
}

// Complete moves a pending or processing redemption to completed, recording
// the payout and correcting the currency.
func (r *Repo) Complete(ctx context.Context, id uuid.UUID, c domain.RedemptionCompletion, entries []domain.TimelineEntry) (*domain.RedemptionRequest, error) {
	log, err := postgres.MarshalTimeline(entries)
	if err != nil {
		return nil, err
	}

	return r.transition(ctx, id,
		`UPDATE redemption_requests
		 SET status = 'completed',
		     currency = $2,
		     processed_by = $3,
		     processed_at = $4,
		     transaction_reference = $5,
		     payment_notes = $6,
		     timeline_log = timeline_log || $7::jsonb,
		     updated_at = now()
		 WHERE id = $1 AND status IN ('pending', 'processing')
		 RETURNING `+columns,
		id, string(c.Currency), c.ProcessedBy, c.ProcessedAt, c.TransactionReference, c.PaymentNotes, log)
}

// Reject moves a pending or processing redemption to rejected.
func (r *Repo) Reject(ctx context.Context, id uuid.UUID, rj domain.RedemptionRejection, entries []domain.TimelineEntry) (*domain.RedemptionRequest, error) {
	log, err := postgres.MarshalTimeline(entries)
	if err != nil {
		return nil, err
	}

	return r.transition(ctx, id,
		`UPDATE redemption_requests
		 SET status = 'rejected',
		     processed_by = $2,
		     processed_at = $3,
		     rejection_reason = $4,
		     timeline_log = timeline_log || $5::jsonb,
		     updated_at = now()
		 WHERE id = $1 AND status IN ('pending', 'processing')
		 RETURNING `+columns,
		id, rj.ProcessedBy, rj.ProcessedAt, rj.Reason, log)
}

// SetProofRef stores the document store reference of the proof.
func (r *Repo) SetProofRef(ctx context.Context, id uuid.UUID, ref string) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx,
		`UPDATE redemption_requests SET proof_document_ref = $2, updated_at = now() WHERE id = $1`,
		id, ref)
	if err != nil {
		return postgres.MapError(err, "redemption_request", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("redemption_request %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// UpdateCurrencyForUser rewrites the currency of the user's redemptions that
// differ. Returns the number of rows changed.
func (r *Repo) UpdateCurrencyForUser(ctx context.Context, userID uuid.UUID, currency domain.Currency) (int64, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx,
		`UPDATE redemption_requests SET currency = $2, updated_at = now()
		 WHERE user_id = $1 AND currency <> $2`,
		userID, string(currency))
	if err != nil {
		return 0, postgres.MapError(err, "redemption_request", userID)
	}
	return tag.RowsAffected(), nil
}

func (r *Repo) transition(ctx context.Context, id uuid.UUID, sql string, args ...any) (*domain.RedemptionRequest, error) {
	var out row
	err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &out, sql, args...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || pgxscan.NotFound(err) {
			return nil, fmt.Errorf("redemption_request %s: %w", id, domain.ErrInvalidStateTransition)
		}
		return nil, postgres.MapError(err, "redemption_request", id)
	}
	return out.toDomain()
}
