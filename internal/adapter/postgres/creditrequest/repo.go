// Package creditrequest implements CreditRequest persistence using PostgreSQL.
// Status changes are compare-and-swap updates that append timeline entries in
// the same statement.
package creditrequest

import (
	"context"
	"encoding/json"
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

const columns = `id, user_id, initiator_id, hod_id, policy_id, type, base_amount, bonus, deductions,
	amount, currency, amount_items, attachments, description, status, timeline_log, signature_id,
	created_at, updated_at`

// Repo provides credit request persistence.
type Repo struct {
	pool postgres.Querier
}

// New creates a new credit request repository.
func New(pool postgres.Querier) *Repo {
	return &Repo{pool: pool}
}

type row struct {
	ID          uuid.UUID       `db:"id"`
	UserID      uuid.UUID       `db:"user_id"`
	InitiatorID uuid.UUID       `db:"initiator_id"`
	HodID       uuid.UUID       `db:"hod_id"`
	PolicyID    *uuid.UUID      `db:"policy_id"`
	Type        string          `db:"type"`
	BaseAmount  decimal.Decimal `db:"base_amount"`
	Bonus       decimal.Decimal `db:"bonus"`
	Deductions  decimal.Decimal `db:"deductions"`
	Amount      decimal.Decimal `db:"amount"`
	Currency    string          `db:"currency"`
	AmountItems []byte          `db:"amount_items"`
	Attachments []string        `db:"attachments"`
	Description string          `db:"description"`
	Status      string          `db:"status"`
	TimelineLog []byte          `db:"timeline_log"`
	SignatureID *string         `db:"signature_id"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

type amountItemJSON struct {
	Kind   string `json:"kind"`
	Label  string `json:"label"`
	Amount string `json:"amount"`
}

func marshalItems(items []domain.AmountItem) ([]byte, error) {
	out := make([]amountItemJSON, len(items))
	for i, it := range items {
		out[i] = amountItemJSON{Kind: string(it.Kind), Label: it.Label, Amount: it.Amount.StringFixed(2)}
	}
	return json.Marshal(out)
}

func unmarshalItems(data []byte) ([]domain.AmountItem, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var raw []amountItemJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal amount items: %w", err)
	}
	items := make([]domain.AmountItem, len(raw))
	for i, it := range raw {
		amount, err := decimal.NewFromString(it.Amount)
		if err != nil {
			return nil, fmt.Errorf("amount item %d: %w", i, err)
		}
		items[i] = domain.AmountItem{Kind: domain.AmountItemKind(it.Kind), Label: it.Label, Amount: amount}
	}
	return items, nil
}

func (r row) toDomain() (*domain.CreditRequest, error) {
	items, err := unmarshalItems(r.AmountItems)
	if err != nil {
		return nil, err
	}
	log, err := postgres.UnmarshalTimeline(r.TimelineLog)
	if err != nil {
		return nil, err
	}
	attachments := r.Attachments
	if attachments == nil {
		attachments = []string{}
	}

	return &domain.CreditRequest{
		ID:          r.ID,
		UserID:      r.UserID,
		InitiatorID: r.InitiatorID,
		HodID:       r.HodID,
		PolicyID:    r.PolicyID,
		Type:        domain.CreditRequestType(r.Type),
		BaseAmount:  r.BaseAmount,
		Bonus:       r.Bonus,
		Deductions:  r.Deductions,
		Amount:      r.Amount,
		Currency:    domain.Currency(r.Currency),
		AmountItems: items,
		Attachments: attachments,
		Description: r.Description,
		Status:      domain.CreditRequestStatus(r.Status),
		TimelineLog: log,
		SignatureID: r.SignatureID,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}, nil
}

// Create inserts a new credit request and returns the stored row.
func (r *Repo) Create(ctx context.Context, cr *domain.CreditRequest) (*domain.CreditRequest, error) {
	items, err := marshalItems(cr.AmountItems)
	if err != nil {
		return nil, fmt.Errorf("marshal amount items: %w", err)
	}
	log, err := postgres.MarshalTimeline(cr.TimelineLog)
	if err != nil {
		return nil, err
	}
	attachments := cr.Attachments
	if attachments == nil {
		attachments = []string{}
	}

	var out row
	err = pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &out,
		`INSERT INTO credit_requests (id, user_id, initiator_id, hod_id, policy_id, type, base_amount, bonus,
			deductions, amount, currency, amount_items, attachments, description, status, timeline_log,
			signature_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $18)
		 RETURNING `+columns,
		cr.ID, cr.UserID, cr.InitiatorID, cr.HodID, cr.PolicyID, string(cr.Type), cr.BaseAmount, cr.Bonus,
		cr.Deductions, cr.Amount, string(cr.Currency), items, attachments, cr.Description, string(cr.Status), log,
		cr.SignatureID, cr.CreatedAt,
	)
	if err != nil {
		return nil, postgres.MapError(err, "credit_request", cr.ID)
	}
	return out.toDomain()
}

// GetByID returns a credit request by id.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.CreditRequest, error) {
	var out row
	err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &out,
		`SELECT `+columns+` FROM credit_requests WHERE id = $1`, id)
	if err != nil {
		return nil, postgres.MapError(err, "credit_request", id)
	}
	return out.toDomain()
}

// List returns credit requests matching the filter, newest first.
func (r *Repo) List(ctx context.Context, f domain.CreditRequestFilter) ([]domain.CreditRequest, error) {
	q := postgres.Builder().
		Select(columns).
		From("credit_requests").
		OrderBy("created_at DESC", "id").
		Limit(uint64(domain.ClampLimit(f.Limit)))
	if f.Offset > 0 {
		q = q.Offset(uint64(f.Offset))
	}
	if f.UserID != nil {
		q = q.Where(squirrel.Eq{"user_id": *f.UserID})
	}
	if f.HodID != nil {
		q = q.Where(squirrel.Eq{"hod_id": *f.HodID})
	}
	if f.InitiatorID != nil {
		q = q.Where(squirrel.Eq{"initiator_id": *f.InitiatorID})
	}
	if f.Status != nil {
		q = q.Where(squirrel.Eq{"status": string(*f.Status)})
	}
	if f.Type != nil {
		q = q.Where(squirrel.Eq{"type": string(*f.Type)})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build credit request query: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.pool), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list credit requests: %w", err)
	}

	out := make([]domain.CreditRequest, 0, len(rows))
	for _, rw := range rows {
		cr, err := rw.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, *cr)
	}
	return out, nil
}

// Transition moves a request from t.From to t.To and appends t.Entries to
// its timeline in one statement. A request no longer in t.From yields
// domain.ErrInvalidStateTransition.
func (r *Repo) Transition(ctx context.Context, t domain.CreditTransition) (*domain.CreditRequest, error) {
	entries, err := postgres.MarshalTimeline(t.Entries)
	if err != nil {
		return nil, err
	}

	var out row
	err = pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &out,
		`UPDATE credit_requests
		 SET status = $3,
		     timeline_log = timeline_log || $4::jsonb,
		     signature_id = COALESCE($5, signature_id),
		     updated_at = now()
		 WHERE id = $1 AND status = $2
		 RETURNING `+columns,
		t.ID, string(t.From), string(t.To), entries, t.SignatureID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || pgxscan.NotFound(err) {
			return nil, fmt.Errorf("credit_request %s: %w", t.ID, domain.ErrInvalidStateTransition)
		}
		return nil, postgres.MapError(err, "credit_request", t.ID)
	}
	return out.toDomain()
}

// UpdateCurrencyForUser rewrites the currency of every request of userID
// that differs. Returns the number of rows changed.
func (r *Repo) UpdateCurrencyForUser(ctx context.Context, userID uuid.UUID, currency domain.Currency) (int64, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx,
		`UPDATE credit_requests SET currency = $2, updated_at = now()
		 WHERE user_id = $1 AND currency <> $2`,
		userID, string(currency))
	if err != nil {
		return 0, postgres.MapError(err, "credit_request", userID)
	}
	return tag.RowsAffected(), nil
}
