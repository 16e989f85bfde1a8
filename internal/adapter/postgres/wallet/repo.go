// Package wallet implements wallet and wallet transaction persistence using
// PostgreSQL. Transaction rows are immutable apart from the redeemed flag.
package wallet

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
	walletColumns = "user_id, balance, currency, created_at, updated_at"
	txColumns     = `id, user_id, type, amount, currency, balance, credit_request_id, redemption_request_id,
	source_transaction_id, redeemed, description, timeline_log, created_at`
)

// Repo provides wallet and ledger persistence.
type Repo struct {
	pool postgres.Querier
}

// New creates a new wallet repository.
func New(pool postgres.Querier) *Repo {
	return &Repo{pool: pool}
}

type walletRow struct {
	UserID    uuid.UUID       `db:"user_id"`
	Balance   decimal.Decimal `db:"balance"`
	Currency  string          `db:"currency"`
	CreatedAt time.Time       `db:"created_at"`
	UpdatedAt time.Time       `db:"updated_at"`
}

func (r walletRow) toDomain() *domain.Wallet {
	return &domain.Wallet{
		UserID:    r.UserID,
		Balance:   r.Balance,
		Currency:  domain.Currency(r.Currency),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

type txRow struct {
	ID                  uuid.UUID       `db:"id"`
	UserID              uuid.UUID       `db:"user_id"`
	Type                string          `db:"type"`
	Amount              decimal.Decimal `db:"amount"`
	Currency            string          `db:"currency"`
	Balance             decimal.Decimal `db:"balance"`
	CreditRequestID     *uuid.UUID      `db:"credit_request_id"`
	RedemptionRequestID *uuid.UUID      `db:"redemption_request_id"`
	SourceTransactionID *uuid.UUID      `db:"source_transaction_id"`
	Redeemed            bool            `db:"redeemed"`
	Description         string          `db:"description"`
	TimelineLog         []byte          `db:"timeline_log"`
	CreatedAt           time.Time       `db:"created_at"`
}

func (r txRow) toDomain() (*domain.WalletTransaction, error) {
	log, err := postgres.UnmarshalTimeline(r.TimelineLog)
	if err != nil {
		return nil, err
	}
	return &domain.WalletTransaction{
		ID:                  r.ID,
		UserID:              r.UserID,
		Type:                domain.TransactionType(r.Type),
		Amount:              r.Amount,
		Currency:            domain.Currency(r.Currency),
		Balance:             r.Balance,
		CreditRequestID:     r.CreditRequestID,
		RedemptionRequestID: r.RedemptionRequestID,
		SourceTransactionID: r.SourceTransactionID,
		Redeemed:            r.Redeemed,
		Description:         r.Description,
		TimelineLog:         log,
		CreatedAt:           r.CreatedAt,
	}, nil
}

// ---------------------------------------------------------------------------
// Wallets
// ---------------------------------------------------------------------------

// Ensure creates a zero wallet in currency when none exists and returns the
// stored wallet. An existing wallet is returned unchanged.
func (r *Repo) Ensure(ctx context.Context, userID uuid.UUID, currency domain.Currency) (*domain.Wallet, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := q.Exec(ctx,
		`INSERT INTO wallets (user_id, balance, currency) VALUES ($1, 0, $2)
		 ON CONFLICT (user_id) DO NOTHING`,
		userID, string(currency)); err != nil {
		return nil, postgres.MapError(err, "wallet", userID)
	}

	return r.Get(ctx, userID)
}

// Get returns the wallet of userID.
func (r *Repo) Get(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error) {
	var row walletRow
	err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &row,
		`SELECT `+walletColumns+` FROM wallets WHERE user_id = $1`, userID)
	if err != nil {
		return nil, postgres.MapError(err, "wallet", userID)
	}
	return row.toDomain(), nil
}

// GetForUpdate returns the wallet of userID and row-locks it until the
// surrounding transaction ends. Must be called inside TxManager.RunInTx.
func (r *Repo) GetForUpdate(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error) {
	if !postgres.InTx(ctx) {
		return nil, fmt.Errorf("wallet %s: lock requires a transaction", userID)
	}

	var row walletRow
	err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &row,
		`SELECT `+walletColumns+` FROM wallets WHERE user_id = $1 FOR UPDATE`, userID)
	if err != nil {
		return nil, postgres.MapError(err, "wallet", userID)
	}
	return row.toDomain(), nil
}

// SetCurrency corrects the wallet currency in place without touching the
// balance. Reports whether the row changed.
func (r *Repo) SetCurrency(ctx context.Context, userID uuid.UUID, currency domain.Currency) (bool, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx,
		`UPDATE wallets SET currency = $2, updated_at = now()
		 WHERE user_id = $1 AND currency <> $2`,
		userID, string(currency))
	if err != nil {
		return false, postgres.MapError(err, "wallet", userID)
	}
	return tag.RowsAffected() > 0, nil
}

// ---------------------------------------------------------------------------
// Transactions
// ---------------------------------------------------------------------------

// PostTransaction appends a ledger row and sets the cached wallet balance to
// p.NewBalance. The caller holds the wallet lock and computed NewBalance.
func (r *Repo) PostTransaction(ctx context.Context, p domain.PostTransactionParams) (*domain.WalletTransaction, error) {
	log, err := postgres.MarshalTimeline(p.TimelineLog)
	if err != nil {
		return nil, err
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var row txRow
	err = pgxscan.Get(ctx, q, &row,
		`INSERT INTO wallet_transactions (id, user_id, type, amount, currency, balance, credit_request_id,
			redemption_request_id, source_transaction_id, description, timeline_log)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING `+txColumns,
		p.ID, p.UserID, string(p.Type), p.Amount, string(p.Currency), p.NewBalance,
		p.Links.CreditRequestID, p.Links.RedemptionRequestID, p.Links.SourceTransactionID,
		p.Description, log,
	)
	if err != nil {
		return nil, postgres.MapError(err, "wallet_transaction", p.ID)
	}

	tag, err := q.Exec(ctx,
		`UPDATE wallets SET balance = $2, updated_at = now() WHERE user_id = $1`,
		p.UserID, p.NewBalance)
	if err != nil {
		return nil, postgres.MapError(err, "wallet", p.UserID)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("wallet %s: %w", p.UserID, domain.ErrNotFound)
	}

	return row.toDomain()
}

// GetTransaction returns a ledger row by id.
func (r *Repo) GetTransaction(ctx context.Context, id uuid.UUID) (*domain.WalletTransaction, error) {
	var row txRow
	err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &row,
		`SELECT `+txColumns+` FROM wallet_transactions WHERE id = $1`, id)
	if err != nil {
		return nil, postgres.MapError(err, "wallet_transaction", id)
	}
	return row.toDomain()
}

// ListTransactions returns the user's ledger rows, newest first.
func (r *Repo) ListTransactions(ctx context.Context, userID uuid.UUID, f domain.TransactionFilter) ([]domain.WalletTransaction, error) {
	q := postgres.Builder().
		Select(txColumns).
		From("wallet_transactions").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id").
		Limit(uint64(domain.ClampLimit(f.Limit)))
	if f.Offset > 0 {
		q = q.Offset(uint64(f.Offset))
	}
	if f.Type != nil {
		q = q.Where(squirrel.Eq{"type": string(*f.Type)})
	}
	if f.RedeemableOnly {
		q = q.Where(squirrel.Eq{"type": string(domain.TransactionTypeCredit), "redeemed": false})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build transactions query: %w", err)
	}

	var rows []txRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.pool), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list transactions for %s: %w", userID, err)
	}

	out := make([]domain.WalletTransaction, 0, len(rows))
	for _, row := range rows {
		tx, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, *tx)
	}
	return out, nil
}

// MarkRedeemed flips the redeemed flag of a credit from false to true and
// links it to the redemption. Zero rows yields domain.ErrInvalidStateTransition.
func (r *Repo) MarkRedeemed(ctx context.Context, transactionID, redemptionID uuid.UUID) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx,
		`UPDATE wallet_transactions SET redeemed = true, redemption_request_id = $2
		 WHERE id = $1 AND type = 'credit' AND redeemed = false`,
		transactionID, redemptionID)
	if err != nil {
		return postgres.MapError(err, "wallet_transaction", transactionID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("wallet_transaction %s: already redeemed: %w", transactionID, domain.ErrInvalidStateTransition)
	}
	return nil
}

// SumByType returns Σcredit and Σdebit over the user's ledger.
func (r *Repo) SumByType(ctx context.Context, userID uuid.UUID) (credits, debits decimal.Decimal, err error) {
	err = postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx,
		`SELECT COALESCE(SUM(amount) FILTER (WHERE type = 'credit'), 0),
		        COALESCE(SUM(amount) FILTER (WHERE type = 'debit'), 0)
		 FROM wallet_transactions WHERE user_id = $1`, userID).Scan(&credits, &debits)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return decimal.Zero, decimal.Zero, fmt.Errorf("sum transactions for %s: %w", userID, err)
	}
	return credits, debits, nil
}

// UpdateCurrencyForUser rewrites the currency of the user's ledger rows that
// differ. Returns the number of rows changed.
func (r *Repo) UpdateCurrencyForUser(ctx context.Context, userID uuid.UUID, currency domain.Currency) (int64, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx,
		`UPDATE wallet_transactions SET currency = $2 WHERE user_id = $1 AND currency <> $2`,
		userID, string(currency))
	if err != nil {
		return 0, postgres.MapError(err, "wallet_transaction", userID)
	}
	return tag.RowsAffected(), nil
}
