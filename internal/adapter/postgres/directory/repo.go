// Package directory implements the user directory backed by PostgreSQL.
// Raw role strings are normalized here and nowhere else.
package directory

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/heartmarshall/hrwallet-backend/internal/adapter/postgres"
	"github.com/heartmarshall/hrwallet-backend/internal/domain"
)

const userColumns = "id, email, name, role, employee_type, currency, hod_id, created_at, updated_at"

// Repo provides read access to users plus the currency column written by
// currency reconciliation.
type Repo struct {
	pool postgres.Querier
}

// New creates a new directory repository.
func New(pool postgres.Querier) *Repo {
	return &Repo{pool: pool}
}

type userRow struct {
	ID           uuid.UUID  `db:"id"`
	Email        string     `db:"email"`
	Name         string     `db:"name"`
	Role         string     `db:"role"`
	EmployeeType *string    `db:"employee_type"`
	Currency     *string    `db:"currency"`
	HodID        *uuid.UUID `db:"hod_id"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
}

func (r userRow) toDomain() domain.User {
	u := domain.User{
		ID:        r.ID,
		Email:     r.Email,
		Name:      r.Name,
		Role:      domain.NormalizeRole(r.Role),
		HodID:     r.HodID,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.EmployeeType != nil {
		u.EmployeeType = *r.EmployeeType
	}
	if r.Currency != nil {
		if c, ok := domain.ParseCurrency(*r.Currency); ok {
			u.Currency = &c
		}
	}
	return u
}

// GetByID returns a user by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var row userRow
	err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &row,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if err != nil {
		return nil, postgres.MapError(err, "user", id)
	}

	u := row.toDomain()
	return &u, nil
}

// GetByIDs returns the users with the given ids. Missing ids are skipped.
func (r *Repo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.User, error) {
	if len(ids) == 0 {
		return []domain.User{}, nil
	}
	return r.selectUsers(ctx, postgres.Builder().
		Select(userColumns).
		From("users").
		Where(squirrel.Eq{"id": ids}).
		OrderBy("name"))
}

// ListByHod returns the direct reports of a manager.
func (r *Repo) ListByHod(ctx context.Context, hodID uuid.UUID) ([]domain.User, error) {
	return r.selectUsers(ctx, postgres.Builder().
		Select(userColumns).
		From("users").
		Where(squirrel.Eq{"hod_id": hodID}).
		OrderBy("name"))
}

// ListByRole returns users whose normalized role is one of roles. Roles are
// stored raw, so filtering happens after normalization.
func (r *Repo) ListByRole(ctx context.Context, roles ...domain.Role) ([]domain.User, error) {
	all, err := r.selectUsers(ctx, postgres.Builder().
		Select(userColumns).
		From("users").
		OrderBy("name"))
	if err != nil {
		return nil, err
	}

	want := make(map[domain.Role]struct{}, len(roles))
	for _, role := range roles {
		want[role] = struct{}{}
	}

	out := make([]domain.User, 0, len(all))
	for _, u := range all {
		if _, ok := want[u.Role]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

// ListIDs returns every user id, ordered for stable batch processing.
func (r *Repo) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.pool), &ids,
		`SELECT id FROM users ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list user ids: %w", err)
	}
	return ids, nil
}

// UpdateCurrency sets the stored currency when it differs. Reports whether
// the row changed.
func (r *Repo) UpdateCurrency(ctx context.Context, id uuid.UUID, currency domain.Currency) (bool, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx,
		`UPDATE users SET currency = $2, updated_at = now()
		 WHERE id = $1 AND currency IS DISTINCT FROM $2`,
		id, string(currency))
	if err != nil {
		return false, postgres.MapError(err, "user", id)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repo) selectUsers(ctx context.Context, q squirrel.SelectBuilder) ([]domain.User, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build users query: %w", err)
	}

	var rows []userRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.pool), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}

	users := make([]domain.User, len(rows))
	for i, row := range rows {
		users[i] = row.toDomain()
	}
	return users, nil
}
