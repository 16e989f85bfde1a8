// Package policy implements read access to policies, policy assignments and
// initiator registrations.
package policy

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/heartmarshall/hrwallet-backend/internal/adapter/postgres"
	"github.com/heartmarshall/hrwallet-backend/internal/domain"
)

// Repo provides policy and initiator lookups backed by PostgreSQL.
type Repo struct {
	pool postgres.Querier
}

// New creates a new policy repository.
func New(pool postgres.Querier) *Repo {
	return &Repo{pool: pool}
}

type assignmentRow struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	PolicyID  uuid.UUID `db:"policy_id"`
	IsActive  bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
}

type initiatorRow struct {
	UserID uuid.UUID `db:"user_id"`
	Name   string    `db:"name"`
	Email  string    `db:"email"`
}

// GetAssignment returns the assignment of policyID to userID. IsActive is
// false when either the assignment or the policy itself is inactive.
func (r *Repo) GetAssignment(ctx context.Context, userID, policyID uuid.UUID) (*domain.PolicyAssignment, error) {
	var row assignmentRow
	err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &row,
		`SELECT pa.id, pa.user_id, pa.policy_id, pa.is_active AND p.is_active AS is_active, pa.created_at
		 FROM policy_assignments pa
		 JOIN policies p ON p.id = pa.policy_id
		 WHERE pa.user_id = $1 AND pa.policy_id = $2`, userID, policyID)
	if err != nil {
		return nil, postgres.MapError(err, "policy_assignment", policyID)
	}

	return &domain.PolicyAssignment{
		ID:        row.ID,
		UserID:    row.UserID,
		PolicyID:  row.PolicyID,
		IsActive:  row.IsActive,
		CreatedAt: row.CreatedAt,
	}, nil
}

// InitiatorsForAssignment returns the users allowed to raise policy requests
// under an assignment.
func (r *Repo) InitiatorsForAssignment(ctx context.Context, assignmentID uuid.UUID) ([]domain.Initiator, error) {
	return r.selectInitiators(ctx,
		`SELECT u.id AS user_id, u.name, u.email
		 FROM policy_assignment_initiators pai
		 JOIN users u ON u.id = pai.initiator_id
		 WHERE pai.assignment_id = $1
		 ORDER BY u.name`, assignmentID)
}

// InitiatorsForEmployee returns the users allowed to raise freelancer
// requests for an employee.
func (r *Repo) InitiatorsForEmployee(ctx context.Context, employeeID uuid.UUID) ([]domain.Initiator, error) {
	return r.selectInitiators(ctx,
		`SELECT u.id AS user_id, u.name, u.email
		 FROM employee_initiators ei
		 JOIN users u ON u.id = ei.initiator_id
		 WHERE ei.employee_id = $1
		 ORDER BY u.name`, employeeID)
}

func (r *Repo) selectInitiators(ctx context.Context, sql string, id uuid.UUID) ([]domain.Initiator, error) {
	var rows []initiatorRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.pool), &rows, sql, id); err != nil {
		return nil, fmt.Errorf("select initiators for %s: %w", id, err)
	}

	out := make([]domain.Initiator, len(rows))
	for i, row := range rows {
		out[i] = domain.Initiator{UserID: row.UserID, Name: row.Name, Email: row.Email}
	}
	return out, nil
}
