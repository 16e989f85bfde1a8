package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/hrwallet-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// UserOption customizes a seeded user.
type UserOption func(u *domain.User)

// WithRole sets the user's role.
func WithRole(r domain.Role) UserOption {
	return func(u *domain.User) { u.Role = r }
}

// WithEmployeeType sets the employment classification.
func WithEmployeeType(t string) UserOption {
	return func(u *domain.User) { u.EmployeeType = t }
}

// WithHOD sets the user's manager.
func WithHOD(hodID uuid.UUID) UserOption {
	return func(u *domain.User) { u.HodID = &hodID }
}

// WithCurrency stores an explicit currency on the user row.
func WithCurrency(c domain.Currency) UserOption {
	return func(u *domain.User) { u.Currency = &c }
}

// SeedUser inserts a user. Defaults to an employee without HOD or classification.
func SeedUser(t *testing.T, pool *pgxpool.Pool, opts ...UserOption) domain.User {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := domain.User{
		ID:        uuid.New(),
		Email:     "testuser-" + suffix + "@example.com",
		Name:      "Test User " + suffix,
		Role:      domain.RoleEmployee,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(&user)
	}

	var employeeType *string
	if user.EmployeeType != "" {
		employeeType = &user.EmployeeType
	}
	var currency *string
	if user.Currency != nil {
		c := string(*user.Currency)
		currency = &c
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO users (id, email, name, role, employee_type, currency, hod_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		user.ID, user.Email, user.Name, string(user.Role), employeeType, currency, user.HodID, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser: %v", err)
	}

	return user
}

// SeedEmployee creates an HOD and an employee reporting to it.
func SeedEmployee(t *testing.T, pool *pgxpool.Pool, employeeType string) (hod, employee domain.User) {
	t.Helper()

	hod = SeedUser(t, pool, WithRole(domain.RoleHOD))
	employee = SeedUser(t, pool, WithHOD(hod.ID), WithEmployeeType(employeeType))
	return hod, employee
}

// SeedPolicyAssignment creates an active policy and assigns it to userID.
func SeedPolicyAssignment(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID) (domain.Policy, domain.PolicyAssignment) {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	policy := domain.Policy{
		ID:          uuid.New(),
		Name:        "Policy " + uniqueSuffix(),
		Description: "test policy",
		IsActive:    true,
		CreatedAt:   now,
	}
	if _, err := pool.Exec(ctx,
		`INSERT INTO policies (id, name, description, is_active, created_at) VALUES ($1, $2, $3, $4, $5)`,
		policy.ID, policy.Name, policy.Description, policy.IsActive, policy.CreatedAt,
	); err != nil {
		t.Fatalf("testhelper: SeedPolicyAssignment policy: %v", err)
	}

	assignment := domain.PolicyAssignment{
		ID:        uuid.New(),
		UserID:    userID,
		PolicyID:  policy.ID,
		IsActive:  true,
		CreatedAt: now,
	}
	if _, err := pool.Exec(ctx,
		`INSERT INTO policy_assignments (id, user_id, policy_id, is_active, created_at) VALUES ($1, $2, $3, $4, $5)`,
		assignment.ID, assignment.UserID, assignment.PolicyID, assignment.IsActive, assignment.CreatedAt,
	); err != nil {
		t.Fatalf("testhelper: SeedPolicyAssignment assignment: %v", err)
	}

	return policy, assignment
}

// SeedAssignmentInitiator registers initiatorID on a policy assignment.
func SeedAssignmentInitiator(t *testing.T, pool *pgxpool.Pool, assignmentID, initiatorID uuid.UUID) {
	t.Helper()

	if _, err := pool.Exec(context.Background(),
		`INSERT INTO policy_assignment_initiators (assignment_id, initiator_id) VALUES ($1, $2)`,
		assignmentID, initiatorID,
	); err != nil {
		t.Fatalf("testhelper: SeedAssignmentInitiator: %v", err)
	}
}

// SeedEmployeeInitiator registers initiatorID for freelancer requests of employeeID.
func SeedEmployeeInitiator(t *testing.T, pool *pgxpool.Pool, employeeID, initiatorID uuid.UUID) {
	t.Helper()

	if _, err := pool.Exec(context.Background(),
		`INSERT INTO employee_initiators (employee_id, initiator_id) VALUES ($1, $2)`,
		employeeID, initiatorID,
	); err != nil {
		t.Fatalf("testhelper: SeedEmployeeInitiator: %v", err)
	}
}

// SeedWallet creates a wallet with the given balance and no transactions.
// Balance-invariant tests should post through the wallet repo instead.
func SeedWallet(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, balance decimal.Decimal, currency domain.Currency) domain.Wallet {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)
	w := domain.Wallet{UserID: userID, Balance: balance, Currency: currency, CreatedAt: now, UpdatedAt: now}
	if _, err := pool.Exec(context.Background(),
		`INSERT INTO wallets (user_id, balance, currency, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		w.UserID, w.Balance, string(w.Currency), w.CreatedAt, w.UpdatedAt,
	); err != nil {
		t.Fatalf("testhelper: SeedWallet: %v", err)
	}
	return w
}
