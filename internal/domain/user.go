package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is a directory entry as seen by the wallet workflow.
type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	Role         Role
	EmployeeType string
	Currency     *Currency
	HodID        *uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasHOD reports whether the user has an approving manager.
func (u *User) HasHOD() bool {
	return u.HodID != nil && *u.HodID != uuid.Nil
}

// IsFreelancer reports whether the employment classification is a freelancer one.
func (u *User) IsFreelancer() bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(u.EmployeeType)), "freelancer")
}

// Actor snapshots the user for a timeline entry.
func (u *User) Actor() Actor {
	return Actor{ID: u.ID, Name: u.Name, Email: u.Email}
}

var roleAliases = map[string]Role{
	"admin":            RoleAdmin,
	"hod":              RoleHOD,
	"manager":          RoleHOD,
	"employee":         RoleEmployee,
	"user":             RoleEmployee,
	"initiator":        RoleEmployee,
	"account":          RoleAccount,
	"accounts":         RoleAccount,
	"accountant":       RoleAccount,
	"accounts_manager": RoleAccount,
}

// NormalizeRole maps a stored role string, including legacy aliases, onto the
// closed Role set. Unknown values fall back to RoleEmployee.
func NormalizeRole(raw string) Role {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.ReplaceAll(key, "-", "_")
	key = strings.ReplaceAll(key, " ", "_")
	if r, ok := roleAliases[key]; ok {
		return r
	}
	return RoleEmployee
}

// Initiator links a user allowed to raise credit requests on someone's behalf.
type Initiator struct {
	UserID uuid.UUID
	Name   string
	Email  string
}

// Policy is an incentive policy employees can be assigned to.
type Policy struct {
	ID          uuid.UUID
	Name        string
	Description string
	IsActive    bool
	CreatedAt   time.Time
}

// PolicyAssignment binds an employee to a policy.
type PolicyAssignment struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	PolicyID  uuid.UUID
	IsActive  bool
	CreatedAt time.Time
}
