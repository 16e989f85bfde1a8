package domain

import "github.com/google/uuid"

// CreditRequestFilter narrows credit request listings. Nil fields are ignored.
type CreditRequestFilter struct {
	UserID      *uuid.UUID
	HodID       *uuid.UUID
	InitiatorID *uuid.UUID
	Status      *CreditRequestStatus
	Type        *CreditRequestType
	Limit       int
	Offset      int
}

// RedemptionFilter narrows redemption listings.
type RedemptionFilter struct {
	UserID   *uuid.UUID
	Statuses []RedemptionStatus
	Limit    int
	Offset   int
}

// TransactionFilter narrows a user's ledger listing.
type TransactionFilter struct {
	Type           *TransactionType
	RedeemableOnly bool
	Limit          int
	Offset         int
}

const (
	DefaultPageLimit = 50
	MaxPageLimit     = 200
)

// ClampLimit applies the default and upper bound to a page size.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultPageLimit
	}
	if limit > MaxPageLimit {
		return MaxPageLimit
	}
	return limit
}
