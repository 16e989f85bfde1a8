package domain

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AmountItemKind classifies an itemized adjustment.
type AmountItemKind string

const (
	AmountItemBonus     AmountItemKind = "bonus"
	AmountItemDeduction AmountItemKind = "deduction"
)

// AmountItem is one itemized adjustment on top of the base amount.
type AmountItem struct {
	Kind   AmountItemKind
	Label  string
	Amount decimal.Decimal
}

// AmountBreakdown is the validated decomposition base + bonus - deductions = amount.
type AmountBreakdown struct {
	Base       decimal.Decimal
	Bonus      decimal.Decimal
	Deductions decimal.Decimal
	Amount     decimal.Decimal
}

// CreditRequest is a request to credit an employee's wallet.
type CreditRequest struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	InitiatorID uuid.UUID
	HodID       uuid.UUID
	PolicyID    *uuid.UUID
	Type        CreditRequestType
	BaseAmount  decimal.Decimal
	Bonus       decimal.Decimal
	Deductions  decimal.Decimal
	Amount      decimal.Decimal
	Currency    Currency
	AmountItems []AmountItem
	Attachments []string
	Description string
	Status      CreditRequestStatus
	TimelineLog TimelineLog
	SignatureID *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsOwnedBy reports whether userID is the employee the request credits.
func (r *CreditRequest) IsOwnedBy(userID uuid.UUID) bool {
	return r.UserID == userID
}

// CanBeDecidedBy reports whether a manager may approve or reject the request.
// Admins decide any request; an HOD only requests addressed to them.
func (r *CreditRequest) CanBeDecidedBy(userID uuid.UUID, role Role) bool {
	switch role {
	case RoleAdmin:
		return true
	case RoleHOD:
		return r.HodID == userID
	}
	return false
}

// InitialCreditStatus returns the starting state of a new request. Policy
// requests raised directly by a manager wait for the employee's signature;
// everything else goes straight to the approval queue.
func InitialCreditStatus(t CreditRequestType, creatorRole Role) CreditRequestStatus {
	if t == CreditRequestTypePolicy && creatorRole.IsManager() {
		return CreditStatusPendingSignature
	}
	return CreditStatusPendingApproval
}

// ComputeAmount validates and derives the amount decomposition. When items are
// supplied, bonus and deductions are the sums of the matching items.
func ComputeAmount(base, bonus, deductions decimal.Decimal, items []AmountItem) (AmountBreakdown, error) {
	var errs []FieldError

	if len(items) > 0 {
		bonus, deductions = decimal.Zero, decimal.Zero
		for i, it := range items {
			if !it.Amount.IsPositive() {
				errs = append(errs, FieldError{Field: itemField(i, "amount"), Message: "must be positive"})
				continue
			}
			if !hasCents(it.Amount) {
				errs = append(errs, FieldError{Field: itemField(i, "amount"), Message: "at most 2 decimal places"})
			}
			switch it.Kind {
			case AmountItemBonus:
				bonus = bonus.Add(it.Amount)
			case AmountItemDeduction:
				deductions = deductions.Add(it.Amount)
			default:
				errs = append(errs, FieldError{Field: itemField(i, "kind"), Message: "must be bonus or deduction"})
			}
		}
	}

	for _, f := range []struct {
		name string
		v    decimal.Decimal
	}{{"baseAmount", base}, {"bonus", bonus}, {"deductions", deductions}} {
		if f.v.IsNegative() {
			errs = append(errs, FieldError{Field: f.name, Message: "must not be negative"})
		}
		if !hasCents(f.v) {
			errs = append(errs, FieldError{Field: f.name, Message: "at most 2 decimal places"})
		}
	}

	amount := base.Add(bonus).Sub(deductions)
	if len(errs) == 0 && !amount.IsPositive() {
		errs = append(errs, FieldError{Field: "amount", Message: "must be positive"})
	}

	if len(errs) > 0 {
		return AmountBreakdown{}, &ValidationError{Errors: errs}
	}

	return AmountBreakdown{Base: base, Bonus: bonus, Deductions: deductions, Amount: amount}, nil
}

func hasCents(d decimal.Decimal) bool {
	return d.Equal(d.Round(2))
}

func itemField(i int, name string) string {
	return "amountItems[" + strconv.Itoa(i) + "]." + name
}

// CreditTransition is a compare-and-swap status change together with the
// timeline entries it appends. SignatureID is stored when non-nil.
type CreditTransition struct {
	ID          uuid.UUID
	From        CreditRequestStatus
	To          CreditRequestStatus
	Entries     []TimelineEntry
	SignatureID *string
}
