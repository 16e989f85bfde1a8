package redemption

import (
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/hrwallet-backend/internal/domain"
)

// RequestInput selects the credit transaction to redeem.
type RequestInput struct {
	CreditTransactionID uuid.UUID
	Notes               string
}

// Validate checks all fields and collects all errors.
func (i RequestInput) Validate() error {
	var errs []domain.FieldError
	if i.CreditTransactionID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "creditTransactionId", Message: "required"})
	}
	if len(strings.TrimSpace(i.Notes)) > MaxNotesLen {
		errs = append(errs, domain.FieldError{Field: "notes", Message: "max 1000 characters"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ProcessInput records a completed payout. PaymentCurrency, when given, must
// equal the employee's authoritative currency.
type ProcessInput struct {
	ID                   uuid.UUID
	TransactionReference string
	PaymentNotes         *string
	PaymentCurrency      *domain.Currency
}

// Validate checks all fields and collects all errors.
func (i ProcessInput) Validate() error {
	var errs []domain.FieldError
	if i.ID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	ref := strings.TrimSpace(i.TransactionReference)
	if ref == "" {
		errs = append(errs, domain.FieldError{Field: "transactionReference", Message: "required"})
	}
	if len(ref) > MaxReferenceLen {
		errs = append(errs, domain.FieldError{Field: "transactionReference", Message: "max 200 characters"})
	}
	if i.PaymentNotes != nil && len(strings.TrimSpace(*i.PaymentNotes)) > MaxNotesLen {
		errs = append(errs, domain.FieldError{Field: "paymentNotes", Message: "max 1000 characters"})
	}
	if i.PaymentCurrency != nil && !i.PaymentCurrency.IsValid() {
		errs = append(errs, domain.FieldError{Field: "currency", Message: "must be USD or INR"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// RejectInput refuses a payout.
type RejectInput struct {
	ID     uuid.UUID
	Reason string
}

// Validate checks all fields and collects all errors.
func (i RejectInput) Validate() error {
	var errs []domain.FieldError
	if i.ID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	reason := strings.TrimSpace(i.Reason)
	if reason == "" {
		errs = append(errs, domain.FieldError{Field: "reason", Message: "required"})
	}
	if len(reason) > MaxNotesLen {
		errs = append(errs, domain.FieldError{Field: "reason", Message: "max 1000 characters"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListInput narrows a listing. UserID is honoured for payout staff only.
type ListInput struct {
	UserID   *uuid.UUID
	Statuses []domain.RedemptionStatus
	Limit    int
	Offset   int
}

// Validate checks all fields and collects all errors.
func (i ListInput) Validate() error {
	var errs []domain.FieldError
	for _, st := range i.Statuses {
		if !st.IsValid() {
			errs = append(errs, domain.FieldError{Field: "status", Message: "unknown status " + string(st)})
		}
	}
	if i.Limit < 0 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be non-negative"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be non-negative"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
