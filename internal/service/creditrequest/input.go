package creditrequest

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/hrwallet-backend/internal/domain"
)

// CreateInput holds the parameters for raising a credit request.
type CreateInput struct {
	UserID      uuid.UUID
	Type        domain.CreditRequestType
	PolicyID    *uuid.UUID
	BaseAmount  decimal.Decimal
	Bonus       decimal.Decimal
	Deductions  decimal.Decimal
	AmountItems []domain.AmountItem
	Attachments []string
	Description string
}

// Validate checks all fields and collects all errors.
func (i CreateInput) Validate() error {
	var errs []domain.FieldError

	if i.UserID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "userId", Message: "required"})
	}
	if !i.Type.IsValid() {
		errs = append(errs, domain.FieldError{Field: "type", Message: "must be freelancer or policy"})
	}
	if i.Type == domain.CreditRequestTypePolicy && (i.PolicyID == nil || *i.PolicyID == uuid.Nil) {
		errs = append(errs, domain.FieldError{Field: "policyId", Message: "required for policy requests"})
	}
	if len(i.Attachments) > MaxAttachments {
		errs = append(errs, domain.FieldError{Field: "attachments", Message: "max 20 attachments"})
	}
	for _, a := range i.Attachments {
		if strings.TrimSpace(a) == "" {
			errs = append(errs, domain.FieldError{Field: "attachments", Message: "must not contain empty references"})
			break
		}
	}
	if len(strings.TrimSpace(i.Description)) > MaxDescriptionLen {
		errs = append(errs, domain.FieldError{Field: "description", Message: "max 2000 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// SignInput holds the employee's signature on a policy request.
type SignInput struct {
	ID          uuid.UUID
	SignatureID string
}

// Validate checks all fields and collects all errors.
func (i SignInput) Validate() error {
	var errs []domain.FieldError
	if i.ID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	sig := strings.TrimSpace(i.SignatureID)
	if sig == "" {
		errs = append(errs, domain.FieldError{Field: "signatureId", Message: "required"})
	}
	if len(sig) > MaxSignatureIDLen {
		errs = append(errs, domain.FieldError{Field: "signatureId", Message: "max 200 characters"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// DecisionInput identifies a request and carries an optional comment or
// rejection reason.
type DecisionInput struct {
	ID      uuid.UUID
	Comment string
}

// Validate checks all fields and collects all errors.
func (i DecisionInput) Validate() error {
	var errs []domain.FieldError
	if i.ID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if len(strings.TrimSpace(i.Comment)) > MaxReasonLen {
		errs = append(errs, domain.FieldError{Field: "comment", Message: "max 1000 characters"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListInput narrows a listing. Mine restricts an HOD to requests crediting
// themselves; Initiated restricts anyone to requests they raised.
type ListInput struct {
	UserID    *uuid.UUID
	Status    *domain.CreditRequestStatus
	Type      *domain.CreditRequestType
	Mine      bool
	Initiated bool
	Limit     int
	Offset    int
}

// Validate checks all fields and collects all errors.
func (i ListInput) Validate() error {
	var errs []domain.FieldError
	if i.Status != nil && !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "unknown status"})
	}
	if i.Type != nil && !i.Type.IsValid() {
		errs = append(errs, domain.FieldError{Field: "type", Message: "must be freelancer or policy"})
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
