package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RedemptionRequest converts one credit transaction into a payout.
type RedemptionRequest struct {
	ID                   uuid.UUID
	UserID               uuid.UUID
	Amount               decimal.Decimal
	Currency             Currency
	CreditTransactionID  uuid.UUID
	DebitTransactionID   *uuid.UUID
	Status               RedemptionStatus
	Notes                string
	ProofDocumentRef     *string
	ProcessedBy          *uuid.UUID
	ProcessedAt          *time.Time
	TransactionReference *string
	PaymentNotes         *string
	RejectionReason      *string
	TimelineLog          TimelineLog
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// RedemptionCompletion holds what the processor records on completion.
type RedemptionCompletion struct {
	ProcessedBy          uuid.UUID
	ProcessedAt          time.Time
	TransactionReference string
	PaymentNotes         *string
	Currency             Currency
}

// RedemptionRejection holds what is recorded when a payout is refused.
type RedemptionRejection struct {
	ProcessedBy uuid.UUID
	ProcessedAt time.Time
	Reason      string
}

// ProofDocument is the input for rendering a redemption proof.
type ProofDocument struct {
	Redemption RedemptionRequest
	Employee   User
	IssuedAt   time.Time
}
