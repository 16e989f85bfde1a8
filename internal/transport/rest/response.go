package rest

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/hrwallet-backend/internal/domain"
)

type actorResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

type timelineEntryResponse struct {
	Step        string         `json:"step"`
	Role        string         `json:"role"`
	Actor       actorResponse  `json:"actor"`
	SignatureID *string        `json:"signatureId,omitempty"`
	Message     string         `json:"message,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	At          time.Time      `json:"at"`
}

func toTimeline(log domain.TimelineLog) []timelineEntryResponse {
	out := make([]timelineEntryResponse, len(log))
	for i, e := range log {
		out[i] = timelineEntryResponse{
			Step:        e.Step.String(),
			Role:        e.Role.String(),
			Actor:       actorResponse{ID: e.Actor.ID, Name: e.Actor.Name, Email: e.Actor.Email},
			SignatureID: e.SignatureID,
			Message:     e.Message,
			Metadata:    e.Metadata,
			At:          e.At,
		}
	}
	return out
}

type amountItemResponse struct {
	Kind   string          `json:"kind"`
	Label  string          `json:"label,omitempty"`
	Amount decimal.Decimal `json:"amount"`
}

type creditRequestResponse struct {
	ID          uuid.UUID               `json:"id"`
	UserID      uuid.UUID               `json:"userId"`
	InitiatorID uuid.UUID               `json:"initiatorId"`
	HodID       uuid.UUID               `json:"hodId"`
	PolicyID    *uuid.UUID              `json:"policyId,omitempty"`
	Type        string                  `json:"type"`
	BaseAmount  decimal.Decimal         `json:"baseAmount"`
	Bonus       decimal.Decimal         `json:"bonus"`
	Deductions  decimal.Decimal         `json:"deductions"`
	Amount      decimal.Decimal         `json:"amount"`
	Currency    string                  `json:"currency"`
	AmountItems []amountItemResponse    `json:"amountItems"`
	Attachments []string                `json:"attachments"`
	Description string                  `json:"description,omitempty"`
	Status      string                  `json:"status"`
	SignatureID *string                 `json:"signatureId,omitempty"`
	Timeline    []timelineEntryResponse `json:"timeline"`
	CreatedAt   time.Time               `json:"createdAt"`
	UpdatedAt   time.Time               `json:"updatedAt"`
}

func toCreditRequest(cr *domain.CreditRequest) creditRequestResponse {
	items := make([]amountItemResponse, len(cr.AmountItems))
	for i, it := range cr.AmountItems {
		items[i] = amountItemResponse{Kind: string(it.Kind), Label: it.Label, Amount: it.Amount}
	}
	attachments := cr.Attachments
	if attachments == nil {
		attachments = []string{}
	}
	return creditRequestResponse{
		ID:          cr.ID,
		UserID:      cr.UserID,
		InitiatorID: cr.InitiatorID,
		HodID:       cr.HodID,
		PolicyID:    cr.PolicyID,
		Type:        cr.Type.String(),
		BaseAmount:  cr.BaseAmount,
		Bonus:       cr.Bonus,
		Deductions:  cr.Deductions,
		Amount:      cr.Amount,
		Currency:    cr.Currency.String(),
		AmountItems: items,
		Attachments: attachments,
		Description: cr.Description,
		Status:      cr.Status.String(),
		SignatureID: cr.SignatureID,
		Timeline:    toTimeline(cr.TimelineLog),
		CreatedAt:   cr.CreatedAt,
		UpdatedAt:   cr.UpdatedAt,
	}
}

type walletResponse struct {
	UserID    uuid.UUID       `json:"userId"`
	Balance   decimal.Decimal `json:"balance"`
	Currency  string          `json:"currency"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func toWallet(w *domain.Wallet) walletResponse {
	return walletResponse{
		UserID:    w.UserID,
		Balance:   w.Balance,
		Currency:  w.Currency.String(),
		UpdatedAt: w.UpdatedAt,
	}
}

type transactionResponse struct {
	ID                  uuid.UUID               `json:"id"`
	Type                string                  `json:"type"`
	Amount              decimal.Decimal         `json:"amount"`
	Currency            string                  `json:"currency"`
	Balance             decimal.Decimal         `json:"balance"`
	CreditRequestID     *uuid.UUID              `json:"creditRequestId,omitempty"`
	RedemptionRequestID *uuid.UUID              `json:"redemptionRequestId,omitempty"`
	SourceTransactionID *uuid.UUID              `json:"sourceTransactionId,omitempty"`
	Redeemed            bool                    `json:"redeemed"`
	Redeemable          bool                    `json:"redeemable"`
	Description         string                  `json:"description,omitempty"`
	Timeline            []timelineEntryResponse `json:"timeline"`
	CreatedAt           time.Time               `json:"createdAt"`
}

func toTransaction(t *domain.WalletTransaction) *transactionResponse {
	if t == nil {
		return nil
	}
	return &transactionResponse{
		ID:                  t.ID,
		Type:                t.Type.String(),
		Amount:              t.Amount,
		Currency:            t.Currency.String(),
		Balance:             t.Balance,
		CreditRequestID:     t.CreditRequestID,
		RedemptionRequestID: t.RedemptionRequestID,
		SourceTransactionID: t.SourceTransactionID,
		Redeemed:            t.Redeemed,
		Redeemable:          t.IsRedeemable(),
		Description:         t.Description,
		Timeline:            toTimeline(t.TimelineLog),
		CreatedAt:           t.CreatedAt,
	}
}

type redemptionResponse struct {
	ID                   uuid.UUID               `json:"id"`
	UserID               uuid.UUID               `json:"userId"`
	Amount               decimal.Decimal         `json:"amount"`
	Currency             string                  `json:"currency"`
	CreditTransactionID  uuid.UUID               `json:"creditTransactionId"`
	DebitTransactionID   *uuid.UUID              `json:"debitTransactionId,omitempty"`
	Status               string                  `json:"status"`
	Notes                string                  `json:"notes,omitempty"`
	ProofDocumentRef     *string                 `json:"proofDocumentRef,omitempty"`
	ProcessedBy          *uuid.UUID              `json:"processedBy,omitempty"`
	ProcessedAt          *time.Time              `json:"processedAt,omitempty"`
	TransactionReference *string                 `json:"transactionReference,omitempty"`
	PaymentNotes         *string                 `json:"paymentNotes,omitempty"`
	RejectionReason      *string                 `json:"rejectionReason,omitempty"`
	Timeline             []timelineEntryResponse `json:"timeline"`
	CreatedAt            time.Time               `json:"createdAt"`
	UpdatedAt            time.Time               `json:"updatedAt"`
}

func toRedemption(rr *domain.RedemptionRequest) redemptionResponse {
	return redemptionResponse{
		ID:                   rr.ID,
		UserID:               rr.UserID,
		Amount:               rr.Amount,
		Currency:             rr.Currency.String(),
		CreditTransactionID:  rr.CreditTransactionID,
		DebitTransactionID:   rr.DebitTransactionID,
		Status:               rr.Status.String(),
		Notes:                rr.Notes,
		ProofDocumentRef:     rr.ProofDocumentRef,
		ProcessedBy:          rr.ProcessedBy,
		ProcessedAt:          rr.ProcessedAt,
		TransactionReference: rr.TransactionReference,
		PaymentNotes:         rr.PaymentNotes,
		RejectionReason:      rr.RejectionReason,
		Timeline:             toTimeline(rr.TimelineLog),
		CreatedAt:            rr.CreatedAt,
		UpdatedAt:            rr.UpdatedAt,
	}
}

type notificationResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	ActionRoute string    `json:"actionRoute,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type listResponse[T any] struct {
	Items  []T `json:"items"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

func mapList[S, T any](in []S, limit, offset int, fn func(*S) T) listResponse[T] {
	out := make([]T, len(in))
	for i := range in {
		out[i] = fn(&in[i])
	}
	return listResponse[T]{Items: out, Limit: domain.ClampLimit(limit), Offset: offset}
}
