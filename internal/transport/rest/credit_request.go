package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/hrwallet-backend/internal/domain"
	"github.com/heartmarshall/hrwallet-backend/internal/service/creditrequest"
)

type creditRequestService interface {
	Create(ctx context.Context, input creditrequest.CreateInput) (*domain.CreditRequest, error)
	Sign(ctx context.Context, input creditrequest.SignInput) (*domain.CreditRequest, error)
	Approve(ctx context.Context, input creditrequest.DecisionInput) (*creditrequest.Result, error)
	RejectByHod(ctx context.Context, input creditrequest.DecisionInput) (*domain.CreditRequest, error)
	ApproveByEmployee(ctx context.Context, input creditrequest.DecisionInput) (*creditrequest.Result, error)
	RejectByEmployee(ctx context.Context, input creditrequest.DecisionInput) (*domain.CreditRequest, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.CreditRequest, error)
	List(ctx context.Context, input creditrequest.ListInput) ([]domain.CreditRequest, error)
}

// CreditRequestHandler serves the credit request workflow.
type CreditRequestHandler struct {
	svc creditRequestService
	log *slog.Logger
}

// NewCreditRequestHandler creates a CreditRequestHandler.
func NewCreditRequestHandler(svc creditRequestService, logger *slog.Logger) *CreditRequestHandler {
	return &CreditRequestHandler{svc: svc, log: logger.With("handler", "credit_request")}
}

type amountItemRequest struct {
	Kind   string          `json:"kind"   validate:"required,oneof=bonus deduction"`
	Label  string          `json:"label"  validate:"max=200"`
	Amount decimal.Decimal `json:"amount"`
}

type createCreditRequest struct {
	UserID      string              `json:"userId"      validate:"required,uuid"`
	Type        string              `json:"type"        validate:"required,oneof=freelancer policy"`
	PolicyID    *string             `json:"policyId"    validate:"omitempty,uuid"`
	BaseAmount  decimal.Decimal     `json:"baseAmount"`
	Bonus       decimal.Decimal     `json:"bonus"`
	Deductions  decimal.Decimal     `json:"deductions"`
	AmountItems []amountItemRequest `json:"amountItems" validate:"max=50,dive"`
	Attachments []string            `json:"attachments" validate:"max=20,dive,required"`
	Description string              `json:"description" validate:"max=2000"`
}

type signRequest struct {
	SignatureID string `json:"signatureId" validate:"required,max=200"`
}

type decisionRequest struct {
	Comment string `json:"comment" validate:"max=1000"`
}

type rejectRequest struct {
	Reason string `json:"reason" validate:"max=1000"`
}

type decisionResponse struct {
	Request     creditRequestResponse `json:"request"`
	Transaction *transactionResponse  `json:"transaction,omitempty"`
}

// Create handles POST /credit-requests.
func (h *CreditRequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createCreditRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	input := creditrequest.CreateInput{
		UserID:      uuid.MustParse(req.UserID),
		Type:        domain.CreditRequestType(req.Type),
		BaseAmount:  req.BaseAmount,
		Bonus:       req.Bonus,
		Deductions:  req.Deductions,
		Attachments: req.Attachments,
		Description: req.Description,
	}
	if req.PolicyID != nil {
		id := uuid.MustParse(*req.PolicyID)
		input.PolicyID = &id
	}
	for _, it := range req.AmountItems {
		input.AmountItems = append(input.AmountItems, domain.AmountItem{
			Kind:   domain.AmountItemKind(it.Kind),
			Label:  it.Label,
			Amount: it.Amount,
		})
	}

	cr, err := h.svc.Create(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toCreditRequest(cr))
}

// List handles GET /credit-requests?status=&type=&userId=&mine=&initiated=&limit=&offset=.
func (h *CreditRequestHandler) List(w http.ResponseWriter, r *http.Request) {
	input, err := parseCreditRequestList(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	items, err := h.svc.List(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, mapList(items, input.Limit, input.Offset, func(cr *domain.CreditRequest) creditRequestResponse {
		return toCreditRequest(cr)
	}))
}

func parseCreditRequestList(r *http.Request) (creditrequest.ListInput, error) {
	var input creditrequest.ListInput
	var err error

	if input.Limit, input.Offset, err = page(r); err != nil {
		return input, err
	}
	if input.UserID, err = queryUUID(r, "userId"); err != nil {
		return input, err
	}
	if input.Mine, err = queryBool(r, "mine"); err != nil {
		return input, err
	}
	if input.Initiated, err = queryBool(r, "initiated"); err != nil {
		return input, err
	}

	q := r.URL.Query()
	if v := q.Get("status"); v != "" {
		status := domain.CreditRequestStatus(v)
		input.Status = &status
	}
	if v := q.Get("type"); v != "" {
		typ := domain.CreditRequestType(v)
		input.Type = &typ
	}
	return input, nil
}

// Get handles GET /credit-requests/{id}.
func (h *CreditRequestHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	cr, err := h.svc.Get(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toCreditRequest(cr))
}

// Sign handles POST /credit-requests/{id}/sign.
func (h *CreditRequestHandler) Sign(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	var req signRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	cr, err := h.svc.Sign(r.Context(), creditrequest.SignInput{ID: id, SignatureID: req.SignatureID})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toCreditRequest(cr))
}

// Approve handles POST /credit-requests/{id}/approve.
func (h *CreditRequestHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.svc.Approve)
}

// ApproveByEmployee handles POST /credit-requests/{id}/employee-approve.
func (h *CreditRequestHandler) ApproveByEmployee(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.svc.ApproveByEmployee)
}

// Reject handles POST /credit-requests/{id}/reject.
func (h *CreditRequestHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.reject(w, r, h.svc.RejectByHod)
}

// RejectByEmployee handles POST /credit-requests/{id}/employee-reject.
func (h *CreditRequestHandler) RejectByEmployee(w http.ResponseWriter, r *http.Request) {
	h.reject(w, r, h.svc.RejectByEmployee)
}

func (h *CreditRequestHandler) decide(
	w http.ResponseWriter,
	r *http.Request,
	op func(context.Context, creditrequest.DecisionInput) (*creditrequest.Result, error),
) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	var req decisionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	res, err := op(r.Context(), creditrequest.DecisionInput{ID: id, Comment: req.Comment})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, decisionResponse{
		Request:     toCreditRequest(res.Request),
		Transaction: toTransaction(res.Transaction),
	})
}

func (h *CreditRequestHandler) reject(
	w http.ResponseWriter,
	r *http.Request,
	op func(context.Context, creditrequest.DecisionInput) (*domain.CreditRequest, error),
) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	var req rejectRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	cr, err := op(r.Context(), creditrequest.DecisionInput{ID: id, Comment: req.Reason})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toCreditRequest(cr))
}
