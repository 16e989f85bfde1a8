package rest

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/hrwallet-backend/internal/adapter/xlsx"
	"github.com/heartmarshall/hrwallet-backend/internal/domain"
	"github.com/heartmarshall/hrwallet-backend/internal/service/redemption"
)

type redemptionService interface {
	Request(ctx context.Context, input redemption.RequestInput) (*redemption.Result, error)
	MarkProcessing(ctx context.Context, id uuid.UUID) (*domain.RedemptionRequest, error)
	Process(ctx context.Context, input redemption.ProcessInput) (*domain.RedemptionRequest, error)
	Reject(ctx context.Context, input redemption.RejectInput) (*redemption.Result, error)
	RegenerateProof(ctx context.Context, id uuid.UUID) (string, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.RedemptionRequest, error)
	List(ctx context.Context, input redemption.ListInput) ([]domain.RedemptionRequest, error)
	ExportQueue(ctx context.Context, w io.Writer, input redemption.ListInput) error
}

// RedemptionHandler serves redemption requests and the payout queue.
type RedemptionHandler struct {
	svc redemptionService
	log *slog.Logger
	now func() time.Time
}

// NewRedemptionHandler creates a RedemptionHandler.
func NewRedemptionHandler(svc redemptionService, logger *slog.Logger) *RedemptionHandler {
	return &RedemptionHandler{svc: svc, log: logger.With("handler", "redemption"), now: time.Now}
}

type createRedemptionRequest struct {
	CreditTransactionID string `json:"creditTransactionId" validate:"required,uuid"`
	Notes               string `json:"notes"               validate:"max=1000"`
}

type processRedemptionRequest struct {
	TransactionReference string  `json:"transactionReference" validate:"required,max=200"`
	PaymentNotes         *string `json:"paymentNotes"         validate:"omitempty,max=1000"`
	PaymentCurrency      *string `json:"paymentCurrency"      validate:"omitempty,oneof=INR USD"`
}

type rejectRedemptionRequest struct {
	Reason string `json:"reason" validate:"required,max=1000"`
}

type redemptionResultResponse struct {
	Redemption  redemptionResponse   `json:"redemption"`
	Transaction *transactionResponse `json:"transaction,omitempty"`
}

type proofResponse struct {
	ProofDocumentRef string `json:"proofDocumentRef"`
}

// Create handles POST /redemptions.
func (h *RedemptionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRedemptionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	res, err := h.svc.Request(r.Context(), redemption.RequestInput{
		CreditTransactionID: uuid.MustParse(req.CreditTransactionID),
		Notes:               req.Notes,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toRedemptionResult(res))
}

// List handles GET /redemptions?status=pending,processing&userId=&limit=&offset=.
func (h *RedemptionHandler) List(w http.ResponseWriter, r *http.Request) {
	input, err := parseRedemptionList(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	items, err := h.svc.List(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, mapList(items, input.Limit, input.Offset, func(rr *domain.RedemptionRequest) redemptionResponse {
		return toRedemption(rr)
	}))
}

// Export handles GET /redemptions/export and streams the queue as a workbook.
func (h *RedemptionHandler) Export(w http.ResponseWriter, r *http.Request) {
	input, err := parseRedemptionList(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	// Buffer so a failed export can still be reported as JSON.
	var buf bytes.Buffer
	if err := h.svc.ExportQueue(r.Context(), &buf, input); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	filename := "redemptions-" + h.now().UTC().Format("20060102-150405") + ".xlsx"
	w.Header().Set("Content-Type", xlsx.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func parseRedemptionList(r *http.Request) (redemption.ListInput, error) {
	var input redemption.ListInput
	var err error

	if input.Limit, input.Offset, err = page(r); err != nil {
		return input, err
	}
	if input.UserID, err = queryUUID(r, "userId"); err != nil {
		return input, err
	}
	if v := r.URL.Query().Get("status"); v != "" {
		for _, s := range strings.Split(v, ",") {
			status := domain.RedemptionStatus(strings.TrimSpace(s))
			if !status.IsValid() {
				return input, domain.NewValidationError("status", "unknown status "+string(status))
			}
			input.Statuses = append(input.Statuses, status)
		}
	}
	return input, nil
}

// Get handles GET /redemptions/{id}.
func (h *RedemptionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	rr, err := h.svc.Get(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toRedemption(rr))
}

// MarkProcessing handles POST /redemptions/{id}/processing.
func (h *RedemptionHandler) MarkProcessing(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	rr, err := h.svc.MarkProcessing(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toRedemption(rr))
}

// Process handles POST /redemptions/{id}/process.
func (h *RedemptionHandler) Process(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	var req processRedemptionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	input := redemption.ProcessInput{
		ID:                   id,
		TransactionReference: req.TransactionReference,
		PaymentNotes:         req.PaymentNotes,
	}
	if req.PaymentCurrency != nil {
		cur := domain.Currency(*req.PaymentCurrency)
		input.PaymentCurrency = &cur
	}

	rr, err := h.svc.Process(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toRedemption(rr))
}

// Reject handles POST /redemptions/{id}/reject.
func (h *RedemptionHandler) Reject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	var req rejectRedemptionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	res, err := h.svc.Reject(r.Context(), redemption.RejectInput{ID: id, Reason: req.Reason})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toRedemptionResult(res))
}

// RegenerateProof handles POST /redemptions/{id}/proof.
func (h *RedemptionHandler) RegenerateProof(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	ref, err := h.svc.RegenerateProof(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, proofResponse{ProofDocumentRef: ref})
}

func toRedemptionResult(res *redemption.Result) redemptionResultResponse {
	return redemptionResultResponse{
		Redemption:  toRedemption(res.Redemption),
		Transaction: toTransaction(res.Transaction),
	}
}
