package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/hrwallet-backend/internal/domain"
	"github.com/heartmarshall/hrwallet-backend/pkg/ctxutil"
)

type notificationStore interface {
	ListUnread(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Notification, error)
	MarkRead(ctx context.Context, userID, id uuid.UUID) error
}

// NotificationHandler serves the caller's in-app notifications.
type NotificationHandler struct {
	store notificationStore
	log   *slog.Logger
}

// NewNotificationHandler creates a NotificationHandler.
func NewNotificationHandler(store notificationStore, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{store: store, log: logger.With("handler", "notification")}
}

// ListUnread handles GET /notifications?limit=.
func (h *NotificationHandler) ListUnread(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		handleError(h.log, w, r, domain.ErrUnauthorized)
		return
	}
	limit, _, err := page(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	limit = domain.ClampLimit(limit)

	items, err := h.store.ListUnread(r.Context(), userID, limit)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, mapList(items, limit, 0, func(n *domain.Notification) notificationResponse {
		return notificationResponse{
			ID:          n.ID,
			Title:       n.Title,
			Message:     n.Message,
			ActionRoute: n.ActionRoute,
			CreatedAt:   n.CreatedAt,
		}
	}))
}

// MarkRead handles POST /notifications/{id}/read.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		handleError(h.log, w, r, domain.ErrUnauthorized)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	if err := h.store.MarkRead(r.Context(), userID, id); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
