package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/hrwallet-backend/internal/domain"
	"github.com/heartmarshall/hrwallet-backend/internal/metrics"
)

// Audit records an audit event. A failure is logged and counted before it is
// returned.
func (s *Service) Audit(ctx context.Context, rec domain.AuditRecord) error {
	ctx, cancel := s.detach(ctx)
	defer cancel()

	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	if err := s.audit.Log(ctx, rec); err != nil {
		return s.fail(ctx, "audit", err,
			slog.String("action", string(rec.Action)),
			slog.String("entity_id", rec.EntityID.String()),
		)
	}
	return nil
}

// Notify stores an in-app notification.
func (s *Service) Notify(ctx context.Context, n domain.Notification) error {
	ctx, cancel := s.detach(ctx)
	defer cancel()

	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}

	if err := s.notify.Notify(ctx, n); err != nil {
		return s.fail(ctx, "notification", err, slog.String("user_id", n.UserID.String()))
	}
	return nil
}

// Email hands a workflow email to the sender. Emails without recipients are
// dropped.
func (s *Service) Email(ctx context.Context, e domain.WorkflowEmail) error {
	if s.email == nil {
		s.log.DebugContext(ctx, "email dispatch disabled", slog.String("kind", string(e.Kind)))
		return nil
	}
	if len(e.Recipients) == 0 {
		return nil
	}

	ctx, cancel := s.detach(ctx)
	defer cancel()

	if err := s.email.SendWorkflowEmail(ctx, e); err != nil {
		return s.fail(ctx, "email", err, slog.String("kind", string(e.Kind)))
	}
	return nil
}

func (s *Service) fail(ctx context.Context, kind string, err error, attrs ...any) error {
	metrics.SideEffectFailures.WithLabelValues(kind).Inc()
	s.log.ErrorContext(ctx, "side effect failed",
		append([]any{slog.String("kind", kind), slog.String("error", err.Error())}, attrs...)...,
	)
	return fmt.Errorf("%s: %w", kind, err)
}
