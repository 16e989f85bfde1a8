package dispatch

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/heartmarshall/hrwallet-backend/internal/domain"
)

// DefaultTimeout bounds each side effect when none is configured.
const DefaultTimeout = 10 * time.Second

type auditRepo interface {
	Log(ctx context.Context, record domain.AuditRecord) error
}

type notificationRepo interface {
	Notify(ctx context.Context, n domain.Notification) error
}

type emailSender interface {
	SendWorkflowEmail(ctx context.Context, email domain.WorkflowEmail) error
}

// Service delivers the side effects of committed transitions: audit records,
// in-app notifications and workflow emails. Delivery is best-effort. Failures
// are logged and counted, never returned to the workflow that caused them.
type Service struct {
	audit   auditRepo
	notify  notificationRepo
	email   emailSender
	timeout time.Duration
	wg      sync.WaitGroup
	log     *slog.Logger
}

// NewService creates a new dispatch Service.
func NewService(
	log *slog.Logger,
	audit auditRepo,
	notify notificationRepo,
	timeout time.Duration,
) *Service {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Service{
		audit:   audit,
		notify:  notify,
		timeout: timeout,
		log:     log.With("service", "dispatch"),
	}
}

// SetEmailSender enables workflow emails. Without a sender, emails are dropped.
func (s *Service) SetEmailSender(e emailSender) {
	s.email = e
}

// detach keeps request-scoped values for logging but drops the caller's
// cancellation, so a finished request does not abort its follow-ups.
func (s *Service) detach(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
}
