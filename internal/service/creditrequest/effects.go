package creditrequest

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/hrwallet-backend/internal/domain"
)

func auditRecord(actor *domain.User, action domain.AuditAction, cr *domain.CreditRequest, details map[string]any) *domain.AuditRecord {
	d := map[string]any{
		"status":   string(cr.Status),
		"amount":   cr.Amount.StringFixed(2),
		"currency": string(cr.Currency),
	}
	for k, v := range details {
		d[k] = v
	}
	return &domain.AuditRecord{
		ID:         uuid.New(),
		ActorID:    actor.ID,
		Action:     action,
		EntityType: domain.EntityTypeCreditRequest,
		EntityID:   cr.ID,
		Details:    d,
		CreatedAt:  time.Now().UTC(),
	}
}

func notice(userID uuid.UUID, title string, cr *domain.CreditRequest) domain.Notification {
	return domain.Notification{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       title,
		Message:     cr.Amount.StringFixed(2) + " " + string(cr.Currency) + " (" + string(cr.Type) + ")",
		ActionRoute: "/credit-requests/" + cr.ID.String(),
		CreatedAt:   time.Now().UTC(),
	}
}

// emails builds the workflow email for the given users. Address lookup is part
// of the best-effort path: a failure drops the email and is only logged.
func (s *Service) emails(ctx context.Context, kind domain.EmailKind, cr *domain.CreditRequest, to ...uuid.UUID) []domain.WorkflowEmail {
	users, err := s.users.GetByIDs(ctx, to)
	if err != nil {
		s.log.WarnContext(ctx, "resolve email recipients",
			slog.String("request_id", cr.ID.String()),
			slog.String("error", err.Error()),
		)
		return nil
	}

	recipients := make([]string, 0, len(users))
	seen := make(map[string]struct{}, len(users))
	for _, u := range users {
		if u.Email == "" {
			continue
		}
		if _, ok := seen[u.Email]; ok {
			continue
		}
		seen[u.Email] = struct{}{}
		recipients = append(recipients, u.Email)
	}
	if len(recipients) == 0 {
		return nil
	}

	return []domain.WorkflowEmail{{
		Kind:       kind,
		Recipients: recipients,
		Payload: map[string]any{
			"requestId":   cr.ID.String(),
			"type":        string(cr.Type),
			"status":      string(cr.Status),
			"amount":      cr.Amount.StringFixed(2),
			"currency":    string(cr.Currency),
			"description": cr.Description,
		},
	}}
}
