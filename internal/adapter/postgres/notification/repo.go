// Package notification stores in-app notifications in PostgreSQL.
package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/heartmarshall/hrwallet-backend/internal/adapter/postgres"
	"github.com/heartmarshall/hrwallet-backend/internal/domain"
)

// Repo provides notification persistence.
type Repo struct {
	pool postgres.Querier
}

// New creates a new notification repository.
func New(pool postgres.Querier) *Repo {
	return &Repo{pool: pool}
}

type row struct {
	ID          uuid.UUID  `db:"id"`
	UserID      uuid.UUID  `db:"user_id"`
	Title       string     `db:"title"`
	Message     string     `db:"message"`
	ActionRoute string     `db:"action_route"`
	ReadAt      *time.Time `db:"read_at"`
	CreatedAt   time.Time  `db:"created_at"`
}

// Notify stores a notification for n.UserID.
func (r *Repo) Notify(ctx context.Context, n domain.Notification) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}

	_, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx,
		`INSERT INTO notifications (id, user_id, title, message, action_route, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		n.ID, n.UserID, n.Title, n.Message, n.ActionRoute, n.CreatedAt)
	if err != nil {
		return postgres.MapError(err, "notification", n.ID)
	}
	return nil
}

// ListUnread returns the user's unread notifications, newest first.
func (r *Repo) ListUnread(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Notification, error) {
	var rows []row
	err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.pool), &rows,
		`SELECT id, user_id, title, message, action_route, read_at, created_at
		 FROM notifications
		 WHERE user_id = $1 AND read_at IS NULL
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, domain.ClampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list notifications for %s: %w", userID, err)
	}

	out := make([]domain.Notification, len(rows))
	for i, rw := range rows {
		out[i] = domain.Notification{
			ID:          rw.ID,
			UserID:      rw.UserID,
			Title:       rw.Title,
			Message:     rw.Message,
			ActionRoute: rw.ActionRoute,
			ReadAt:      rw.ReadAt,
			CreatedAt:   rw.CreatedAt,
		}
	}
	return out, nil
}

// MarkRead marks a notification read. Only the owner's notification changes.
func (r *Repo) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx,
		`UPDATE notifications SET read_at = now() WHERE id = $1 AND user_id = $2 AND read_at IS NULL`,
		id, userID)
	if err != nil {
		return postgres.MapError(err, "notification", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("notification %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
