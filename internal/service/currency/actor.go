package currency

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartmarshall/hrwallet-backend/pkg/ctxutil"
)

// actorFromCtx returns the caller, falling back to the subject for runs that
// have no authenticated caller (CLI, startup hooks).
func actorFromCtx(ctx context.Context, subject uuid.UUID) (uuid.UUID, bool) {
	if id, ok := ctxutil.UserIDFromCtx(ctx); ok {
		return id, true
	}
	return subject, false
}
