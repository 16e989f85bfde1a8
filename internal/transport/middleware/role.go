package middleware

import (
	"context"
	"slices"

	"github.com/heartmarshall/hrwallet-backend/internal/domain"
	"github.com/heartmarshall/hrwallet-backend/pkg/ctxutil"
)

// RequireRole returns domain.ErrUnauthorized for anonymous callers and
// domain.ErrForbidden if the token role is not one of roles.
// Use in REST handlers, not as HTTP middleware.
func RequireRole(ctx context.Context, roles ...domain.Role) error {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return domain.ErrUnauthorized
	}
	if !slices.Contains(roles, domain.Role(ctxutil.UserRoleFromCtx(ctx))) {
		return domain.ErrForbidden
	}
	return nil
}
