package redemption

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/hrwallet-backend/internal/domain"
	"sync"
)

var _ currencyResolver = &currencyResolverMock{}

type currencyResolverMock struct {
	AuthoritativeFunc func(ctx context.Context, userID uuid.UUID) (domain.Currency, *domain.User, error)

	calls struct {
		Authoritative []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
	}
	lockAuthoritative sync.RWMutex
}

func (mock *currencyResolverMock) Authoritative(ctx context.Context, userID uuid.UUID) (domain.Currency, *domain.User, error) {
	if mock.AuthoritativeFunc == nil {
		panic("currencyResolverMock.AuthoritativeFunc: method is nil but currencyResolver.Authoritative was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{Ctx: ctx, UserID: userID}
	mock.lockAuthoritative.Lock()
	mock.calls.Authoritative = append(mock.calls.Authoritative, callInfo)
	mock.lockAuthoritative.Unlock()
	return mock.AuthoritativeFunc(ctx, userID)
}

func (mock *currencyResolverMock) AuthoritativeCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockAuthoritative.RLock()
	calls := mock.calls.Authoritative
	mock.lockAuthoritative.RUnlock()
	return calls
}
