package currency

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/hrwallet-backend/internal/domain"
	"sync"
)

var _ creditRequestRepo = &creditRequestRepoMock{}

type creditRequestRepoMock struct {
	UpdateCurrencyForUserFunc func(ctx context.Context, userID uuid.UUID, currency domain.Currency) (int64, error)

	calls struct {
		UpdateCurrencyForUser []struct {
			Ctx      context.Context
			UserID   uuid.UUID
			Currency domain.Currency
		}
	}
	lockUpdateCurrencyForUser sync.RWMutex
}

func (mock *creditRequestRepoMock) UpdateCurrencyForUser(ctx context.Context, userID uuid.UUID, currency domain.Currency) (int64, error) {
	if mock.UpdateCurrencyForUserFunc == nil {
		panic("creditRequestRepoMock.UpdateCurrencyForUserFunc: method is nil but creditRequestRepo.UpdateCurrencyForUser was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		UserID   uuid.UUID
		Currency domain.Currency
	}{Ctx: ctx, UserID: userID, Currency: currency}
	mock.lockUpdateCurrencyForUser.Lock()
	mock.calls.UpdateCurrencyForUser = append(mock.calls.UpdateCurrencyForUser, callInfo)
	mock.lockUpdateCurrencyForUser.Unlock()
	return mock.UpdateCurrencyForUserFunc(ctx, userID, currency)
}

func (mock *creditRequestRepoMock) UpdateCurrencyForUserCalls() []struct {
	Ctx      context.Context
	UserID   uuid.UUID
	Currency domain.Currency
} {
	mock.lockUpdateCurrencyForUser.RLock()
	calls := mock.calls.UpdateCurrencyForUser
	mock.lockUpdateCurrencyForUser.RUnlock()
	return calls
}
