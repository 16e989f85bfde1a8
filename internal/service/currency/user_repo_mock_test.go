package currency

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/hrwallet-backend/internal/domain"
	"sync"
)

var _ userRepo = &userRepoMock{}

type userRepoMock struct {
	GetByIDFunc        func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	ListIDsFunc        func(ctx context.Context) ([]uuid.UUID, error)
	UpdateCurrencyFunc func(ctx context.Context, id uuid.UUID, currency domain.Currency) (bool, error)

	calls struct {
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		ListIDs        []struct{ Ctx context.Context }
		UpdateCurrency []struct {
			Ctx      context.Context
			ID       uuid.UUID
			Currency domain.Currency
		}
	}
	lockGetByID        sync.RWMutex
	lockListIDs        sync.RWMutex
	lockUpdateCurrency sync.RWMutex
}

func (mock *userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if mock.GetByIDFunc == nil {
		panic("userRepoMock.GetByIDFunc: method is nil but userRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *userRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *userRepoMock) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	if mock.ListIDsFunc == nil {
		panic("userRepoMock.ListIDsFunc: method is nil but userRepo.ListIDs was just called")
	}
	callInfo := struct{ Ctx context.Context }{Ctx: ctx}
	mock.lockListIDs.Lock()
	mock.calls.ListIDs = append(mock.calls.ListIDs, callInfo)
	mock.lockListIDs.Unlock()
	return mock.ListIDsFunc(ctx)
}

func (mock *userRepoMock) ListIDsCalls() []struct{ Ctx context.Context } {
	mock.lockListIDs.RLock()
	calls := mock.calls.ListIDs
	mock.lockListIDs.RUnlock()
	return calls
}

func (mock *userRepoMock) UpdateCurrency(ctx context.Context, id uuid.UUID, currency domain.Currency) (bool, error) {
	if mock.UpdateCurrencyFunc == nil {
		panic("userRepoMock.UpdateCurrencyFunc: method is nil but userRepo.UpdateCurrency was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		ID       uuid.UUID
		Currency domain.Currency
	}{Ctx: ctx, ID: id, Currency: currency}
	mock.lockUpdateCurrency.Lock()
	mock.calls.UpdateCurrency = append(mock.calls.UpdateCurrency, callInfo)
	mock.lockUpdateCurrency.Unlock()
	return mock.UpdateCurrencyFunc(ctx, id, currency)
}

func (mock *userRepoMock) UpdateCurrencyCalls() []struct {
	Ctx      context.Context
	ID       uuid.UUID
	Currency domain.Currency
} {
	mock.lockUpdateCurrency.RLock()
	calls := mock.calls.UpdateCurrency
	mock.lockUpdateCurrency.RUnlock()
	return calls
}
