package creditrequest

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/hrwallet-backend/internal/domain"
	"sync"
)

var _ creditRequestRepo = &creditRequestRepoMock{}

type creditRequestRepoMock struct {
	CreateFunc     func(ctx context.Context, cr *domain.CreditRequest) (*domain.CreditRequest, error)
	GetByIDFunc    func(ctx context.Context, id uuid.UUID) (*domain.CreditRequest, error)
	ListFunc       func(ctx context.Context, filter domain.CreditRequestFilter) ([]domain.CreditRequest, error)
	TransitionFunc func(ctx context.Context, t domain.CreditTransition) (*domain.CreditRequest, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			Cr  *domain.CreditRequest
		}
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		List []struct {
			Ctx    context.Context
			Filter domain.CreditRequestFilter
		}
		Transition []struct {
			Ctx context.Context
			T   domain.CreditTransition
		}
	}
	lockCreate     sync.RWMutex
	lockGetByID    sync.RWMutex
	lockList       sync.RWMutex
	lockTransition sync.RWMutex
}

func (mock *creditRequestRepoMock) Create(ctx context.Context, cr *domain.CreditRequest) (*domain.CreditRequest, error) {
	if mock.CreateFunc == nil {
		panic("creditRequestRepoMock.CreateFunc: method is nil but creditRequestRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Cr  *domain.CreditRequest
	}{Ctx: ctx, Cr: cr}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, cr)
}

func (mock *creditRequestRepoMock) CreateCalls() []struct {
	Ctx context.Context
	Cr  *domain.CreditRequest
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *creditRequestRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.CreditRequest, error) {
	if mock.GetByIDFunc == nil {
		panic("creditRequestRepoMock.GetByIDFunc: method is nil but creditRequestRepo.GetByID was just called")
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

func (mock *creditRequestRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *creditRequestRepoMock) List(ctx context.Context, filter domain.CreditRequestFilter) ([]domain.CreditRequest, error) {
	if mock.ListFunc == nil {
		panic("creditRequestRepoMock.ListFunc: method is nil but creditRequestRepo.List was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Filter domain.CreditRequestFilter
	}{Ctx: ctx, Filter: filter}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, filter)
}

func (mock *creditRequestRepoMock) ListCalls() []struct {
	Ctx    context.Context
	Filter domain.CreditRequestFilter
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *creditRequestRepoMock) Transition(ctx context.Context, t domain.CreditTransition) (*domain.CreditRequest, error) {
	if mock.TransitionFunc == nil {
		panic("creditRequestRepoMock.TransitionFunc: method is nil but creditRequestRepo.Transition was just called")
	}
	callInfo := struct {
		Ctx context.Context
		T   domain.CreditTransition
	}{Ctx: ctx, T: t}
	mock.lockTransition.Lock()
	mock.calls.Transition = append(mock.calls.Transition, callInfo)
	mock.lockTransition.Unlock()
	return mock.TransitionFunc(ctx, t)
}

func (mock *creditRequestRepoMock) TransitionCalls() []struct {
	Ctx context.Context
	T   domain.CreditTransition
} {
	mock.lockTransition.RLock()
	calls := mock.calls.Transition
	mock.lockTransition.RUnlock()
	return calls
}
