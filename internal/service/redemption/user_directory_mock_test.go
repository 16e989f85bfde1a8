package redemption

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/hrwallet-backend/internal/domain"
	"sync"
)

var _ userDirectory = &userDirectoryMock{}

type userDirectoryMock struct {
	GetByIDFunc    func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByIDsFunc   func(ctx context.Context, ids []uuid.UUID) ([]domain.User, error)
	ListByRoleFunc func(ctx context.Context, roles ...domain.Role) ([]domain.User, error)

	calls struct {
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		GetByIDs []struct {
			Ctx context.Context
			Ids []uuid.UUID
		}
		ListByRole []struct {
			Ctx   context.Context
			Roles []domain.Role
		}
	}
	lockGetByID    sync.RWMutex
	lockGetByIDs   sync.RWMutex
	lockListByRole sync.RWMutex
}

func (mock *userDirectoryMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if mock.GetByIDFunc == nil {
		panic("userDirectoryMock.GetByIDFunc: method is nil but userDirectory.GetByID was just called")
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

func (mock *userDirectoryMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *userDirectoryMock) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.User, error) {
	if mock.GetByIDsFunc == nil {
		panic("userDirectoryMock.GetByIDsFunc: method is nil but userDirectory.GetByIDs was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Ids []uuid.UUID
	}{Ctx: ctx, Ids: ids}
	mock.lockGetByIDs.Lock()
	mock.calls.GetByIDs = append(mock.calls.GetByIDs, callInfo)
	mock.lockGetByIDs.Unlock()
	return mock.GetByIDsFunc(ctx, ids)
}

func (mock *userDirectoryMock) GetByIDsCalls() []struct {
	Ctx context.Context
	Ids []uuid.UUID
} {
	mock.lockGetByIDs.RLock()
	calls := mock.calls.GetByIDs
	mock.lockGetByIDs.RUnlock()
	return calls
}

func (mock *userDirectoryMock) ListByRole(ctx context.Context, roles ...domain.Role) ([]domain.User, error) {
	if mock.ListByRoleFunc == nil {
		panic("userDirectoryMock.ListByRoleFunc: method is nil but userDirectory.ListByRole was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Roles []domain.Role
	}{Ctx: ctx, Roles: roles}
	mock.lockListByRole.Lock()
	mock.calls.ListByRole = append(mock.calls.ListByRole, callInfo)
	mock.lockListByRole.Unlock()
	return mock.ListByRoleFunc(ctx, roles...)
}

func (mock *userDirectoryMock) ListByRoleCalls() []struct {
	Ctx   context.Context
	Roles []domain.Role
} {
	mock.lockListByRole.RLock()
	calls := mock.calls.ListByRole
	mock.lockListByRole.RUnlock()
	return calls
}
