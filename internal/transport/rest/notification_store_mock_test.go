package rest

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/hrwallet-backend/internal/domain"
	"sync"
)

var _ notificationStore = &notificationStoreMock{}

type notificationStoreMock struct {
	ListUnreadFunc func(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Notification, error)
	MarkReadFunc   func(ctx context.Context, userID uuid.UUID, id uuid.UUID) error

	calls struct {
		ListUnread []struct {
			Ctx    context.Context
			UserID uuid.UUID
			Limit  int
		}
		MarkRead []struct {
			Ctx    context.Context
			UserID uuid.UUID
			ID     uuid.UUID
		}
	}
	lockListUnread sync.RWMutex
	lockMarkRead   sync.RWMutex
}

func (mock *notificationStoreMock) ListUnread(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Notification, error) {
	if mock.ListUnreadFunc == nil {
		panic("notificationStoreMock.ListUnreadFunc: method is nil but notificationStore.ListUnread was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		Limit  int
	}{Ctx: ctx, UserID: userID, Limit: limit}
	mock.lockListUnread.Lock()
	mock.calls.ListUnread = append(mock.calls.ListUnread, callInfo)
	mock.lockListUnread.Unlock()
	return mock.ListUnreadFunc(ctx, userID, limit)
}

func (mock *notificationStoreMock) ListUnreadCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	Limit  int
} {
	mock.lockListUnread.RLock()
	calls := mock.calls.ListUnread
	mock.lockListUnread.RUnlock()
	return calls
}

func (mock *notificationStoreMock) MarkRead(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	if mock.MarkReadFunc == nil {
		panic("notificationStoreMock.MarkReadFunc: method is nil but notificationStore.MarkRead was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		ID     uuid.UUID
	}{Ctx: ctx, UserID: userID, ID: id}
	mock.lockMarkRead.Lock()
	mock.calls.MarkRead = append(mock.calls.MarkRead, callInfo)
	mock.lockMarkRead.Unlock()
	return mock.MarkReadFunc(ctx, userID, id)
}

func (mock *notificationStoreMock) MarkReadCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	ID     uuid.UUID
} {
	mock.lockMarkRead.RLock()
	calls := mock.calls.MarkRead
	mock.lockMarkRead.RUnlock()
	return calls
}
