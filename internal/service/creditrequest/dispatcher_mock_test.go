package creditrequest

import (
	"context"
	"github.com/heartmarshall/hrwallet-backend/internal/domain"
	"sync"
)

var _ dispatcher = &dispatcherMock{}

type dispatcherMock struct {
	PublishFunc func(ctx context.Context, fx domain.SideEffects)

	calls struct {
		Publish []struct {
			Ctx context.Context
			Fx  domain.SideEffects
		}
	}
	lockPublish sync.RWMutex
}

func (mock *dispatcherMock) Publish(ctx context.Context, fx domain.SideEffects) {
	if mock.PublishFunc == nil {
		panic("dispatcherMock.PublishFunc: method is nil but dispatcher.Publish was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Fx  domain.SideEffects
	}{Ctx: ctx, Fx: fx}
	mock.lockPublish.Lock()
	mock.calls.Publish = append(mock.calls.Publish, callInfo)
	mock.lockPublish.Unlock()
	mock.PublishFunc(ctx, fx)
}

func (mock *dispatcherMock) PublishCalls() []struct {
	Ctx context.Context
	Fx  domain.SideEffects
} {
	mock.lockPublish.RLock()
	calls := mock.calls.Publish
	mock.lockPublish.RUnlock()
	return calls
}
