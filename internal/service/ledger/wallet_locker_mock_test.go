package ledger

import (
	"context"
	"sync"
)

var _ walletLocker = &walletLockerMock{}

type walletLockerMock struct {
	ObtainFunc func(ctx context.Context, key string) (func(), error)

	calls struct {
		Obtain []struct {
			Ctx context.Context
			Key string
		}
	}
	lockObtain sync.RWMutex
}

func (mock *walletLockerMock) Obtain(ctx context.Context, key string) (func(), error) {
	if mock.ObtainFunc == nil {
		panic("walletLockerMock.ObtainFunc: method is nil but walletLocker.Obtain was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Key string
	}{Ctx: ctx, Key: key}
	mock.lockObtain.Lock()
	mock.calls.Obtain = append(mock.calls.Obtain, callInfo)
	mock.lockObtain.Unlock()
	return mock.ObtainFunc(ctx, key)
}

func (mock *walletLockerMock) ObtainCalls() []struct {
	Ctx context.Context
	Key string
} {
	mock.lockObtain.RLock()
	calls := mock.calls.Obtain
	mock.lockObtain.RUnlock()
	return calls
}
