package rest

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/hrwallet-backend/internal/service/currency"
	"sync"
)

var _ currencyReconciler = &currencyReconcilerMock{}

type currencyReconcilerMock struct {
	ReconcileFunc func(ctx context.Context, userID uuid.UUID) (currency.ReconcileResult, error)

	calls struct {
		Reconcile []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
	}
	lockReconcile sync.RWMutex
}

func (mock *currencyReconcilerMock) Reconcile(ctx context.Context, userID uuid.UUID) (currency.ReconcileResult, error) {
	if mock.ReconcileFunc == nil {
		panic("currencyReconcilerMock.ReconcileFunc: method is nil but currencyReconciler.Reconcile was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{Ctx: ctx, UserID: userID}
	mock.lockReconcile.Lock()
	mock.calls.Reconcile = append(mock.calls.Reconcile, callInfo)
	mock.lockReconcile.Unlock()
	return mock.ReconcileFunc(ctx, userID)
}

func (mock *currencyReconcilerMock) ReconcileCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockReconcile.RLock()
	calls := mock.calls.Reconcile
	mock.lockReconcile.RUnlock()
	return calls
}
