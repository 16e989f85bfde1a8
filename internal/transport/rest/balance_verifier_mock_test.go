package rest

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/hrwallet-backend/internal/domain"
	"sync"
)

var _ balanceVerifier = &balanceVerifierMock{}

type balanceVerifierMock struct {
	VerifyBalanceFunc func(ctx context.Context, userID uuid.UUID) (domain.BalanceCheck, error)

	calls struct {
		VerifyBalance []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
	}
	lockVerifyBalance sync.RWMutex
}

func (mock *balanceVerifierMock) VerifyBalance(ctx context.Context, userID uuid.UUID) (domain.BalanceCheck, error) {
	if mock.VerifyBalanceFunc == nil {
		panic("balanceVerifierMock.VerifyBalanceFunc: method is nil but balanceVerifier.VerifyBalance was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{Ctx: ctx, UserID: userID}
	mock.lockVerifyBalance.Lock()
	mock.calls.VerifyBalance = append(mock.calls.VerifyBalance, callInfo)
	mock.lockVerifyBalance.Unlock()
	return mock.VerifyBalanceFunc(ctx, userID)
}

func (mock *balanceVerifierMock) VerifyBalanceCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockVerifyBalance.RLock()
	calls := mock.calls.VerifyBalance
	mock.lockVerifyBalance.RUnlock()
	return calls
}
