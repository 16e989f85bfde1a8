package creditrequest

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/hrwallet-backend/internal/domain"
	"sync"
)

var _ walletLedger = &walletLedgerMock{}

type walletLedgerMock struct {
	ExclusiveFunc  func(ctx context.Context, userID uuid.UUID, fn func(ctx context.Context) error) error
	LockWalletFunc func(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error)
	PostFunc       func(ctx context.Context, w *domain.Wallet, p domain.LedgerPosting) (*domain.WalletTransaction, error)

	calls struct {
		Exclusive []struct {
			Ctx    context.Context
			UserID uuid.UUID
			Fn     func(ctx context.Context) error
		}
		LockWallet []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
		Post []struct {
			Ctx context.Context
			W   *domain.Wallet
			P   domain.LedgerPosting
		}
	}
	lockExclusive  sync.RWMutex
	lockLockWallet sync.RWMutex
	lockPost       sync.RWMutex
}

func (mock *walletLedgerMock) Exclusive(ctx context.Context, userID uuid.UUID, fn func(ctx context.Context) error) error {
	if mock.ExclusiveFunc == nil {
		panic("walletLedgerMock.ExclusiveFunc: method is nil but walletLedger.Exclusive was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		Fn     func(ctx context.Context) error
	}{Ctx: ctx, UserID: userID, Fn: fn}
	mock.lockExclusive.Lock()
	mock.calls.Exclusive = append(mock.calls.Exclusive, callInfo)
	mock.lockExclusive.Unlock()
	return mock.ExclusiveFunc(ctx, userID, fn)
}

func (mock *walletLedgerMock) ExclusiveCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	Fn     func(ctx context.Context) error
} {
	mock.lockExclusive.RLock()
	calls := mock.calls.Exclusive
	mock.lockExclusive.RUnlock()
	return calls
}

func (mock *walletLedgerMock) LockWallet(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error) {
	if mock.LockWalletFunc == nil {
		panic("walletLedgerMock.LockWalletFunc: method is nil but walletLedger.LockWallet was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{Ctx: ctx, UserID: userID}
	mock.lockLockWallet.Lock()
	mock.calls.LockWallet = append(mock.calls.LockWallet, callInfo)
	mock.lockLockWallet.Unlock()
	return mock.LockWalletFunc(ctx, userID)
}

func (mock *walletLedgerMock) LockWalletCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockLockWallet.RLock()
	calls := mock.calls.LockWallet
	mock.lockLockWallet.RUnlock()
	return calls
}

func (mock *walletLedgerMock) Post(ctx context.Context, w *domain.Wallet, p domain.LedgerPosting) (*domain.WalletTransaction, error) {
	if mock.PostFunc == nil {
		panic("walletLedgerMock.PostFunc: method is nil but walletLedger.Post was just called")
	}
	callInfo := struct {
		Ctx context.Context
		W   *domain.Wallet
		P   domain.LedgerPosting
	}{Ctx: ctx, W: w, P: p}
	mock.lockPost.Lock()
	mock.calls.Post = append(mock.calls.Post, callInfo)
	mock.lockPost.Unlock()
	return mock.PostFunc(ctx, w, p)
}

func (mock *walletLedgerMock) PostCalls() []struct {
	Ctx context.Context
	W   *domain.Wallet
	P   domain.LedgerPosting
} {
	mock.lockPost.RLock()
	calls := mock.calls.Post
	mock.lockPost.RUnlock()
	return calls
}
