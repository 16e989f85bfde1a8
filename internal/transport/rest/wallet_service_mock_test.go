package rest

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/hrwallet-backend/internal/domain"
	"sync"
)

var _ walletService = &walletServiceMock{}

type walletServiceMock struct {
	EnsureWalletFunc     func(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error)
	ListTransactionsFunc func(ctx context.Context, userID uuid.UUID, filter domain.TransactionFilter) ([]domain.WalletTransaction, error)

	calls struct {
		EnsureWallet []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
		ListTransactions []struct {
			Ctx    context.Context
			UserID uuid.UUID
			Filter domain.TransactionFilter
		}
	}
	lockEnsureWallet     sync.RWMutex
	lockListTransactions sync.RWMutex
}

func (mock *walletServiceMock) EnsureWallet(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error) {
	if mock.EnsureWalletFunc == nil {
		panic("walletServiceMock.EnsureWalletFunc: method is nil but walletService.EnsureWallet was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{Ctx: ctx, UserID: userID}
	mock.lockEnsureWallet.Lock()
	mock.calls.EnsureWallet = append(mock.calls.EnsureWallet, callInfo)
	mock.lockEnsureWallet.Unlock()
	return mock.EnsureWalletFunc(ctx, userID)
}

func (mock *walletServiceMock) EnsureWalletCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockEnsureWallet.RLock()
	calls := mock.calls.EnsureWallet
	mock.lockEnsureWallet.RUnlock()
	return calls
}

func (mock *walletServiceMock) ListTransactions(ctx context.Context, userID uuid.UUID, filter domain.TransactionFilter) ([]domain.WalletTransaction, error) {
	if mock.ListTransactionsFunc == nil {
		panic("walletServiceMock.ListTransactionsFunc: method is nil but walletService.ListTransactions was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		Filter domain.TransactionFilter
	}{Ctx: ctx, UserID: userID, Filter: filter}
	mock.lockListTransactions.Lock()
	mock.calls.ListTransactions = append(mock.calls.ListTransactions, callInfo)
	mock.lockListTransactions.Unlock()
	return mock.ListTransactionsFunc(ctx, userID, filter)
}

func (mock *walletServiceMock) ListTransactionsCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	Filter domain.TransactionFilter
} {
	mock.lockListTransactions.RLock()
	calls := mock.calls.ListTransactions
	mock.lockListTransactions.RUnlock()
	return calls
}
