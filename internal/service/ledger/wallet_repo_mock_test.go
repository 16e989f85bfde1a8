package ledger

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/hrwallet-backend/internal/domain"
	"github.com/shopspring/decimal"
	"sync"
)

var _ walletRepo = &walletRepoMock{}

type walletRepoMock struct {
	EnsureFunc           func(ctx context.Context, userID uuid.UUID, currency domain.Currency) (*domain.Wallet, error)
	GetFunc              func(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error)
	GetForUpdateFunc     func(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error)
	SetCurrencyFunc      func(ctx context.Context, userID uuid.UUID, currency domain.Currency) (bool, error)
	PostTransactionFunc  func(ctx context.Context, p domain.PostTransactionParams) (*domain.WalletTransaction, error)
	GetTransactionFunc   func(ctx context.Context, id uuid.UUID) (*domain.WalletTransaction, error)
	ListTransactionsFunc func(ctx context.Context, userID uuid.UUID, filter domain.TransactionFilter) ([]domain.WalletTransaction, error)
	MarkRedeemedFunc     func(ctx context.Context, txID uuid.UUID, redemptionID uuid.UUID) error
	SumByTypeFunc        func(ctx context.Context, userID uuid.UUID) (decimal.Decimal, decimal.Decimal, error)

	calls struct {
		Ensure []struct {
			Ctx      context.Context
			UserID   uuid.UUID
			Currency domain.Currency
		}
		Get []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
		GetForUpdate []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
		SetCurrency []struct {
			Ctx      context.Context
			UserID   uuid.UUID
			Currency domain.Currency
		}
		PostTransaction []struct {
			Ctx context.Context
			P   domain.PostTransactionParams
		}
		GetTransaction []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		ListTransactions []struct {
			Ctx    context.Context
			UserID uuid.UUID
			Filter domain.TransactionFilter
		}
		MarkRedeemed []struct {
			Ctx          context.Context
			TxID         uuid.UUID
			RedemptionID uuid.UUID
		}
		SumByType []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
	}
	lockEnsure           sync.RWMutex
	lockGet              sync.RWMutex
	lockGetForUpdate     sync.RWMutex
	lockSetCurrency      sync.RWMutex
	lockPostTransaction  sync.RWMutex
	lockGetTransaction   sync.RWMutex
	lockListTransactions sync.RWMutex
	lockMarkRedeemed     sync.RWMutex
	lockSumByType        sync.RWMutex
}

func (mock *walletRepoMock) Ensure(ctx context.Context, userID uuid.UUID, currency domain.Currency) (*domain.Wallet, error) {
	if mock.EnsureFunc == nil {
		panic("walletRepoMock.EnsureFunc: method is nil but walletRepo.Ensure was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		UserID   uuid.UUID
		Currency domain.Currency
	}{Ctx: ctx, UserID: userID, Currency: currency}
	mock.lockEnsure.Lock()
	mock.calls.Ensure = append(mock.calls.Ensure, callInfo)
	mock.lockEnsure.Unlock()
	return mock.EnsureFunc(ctx, userID, currency)
}

func (mock *walletRepoMock) EnsureCalls() []struct {
	Ctx      context.Context
	UserID   uuid.UUID
	Currency domain.Currency
} {
	mock.lockEnsure.RLock()
	calls := mock.calls.Ensure
	mock.lockEnsure.RUnlock()
	return calls
}

func (mock *walletRepoMock) Get(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error) {
	if mock.GetFunc == nil {
		panic("walletRepoMock.GetFunc: method is nil but walletRepo.Get was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{Ctx: ctx, UserID: userID}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, userID)
}

func (mock *walletRepoMock) GetCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *walletRepoMock) GetForUpdate(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error) {
	if mock.GetForUpdateFunc == nil {
		panic("walletRepoMock.GetForUpdateFunc: method is nil but walletRepo.GetForUpdate was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{Ctx: ctx, UserID: userID}
	mock.lockGetForUpdate.Lock()
	mock.calls.GetForUpdate = append(mock.calls.GetForUpdate, callInfo)
	mock.lockGetForUpdate.Unlock()
	return mock.GetForUpdateFunc(ctx, userID)
}

func (mock *walletRepoMock) GetForUpdateCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockGetForUpdate.RLock()
	calls := mock.calls.GetForUpdate
	mock.lockGetForUpdate.RUnlock()
	return calls
}

func (mock *walletRepoMock) SetCurrency(ctx context.Context, userID uuid.UUID, currency domain.Currency) (bool, error) {
	if mock.SetCurrencyFunc == nil {
		panic("walletRepoMock.SetCurrencyFunc: method is nil but walletRepo.SetCurrency was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		UserID   uuid.UUID
		Currency domain.Currency
	}{Ctx: ctx, UserID: userID, Currency: currency}
	mock.lockSetCurrency.Lock()
	mock.calls.SetCurrency = append(mock.calls.SetCurrency, callInfo)
	mock.lockSetCurrency.Unlock()
	return mock.SetCurrencyFunc(ctx, userID, currency)
}

func (mock *walletRepoMock) SetCurrencyCalls() []struct {
	Ctx      context.Context
	UserID   uuid.UUID
	Currency domain.Currency
} {
	mock.lockSetCurrency.RLock()
	calls := mock.calls.SetCurrency
	mock.lockSetCurrency.RUnlock()
	return calls
}

func (mock *walletRepoMock) PostTransaction(ctx context.Context, p domain.PostTransactionParams) (*domain.WalletTransaction, error) {
	if mock.PostTransactionFunc == nil {
		panic("walletRepoMock.PostTransactionFunc: method is nil but walletRepo.PostTransaction was just called")
	}
	callInfo := struct {
		Ctx context.Context
		P   domain.PostTransactionParams
	}{Ctx: ctx, P: p}
	mock.lockPostTransaction.Lock()
	mock.calls.PostTransaction = append(mock.calls.PostTransaction, callInfo)
	mock.lockPostTransaction.Unlock()
	return mock.PostTransactionFunc(ctx, p)
}

func (mock *walletRepoMock) PostTransactionCalls() []struct {
	Ctx context.Context
	P   domain.PostTransactionParams
} {
	mock.lockPostTransaction.RLock()
	calls := mock.calls.PostTransaction
	mock.lockPostTransaction.RUnlock()
	return calls
}

func (mock *walletRepoMock) GetTransaction(ctx context.Context, id uuid.UUID) (*domain.WalletTransaction, error) {
	if mock.GetTransactionFunc == nil {
		panic("walletRepoMock.GetTransactionFunc: method is nil but walletRepo.GetTransaction was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockGetTransaction.Lock()
	mock.calls.GetTransaction = append(mock.calls.GetTransaction, callInfo)
	mock.lockGetTransaction.Unlock()
	return mock.GetTransactionFunc(ctx, id)
}

func (mock *walletRepoMock) GetTransactionCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetTransaction.RLock()
	calls := mock.calls.GetTransaction
	mock.lockGetTransaction.RUnlock()
	return calls
}

func (mock *walletRepoMock) ListTransactions(ctx context.Context, userID uuid.UUID, filter domain.TransactionFilter) ([]domain.WalletTransaction, error) {
	if mock.ListTransactionsFunc == nil {
		panic("walletRepoMock.ListTransactionsFunc: method is nil but walletRepo.ListTransactions was just called")
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

func (mock *walletRepoMock) ListTransactionsCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	Filter domain.TransactionFilter
} {
	mock.lockListTransactions.RLock()
	calls := mock.calls.ListTransactions
	mock.lockListTransactions.RUnlock()
	return calls
}

func (mock *walletRepoMock) MarkRedeemed(ctx context.Context, txID uuid.UUID, redemptionID uuid.UUID) error {
	if mock.MarkRedeemedFunc == nil {
		panic("walletRepoMock.MarkRedeemedFunc: method is nil but walletRepo.MarkRedeemed was just called")
	}
	callInfo := struct {
		Ctx          context.Context
		TxID         uuid.UUID
		RedemptionID uuid.UUID
	}{Ctx: ctx, TxID: txID, RedemptionID: redemptionID}
	mock.lockMarkRedeemed.Lock()
	mock.calls.MarkRedeemed = append(mock.calls.MarkRedeemed, callInfo)
	mock.lockMarkRedeemed.Unlock()
	return mock.MarkRedeemedFunc(ctx, txID, redemptionID)
}

func (mock *walletRepoMock) MarkRedeemedCalls() []struct {
	Ctx          context.Context
	TxID         uuid.UUID
	RedemptionID uuid.UUID
} {
	mock.lockMarkRedeemed.RLock()
	calls := mock.calls.MarkRedeemed
	mock.lockMarkRedeemed.RUnlock()
	return calls
}

func (mock *walletRepoMock) SumByType(ctx context.Context, userID uuid.UUID) (decimal.Decimal, decimal.Decimal, error) {
	if mock.SumByTypeFunc == nil {
		panic("walletRepoMock.SumByTypeFunc: method is nil but walletRepo.SumByType was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{Ctx: ctx, UserID: userID}
	mock.lockSumByType.Lock()
	mock.calls.SumByType = append(mock.calls.SumByType, callInfo)
	mock.lockSumByType.Unlock()
	return mock.SumByTypeFunc(ctx, userID)
}

func (mock *walletRepoMock) SumByTypeCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockSumByType.RLock()
	calls := mock.calls.SumByType
	mock.lockSumByType.RUnlock()
	return calls
}
