package rest

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/hrwallet-backend/internal/domain"
	"github.com/heartmarshall/hrwallet-backend/internal/service/redemption"
	"io"
	"sync"
)

var _ redemptionService = &redemptionServiceMock{}

type redemptionServiceMock struct {
	RequestFunc         func(ctx context.Context, input redemption.RequestInput) (*redemption.Result, error)
	MarkProcessingFunc  func(ctx context.Context, id uuid.UUID) (*domain.RedemptionRequest, error)
	ProcessFunc         func(ctx context.Context, input redemption.ProcessInput) (*domain.RedemptionRequest, error)
	RejectFunc          func(ctx context.Context, input redemption.RejectInput) (*redemption.Result, error)
	RegenerateProofFunc func(ctx context.Context, id uuid.UUID) (string, error)
	GetFunc             func(ctx context.Context, id uuid.UUID) (*domain.RedemptionRequest, error)
	ListFunc            func(ctx context.Context, input redemption.ListInput) ([]domain.RedemptionRequest, error)
	ExportQueueFunc     func(ctx context.Context, w io.Writer, input redemption.ListInput) error

	calls struct {
		Request []struct {
			Ctx   context.Context
			Input redemption.RequestInput
		}
		MarkProcessing []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		Process []struct {
			Ctx   context.Context
			Input redemption.ProcessInput
		}
		Reject []struct {
			Ctx   context.Context
			Input redemption.RejectInput
		}
		RegenerateProof []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		Get []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		List []struct {
			Ctx   context.Context
			Input redemption.ListInput
		}
		ExportQueue []struct {
			Ctx   context.Context
			W     io.Writer
			Input redemption.ListInput
		}
	}
	lockRequest         sync.RWMutex
	lockMarkProcessing  sync.RWMutex
	lockProcess         sync.RWMutex
	lockReject          sync.RWMutex
	lockRegenerateProof sync.RWMutex
	lockGet             sync.RWMutex
	lockList            sync.RWMutex
	lockExportQueue     sync.RWMutex
}

func (mock *redemptionServiceMock) Request(ctx context.Context, input redemption.RequestInput) (*redemption.Result, error) {
	if mock.RequestFunc == nil {
		panic("redemptionServiceMock.RequestFunc: method is nil but redemptionService.Request was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input redemption.RequestInput
	}{Ctx: ctx, Input: input}
	mock.lockRequest.Lock()
	mock.calls.Request = append(mock.calls.Request, callInfo)
	mock.lockRequest.Unlock()
	return mock.RequestFunc(ctx, input)
}

func (mock *redemptionServiceMock) RequestCalls() []struct {
	Ctx   context.Context
	Input redemption.RequestInput
} {
	mock.lockRequest.RLock()
	calls := mock.calls.Request
	mock.lockRequest.RUnlock()
	return calls
}

func (mock *redemptionServiceMock) MarkProcessing(ctx context.Context, id uuid.UUID) (*domain.RedemptionRequest, error) {
	if mock.MarkProcessingFunc == nil {
		panic("redemptionServiceMock.MarkProcessingFunc: method is nil but redemptionService.MarkProcessing was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockMarkProcessing.Lock()
	mock.calls.MarkProcessing = append(mock.calls.MarkProcessing, callInfo)
	mock.lockMarkProcessing.Unlock()
	return mock.MarkProcessingFunc(ctx, id)
}

func (mock *redemptionServiceMock) MarkProcessingCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockMarkProcessing.RLock()
	calls := mock.calls.MarkProcessing
	mock.lockMarkProcessing.RUnlock()
	return calls
}

func (mock *redemptionServiceMock) Process(ctx context.Context, input redemption.ProcessInput) (*domain.RedemptionRequest, error) {
	if mock.ProcessFunc == nil {
		panic("redemptionServiceMock.ProcessFunc: method is nil but redemptionService.Process was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input redemption.ProcessInput
	}{Ctx: ctx, Input: input}
	mock.lockProcess.Lock()
	mock.calls.Process = append(mock.calls.Process, callInfo)
	mock.lockProcess.Unlock()
	return mock.ProcessFunc(ctx, input)
}

func (mock *redemptionServiceMock) ProcessCalls() []struct {
	Ctx   context.Context
	Input redemption.ProcessInput
} {
	mock.lockProcess.RLock()
	calls := mock.calls.Process
	mock.lockProcess.RUnlock()
	return calls
}

func (mock *redemptionServiceMock) Reject(ctx context.Context, input redemption.RejectInput) (*redemption.Result, error) {
	if mock.RejectFunc == nil {
		panic("redemptionServiceMock.RejectFunc: method is nil but redemptionService.Reject was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input redemption.RejectInput
	}{Ctx: ctx, Input: input}
	mock.lockReject.Lock()
	mock.calls.Reject = append(mock.calls.Reject, callInfo)
	mock.lockReject.Unlock()
	return mock.RejectFunc(ctx, input)
}

func (mock *redemptionServiceMock) RejectCalls() []struct {
	Ctx   context.Context
	Input redemption.RejectInput
} {
	mock.lockReject.RLock()
	calls := mock.calls.Reject
	mock.lockReject.RUnlock()
	return calls
}

func (mock *redemptionServiceMock) RegenerateProof(ctx context.Context, id uuid.UUID) (string, error) {
	if mock.RegenerateProofFunc == nil {
		panic("redemptionServiceMock.RegenerateProofFunc: method is nil but redemptionService.RegenerateProof was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockRegenerateProof.Lock()
	mock.calls.RegenerateProof = append(mock.calls.RegenerateProof, callInfo)
	mock.lockRegenerateProof.Unlock()
	return mock.RegenerateProofFunc(ctx, id)
}

func (mock *redemptionServiceMock) RegenerateProofCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockRegenerateProof.RLock()
	calls := mock.calls.RegenerateProof
	mock.lockRegenerateProof.RUnlock()
	return calls
}

func (mock *redemptionServiceMock) Get(ctx context.Context, id uuid.UUID) (*domain.RedemptionRequest, error) {
	if mock.GetFunc == nil {
		panic("redemptionServiceMock.GetFunc: method is nil but redemptionService.Get was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, id)
}

func (mock *redemptionServiceMock) GetCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *redemptionServiceMock) List(ctx context.Context, input redemption.ListInput) ([]domain.RedemptionRequest, error) {
	if mock.ListFunc == nil {
		panic("redemptionServiceMock.ListFunc: method is nil but redemptionService.List was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input redemption.ListInput
	}{Ctx: ctx, Input: input}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, input)
}

func (mock *redemptionServiceMock) ListCalls() []struct {
	Ctx   context.Context
	Input redemption.ListInput
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *redemptionServiceMock) ExportQueue(ctx context.Context, w io.Writer, input redemption.ListInput) error {
	if mock.ExportQueueFunc == nil {
		panic("redemptionServiceMock.ExportQueueFunc: method is nil but redemptionService.ExportQueue was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		W     io.Writer
		Input redemption.ListInput
	}{Ctx: ctx, W: w, Input: input}
	mock.lockExportQueue.Lock()
	mock.calls.ExportQueue = append(mock.calls.ExportQueue, callInfo)
	mock.lockExportQueue.Unlock()
	return mock.ExportQueueFunc(ctx, w, input)
}

func (mock *redemptionServiceMock) ExportQueueCalls() []struct {
	Ctx   context.Context
	W     io.Writer
	Input redemption.ListInput
} {
	mock.lockExportQueue.RLock()
	calls := mock.calls.ExportQueue
	mock.lockExportQueue.RUnlock()
	return calls
}
