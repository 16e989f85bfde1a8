package redemption

import (
	"context"
	"sync"
)

var _ documentStore = &documentStoreMock{}

type documentStoreMock struct {
	StoreDocumentFunc func(ctx context.Context, data []byte, filename string, metadata map[string]string) (string, error)

	calls struct {
		StoreDocument []struct {
			Ctx      context.Context
			Data     []byte
			Filename string
			Metadata map[string]string
		}
	}
	lockStoreDocument sync.RWMutex
}

func (mock *documentStoreMock) StoreDocument(ctx context.Context, data []byte, filename string, metadata map[string]string) (string, error) {
	if mock.StoreDocumentFunc == nil {
		panic("documentStoreMock.StoreDocumentFunc: method is nil but documentStore.StoreDocument was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Data     []byte
		Filename string
		Metadata map[string]string
	}{Ctx: ctx, Data: data, Filename: filename, Metadata: metadata}
	mock.lockStoreDocument.Lock()
	mock.calls.StoreDocument = append(mock.calls.StoreDocument, callInfo)
	mock.lockStoreDocument.Unlock()
	return mock.StoreDocumentFunc(ctx, data, filename, metadata)
}

func (mock *documentStoreMock) StoreDocumentCalls() []struct {
	Ctx      context.Context
	Data     []byte
	Filename string
	Metadata map[string]string
} {
	mock.lockStoreDocument.RLock()
	calls := mock.calls.StoreDocument
	mock.lockStoreDocument.RUnlock()
	return calls
}
