package dispatch

import (
	"context"
	"github.com/heartmarshall/hrwallet-backend/internal/domain"
	"sync"
)

var _ emailSender = &emailSenderMock{}

type emailSenderMock struct {
	SendWorkflowEmailFunc func(ctx context.Context, email domain.WorkflowEmail) error

	calls struct {
		SendWorkflowEmail []struct {
			Ctx   context.Context
			Email domain.WorkflowEmail
		}
	}
	lockSendWorkflowEmail sync.RWMutex
}

func (mock *emailSenderMock) SendWorkflowEmail(ctx context.Context, email domain.WorkflowEmail) error {
	if mock.SendWorkflowEmailFunc == nil {
		panic("emailSenderMock.SendWorkflowEmailFunc: method is nil but emailSender.SendWorkflowEmail was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Email domain.WorkflowEmail
	}{Ctx: ctx, Email: email}
	mock.lockSendWorkflowEmail.Lock()
	mock.calls.SendWorkflowEmail = append(mock.calls.SendWorkflowEmail, callInfo)
	mock.lockSendWorkflowEmail.Unlock()
	return mock.SendWorkflowEmailFunc(ctx, email)
}

func (mock *emailSenderMock) SendWorkflowEmailCalls() []struct {
	Ctx   context.Context
	Email domain.WorkflowEmail
} {
	mock.lockSendWorkflowEmail.RLock()
	calls := mock.calls.SendWorkflowEmail
	mock.lockSendWorkflowEmail.RUnlock()
	return calls
}
