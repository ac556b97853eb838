package rest

import (
	"context"
	"sync"

	"github.com/formsink/formsink/internal/domain"
	"github.com/formsink/formsink/internal/service/intake"
)

var _ intakeService = &intakeServiceMock{}

type intakeServiceMock struct {
	SubmitFunc func(ctx context.Context, input intake.SubmitInput) (domain.Submission, error)

	calls struct {
		Submit []struct {
			Ctx   context.Context
			Input intake.SubmitInput
		}
	}
	lockSubmit sync.RWMutex
}

func (mock *intakeServiceMock) Submit(ctx context.Context, input intake.SubmitInput) (domain.Submission, error) {
	if mock.SubmitFunc == nil {
		panic("intakeServiceMock.SubmitFunc: method is nil but intakeService.Submit was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input intake.SubmitInput
	}{Ctx: ctx, Input: input}
	mock.lockSubmit.Lock()
	mock.calls.Submit = append(mock.calls.Submit, callInfo)
	mock.lockSubmit.Unlock()
	return mock.SubmitFunc(ctx, input)
}

func (mock *intakeServiceMock) SubmitCalls() []struct {
	Ctx   context.Context
	Input intake.SubmitInput
} {
	mock.lockSubmit.RLock()
	calls := mock.calls.Submit
	mock.lockSubmit.RUnlock()
	return calls
}
