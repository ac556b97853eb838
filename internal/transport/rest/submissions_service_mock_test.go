package rest

import (
	"context"
	"sync"

	"github.com/formsink/formsink/internal/domain"
	"github.com/formsink/formsink/internal/service/submissions"
)

var _ submissionsService = &submissionsServiceMock{}

type submissionsServiceMock struct {
	ListFunc func(ctx context.Context, input submissions.ListInput) ([]domain.Submission, error)
	GetFunc  func(ctx context.Context, id string) (domain.Submission, error)

	calls struct {
		List []struct {
			Ctx   context.Context
			Input submissions.ListInput
		}
		Get []struct {
			Ctx context.Context
			ID  string
		}
	}
	lockList sync.RWMutex
	lockGet  sync.RWMutex
}

func (mock *submissionsServiceMock) List(ctx context.Context, input submissions.ListInput) ([]domain.Submission, error) {
	if mock.ListFunc == nil {
		panic("submissionsServiceMock.ListFunc: method is nil but submissionsService.List was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input submissions.ListInput
	}{Ctx: ctx, Input: input}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, input)
}

func (mock *submissionsServiceMock) ListCalls() []struct {
	Ctx   context.Context
	Input submissions.ListInput
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *submissionsServiceMock) Get(ctx context.Context, id string) (domain.Submission, error) {
	if mock.GetFunc == nil {
		panic("submissionsServiceMock.GetFunc: method is nil but submissionsService.Get was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  string
	}{Ctx: ctx, ID: id}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, id)
}

func (mock *submissionsServiceMock) GetCalls() []struct {
	Ctx context.Context
	ID  string
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}
