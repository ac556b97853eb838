package intake

import (
	"context"
	"sync"

	"github.com/formsink/formsink/internal/domain"
)

var _ submissionStore = &submissionStoreMock{}

type submissionStoreMock struct {
	StoreFunc func(ctx context.Context, sub domain.Submission) (domain.Submission, error)

	calls struct {
		Store []struct {
			Ctx context.Context
			Sub domain.Submission
		}
	}
	lockStore sync.RWMutex
}

func (mock *submissionStoreMock) Store(ctx context.Context, sub domain.Submission) (domain.Submission, error) {
	if mock.StoreFunc == nil {
		panic("submissionStoreMock.StoreFunc: method is nil but submissionStore.Store was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Sub domain.Submission
	}{Ctx: ctx, Sub: sub}
	mock.lockStore.Lock()
	mock.calls.Store = append(mock.calls.Store, callInfo)
	mock.lockStore.Unlock()
	return mock.StoreFunc(ctx, sub)
}

func (mock *submissionStoreMock) StoreCalls() []struct {
	Ctx context.Context
	Sub domain.Submission
} {
	mock.lockStore.RLock()
	calls := mock.calls.Store
	mock.lockStore.RUnlock()
	return calls
}
