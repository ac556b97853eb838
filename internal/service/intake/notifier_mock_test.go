package intake

import (
	"context"
	"sync"

	"github.com/formsink/formsink/internal/domain"
)

var _ notifier = &notifierMock{}

type notifierMock struct {
	NotifyFunc func(ctx context.Context, sub domain.Submission) error

	calls struct {
		Notify []struct {
			Ctx context.Context
			Sub domain.Submission
		}
	}
	lockNotify sync.RWMutex
}

func (mock *notifierMock) Notify(ctx context.Context, sub domain.Submission) error {
	if mock.NotifyFunc == nil {
		panic("notifierMock.NotifyFunc: method is nil but notifier.Notify was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Sub domain.Submission
	}{Ctx: ctx, Sub: sub}
	mock.lockNotify.Lock()
	mock.calls.Notify = append(mock.calls.Notify, callInfo)
	mock.lockNotify.Unlock()
	return mock.NotifyFunc(ctx, sub)
}

func (mock *notifierMock) NotifyCalls() []struct {
	Ctx context.Context
	Sub domain.Submission
} {
	mock.lockNotify.RLock()
	calls := mock.calls.Notify
	mock.lockNotify.RUnlock()
	return calls
}
