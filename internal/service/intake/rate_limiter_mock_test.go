package intake

import (
	"context"
	"sync"

	"github.com/formsink/formsink/internal/domain"
)

var _ rateLimiter = &rateLimiterMock{}

type rateLimiterMock struct {
	CheckFunc func(ctx context.Context, identifier string, maxRequests, windowSeconds int) (domain.RateDecision, error)

	calls struct {
		Check []struct {
			Ctx           context.Context
			Identifier    string
			MaxRequests   int
			WindowSeconds int
		}
	}
	lockCheck sync.RWMutex
}

func (mock *rateLimiterMock) Check(ctx context.Context, identifier string, maxRequests, windowSeconds int) (domain.RateDecision, error) {
	if mock.CheckFunc == nil {
		panic("rateLimiterMock.CheckFunc: method is nil but rateLimiter.Check was just called")
	}
	callInfo := struct {
		Ctx           context.Context
		Identifier    string
		MaxRequests   int
		WindowSeconds int
	}{Ctx: ctx, Identifier: identifier, MaxRequests: maxRequests, WindowSeconds: windowSeconds}
	mock.lockCheck.Lock()
	mock.calls.Check = append(mock.calls.Check, callInfo)
	mock.lockCheck.Unlock()
	return mock.CheckFunc(ctx, identifier, maxRequests, windowSeconds)
}

func (mock *rateLimiterMock) CheckCalls() []struct {
	Ctx           context.Context
	Identifier    string
	MaxRequests   int
	WindowSeconds int
} {
	mock.lockCheck.RLock()
	calls := mock.calls.Check
	mock.lockCheck.RUnlock()
	return calls
}
