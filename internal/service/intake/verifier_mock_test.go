package intake

import (
	"context"
	"sync"

	"github.com/formsink/formsink/internal/domain"
)

var _ verifier = &verifierMock{}

type verifierMock struct {
	VerifyFunc func(ctx context.Context, token, remoteIP string) (domain.Verdict, error)

	calls struct {
		Verify []struct {
			Ctx      context.Context
			Token    string
			RemoteIP string
		}
	}
	lockVerify sync.RWMutex
}

func (mock *verifierMock) Verify(ctx context.Context, token, remoteIP string) (domain.Verdict, error) {
	if mock.VerifyFunc == nil {
		panic("verifierMock.VerifyFunc: method is nil but verifier.Verify was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Token    string
		RemoteIP string
	}{Ctx: ctx, Token: token, RemoteIP: remoteIP}
	mock.lockVerify.Lock()
	mock.calls.Verify = append(mock.calls.Verify, callInfo)
	mock.lockVerify.Unlock()
	return mock.VerifyFunc(ctx, token, remoteIP)
}

func (mock *verifierMock) VerifyCalls() []struct {
	Ctx      context.Context
	Token    string
	RemoteIP string
} {
	mock.lockVerify.RLock()
	calls := mock.calls.Verify
	mock.lockVerify.RUnlock()
	return calls
}
