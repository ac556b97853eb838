package submissions

import (
	"context"
	"sync"

	"github.com/formsink/formsink/internal/domain"
)

var _ submissionReader = &submissionReaderMock{}

type submissionReaderMock struct {
	ListByFormFunc func(ctx context.Context, formID string, limit, offset int) ([]domain.Submission, error)
	GetByIDFunc    func(ctx context.Context, id string) (domain.Submission, error)

	calls struct {
		ListByForm []struct {
			Ctx    context.Context
			FormID string
			Limit  int
			Offset int
		}
		GetByID []struct {
			Ctx context.Context
			ID  string
		}
	}
	lockListByForm sync.RWMutex
	lockGetByID    sync.RWMutex
}

func (mock *submissionReaderMock) ListByForm(ctx context.Context, formID string, limit, offset int) ([]domain.Submission, error) {
	if mock.ListByFormFunc == nil {
		panic("submissionReaderMock.ListByFormFunc: method is nil but submissionReader.ListByForm was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		FormID string
		Limit  int
		Offset int
	}{Ctx: ctx, FormID: formID, Limit: limit, Offset: offset}
	mock.lockListByForm.Lock()
	mock.calls.ListByForm = append(mock.calls.ListByForm, callInfo)
	mock.lockListByForm.Unlock()
	return mock.ListByFormFunc(ctx, formID, limit, offset)
}

func (mock *submissionReaderMock) ListByFormCalls() []struct {
	Ctx    context.Context
	FormID string
	Limit  int
	Offset int
} {
	mock.lockListByForm.RLock()
	calls := mock.calls.ListByForm
	mock.lockListByForm.RUnlock()
	return calls
}

func (mock *submissionReaderMock) GetByID(ctx context.Context, id string) (domain.Submission, error) {
	if mock.GetByIDFunc == nil {
		panic("submissionReaderMock.GetByIDFunc: method is nil but submissionReader.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  string
	}{Ctx: ctx, ID: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *submissionReaderMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  string
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}
