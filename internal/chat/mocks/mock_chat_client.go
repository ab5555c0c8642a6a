package mocks

import (
	context "context"

	mock "github.com/stretchr/testify/mock"

	model "weather-chatbot/client/internal/model"
)

// MockChatClient is a mock type for the ChatClient type
type MockChatClient struct {
	mock.Mock
}

// Chat provides a mock function with given fields: ctx, req
func (_m *MockChatClient) Chat(ctx context.Context, req model.ChatRequest) (*model.ChatResponse, error) {
	ret := _m.Called(ctx, req)

	if len(ret) == 0 {
		panic("no return value specified for Chat")
	}

	var r0 *model.ChatResponse
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, model.ChatRequest) (*model.ChatResponse, error)); ok {
		return rf(ctx, req)
	}
	if rf, ok := ret.Get(0).(func(context.Context, model.ChatRequest) *model.ChatResponse); ok {
		r0 = rf(ctx, req)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*model.ChatResponse)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, model.ChatRequest) error); ok {
		r1 = rf(ctx, req)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewMockChatClient creates a new instance of MockChatClient. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockChatClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockChatClient {
	mock := &MockChatClient{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
