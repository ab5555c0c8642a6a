package mocks

import (
	context "context"

	mock "github.com/stretchr/testify/mock"

	chat "weather-chatbot/client/internal/chat"
)

// MockChatService is a mock type for the ChatService type
type MockChatService struct {
	mock.Mock
}

// ClearError provides a mock function with no fields
func (_m *MockChatService) ClearError() {
	_m.Called()
}

// SendMessage provides a mock function with given fields: ctx, text
func (_m *MockChatService) SendMessage(ctx context.Context, text string) error {
	ret := _m.Called(ctx, text)

	if len(ret) == 0 {
		panic("no return value specified for SendMessage")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, string) error); ok {
		r0 = rf(ctx, text)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// SendVoiceTranscript provides a mock function with given fields: ctx
func (_m *MockChatService) SendVoiceTranscript(ctx context.Context) error {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for SendVoiceTranscript")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context) error); ok {
		r0 = rf(ctx)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// State provides a mock function with no fields
func (_m *MockChatService) State() chat.State {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for State")
	}

	var r0 chat.State
	if rf, ok := ret.Get(0).(func() chat.State); ok {
		r0 = rf()
	} else {
		r0 = ret.Get(0).(chat.State)
	}

	return r0
}

// NewMockChatService creates a new instance of MockChatService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockChatService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockChatService {
	mock := &MockChatService{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
