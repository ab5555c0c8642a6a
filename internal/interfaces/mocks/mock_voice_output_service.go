package mocks

import (
	context "context"

	mock "github.com/stretchr/testify/mock"

	speech "weather-chatbot/client/internal/speech"
)

// MockVoiceOutputService is a mock type for the VoiceOutputService type
type MockVoiceOutputService struct {
	mock.Mock
}

// SetEnabled provides a mock function with given fields: ctx, enabled
func (_m *MockVoiceOutputService) SetEnabled(ctx context.Context, enabled bool) error {
	ret := _m.Called(ctx, enabled)

	if len(ret) == 0 {
		panic("no return value specified for SetEnabled")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, bool) error); ok {
		r0 = rf(ctx, enabled)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// SetSupported provides a mock function with given fields: supported
func (_m *MockVoiceOutputService) SetSupported(supported bool) {
	_m.Called(supported)
}

// State provides a mock function with no fields
func (_m *MockVoiceOutputService) State() speech.OutputState {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for State")
	}

	var r0 speech.OutputState
	if rf, ok := ret.Get(0).(func() speech.OutputState); ok {
		r0 = rf()
	} else {
		r0 = ret.Get(0).(speech.OutputState)
	}

	return r0
}

// Stop provides a mock function with no fields
func (_m *MockVoiceOutputService) Stop() {
	_m.Called()
}

// NewMockVoiceOutputService creates a new instance of MockVoiceOutputService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockVoiceOutputService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockVoiceOutputService {
	mock := &MockVoiceOutputService{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
