package mocks

import (

	mock "github.com/stretchr/testify/mock"

	speech "weather-chatbot/client/internal/speech"
)

// MockVoiceInputService is a mock type for the VoiceInputService type
type MockVoiceInputService struct {
	mock.Mock
}

// Cancel provides a mock function with no fields
func (_m *MockVoiceInputService) Cancel() {
	_m.Called()
}

// ResetTranscript provides a mock function with no fields
func (_m *MockVoiceInputService) ResetTranscript() {
	_m.Called()
}

// Retry provides a mock function with no fields
func (_m *MockVoiceInputService) Retry() error {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for Retry")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func() error); ok {
		r0 = rf()
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// SetCapability provides a mock function with given fields: capability
func (_m *MockVoiceInputService) SetCapability(capability speech.Capability) {
	_m.Called(capability)
}

// StartListening provides a mock function with no fields
func (_m *MockVoiceInputService) StartListening() error {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for StartListening")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func() error); ok {
		r0 = rf()
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// State provides a mock function with no fields
func (_m *MockVoiceInputService) State() speech.InputState {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for State")
	}

	var r0 speech.InputState
	if rf, ok := ret.Get(0).(func() speech.InputState); ok {
		r0 = rf()
	} else {
		r0 = ret.Get(0).(speech.InputState)
	}

	return r0
}

// StopListening provides a mock function with no fields
func (_m *MockVoiceInputService) StopListening() {
	_m.Called()
}

// NewMockVoiceInputService creates a new instance of MockVoiceInputService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockVoiceInputService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockVoiceInputService {
	mock := &MockVoiceInputService{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
