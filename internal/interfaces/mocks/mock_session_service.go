package mocks

import (
	context "context"

	mock "github.com/stretchr/testify/mock"

	model "weather-chatbot/client/internal/model"
)

// MockSessionService is a mock type for the SessionService type
type MockSessionService struct {
	mock.Mock
}

// ActiveSession provides a mock function with no fields
func (_m *MockSessionService) ActiveSession() (model.ChatSession, bool) {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for ActiveSession")
	}

	var r0 model.ChatSession
	var r1 bool
	if rf, ok := ret.Get(0).(func() (model.ChatSession, bool)); ok {
		return rf()
	}
	if rf, ok := ret.Get(0).(func() model.ChatSession); ok {
		r0 = rf()
	} else {
		r0 = ret.Get(0).(model.ChatSession)
	}

	if rf, ok := ret.Get(1).(func() bool); ok {
		r1 = rf()
	} else {
		r1 = ret.Get(1).(bool)
	}

	return r0, r1
}

// ClearAllSessions provides a mock function with given fields: ctx
func (_m *MockSessionService) ClearAllSessions(ctx context.Context) model.ChatSession {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for ClearAllSessions")
	}

	var r0 model.ChatSession
	if rf, ok := ret.Get(0).(func(context.Context) model.ChatSession); ok {
		r0 = rf(ctx)
	} else {
		r0 = ret.Get(0).(model.ChatSession)
	}

	return r0
}

// CreateSession provides a mock function with given fields: ctx
func (_m *MockSessionService) CreateSession(ctx context.Context) model.ChatSession {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for CreateSession")
	}

	var r0 model.ChatSession
	if rf, ok := ret.Get(0).(func(context.Context) model.ChatSession); ok {
		r0 = rf(ctx)
	} else {
		r0 = ret.Get(0).(model.ChatSession)
	}

	return r0
}

// DeleteSession provides a mock function with given fields: ctx, id
func (_m *MockSessionService) DeleteSession(ctx context.Context, id string) bool {
	ret := _m.Called(ctx, id)

	if len(ret) == 0 {
		panic("no return value specified for DeleteSession")
	}

	var r0 bool
	if rf, ok := ret.Get(0).(func(context.Context, string) bool); ok {
		r0 = rf(ctx, id)
	} else {
		r0 = ret.Get(0).(bool)
	}

	return r0
}

// Sessions provides a mock function with no fields
func (_m *MockSessionService) Sessions() []model.ChatSession {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for Sessions")
	}

	var r0 []model.ChatSession
	if rf, ok := ret.Get(0).(func() []model.ChatSession); ok {
		r0 = rf()
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]model.ChatSession)
		}
	}

	return r0
}

// SwitchSession provides a mock function with given fields: ctx, id
func (_m *MockSessionService) SwitchSession(ctx context.Context, id string) bool {
	ret := _m.Called(ctx, id)

	if len(ret) == 0 {
		panic("no return value specified for SwitchSession")
	}

	var r0 bool
	if rf, ok := ret.Get(0).(func(context.Context, string) bool); ok {
		r0 = rf(ctx, id)
	} else {
		r0 = ret.Get(0).(bool)
	}

	return r0
}

// UpdateSessionLocation provides a mock function with given fields: ctx, loc
func (_m *MockSessionService) UpdateSessionLocation(ctx context.Context, loc *model.Location) bool {
	ret := _m.Called(ctx, loc)

	if len(ret) == 0 {
		panic("no return value specified for UpdateSessionLocation")
	}

	var r0 bool
	if rf, ok := ret.Get(0).(func(context.Context, *model.Location) bool); ok {
		r0 = rf(ctx, loc)
	} else {
		r0 = ret.Get(0).(bool)
	}

	return r0
}

// UpdateSessionTitle provides a mock function with given fields: ctx, title
func (_m *MockSessionService) UpdateSessionTitle(ctx context.Context, title string) bool {
	ret := _m.Called(ctx, title)

	if len(ret) == 0 {
		panic("no return value specified for UpdateSessionTitle")
	}

	var r0 bool
	if rf, ok := ret.Get(0).(func(context.Context, string) bool); ok {
		r0 = rf(ctx, title)
	} else {
		r0 = ret.Get(0).(bool)
	}

	return r0
}

// NewMockSessionService creates a new instance of MockSessionService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockSessionService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockSessionService {
	mock := &MockSessionService{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
