package mocks

import (
	context "context"

	mock "github.com/stretchr/testify/mock"

	location "weather-chatbot/client/internal/location"
	model "weather-chatbot/client/internal/model"
)

// MockLocationService is a mock type for the LocationService type
type MockLocationService struct {
	mock.Mock
}

// BeginChange provides a mock function with no fields
func (_m *MockLocationService) BeginChange() {
	_m.Called()
}

// ClearLocation provides a mock function with given fields: ctx
func (_m *MockLocationService) ClearLocation(ctx context.Context) error {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for ClearLocation")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context) error); ok {
		r0 = rf(ctx)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Dismiss provides a mock function with no fields
func (_m *MockLocationService) Dismiss() {
	_m.Called()
}

// DismissNotice provides a mock function with no fields
func (_m *MockLocationService) DismissNotice() {
	_m.Called()
}

// Select provides a mock function with given fields: ctx, loc
func (_m *MockLocationService) Select(ctx context.Context, loc model.Location) error {
	ret := _m.Called(ctx, loc)

	if len(ret) == 0 {
		panic("no return value specified for Select")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, model.Location) error); ok {
		r0 = rf(ctx, loc)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// SetQuery provides a mock function with given fields: query
func (_m *MockLocationService) SetQuery(query string) {
	_m.Called(query)
}

// State provides a mock function with no fields
func (_m *MockLocationService) State() location.State {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for State")
	}

	var r0 location.State
	if rf, ok := ret.Get(0).(func() location.State); ok {
		r0 = rf()
	} else {
		r0 = ret.Get(0).(location.State)
	}

	return r0
}

// UseCurrentLocation provides a mock function with given fields: ctx
func (_m *MockLocationService) UseCurrentLocation(ctx context.Context) (model.Location, error) {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for UseCurrentLocation")
	}

	var r0 model.Location
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context) (model.Location, error)); ok {
		return rf(ctx)
	}
	if rf, ok := ret.Get(0).(func(context.Context) model.Location); ok {
		r0 = rf(ctx)
	} else {
		r0 = ret.Get(0).(model.Location)
	}

	if rf, ok := ret.Get(1).(func(context.Context) error); ok {
		r1 = rf(ctx)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewMockLocationService creates a new instance of MockLocationService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockLocationService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockLocationService {
	mock := &MockLocationService{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
