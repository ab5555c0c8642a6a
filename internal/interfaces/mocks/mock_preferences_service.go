package mocks

import (
	context "context"

	mock "github.com/stretchr/testify/mock"

	model "weather-chatbot/client/internal/model"
	preferences "weather-chatbot/client/internal/preferences"
)

// MockPreferencesService is a mock type for the PreferencesService type
type MockPreferencesService struct {
	mock.Mock
}

// Get provides a mock function with no fields
func (_m *MockPreferencesService) Get() preferences.Preferences {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for Get")
	}

	var r0 preferences.Preferences
	if rf, ok := ret.Get(0).(func() preferences.Preferences); ok {
		r0 = rf()
	} else {
		r0 = ret.Get(0).(preferences.Preferences)
	}

	return r0
}

// SetLanguage provides a mock function with given fields: ctx, lang
func (_m *MockPreferencesService) SetLanguage(ctx context.Context, lang model.Language) error {
	ret := _m.Called(ctx, lang)

	if len(ret) == 0 {
		panic("no return value specified for SetLanguage")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, model.Language) error); ok {
		r0 = rf(ctx, lang)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// SetTheme provides a mock function with given fields: ctx, theme
func (_m *MockPreferencesService) SetTheme(ctx context.Context, theme model.Theme) error {
	ret := _m.Called(ctx, theme)

	if len(ret) == 0 {
		panic("no return value specified for SetTheme")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, model.Theme) error); ok {
		r0 = rf(ctx, theme)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// NewMockPreferencesService creates a new instance of MockPreferencesService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockPreferencesService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockPreferencesService {
	mock := &MockPreferencesService{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
