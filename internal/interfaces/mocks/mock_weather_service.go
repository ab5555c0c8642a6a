package mocks

import (

	mock "github.com/stretchr/testify/mock"

	model "weather-chatbot/client/internal/model"
)

// MockWeatherService is a mock type for the WeatherService type
type MockWeatherService struct {
	mock.Mock
}

// Forecast provides a mock function with no fields
func (_m *MockWeatherService) Forecast() *model.Forecast {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for Forecast")
	}

	var r0 *model.Forecast
	if rf, ok := ret.Get(0).(func() *model.Forecast); ok {
		r0 = rf()
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*model.Forecast)
		}
	}

	return r0
}

// Snapshot provides a mock function with no fields
func (_m *MockWeatherService) Snapshot() *model.WeatherSnapshot {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for Snapshot")
	}

	var r0 *model.WeatherSnapshot
	if rf, ok := ret.Get(0).(func() *model.WeatherSnapshot); ok {
		r0 = rf()
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*model.WeatherSnapshot)
		}
	}

	return r0
}

// NewMockWeatherService creates a new instance of MockWeatherService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockWeatherService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockWeatherService {
	mock := &MockWeatherService{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
