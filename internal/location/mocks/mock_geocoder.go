package mocks

import (
	context "context"

	mock "github.com/stretchr/testify/mock"

	model "weather-chatbot/client/internal/model"
)

// MockGeocoder is a mock type for the Geocoder type
type MockGeocoder struct {
	mock.Mock
}

// ReverseGeocode provides a mock function with given fields: ctx, lat, lon
func (_m *MockGeocoder) ReverseGeocode(ctx context.Context, lat float64, lon float64) (*model.Location, error) {
	ret := _m.Called(ctx, lat, lon)

	if len(ret) == 0 {
		panic("no return value specified for ReverseGeocode")
	}

	var r0 *model.Location
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, float64, float64) (*model.Location, error)); ok {
		return rf(ctx, lat, lon)
	}
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.Location)
	}
	r1 = ret.Error(1)

	return r0, r1
}

// SearchLocations provides a mock function with given fields: ctx, query, limit
func (_m *MockGeocoder) SearchLocations(ctx context.Context, query string, limit int) ([]model.Location, error) {
	ret := _m.Called(ctx, query, limit)

	if len(ret) == 0 {
		panic("no return value specified for SearchLocations")
	}

	var r0 []model.Location
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string, int) ([]model.Location, error)); ok {
		return rf(ctx, query, limit)
	}
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]model.Location)
	}
	r1 = ret.Error(1)

	return r0, r1
}

// NewMockGeocoder creates a new instance of MockGeocoder. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockGeocoder(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockGeocoder {
	mock := &MockGeocoder{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
