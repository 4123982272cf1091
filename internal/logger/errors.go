package logger

import "errors"

var (
	// ErrAppNameIsEmpty is returned when Log.AppName is not configured.
	ErrAppNameIsEmpty = errors.New("config Log.AppName can not be empty")

	// ErrServiceNameIsEmpty is returned when Log.ServiceName is not configured.
	ErrServiceNameIsEmpty = errors.New("config Log.ServiceName can not be empty")
)
