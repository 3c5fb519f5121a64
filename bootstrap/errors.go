package bootstrap

import (
	"github.com/cockroachdb/errors"
)

// Error kinds. Every error returned by this package is marked with exactly one
// of them, so callers can branch with errors.Is.
var (
	// ErrConfiguration means a requested capability is not supported by the runtime.
	ErrConfiguration = errors.New("configuration error")
	// ErrUnavailable means no device, queue family or swapchain support meets the requirements.
	ErrUnavailable = errors.New("unavailable error")
	// ErrPlatform means a driver call returned a failure status.
	ErrPlatform = errors.New("platform error")
	// ErrIO means a required external artifact could not be read.
	ErrIO = errors.New("io error")
)

func configurationErrorf(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), ErrConfiguration)
}

func unavailableErrorf(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), ErrUnavailable)
}

func platformError(err error, format string, args ...interface{}) error {
	if err == nil {
		err = errors.New("driver rejected the call")
	}
	return errors.Mark(errors.Wrapf(err, format, args...), ErrPlatform)
}

func ioError(err error, format string, args ...interface{}) error {
	return errors.Mark(errors.Wrapf(err, format, args...), ErrIO)
}

// Kind names the error kind err is marked with, or "unknown".
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	case errors.Is(err, ErrUnavailable):
		return "unavailable"
	case errors.Is(err, ErrPlatform):
		return "platform"
	case errors.Is(err, ErrIO):
		return "io"
	}
	return "unknown"
}
