package backend

import (
	"errors"
	"fmt"
)

// ErrorCode classifies a bootstrap failure.
type ErrorCode int

const (
	// ErrDeviceOpen: the device file could not be opened or configured.
	ErrDeviceOpen ErrorCode = iota + 1
	// ErrUnsupportedBackend: the backend is unknown or not compiled in.
	ErrUnsupportedBackend
	// ErrDeviceBind: the pointer device could not be bound to the display.
	ErrDeviceBind
	// ErrWindowCreate: the window system refused the window.
	ErrWindowCreate
)

func (c ErrorCode) String() string {
	switch c {
	case ErrDeviceOpen:
		return "device open failed"
	case ErrUnsupportedBackend:
		return "unsupported backend"
	case ErrDeviceBind:
		return "device bind failed"
	case ErrWindowCreate:
		return "window create failed"
	default:
		return fmt.Sprintf("backend error %d", int(c))
	}
}

// Error makes a code usable as an errors.Is target.
func (c ErrorCode) Error() string {
	return c.String()
}

// BackendError is returned by every display and pointer creation step.
type BackendError struct {
	Code    ErrorCode
	Backend Kind
	Device  string
	Err     error
}

// NewError builds a BackendError; it returns err unchanged when it already is
// one.
func NewError(code ErrorCode, kind Kind, device string, err error) error {
	var be *BackendError
	if errors.As(err, &be) {
		return err
	}
	return &BackendError{Code: code, Backend: kind, Device: device, Err: err}
}

func (e *BackendError) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := e.Code.String()
	if e.Backend != "" {
		msg = string(e.Backend) + ": " + msg
	}
	if e.Device != "" {
		msg += " (" + e.Device + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the code and the cause to errors.Is and errors.As.
func (e *BackendError) Unwrap() []error {
	if e == nil {
		return nil
	}
	if e.Err == nil {
		return []error{e.Code}
	}
	return []error{e.Code, e.Err}
}
