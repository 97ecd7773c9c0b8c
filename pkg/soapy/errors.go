package soapy

/*
#include <SoapySDR/Device.h>
#include <SoapySDR/Errors.h>
*/
import "C"

import "fmt"

// ErrorCode is a status code reported by the library. The values match the
// SOAPY_SDR_* codes from SoapySDR/Errors.h.
type ErrorCode int

const (
	// ErrTimeout is returned when a read or write times out.
	ErrTimeout ErrorCode = -1

	// ErrStream is returned for non-specific stream errors.
	ErrStream ErrorCode = -2

	// ErrCorruption is returned when a read saw data corruption,
	// for example a malformed packet from the driver.
	ErrCorruption ErrorCode = -3

	// ErrOverflow is returned when a read overflowed, for example when an
	// internal buffer filled.
	ErrOverflow ErrorCode = -4

	// ErrNotSupported is returned when a requested operation or flag is not
	// supported by the underlying implementation.
	ErrNotSupported ErrorCode = -5

	// ErrTime is returned when the device encountered a stream time that was
	// late or too early to process.
	ErrTime ErrorCode = -6

	// ErrUnderflow is returned when a write underflowed, for example when a
	// continuous stream was interrupted.
	ErrUnderflow ErrorCode = -7

	// ErrOther covers failures without a specific code; see the message.
	ErrOther ErrorCode = 0
)

func (c ErrorCode) String() string {
	switch c {
	case ErrTimeout:
		return "timeout"
	case ErrStream:
		return "stream error"
	case ErrCorruption:
		return "corruption"
	case ErrOverflow:
		return "overflow"
	case ErrNotSupported:
		return "not supported"
	case ErrTime:
		return "time error"
	case ErrUnderflow:
		return "underflow"
	default:
		return "error"
	}
}

// errorCode maps a raw library status code onto an ErrorCode.
func errorCode(code int) ErrorCode {
	switch ErrorCode(code) {
	case ErrTimeout, ErrStream, ErrCorruption, ErrOverflow,
		ErrNotSupported, ErrTime, ErrUnderflow:
		return ErrorCode(code)
	default:
		return ErrOther
	}
}

// Error combines a library status code with the library's last error string.
// All failures surface verbatim; the binding never retries or translates.
type Error struct {
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("soapy: %s: %s", e.Code, e.Message)
}

// lastError reads the error string from the library's thread-local storage.
func lastError() string {
	return C.GoString(C.SoapySDRDevice_lastError())
}

// checkError inspects the thread-local status set by the preceding library
// call, for entry points that do not return a status themselves.
func checkError() error {
	if C.SoapySDRDevice_lastStatus() == 0 {
		return nil
	}
	return &Error{Code: ErrOther, Message: lastError()}
}

// statusError converts a returned status code into an error. Zero is success.
func statusError(ret C.int) error {
	if ret == 0 {
		return nil
	}
	return &Error{Code: errorCode(int(ret)), Message: lastError()}
}

// lenResult converts a count-or-status return into (count, error).
func lenResult(ret C.int) (int, error) {
	if ret >= 0 {
		return int(ret), nil
	}
	return 0, &Error{Code: errorCode(int(ret)), Message: lastError()}
}
