package soapy

import "testing"

func TestErrorCodeMapping(t *testing.T) {
	tests := []struct {
		code int
		want ErrorCode
	}{
		{-1, ErrTimeout},
		{-2, ErrStream},
		{-3, ErrCorruption},
		{-4, ErrOverflow},
		{-5, ErrNotSupported},
		{-6, ErrTime},
		{-7, ErrUnderflow},
		{0, ErrOther},
		{-42, ErrOther},
		{99, ErrOther},
	}
	for _, tt := range tests {
		if got := errorCode(tt.code); got != tt.want {
			t.Errorf("errorCode(%d) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestErrorString(t *testing.T) {
	err := &Error{Code: ErrTimeout, Message: "read timed out"}
	want := "soapy: timeout: read timed out"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
