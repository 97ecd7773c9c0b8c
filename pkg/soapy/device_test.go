package soapy

import (
	"errors"
	"testing"
)

func TestVersionStrings(t *testing.T) {
	if v := APIVersion(); v == "" {
		t.Error("APIVersion() is empty")
	}
	if v := ABIVersion(); v == "" {
		t.Error("ABIVersion() is empty")
	}
	if v := LibVersion(); v == "" {
		t.Error("LibVersion() is empty")
	}
}

// openNull opens the library's built-in null device, which needs no
// hardware. Skips when the null factory is not registered.
func openNull(t *testing.T) *Device {
	t.Helper()
	dev, err := Open(KwArgs{"driver": "null"})
	if err != nil {
		t.Skipf("null device unavailable: %v", err)
	}
	t.Cleanup(func() { dev.Close() })
	return dev
}

func TestNullDeviceInfo(t *testing.T) {
	dev := openNull(t)

	if _, err := dev.DriverKey(); err != nil {
		t.Errorf("DriverKey: %v", err)
	}
	if _, err := dev.HardwareKey(); err != nil {
		t.Errorf("HardwareKey: %v", err)
	}
	if _, err := dev.HardwareInfo(); err != nil {
		t.Errorf("HardwareInfo: %v", err)
	}
	for _, dir := range []Direction{DirectionRx, DirectionTx} {
		if _, err := dev.NumChannels(dir); err != nil {
			t.Errorf("NumChannels(%s): %v", dir, err)
		}
	}
}

func TestEnumerate(t *testing.T) {
	// The filter restricts results; an empty system gives an empty list,
	// which is not an error.
	if _, err := Enumerate(KwArgs{"driver": "null"}); err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
}

// TestStreamSetupCoherence checks the contract of the version compat shim:
// a stream handle is returned if and only if setup reported success, never
// an error together with a handle and never success without one.
func TestStreamSetupCoherence(t *testing.T) {
	dev := openNull(t)

	st, err := dev.RxStreamCF32([]uint{0}, nil)
	if err != nil {
		if st != nil {
			t.Fatalf("RxStreamCF32 returned error %v together with a stream", err)
		}
		var serr *Error
		if !errors.As(err, &serr) {
			t.Fatalf("RxStreamCF32 error is %T, want *Error", err)
		}
		return
	}
	defer st.Close()

	if st.NumChannels() != 1 {
		t.Errorf("NumChannels() = %d, want 1", st.NumChannels())
	}
	if st.MTU() < 0 {
		t.Errorf("MTU() = %d, want >= 0", st.MTU())
	}
}
