package soapy

import (
	"reflect"
	"testing"
)

func TestParseKwArgs(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want KwArgs
	}{{
		"empty",
		"",
		KwArgs{},
	}, {
		"single",
		"driver=lime",
		KwArgs{"driver": "lime"},
	}, {
		"multiple with spaces",
		"driver=lime, serial=123456",
		KwArgs{"driver": "lime", "serial": "123456"},
	}, {
		"entry without equals ignored",
		"driver=null, garbage",
		KwArgs{"driver": "null"},
	}, {
		"value containing equals",
		"addr=127.0.0.1:1234, remote=driver=rtlsdr",
		KwArgs{"addr": "127.0.0.1:1234", "remote": "driver=rtlsdr"},
	}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseKwArgs(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseKwArgs(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestKwArgsString(t *testing.T) {
	tests := []struct {
		name string
		in   KwArgs
		want string
	}{{
		"empty",
		KwArgs{},
		"",
	}, {
		"sorted keys",
		KwArgs{"serial": "123456", "driver": "lime"},
		"driver=lime, serial=123456",
	}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestKwArgsCRoundTrip pushes kwargs across the C boundary and back, checking
// that keys and values arrive unmodified, including empty values and values
// containing '='.
func TestKwArgsCRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		args KwArgs
	}{{
		"empty",
		KwArgs{},
	}, {
		"single",
		KwArgs{"driver": "lime"},
	}, {
		"empty value",
		KwArgs{"driver": "lime", "label": ""},
	}, {
		"value containing equals",
		KwArgs{"remote": "driver=rtlsdr,serial=0"},
	}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.args.toC()
			got := kwargsFromC(&c)
			clearKwargs(&c)
			if !reflect.DeepEqual(got, tt.args) {
				t.Errorf("round trip of %v gave %v", tt.args, got)
			}
		})
	}
}

func TestKwArgsRoundTrip(t *testing.T) {
	in := KwArgs{"driver": "lime", "serial": "123456", "rx_path": "LNAW"}
	if got := ParseKwArgs(in.String()); !reflect.DeepEqual(got, in) {
		t.Errorf("round trip = %v, want %v", got, in)
	}
}
