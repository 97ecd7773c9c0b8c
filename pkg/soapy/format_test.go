package soapy

import "testing"

func TestParseFormat(t *testing.T) {
	valid := []string{"CF32", "CF64", "CS16", "CS12", "CU8", "F32", "S8", "U16", "S32"}
	for _, s := range valid {
		if f, err := ParseFormat(s); err != nil || string(f) != s {
			t.Errorf("ParseFormat(%q) = %q, %v, want %q, nil", s, f, err, s)
		}
	}

	invalid := []string{"", "C", "CF", "X32", "CF32x", "32", "Cf32"}
	for _, s := range invalid {
		if _, err := ParseFormat(s); err == nil {
			t.Errorf("ParseFormat(%q) succeeded, want error", s)
		}
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		format Format
		want   int
	}{
		{FormatCF32, 8},
		{FormatCF64, 16},
		{FormatCS16, 4},
		{FormatCS8, 2},
		{FormatF32, 4},
		{FormatU8, 1},
	}
	for _, tt := range tests {
		if got := tt.format.Size(); got != tt.want {
			t.Errorf("%s.Size() = %d, want %d", tt.format, got, tt.want)
		}
	}
}
