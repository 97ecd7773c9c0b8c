package main

import "testing"

func TestParseHz(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    float64
		wantErr bool
	}{{
		"plain", "1000000", 1e6, false,
	}, {
		"kilo", "250k", 250e3, false,
	}, {
		"mega", "92.5M", 92.5e6, false,
	}, {
		"giga", "2.4G", 2.4e9, false,
	}, {
		"empty", "", 0, true,
	}, {
		"suffix only", "M", 0, true,
	}, {
		"garbage", "fast", 0, true,
	}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseHz(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseHz(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseHz(%q) = %g, want %g", tt.in, got, tt.want)
			}
		})
	}
}
