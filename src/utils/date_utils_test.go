package utils

import (
	"testing"
	"time"
)

func TestParseFlexibleDate(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"dash format", "20-02-2026", "2026-02-20", false},
		{"slash format", "20/02/2026", "2026-02-20", false},
		{"iso format", "2026-02-20", "2026-02-20", false},
		{"iso timestamp truncated to date", "2026-02-20T15:04:05", "2026-02-20", false},
		{"surrounding whitespace", "  20-02-2026  ", "2026-02-20", false},
		{"invalid calendar date", "31-02-2026", "", true},
		{"nonsense", "heç vaxt", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFlexibleDate(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseFlexibleDate(%q) succeeded, want error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFlexibleDate(%q): %v", tt.in, err)
			}
			if got.Format("2006-01-02") != tt.want {
				t.Errorf("ParseFlexibleDate(%q) = %s, want %s", tt.in, got.Format("2006-01-02"), tt.want)
			}
		})
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2026, time.February, 20, 0, 0, 0, 0, time.UTC)
	if got := FormatDate(d); got != "20-02-2026" {
		t.Errorf("FormatDate = %s, want 20-02-2026", got)
	}
}
