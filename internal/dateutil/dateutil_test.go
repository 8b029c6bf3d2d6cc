package dateutil

import (
	"errors"
	"testing"

	"classboard/internal/apperr"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"canonical form", "2026-04-15", "2026-04-15", false},
		{"slash form", "2026/04/15", "2026-04-15", false},
		{"surrounding whitespace", "  2026-04-15 ", "2026-04-15", false},
		{"empty", "", "", true},
		{"garbage", "tomorrow", "", true},
		{"wrong order", "15-04-2026", "", true},
		{"impossible day", "2026-02-30", "", true},
		{"missing day", "2026-04", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Normalize(%q): expected error, got %q", tt.input, got)
				}
				if !errors.Is(err, apperr.ErrInvalidDate) {
					t.Errorf("Normalize(%q): error %v is not ErrInvalidDate", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Normalize(%q): unexpected error %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSlashKey(t *testing.T) {
	if got := SlashKey("2026-04-15"); got != "2026/04/15" {
		t.Errorf("SlashKey = %q, want 2026/04/15", got)
	}
}

func TestTodayJSTFormat(t *testing.T) {
	got := TodayJST()
	if _, err := Normalize(got); err != nil {
		t.Errorf("TodayJST returned non-canonical key %q: %v", got, err)
	}
}
