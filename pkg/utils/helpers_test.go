package utils

import (
	"testing"
	"time"
)

func TestParseDuration(t *testing.T) {
	def := 30 * time.Second

	tests := []struct {
		in   string
		want time.Duration
	}{
		{"", def},
		{"  ", def},
		{"nonsense", def},
		{"-5s", def},
		{"0s", def},
		{"45s", 45 * time.Second},
		{"2m", 2 * time.Minute},
	}
	for _, tt := range tests {
		if got := ParseDuration(tt.in, def); got != tt.want {
			t.Errorf("ParseDuration(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestClampInt(t *testing.T) {
	if got := ClampInt(5, 1, 10); got != 5 {
		t.Errorf("in range: got %d", got)
	}
	if got := ClampInt(-3, 1, 10); got != 1 {
		t.Errorf("below min: got %d", got)
	}
	if got := ClampInt(42, 1, 10); got != 10 {
		t.Errorf("above max: got %d", got)
	}
}

func TestDefaultInt(t *testing.T) {
	if got := DefaultInt(0, 4); got != 4 {
		t.Errorf("zero should default: got %d", got)
	}
	if got := DefaultInt(-1, 4); got != 4 {
		t.Errorf("negative should default: got %d", got)
	}
	if got := DefaultInt(7, 4); got != 7 {
		t.Errorf("positive should pass through: got %d", got)
	}
}
