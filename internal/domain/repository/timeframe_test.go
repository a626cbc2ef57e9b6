package repository

import "testing"

func TestIsValidTimeframe(t *testing.T) {
	cases := []struct {
		tf   Timeframe
		want bool
	}{
		{TFShort, true},
		{TFMedium, true},
		{TFLong, true},
		{Timeframe("1m"), false},
		{Timeframe(""), false},
	}
	for _, c := range cases {
		if got := IsValidTimeframe(c.tf); got != c.want {
			t.Fatalf("IsValidTimeframe(%q) = %v, want %v", c.tf, got, c.want)
		}
	}
}

func TestNormalizeTimeframe(t *testing.T) {
	if got := NormalizeTimeframe("short_term"); got != TFShort {
		t.Fatalf("expected short_term, got %q", got)
	}
	if got := NormalizeTimeframe(""); got != DefaultTimeframe() {
		t.Fatalf("expected default, got %q", got)
	}
	if got := NormalizeTimeframe("weekly"); got != DefaultTimeframe() {
		t.Fatalf("expected default for unknown, got %q", got)
	}
}
