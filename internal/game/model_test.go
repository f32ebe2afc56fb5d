package game

import "testing"

func TestFormatYen(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{5, "5"},
		{500, "500"},
		{5000, "5,000"},
		{12500, "12,500"},
		{1234567, "1,234,567"},
		{-1200, "-1,200"},
		{-1234567, "-1,234,567"},
	}
	for _, tc := range tests {
		if got := FormatYen(tc.in); got != tc.want {
			t.Fatalf("FormatYen(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSignedYen(t *testing.T) {
	if got := SignedYen(1500); got != "+1,500" {
		t.Fatalf("got %q", got)
	}
	if got := SignedYen(0); got != "+0" {
		t.Fatalf("got %q", got)
	}
	if got := SignedYen(-300); got != "-300" {
		t.Fatalf("got %q", got)
	}
}
