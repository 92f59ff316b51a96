package format

import "testing"

func TestAmount(t *testing.T) {
	tests := []struct {
		minor int64
		want  string
	}{
		{minor: 0, want: "0 ₽"},
		{minor: 99, want: "0 ₽"},
		{minor: 100, want: "1 ₽"},
		{minor: 150, want: "1 ₽"},
		{minor: 12345, want: "123 ₽"},
		{minor: 100000, want: "1 000 ₽"},
		{minor: 123456789, want: "1 234 567 ₽"},
		{minor: 100000000, want: "1 000 000 ₽"},
		{minor: -250000, want: "-2 500 ₽"},
	}
	for _, tc := range tests {
		if got := Amount(tc.minor); got != tc.want {
			t.Fatalf("Amount(%d) = %q, want %q", tc.minor, got, tc.want)
		}
	}
}
