package utils

import "testing"

func TestMinorUnits(t *testing.T) {
	cases := []struct {
		amount float64
		want   int64
	}{
		{0, 0},
		{1, 100},
		{5000, 500000},
		{1500.5, 150050},
		{1500.004, 150000},
		// 1500.005 is not representable in float64 and lands just below
		// the half-centavo boundary
		{1500.005, 150000},
		{0.01, 1},
		{-1500.5, -150050},
	}
	for _, c := range cases {
		if got := MinorUnits(c.amount); got != c.want {
			t.Errorf("MinorUnits(%v) = %d, want %d", c.amount, got, c.want)
		}
	}
}

func TestFormatPeso(t *testing.T) {
	cases := []struct {
		amount float64
		want   string
	}{
		{0, "₱0.00"},
		{5000, "₱5,000.00"},
		{1500.5, "₱1,500.50"},
		{1234567.89, "₱1,234,567.89"},
		{999.999, "₱1,000.00"},
		{-250, "-₱250.00"},
	}
	for _, c := range cases {
		if got := FormatPeso(c.amount); got != c.want {
			t.Errorf("FormatPeso(%v) = %q, want %q", c.amount, got, c.want)
		}
	}
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"5000", 5000},
		{"5,000.50", 5000.5},
		{"₱5,000.00", 5000},
		{" ₱1,234.56 ", 1234.56},
	}
	for _, c := range cases {
		got, err := ParseAmount(c.in)
		if err != nil {
			t.Fatalf("ParseAmount(%q) error: %v", c.in, err)
		}
		if got != c.want {
			t.Errorf("ParseAmount(%q) = %v, want %v", c.in, got, c.want)
		}
	}

	for _, bad := range []string{"", "₱", "abc"} {
		if _, err := ParseAmount(bad); err == nil {
			t.Errorf("ParseAmount(%q) expected error", bad)
		}
	}
}

func TestFormatMoney(t *testing.T) {
	if got := FormatMoney(1500.5); got != "1500.50" {
		t.Errorf("FormatMoney = %q", got)
	}
}
