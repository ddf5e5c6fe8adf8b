package coa

import (
	"math"
	"regexp"
	"testing"
)

func TestNormalizeDate_CanonicalForms(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2024-03-15", "2024-03-15"},
		{"03/15/2024", "2024-03-15"},
		{"3/5/2024", "2024-03-05"},
		{"03-15-2024", "2024-03-15"},
		{"Mar 15, 2024", "2024-03-15"},
		{"March 15, 2024", "2024-03-15"},
		{"15 Mar 2024", "2024-03-15"},
		{"20240315", "2024-03-15"},
		{"2024-03-15T10:30:00Z", "2024-03-15"},
	}

	cfg := DefaultFormatConfig()
	for _, tc := range cases {
		got, err := cfg.NormalizeDate(tc.in)
		if err != nil {
			t.Fatalf("NormalizeDate(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("NormalizeDate(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeDate_Unparsable(t *testing.T) {
	cfg := DefaultFormatConfig()
	_, err := cfg.NormalizeDate("not a date")
	if err == nil {
		t.Fatalf("expected format error")
	}
	if KindFromError(err) != KindFormat {
		t.Fatalf("expected format kind, got %v", KindFromError(err))
	}
}

func TestFormatNumber_Thresholds(t *testing.T) {
	sciPattern := regexp.MustCompile(`^-?\d(\.\d+)?E[+-]\d+$`)

	cases := []struct {
		in   float64
		want string
		sci  bool
	}{
		{1500000, "1.5E+06", true},
		{100000, "1.0E+05", true},
		{-2500000, "-2.5E+06", true},
		{0.00005, "5.0E-05", true},
		{1234.5, "1234.5", false},
		{99999, "99999", false},
		{0.0001, "0.0001", false},
		{0, "0", false},
	}

	cfg := DefaultFormatConfig()
	for _, tc := range cases {
		got, err := cfg.FormatNumber(tc.in)
		if err != nil {
			t.Fatalf("FormatNumber(%v): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("FormatNumber(%v) = %q, want %q", tc.in, got, tc.want)
		}
		if tc.sci != sciPattern.MatchString(got) {
			t.Fatalf("FormatNumber(%v) = %q, scientific mismatch", tc.in, got)
		}
	}
}

func TestFormatNumber_NonFinite(t *testing.T) {
	cfg := DefaultFormatConfig()
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := cfg.FormatNumber(v); err == nil {
			t.Fatalf("expected format error for %v", v)
		}
	}
}

func TestFormatNumber_ConfigurableThreshold(t *testing.T) {
	cfg := FormatConfig{UpperThreshold: 1000, MantissaDigits: 2}
	got, err := cfg.FormatNumber(1500)
	if err != nil {
		t.Fatalf("FormatNumber: %v", err)
	}
	if got != "1.50E+03" {
		t.Fatalf("got %q, want 1.50E+03", got)
	}
}

func TestFormatValue(t *testing.T) {
	cfg := DefaultFormatConfig()

	cases := []struct {
		kind FieldKind
		in   string
		want string
	}{
		{FieldString, "  Electro Nano Inc.  ", "Electro Nano Inc."},
		{FieldDate, "03/15/2024", "2024-03-15"},
		{FieldNumber, "1,500,000", "1.5E+06"},
		{FieldNumber, "42.5", "42.5"},
		{FieldNumber, "< 0.01", "< 0.01"},
		{FieldNumber, "Pass", "Pass"},
		{FieldNumber, "", ""},
		{FieldDate, "", ""},
	}
	for _, tc := range cases {
		got, err := cfg.FormatValue(tc.kind, tc.in)
		if err != nil {
			t.Fatalf("FormatValue(%s, %q): %v", tc.kind, tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("FormatValue(%s, %q) = %q, want %q", tc.kind, tc.in, got, tc.want)
		}
	}
}
