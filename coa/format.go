package coa

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// FormatConfig holds the formatting thresholds applied before layout.
type FormatConfig struct {
	// UpperThreshold switches magnitudes at or above it to scientific
	// notation. LowerThreshold does the same for non-zero magnitudes
	// below it.
	UpperThreshold float64
	LowerThreshold float64
	// MantissaDigits is the mantissa precision in scientific notation.
	MantissaDigits int
	// DateLayout is the canonical output layout for date fields.
	DateLayout string
}

// DefaultFormatConfig returns the production thresholds: scientific notation
// at |v| >= 1e5 or 0 < |v| < 1e-4, one mantissa digit, ISO dates.
func DefaultFormatConfig() FormatConfig {
	return FormatConfig{
		UpperThreshold: 1e5,
		LowerThreshold: 1e-4,
		MantissaDigits: 1,
		DateLayout:     "2006-01-02",
	}
}

func (c FormatConfig) withDefaults() FormatConfig {
	if c.UpperThreshold <= 0 {
		c.UpperThreshold = 1e5
	}
	if c.LowerThreshold <= 0 {
		c.LowerThreshold = 1e-4
	}
	if c.MantissaDigits <= 0 {
		c.MantissaDigits = 1
	}
	if c.DateLayout == "" {
		c.DateLayout = "2006-01-02"
	}
	return c
}

// FormatValue formats a raw value according to its field kind. String fields
// pass through trimmed; date fields are normalized; number fields that parse
// numerically get threshold formatting and otherwise pass through trimmed.
func (c FormatConfig) FormatValue(kind FieldKind, raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	switch kind {
	case FieldDate:
		if raw == "" {
			return "", nil
		}
		return c.NormalizeDate(raw)
	case FieldNumber:
		if raw == "" {
			return "", nil
		}
		value, ok := parseNumberString(raw)
		if !ok {
			return raw, nil
		}
		return c.FormatNumber(value)
	default:
		return raw, nil
	}
}

// NormalizeDate parses any unambiguous date string and re-emits it in the
// canonical layout.
func (c FormatConfig) NormalizeDate(raw string) (string, error) {
	c = c.withDefaults()
	parsed, ok := parseDateString(raw)
	if !ok {
		return "", NewError(KindFormat, fmt.Sprintf("unparsable date %q", raw), nil)
	}
	return parsed.Format(c.DateLayout), nil
}

// FormatNumber renders a float in fixed-point or scientific notation per the
// configured thresholds. Non-finite values are format errors.
func (c FormatConfig) FormatNumber(value float64) (string, error) {
	c = c.withDefaults()
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return "", NewError(KindFormat, fmt.Sprintf("non-finite number %v", value), nil)
	}

	magnitude := math.Abs(value)
	if magnitude >= c.UpperThreshold || (magnitude > 0 && magnitude < c.LowerThreshold) {
		return strconv.FormatFloat(value, 'E', c.MantissaDigits, 64), nil
	}
	return strconv.FormatFloat(value, 'f', -1, 64), nil
}

// parseNumberString parses a decimal string, tolerating thousands separators.
func parseNumberString(raw string) (float64, bool) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if cleaned == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"01/02/06",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"20060102",
}

func parseDateString(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}
