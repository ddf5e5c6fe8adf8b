package coaform

import "testing"

func TestSourceValues(t *testing.T) {
	src := NewSource(map[string]string{
		"manufacturingLocation": "Plant 3",
		"customerName":          "Fallback Corp",
	})

	values := src.Values(map[string]string{
		"customerName": "  Electro Nano Inc.  ",
		"poNumber":     "PO-889",
		"quoteNumber":  "   ",
	})

	if values["customerName"] != "Electro Nano Inc." {
		t.Fatalf("expected submitted value to win, got %q", values["customerName"])
	}
	if values["manufacturingLocation"] != "Plant 3" {
		t.Fatalf("expected default to fill blank field, got %q", values["manufacturingLocation"])
	}
	if values["poNumber"] != "PO-889" {
		t.Fatalf("expected trimmed value, got %q", values["poNumber"])
	}
	if _, ok := values["quoteNumber"]; ok {
		t.Fatalf("expected blank submission without default to be dropped")
	}
}

func TestSourceValues_NoDefaults(t *testing.T) {
	values := NewSource(nil).Values(map[string]string{"lotNumber": "L-7"})
	if values["lotNumber"] != "L-7" {
		t.Fatalf("unexpected values %v", values)
	}
}
