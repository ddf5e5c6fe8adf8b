package coa

import (
	"errors"
	"testing"
)

func validValues() map[string]string {
	return map[string]string{
		"customerName": "Electro Nano Inc.",
		"poNumber":     "PO-889",
		"orderDate":    "03/15/2024",
		"itemName":     "Silver Nanowire Ink",
		"itemSKU":      "AGNW-30",
		"lotNumber":    "L-2024-0042",
		"testDate":     "2024-03-20",

		"property1":   "Concentration",
		"testMethod1": "ICP-MS",
		"unit1":       "mg/L",
		"lowerLimit1": "1,000,000",
		"upperLimit1": "2000000",
		"result1":     "1500000",

		"property2": "Purity",
		"unit2":     "%",
		"result2":   "99.9",
	}
}

func TestResolveRecord_Valid(t *testing.T) {
	rec, err := ResolveRecord(validValues(), DefaultSchema(), DefaultFormatConfig())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	if rec.Customer["orderDate"] != "2024-03-15" {
		t.Fatalf("expected normalized order date, got %q", rec.Customer["orderDate"])
	}
	if rec.Product["testDate"] != "2024-03-20" {
		t.Fatalf("expected test date pass-through, got %q", rec.Product["testDate"])
	}
	if len(rec.Tests) != 2 {
		t.Fatalf("expected 2 tested properties, got %d", len(rec.Tests))
	}
	if rec.Tests[0].Result != "1.5E+06" {
		t.Fatalf("expected scientific result, got %q", rec.Tests[0].Result)
	}
	if rec.Tests[0].LowerLimit != "1.0E+06" {
		t.Fatalf("expected scientific lower limit, got %q", rec.Tests[0].LowerLimit)
	}
	if rec.Tests[1].Result != "99.9" {
		t.Fatalf("expected fixed-point result, got %q", rec.Tests[1].Result)
	}
}

func TestResolveRecord_MissingRequiredField(t *testing.T) {
	values := validValues()
	delete(values, "customerName")

	_, err := ResolveRecord(values, DefaultSchema(), DefaultFormatConfig())
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if KindFromError(err) != KindValidation {
		t.Fatalf("expected validation kind, got %v", KindFromError(err))
	}
	if FieldFromError(err) != "customerName" {
		t.Fatalf("expected error to name customerName, got %q", FieldFromError(err))
	}
}

func TestResolveRecord_BadDateNamesField(t *testing.T) {
	values := validValues()
	values["orderDate"] = "the ides of march"

	_, err := ResolveRecord(values, DefaultSchema(), DefaultFormatConfig())
	if err == nil {
		t.Fatalf("expected format error")
	}
	var coaErr *Error
	if !errors.As(err, &coaErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if coaErr.Kind != KindFormat || coaErr.Field != "orderDate" {
		t.Fatalf("expected format error on orderDate, got %+v", coaErr)
	}
}

func TestResolveRecord_SkipsEmptyTestRows(t *testing.T) {
	values := validValues()
	// row 3 left fully blank, row 4 populated: both row 1, 2 and 4 survive
	values["property4"] = "Viscosity"
	values["result4"] = "12.5"

	rec, err := ResolveRecord(values, DefaultSchema(), DefaultFormatConfig())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(rec.Tests) != 3 {
		t.Fatalf("expected 3 tested properties, got %d", len(rec.Tests))
	}
	if rec.Tests[2].Property != "Viscosity" {
		t.Fatalf("expected sparse row to survive, got %+v", rec.Tests[2])
	}
}

func TestResolveRecord_OptionalFieldsDefaultEmpty(t *testing.T) {
	rec, err := ResolveRecord(validValues(), DefaultSchema(), DefaultFormatConfig())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got, ok := rec.Customer["accountNumber"]; !ok || got != "" {
		t.Fatalf("expected empty optional field, got %q (present=%v)", got, ok)
	}
}
