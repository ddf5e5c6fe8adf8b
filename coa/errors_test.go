package coa

import (
	"testing"

	errorslib "github.com/goliatone/go-errors"
)

func TestAsGoErrorMapping(t *testing.T) {
	cases := []struct {
		err      error
		category errorslib.Category
		code     string
	}{
		{NewError(KindValidation, "bad input", nil), errorslib.CategoryValidation, "validation"},
		{NewFieldError(KindFormat, "orderDate", "unparsable date", nil), errorslib.CategoryValidation, "format"},
		{NewFieldError(KindCapacity, "testedProperties", "table overflow", nil), errorslib.CategoryOperation, "capacity"},
		{NewError(KindInternal, "boom", nil), errorslib.CategoryInternal, "internal"},
	}

	for _, tc := range cases {
		mapped := AsGoError(tc.err)
		if mapped == nil {
			t.Fatalf("expected mapping for %v", tc.err)
		}
		if mapped.Category != tc.category {
			t.Fatalf("expected category %s, got %s", tc.category, mapped.Category)
		}
		if mapped.TextCode != tc.code {
			t.Fatalf("expected text code %s, got %s", tc.code, mapped.TextCode)
		}
	}
}

func TestErrorFieldContext(t *testing.T) {
	err := NewFieldError(KindValidation, "customerName", "required field is missing", nil)
	if got := err.Error(); got != "customerName: required field is missing" {
		t.Fatalf("unexpected message %q", got)
	}
	if FieldFromError(err) != "customerName" {
		t.Fatalf("expected field context")
	}
	if KindFromError(err) != KindValidation {
		t.Fatalf("expected validation kind")
	}
}
