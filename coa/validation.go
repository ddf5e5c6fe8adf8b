package coa

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// testRowPrefixes are the indexed form keys that make up one tested-property
// row, e.g. property1/testMethod1/unit1/lowerLimit1/upperLimit1/result1.
var testRowPrefixes = []string{
	"property", "testMethod", "unit", "lowerLimit", "upperLimit", "result",
}

// ResolveRecord validates and formats a raw field/value map against a schema.
// Required fields must be present and non-empty; date and number fields are
// normalized through the format configuration; tested-property rows are
// assembled from their indexed keys, skipping fully empty rows.
func ResolveRecord(values map[string]string, schema RecordSchema, format FormatConfig) (Record, error) {
	format = format.withDefaults()

	customer, err := resolveSection(values, schema.Customer, format)
	if err != nil {
		return Record{}, err
	}
	product, err := resolveSection(values, schema.Product, format)
	if err != nil {
		return Record{}, err
	}
	tests, err := resolveTests(values, format)
	if err != nil {
		return Record{}, err
	}

	return Record{Customer: customer, Product: product, Tests: tests}, nil
}

func resolveSection(values map[string]string, fields []FieldSpec, format FormatConfig) (map[string]string, error) {
	section := make(map[string]string, len(fields))
	for _, field := range fields {
		raw := strings.TrimSpace(values[field.Key])
		if raw == "" {
			if field.Required {
				return nil, NewFieldError(KindValidation, field.Key, "required field is missing", nil)
			}
			section[field.Key] = ""
			continue
		}

		formatted, err := format.FormatValue(field.Kind, raw)
		if err != nil {
			return nil, fieldError(field.Key, err)
		}
		section[field.Key] = formatted
	}
	return section, nil
}

func resolveTests(values map[string]string, format FormatConfig) ([]TestedProperty, error) {
	var tests []TestedProperty
	for idx := 1; idx <= maxTestIndex(values); idx++ {
		row := TestedProperty{
			Property:   strings.TrimSpace(values["property"+strconv.Itoa(idx)]),
			TestMethod: strings.TrimSpace(values["testMethod"+strconv.Itoa(idx)]),
			Unit:       strings.TrimSpace(values["unit"+strconv.Itoa(idx)]),
			LowerLimit: strings.TrimSpace(values["lowerLimit"+strconv.Itoa(idx)]),
			UpperLimit: strings.TrimSpace(values["upperLimit"+strconv.Itoa(idx)]),
			Result:     strings.TrimSpace(values["result"+strconv.Itoa(idx)]),
		}
		if row.empty() {
			continue
		}

		var err error
		if row.LowerLimit, err = format.FormatValue(FieldNumber, row.LowerLimit); err != nil {
			return nil, fieldError("lowerLimit"+strconv.Itoa(idx), err)
		}
		if row.UpperLimit, err = format.FormatValue(FieldNumber, row.UpperLimit); err != nil {
			return nil, fieldError("upperLimit"+strconv.Itoa(idx), err)
		}
		if row.Result, err = format.FormatValue(FieldNumber, row.Result); err != nil {
			return nil, fieldError("result"+strconv.Itoa(idx), err)
		}
		tests = append(tests, row)
	}
	return tests, nil
}

// maxTestIndex finds the highest row index present in the raw values so
// sparse uploads keep their later rows.
func maxTestIndex(values map[string]string) int {
	max := 0
	for key := range values {
		for _, prefix := range testRowPrefixes {
			if !strings.HasPrefix(key, prefix) {
				continue
			}
			idx, err := strconv.Atoi(key[len(prefix):])
			if err != nil || idx <= 0 {
				continue
			}
			if idx > max {
				max = idx
			}
		}
	}
	return max
}

func fieldError(field string, err error) error {
	var coaErr *Error
	if errors.As(err, &coaErr) {
		if coaErr.Field == "" {
			return NewFieldError(coaErr.Kind, field, coaErr.Msg, coaErr.Err)
		}
		return coaErr
	}
	return NewFieldError(KindFormat, field, fmt.Sprintf("invalid value: %v", err), nil)
}
