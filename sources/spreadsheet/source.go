// Package coasheet parses two-column (field, value) CSV and XLSX uploads
// into raw certificate values.
package coasheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/CBSweeney/ElectNanoCOA/coa"
)

// Parse dispatches on the upload's file extension.
func Parse(filename string, r io.Reader) (map[string]string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return ParseCSV(r)
	case ".xlsx", ".xls":
		return ParseXLSX(r)
	default:
		return nil, coa.NewError(coa.KindValidation,
			fmt.Sprintf("unsupported file type %q, upload CSV or Excel", filepath.Ext(filename)), nil)
	}
}

// ParseCSV reads field/value pairs from a CSV stream. A leading header row
// whose first cell is "field" is skipped; rows with a blank field or value
// are skipped.
func ParseCSV(r io.Reader) (map[string]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	values := make(map[string]string)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, coa.NewError(coa.KindValidation, "failed to parse CSV upload", err)
		}
		addRow(values, row)
	}
	return values, nil
}

// ParseXLSX reads field/value pairs from the first sheet of an XLSX stream.
func ParseXLSX(r io.Reader) (map[string]string, error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return nil, coa.NewError(coa.KindValidation, "failed to parse Excel upload", err)
	}
	defer func() {
		_ = file.Close()
	}()

	sheet := file.GetSheetName(0)
	if sheet == "" {
		return nil, coa.NewError(coa.KindValidation, "Excel upload has no sheets", nil)
	}

	rows, err := file.GetRows(sheet)
	if err != nil {
		return nil, coa.NewError(coa.KindValidation, "failed to read Excel rows", err)
	}

	values := make(map[string]string)
	for _, row := range rows {
		addRow(values, row)
	}
	return values, nil
}

func addRow(values map[string]string, row []string) {
	if len(row) < 2 {
		return
	}
	field := strings.TrimSpace(row[0])
	value := strings.TrimSpace(row[1])
	if field == "" || value == "" {
		return
	}
	if strings.EqualFold(field, "field") {
		return
	}
	values[field] = value
}
