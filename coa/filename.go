package coa

import (
	"bytes"
	"strings"
	"text/template"
)

// DefaultFilenameTemplate names downloads after the certified lot.
const DefaultFilenameTemplate = "{{.SKU}}_{{.Lot}}_{{.PO}}"

type filenameData struct {
	SKU string
	Lot string
	PO  string
}

// renderFilename builds the download filename from the record, substituting
// placeholder tokens for missing parts and enforcing the .pdf extension.
func renderFilename(tmplText string, rec Record) (string, error) {
	if tmplText == "" {
		tmplText = DefaultFilenameTemplate
	}

	data := filenameData{
		SKU: valueOr(rec.Product["itemSKU"], "ITEMSKU"),
		Lot: valueOr(rec.Product["lotNumber"], "LOTNUMBER"),
		PO:  valueOr(rec.Customer["poNumber"], "CUSTOMERPO"),
	}

	tmpl, err := template.New("filename").Parse(tmplText)
	if err != nil {
		return "", NewError(KindValidation, "invalid filename template", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", NewError(KindValidation, "invalid filename template", err)
	}

	result := strings.TrimSpace(buf.String())
	if result == "" {
		return "", NewError(KindValidation, "empty filename", nil)
	}
	if !strings.HasSuffix(strings.ToLower(result), ".pdf") {
		result += ".pdf"
	}
	return result, nil
}

func valueOr(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	return value
}
