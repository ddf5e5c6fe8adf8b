package coa

import "testing"

func TestRenderFilename(t *testing.T) {
	rec := Record{
		Customer: map[string]string{"poNumber": "PO-889"},
		Product:  map[string]string{"itemSKU": "AGNW-30", "lotNumber": "L-2024-0042"},
	}

	got, err := renderFilename("", rec)
	if err != nil {
		t.Fatalf("render filename: %v", err)
	}
	if got != "AGNW-30_L-2024-0042_PO-889.pdf" {
		t.Fatalf("unexpected filename %q", got)
	}
}

func TestRenderFilename_Fallbacks(t *testing.T) {
	got, err := renderFilename("", Record{})
	if err != nil {
		t.Fatalf("render filename: %v", err)
	}
	if got != "ITEMSKU_LOTNUMBER_CUSTOMERPO.pdf" {
		t.Fatalf("unexpected fallback filename %q", got)
	}
}

func TestRenderFilename_CustomTemplate(t *testing.T) {
	rec := Record{Product: map[string]string{"lotNumber": "L-7"}}

	got, err := renderFilename("coa_{{.Lot}}", rec)
	if err != nil {
		t.Fatalf("render filename: %v", err)
	}
	if got != "coa_L-7.pdf" {
		t.Fatalf("unexpected filename %q", got)
	}

	if _, err := renderFilename("{{.Broken", rec); err == nil {
		t.Fatalf("expected template parse error")
	}
}
