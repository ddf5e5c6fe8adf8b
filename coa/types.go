package coa

import (
	"context"
	"io"
)

// FieldKind tags how a field value is formatted.
type FieldKind string

const (
	FieldString FieldKind = "string"
	FieldDate   FieldKind = "date"
	FieldNumber FieldKind = "number"
)

// FieldSpec declares one schema field.
type FieldSpec struct {
	Key      string
	Label    string
	Kind     FieldKind
	Required bool
}

// RecordSchema declares the customer and product info fields of a certificate.
type RecordSchema struct {
	Customer []FieldSpec
	Product  []FieldSpec
}

// DefaultSchema returns the production certificate schema.
func DefaultSchema() RecordSchema {
	return RecordSchema{
		Customer: []FieldSpec{
			{Key: "customerName", Label: "Customer Name", Kind: FieldString, Required: true},
			{Key: "accountNumber", Label: "Account Number", Kind: FieldString},
			{Key: "poNumber", Label: "Customer PO Number", Kind: FieldString, Required: true},
			{Key: "quoteNumber", Label: "Supplier Quote Number", Kind: FieldString},
			{Key: "orderDate", Label: "Order Date", Kind: FieldDate},
			{Key: "quantityShipped", Label: "Quantity Shipped", Kind: FieldNumber},
			{Key: "shippedDate", Label: "Shipped Date", Kind: FieldDate},
			{Key: "shippedLocation", Label: "Shipped To Location", Kind: FieldString},
		},
		Product: []FieldSpec{
			{Key: "itemName", Label: "Item Name", Kind: FieldString, Required: true},
			{Key: "itemSKU", Label: "Item SKU", Kind: FieldString, Required: true},
			{Key: "lotNumber", Label: "Lot Number", Kind: FieldString, Required: true},
			{Key: "manufacturingLocation", Label: "Manufacturing Location", Kind: FieldString},
			{Key: "manufacturingDate", Label: "Manufacturing Date", Kind: FieldDate},
			{Key: "testDate", Label: "Test Date", Kind: FieldDate},
			{Key: "expirationDate", Label: "Expiration Date", Kind: FieldDate},
			{Key: "printDate", Label: "Certificate Print Date", Kind: FieldDate},
		},
	}
}

// Field returns the spec for a key, searching both sections.
func (s RecordSchema) Field(key string) (FieldSpec, bool) {
	for _, f := range s.Customer {
		if f.Key == key {
			return f, true
		}
	}
	for _, f := range s.Product {
		if f.Key == key {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// TestedProperty is one measured characteristic of the certified lot.
type TestedProperty struct {
	Property   string
	TestMethod string
	Unit       string
	LowerLimit string
	UpperLimit string
	Result     string
}

// empty reports whether every column is blank.
func (p TestedProperty) empty() bool {
	return p.Property == "" && p.TestMethod == "" && p.Unit == "" &&
		p.LowerLimit == "" && p.UpperLimit == "" && p.Result == ""
}

// Record is a resolved certificate: formatted values keyed by schema key.
type Record struct {
	Customer map[string]string
	Product  map[string]string
	Tests    []TestedProperty
}

// Assets are the branding inputs for a render. They are read-only and may be
// shared across concurrent renders.
type Assets struct {
	HeaderImage []byte
	FooterImage []byte
	Disclaimer  string
	Version     string
}

// RenderStats captures renderer output.
type RenderStats struct {
	Pages int
	Rows  int64
	Bytes int64
}

// RenderOptions configures renderer behavior.
type RenderOptions struct {
	Layout Layout
}

// Renderer writes a resolved record to the destination.
type Renderer interface {
	Render(ctx context.Context, rec Record, assets Assets, w io.Writer, opts RenderOptions) (RenderStats, error)
}

// Logger provides logging hooks.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger is a no-op logger.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any) {}
func (NopLogger) Infof(string, ...any)  {}
func (NopLogger) Errorf(string, ...any) {}
