// Package coa renders one-page Certificate of Analysis documents.
//
// A raw field/value map is resolved against a RecordSchema (required-field
// checks, date normalization, scientific-notation formatting) and laid out
// as a vector PDF with fixed geometry: branding header/footer images,
// customer and product info tables, a tested-properties table, a disclaimer
// block, and a version/page stamp. Rendering is deterministic and atomic;
// identical inputs produce identical bytes and no partial output is ever
// written on error.
package coa
