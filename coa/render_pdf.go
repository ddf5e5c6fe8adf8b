package coa

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
)

// fixedDocDate pins the PDF creation/modification metadata so identical
// inputs yield byte-identical output.
var fixedDocDate = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// PDFRenderer renders a certificate as a single-page vector PDF.
type PDFRenderer struct {
	// Schema orders and labels the info tables. Zero value uses DefaultSchema.
	Schema RecordSchema
	// DocDate overrides the pinned document metadata date.
	DocDate time.Time
}

// Render lays out the record and writes the finished PDF to w. The document
// is built in memory first; nothing reaches w unless the whole render
// succeeds.
func (r PDFRenderer) Render(ctx context.Context, rec Record, assets Assets, w io.Writer, opts RenderOptions) (RenderStats, error) {
	if err := ctx.Err(); err != nil {
		return RenderStats{}, err
	}

	layout := opts.Layout
	if layout.isZero() {
		layout = DefaultLayout()
	}
	if err := layout.Validate(); err != nil {
		return RenderStats{}, err
	}
	if len(rec.Tests) > layout.MaxTestRows {
		return RenderStats{}, NewFieldError(KindCapacity, "testedProperties",
			fmt.Sprintf("%d tested properties exceed the single-page capacity of %d", len(rec.Tests), layout.MaxTestRows), nil)
	}

	schema := r.Schema
	if len(schema.Customer) == 0 && len(schema.Product) == 0 {
		schema = DefaultSchema()
	}

	docDate := r.DocDate
	if docDate.IsZero() {
		docDate = fixedDocDate
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: layout.PageWidth, Ht: layout.PageHeight},
	})
	pdf.SetCreationDate(docDate)
	pdf.SetModificationDate(docDate)
	pdf.SetMargins(layout.Margin, layout.Margin, layout.Margin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCellMargin(5)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	cw := layout.ContentWidth()

	y := layout.Margin
	if h, err := drawImage(pdf, "header", assets.HeaderImage, layout.Margin, layout.Margin, cw); err != nil {
		return RenderStats{}, err
	} else if h > 0 {
		y += h + layout.HeaderGap
	}

	footerH := 0.0
	if assets.FooterImage != nil {
		h, err := measureImage(pdf, "footer", assets.FooterImage, cw)
		if err != nil {
			return RenderStats{}, err
		}
		if _, err := drawImage(pdf, "footer", assets.FooterImage, layout.Margin, layout.PageHeight-layout.Margin-h, cw); err != nil {
			return RenderStats{}, err
		}
		footerH = h
	}
	bottomLimit := layout.PageHeight - layout.Margin - footerH - layout.FooterReserve

	d := &pageDrawer{pdf: pdf, tr: tr, layout: layout, y: y, bottomLimit: bottomLimit}

	if err := d.infoSection("CUSTOMER INFORMATION", schema.Customer, rec.Customer); err != nil {
		return RenderStats{}, err
	}
	if err := d.infoSection("PRODUCT INFORMATION", schema.Product, rec.Product); err != nil {
		return RenderStats{}, err
	}
	if err := d.testsSection(rec.Tests); err != nil {
		return RenderStats{}, err
	}

	d.disclaimer(assets.Disclaimer)
	d.stamp(assets.Version, 1, 1)

	if pdf.Err() {
		return RenderStats{}, NewError(KindInternal, "pdf build failed", pdf.Error())
	}
	if err := ctx.Err(); err != nil {
		return RenderStats{}, err
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return RenderStats{}, NewError(KindInternal, "pdf output failed", err)
	}
	n, err := w.Write(buf.Bytes())
	if err != nil {
		return RenderStats{}, err
	}
	return RenderStats{Pages: 1, Rows: int64(len(rec.Tests)), Bytes: int64(n)}, nil
}

// pageDrawer carries the vertical cursor through the content frame.
type pageDrawer struct {
	pdf         *fpdf.Fpdf
	tr          func(string) string
	layout      Layout
	y           float64
	bottomLimit float64
}

func (d *pageDrawer) sectionBar(label string) {
	d.pdf.SetFont("Helvetica", "B", d.layout.BarFontSize)
	d.pdf.SetFillColor(0xe6, 0xe6, 0xe6)
	d.pdf.SetTextColor(0, 0, 0)
	d.pdf.SetXY(d.layout.Margin, d.y)
	d.pdf.CellFormat(d.layout.ContentWidth(), d.layout.SectionBarHeight, d.tr(label), "", 0, "L", true, 0, "")
	d.y += d.layout.SectionBarHeight
}

func (d *pageDrawer) infoSection(title string, fields []FieldSpec, values map[string]string) error {
	rows := (len(fields) + 1) / 2
	needed := d.layout.SectionBarHeight + float64(rows)*d.layout.InfoRowHeight + d.layout.SectionGap
	if d.y+needed > d.bottomLimit {
		return NewError(KindCapacity, fmt.Sprintf("%s section does not fit the page", title), nil)
	}

	d.sectionBar(title)

	widths := FitColumnWidths(d.layout.InfoColWidths, d.layout.ContentWidth())
	d.pdf.SetDrawColor(0xee, 0xee, 0xee)
	d.pdf.SetLineWidth(0.25)

	for i := 0; i < len(fields); i += 2 {
		d.pdf.SetXY(d.layout.Margin, d.y)
		d.infoCell(widths[0], fields[i].Label, true)
		d.infoCell(widths[1], values[fields[i].Key], false)
		if i+1 < len(fields) {
			d.infoCell(widths[2], fields[i+1].Label, true)
			d.infoCell(widths[3], values[fields[i+1].Key], false)
		}
		d.y += d.layout.InfoRowHeight
	}
	d.y += d.layout.SectionGap
	return nil
}

func (d *pageDrawer) infoCell(w float64, text string, bold bool) {
	style := ""
	if bold {
		style = "B"
	}
	d.pdf.SetFont("Helvetica", style, d.layout.CellFontSize)
	d.pdf.CellFormat(w, d.layout.InfoRowHeight, d.tr(text), "1", 0, "L", false, 0, "")
}

var testColumnHeaders = []string{"PROPERTY", "TEST METHOD", "UNIT", "LOWER LIMIT", "UPPER LIMIT", "RESULT"}

func (d *pageDrawer) testsSection(tests []TestedProperty) error {
	needed := d.layout.SectionBarHeight + float64(len(tests)+1)*d.layout.TestRowHeight + d.layout.SectionGap
	if d.y+needed > d.bottomLimit {
		return NewFieldError(KindCapacity, "testedProperties", "tested-properties table does not fit the page", nil)
	}

	d.sectionBar("TESTED PROPERTIES")

	widths := FitColumnWidths(d.layout.TestColWidths, d.layout.ContentWidth())
	d.pdf.SetDrawColor(0xee, 0xee, 0xee)
	d.pdf.SetLineWidth(0.25)

	d.pdf.SetFont("Helvetica", "B", d.layout.CellFontSize)
	d.pdf.SetFillColor(0xe6, 0xe6, 0xe6)
	d.pdf.SetXY(d.layout.Margin, d.y)
	for i, header := range testColumnHeaders {
		d.pdf.CellFormat(widths[i], d.layout.TestRowHeight, d.tr(header), "1", 0, "L", true, 0, "")
	}
	d.y += d.layout.TestRowHeight

	d.pdf.SetFont("Helvetica", "", d.layout.CellFontSize)
	for _, test := range tests {
		cells := []string{test.Property, test.TestMethod, test.Unit, test.LowerLimit, test.UpperLimit, test.Result}
		d.pdf.SetXY(d.layout.Margin, d.y)
		for i, cell := range cells {
			d.pdf.CellFormat(widths[i], d.layout.TestRowHeight, d.tr(cell), "1", 0, "L", false, 0, "")
		}
		d.y += d.layout.TestRowHeight
	}
	d.y += d.layout.SectionGap
	return nil
}

func (d *pageDrawer) disclaimer(text string) {
	if text == "" {
		return
	}
	d.pdf.SetFont("Helvetica", "", d.layout.DisclaimerFontSize)
	d.pdf.SetTextColor(128, 128, 128)
	top := d.layout.PageHeight - d.layout.DisclaimerY
	lines := d.pdf.SplitText(d.tr(text), d.layout.ContentWidth())
	for i, line := range lines {
		d.pdf.Text(d.layout.Margin, top+float64(i+1)*d.layout.DisclaimerLeading, line)
	}
}

func (d *pageDrawer) stamp(version string, page, total int) {
	d.pdf.SetFont("Helvetica", "", d.layout.StampFontSize)
	d.pdf.SetTextColor(128, 128, 128)
	text := d.tr(fmt.Sprintf("v%s — Page %d/%d", version, page, total))
	x := d.layout.PageWidth - d.layout.StampRightInset - d.pdf.GetStringWidth(text)
	d.pdf.Text(x, d.layout.PageHeight-d.layout.StampY, text)
}

// drawImage registers raw image bytes and draws them left-anchored at (x, y),
// downscaled to maxWidth when wider. It returns the drawn height.
func drawImage(pdf *fpdf.Fpdf, name string, data []byte, x, y, maxWidth float64) (float64, error) {
	if data == nil {
		return 0, nil
	}
	info, err := registerImage(pdf, name, data)
	if err != nil {
		return 0, err
	}
	w, h := scaledImageSize(info, maxWidth)
	pdf.ImageOptions(name, x, y, w, h, false, fpdf.ImageOptions{}, 0, "")
	return h, nil
}

func measureImage(pdf *fpdf.Fpdf, name string, data []byte, maxWidth float64) (float64, error) {
	info, err := registerImage(pdf, name, data)
	if err != nil {
		return 0, err
	}
	_, h := scaledImageSize(info, maxWidth)
	return h, nil
}

func registerImage(pdf *fpdf.Fpdf, name string, data []byte) (*fpdf.ImageInfoType, error) {
	imageType := sniffImageType(data)
	if imageType == "" {
		return nil, NewFieldError(KindValidation, name, "unsupported image format", nil)
	}
	info := pdf.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: imageType}, bytes.NewReader(data))
	if pdf.Err() {
		err := pdf.Error()
		return nil, NewFieldError(KindValidation, name, "unreadable image", err)
	}
	return info, nil
}

func scaledImageSize(info *fpdf.ImageInfoType, maxWidth float64) (w, h float64) {
	w, h = info.Width(), info.Height()
	if w <= maxWidth {
		return w, h
	}
	scale := maxWidth / w
	return maxWidth, h * scale
}

func sniffImageType(data []byte) string {
	switch {
	case len(data) >= 4 && data[0] == 0x89 && data[1] == 'P' && data[2] == 'N' && data[3] == 'G':
		return "PNG"
	case len(data) >= 2 && data[0] == 0xff && data[1] == 0xd8:
		return "JPG"
	case len(data) >= 4 && string(data[:4]) == "GIF8":
		return "GIF"
	default:
		return ""
	}
}
