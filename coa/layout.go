package coa

// Point-based page geometry. 72 points per inch.
const pointsPerInch = 72.0

// Layout is the fixed page geometry for a certificate. All positions are in
// points; Y anchors in the footer band are measured from the bottom edge of
// the page, matching how the printed document was tuned.
type Layout struct {
	PageWidth  float64
	PageHeight float64
	Margin     float64

	// Vertical spacing between the header image and the first section, and
	// between consecutive sections.
	HeaderGap  float64
	SectionGap float64

	SectionBarHeight float64
	InfoRowHeight    float64
	TestRowHeight    float64

	// InfoColWidths lays out the 4-column label/value info tables;
	// TestColWidths lays out property/method/unit/lower/upper/result.
	InfoColWidths []float64
	TestColWidths []float64

	BarFontSize        float64
	CellFontSize       float64
	StampFontSize      float64
	DisclaimerFontSize float64
	DisclaimerLeading  float64

	// DisclaimerY anchors the top line of the disclaimer block; StampY
	// anchors the version/page stamp baseline. Both from the bottom edge.
	DisclaimerY     float64
	StampY          float64
	StampRightInset float64

	// FooterReserve keeps the content frame clear of the disclaimer and
	// stamp band above the footer image.
	FooterReserve float64

	// MaxTestRows is the single-page capacity of the tested-properties
	// table. More rows is a capacity error, never a truncation.
	MaxTestRows int
}

// DefaultLayout reproduces the production certificate geometry: US Letter,
// 1/8" margins, and the tuned absolute footer positions.
func DefaultLayout() Layout {
	return Layout{
		PageWidth:  8.5 * pointsPerInch,
		PageHeight: 11 * pointsPerInch,
		Margin:     0.125 * pointsPerInch,

		HeaderGap:  6,
		SectionGap: 6,

		SectionBarHeight: 16,
		InfoRowHeight:    16,
		TestRowHeight:    16,

		InfoColWidths: []float64{117, 180, 117, 180},
		TestColWidths: []float64{174, 120, 60, 80, 80, 80},

		BarFontSize:        10,
		CellFontSize:       9,
		StampFontSize:      6,
		DisclaimerFontSize: 6,
		DisclaimerLeading:  8,

		DisclaimerY:     0.90 * pointsPerInch,
		StampY:          0.32 * pointsPerInch,
		StampRightInset: 0.625 * pointsPerInch,

		FooterReserve: 36,

		MaxTestRows: 8,
	}
}

// ContentWidth is the horizontal space inside the margins.
func (l Layout) ContentWidth() float64 {
	return l.PageWidth - 2*l.Margin
}

// isZero reports whether the layout was left unset.
func (l Layout) isZero() bool {
	return l.PageWidth == 0 && l.PageHeight == 0
}

// Validate checks the geometry for impossible configurations.
func (l Layout) Validate() error {
	if l.PageWidth <= 0 || l.PageHeight <= 0 {
		return NewError(KindValidation, "layout page size must be positive", nil)
	}
	if l.Margin < 0 || 2*l.Margin >= l.PageWidth || 2*l.Margin >= l.PageHeight {
		return NewError(KindValidation, "layout margins do not fit the page", nil)
	}
	if len(l.InfoColWidths) != 4 {
		return NewError(KindValidation, "layout requires 4 info column widths", nil)
	}
	if len(l.TestColWidths) != 6 {
		return NewError(KindValidation, "layout requires 6 test column widths", nil)
	}
	for _, w := range append(append([]float64{}, l.InfoColWidths...), l.TestColWidths...) {
		if w <= 0 {
			return NewError(KindValidation, "layout column widths must be positive", nil)
		}
	}
	if l.InfoRowHeight <= 0 || l.TestRowHeight <= 0 || l.SectionBarHeight <= 0 {
		return NewError(KindValidation, "layout row heights must be positive", nil)
	}
	if l.MaxTestRows <= 0 {
		return NewError(KindValidation, "layout test row capacity must be positive", nil)
	}
	return nil
}

// FitColumnWidths scales widths proportionally when their sum exceeds max;
// otherwise they are returned as-is.
func FitColumnWidths(widths []float64, max float64) []float64 {
	total := 0.0
	for _, w := range widths {
		total += w
	}
	if total <= 0 || total <= max {
		return widths
	}
	scale := max / total
	fitted := make([]float64, len(widths))
	for i, w := range widths {
		fitted[i] = w * scale
	}
	return fitted
}
