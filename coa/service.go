package coa

import (
	"bytes"
	"context"
)

// ContentTypePDF is the media type of generated certificates.
const ContentTypePDF = "application/pdf"

// GenerateRequest carries one certificate generation request.
type GenerateRequest struct {
	// Values is the raw field/value map from the form or spreadsheet layer.
	Values map[string]string
	// Assets are the branding inputs for this render.
	Assets Assets
	// Layout overrides the default page geometry when set.
	Layout Layout
}

// GenerateResult is a finished certificate.
type GenerateResult struct {
	Filename    string
	ContentType string
	PDF         []byte
	Stats       RenderStats
}

// Service turns raw field values into downloadable certificates.
type Service interface {
	Generate(ctx context.Context, req GenerateRequest) (GenerateResult, error)
}

// ServiceConfig supplies dependencies for Service.
type ServiceConfig struct {
	Schema           RecordSchema
	Format           FormatConfig
	Renderer         Renderer
	Logger           Logger
	FilenameTemplate string
}

type service struct {
	schema           RecordSchema
	format           FormatConfig
	renderer         Renderer
	logger           Logger
	filenameTemplate string
}

// NewService creates a Service with the provided configuration.
func NewService(cfg ServiceConfig) Service {
	schema := cfg.Schema
	if len(schema.Customer) == 0 && len(schema.Product) == 0 {
		schema = DefaultSchema()
	}
	renderer := cfg.Renderer
	if renderer == nil {
		renderer = PDFRenderer{Schema: schema}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = NopLogger{}
	}
	return &service{
		schema:           schema,
		format:           cfg.Format.withDefaults(),
		renderer:         renderer,
		logger:           logger,
		filenameTemplate: cfg.FilenameTemplate,
	}
}

// Generate resolves, renders, and names one certificate. Errors are mapped
// through AsGoError so transport layers see categorized errors.
func (s *service) Generate(ctx context.Context, req GenerateRequest) (GenerateResult, error) {
	if s == nil {
		return GenerateResult{}, AsGoError(NewError(KindInternal, "service is nil", nil))
	}

	rec, err := ResolveRecord(req.Values, s.schema, s.format)
	if err != nil {
		s.logger.Debugf("coa: resolve failed: %v", err)
		return GenerateResult{}, AsGoError(err)
	}

	var buf bytes.Buffer
	stats, err := s.renderer.Render(ctx, rec, req.Assets, &buf, RenderOptions{Layout: req.Layout})
	if err != nil {
		s.logger.Errorf("coa: render failed: %v", err)
		return GenerateResult{}, AsGoError(err)
	}

	filename, err := renderFilename(s.filenameTemplate, rec)
	if err != nil {
		return GenerateResult{}, AsGoError(err)
	}

	s.logger.Infof("coa: generated %s (%d bytes, %d tested properties)", filename, stats.Bytes, stats.Rows)
	return GenerateResult{
		Filename:    filename,
		ContentType: ContentTypePDF,
		PDF:         buf.Bytes(),
		Stats:       stats,
	}, nil
}
