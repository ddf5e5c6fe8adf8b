// Package coahttp exposes certificate generation over HTTP: a single render
// endpoint accepting either a JSON field map or a CSV/XLSX upload, answering
// with the PDF as an attachment.
package coahttp

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strings"

	errorslib "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/CBSweeney/ElectNanoCOA/coa"
	coasheet "github.com/CBSweeney/ElectNanoCOA/sources/spreadsheet"
)

// DefaultBasePath prefixes the render endpoint.
const DefaultBasePath = "/coa"

// DefaultMaxUploadBytes bounds spreadsheet uploads.
const DefaultMaxUploadBytes int64 = 8 * 1024 * 1024

// Config configures the HTTP adapter.
type Config struct {
	Service        coa.Service
	Assets         coa.Assets
	BasePath       string
	MaxUploadBytes int64
}

// Handler serves the certificate render endpoint.
type Handler struct {
	service        coa.Service
	assets         coa.Assets
	basePath       string
	maxUploadBytes int64
}

// NewHandler creates a new HTTP handler.
func NewHandler(cfg Config) *Handler {
	basePath := strings.TrimSuffix(cfg.BasePath, "/")
	if basePath == "" {
		basePath = DefaultBasePath
	}
	maxUpload := cfg.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = DefaultMaxUploadBytes
	}
	return &Handler{
		service:        cfg.Service,
		assets:         cfg.Assets,
		basePath:       basePath,
		maxUploadBytes: maxUpload,
	}
}

// RegisterRoutes registers the handler on a compatible router.
func (h *Handler) RegisterRoutes(router any) {
	switch r := router.(type) {
	case interface{ Handle(string, http.Handler) }:
		r.Handle(h.basePath+"/", h)
	case interface {
		HandleFunc(string, func(http.ResponseWriter, *http.Request))
	}:
		r.HandleFunc(h.basePath+"/", h.ServeHTTP)
	}
}

// ServeHTTP routes the render endpoint.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		writeError(w, coa.NewError(coa.KindInternal, "handler is not configured", nil))
		return
	}
	if r.URL.Path != h.basePath+"/render" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	values, err := h.readValues(r)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := h.service.Generate(r.Context(), coa.GenerateRequest{
		Values: values,
		Assets: h.assets,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	w.Header().Set("X-Request-ID", uuid.NewString())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.PDF)
}

// readValues extracts the raw field map from a JSON body or a multipart
// upload. Multipart form fields override values parsed from the file, which
// mirrors how the form pre-fills from an upload and lets the user edit.
func (h *Handler) readValues(r *http.Request) (map[string]string, error) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return nil, coa.NewError(coa.KindValidation, "invalid content type", err)
	}

	if mediaType == "multipart/form-data" {
		return h.readMultipart(r)
	}

	var body struct {
		Fields map[string]string `json:"fields"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, coa.NewError(coa.KindValidation, "invalid JSON body", err)
	}
	if len(body.Fields) == 0 {
		return nil, coa.NewError(coa.KindValidation, "request has no fields", nil)
	}
	return body.Fields, nil
}

func (h *Handler) readMultipart(r *http.Request) (map[string]string, error) {
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		return nil, coa.NewError(coa.KindValidation, "invalid multipart body", err)
	}

	values := make(map[string]string)

	file, header, err := r.FormFile("file")
	if err == nil {
		defer func() {
			_ = file.Close()
		}()
		parsed, parseErr := coasheet.Parse(header.Filename, file)
		if parseErr != nil {
			return nil, parseErr
		}
		for key, value := range parsed {
			values[key] = value
		}
	} else if !errors.Is(err, http.ErrMissingFile) {
		return nil, coa.NewError(coa.KindValidation, "invalid file upload", err)
	}

	for key, fieldValues := range r.MultipartForm.Value {
		if len(fieldValues) == 0 {
			continue
		}
		value := strings.TrimSpace(fieldValues[0])
		if value == "" {
			continue
		}
		values[key] = value
	}

	if len(values) == 0 {
		return nil, coa.NewError(coa.KindValidation, "request has no fields", nil)
	}
	return values, nil
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func writeError(w http.ResponseWriter, err error) {
	mapped := coa.AsGoError(err)
	status := statusForError(mapped)

	var body errorBody
	body.Error.Code = mapped.TextCode
	body.Error.Message = mapped.Message

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func statusForError(err *errorslib.Error) int {
	if err == nil {
		return http.StatusInternalServerError
	}
	switch err.Category {
	case errorslib.CategoryValidation:
		return http.StatusBadRequest
	case errorslib.CategoryOperation:
		if err.TextCode == "capacity" {
			return http.StatusBadRequest
		}
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}
