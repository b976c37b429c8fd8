package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/0xalexb/hjarta-field/config/fetcher/memory"
	"github.com/0xalexb/hjarta-field/document"
	"github.com/0xalexb/hjarta-field/extract"
	"github.com/0xalexb/hjarta-field/listener"
	"github.com/0xalexb/hjarta-field/listener/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// ExtractRequest is the body of POST /v1/extract.
type ExtractRequest struct {
	FileName string `json:"file_name" validate:"required,max=4096"`
	Content  string `json:"content"`
	Field    string `json:"field"`
}

// ExtractResponse is the 200 body of POST /v1/extract. Found is false when the
// path ran off the data, Output is null then.
type ExtractResponse struct {
	Output document.Value `json:"output"`
	Found  bool           `json:"found"`
}

// ErrorResponse is the body of every non 2xx answer.
type ErrorResponse struct {
	Error     string   `json:"error"`
	Stage     string   `json:"stage,omitempty"`
	Trace     []string `json:"trace,omitempty"`
	RequestID string   `json:"request_id,omitempty"`
}

// Handler serves the extraction endpoints.
type Handler struct {
	extractor *extract.Extractor
	validate  *validator.Validate
	logger    *slog.Logger
}

// NewHandler creates a Handler. A nil logger means slog.Default().
func NewHandler(extractor *extract.Extractor, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return &Handler{
		extractor: extractor,
		validate:  validate,
		logger:    logger,
	}
}

// NewRouter wires the Handler behind the standard middleware stack. cfg
// supplies the body size limit, the request deadline, the rate limit of the
// /v1 routes and the compression settings.
func NewRouter(handler *Handler, cfg listener.Config) http.Handler {
	cfg.SetDefaults()

	router := chi.NewRouter()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logging(handler.logger))

	if !cfg.DisableCompression {
		router.Use(middleware.Compress(cfg.CompressMinBytes))
	}

	router.Use(middleware.Recovery())

	router.Get("/healthz", handler.Health)

	router.Route("/v1", func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimit, cfg.RateBurst))
		r.Use(middleware.MaxRequestSize(cfg.MaxBodyBytes))
		r.Use(middleware.Timeout(cfg.WriteTimeout))

		r.Post("/extract", handler.Extract)
	})

	return router
}

// Health answers liveness probes.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	_, err := w.Write([]byte("ok"))
	if err != nil {
		h.logger.Error("failed to write health check response", "error", err)
	}
}

// Extract runs the extraction pipeline on the posted content.
func (h *Handler) Extract(w http.ResponseWriter, r *http.Request) {
	var req ExtractRequest

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	err := decoder.Decode(&req)
	if err != nil {
		if middleware.IsBodyTooLarge(err) {
			h.fail(w, r, http.StatusRequestEntityTooLarge, ErrorResponse{Error: "request body too large"})

			return
		}

		h.fail(w, r, http.StatusBadRequest, ErrorResponse{Error: "invalid request body: " + err.Error()})

		return
	}

	err = h.validate.Struct(req)
	if err != nil {
		h.fail(w, r, http.StatusBadRequest, ErrorResponse{Error: describeValidation(err)})

		return
	}

	var trace []string

	source := memory.NewFetcher(req.FileName, []byte(req.Content))
	result := h.extractor.ExecuteSource(r.Context(), source, req.Field, func(line string) {
		trace = append(trace, line)
	})

	if result.Failed() {
		h.fail(w, r, http.StatusUnprocessableEntity, ErrorResponse{
			Error: result.Error,
			Stage: string(result.Stage),
			Trace: trace,
		})

		return
	}

	h.respond(w, http.StatusOK, ExtractResponse{
		Output: result.Output,
		Found:  !result.Output.IsAbsent(),
	})
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, status int, body ErrorResponse) {
	body.RequestID = middleware.GetRequestID(r.Context())

	h.logger.Debug("sending error response",
		slog.Int("status", status),
		slog.String("error", body.Error),
		slog.String("request_id", body.RequestID))

	h.respond(w, status, body)
}

func (h *Handler) respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)

	err := encoder.Encode(body)
	if err != nil {
		h.logger.Error("failed to encode JSON response", "error", err)
	}
}

func describeValidation(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return "invalid request: " + err.Error()
	}

	problems := make([]string, 0, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		problems = append(problems, fmt.Sprintf("%s failed %q", fieldErr.Field(), fieldErr.Tag()))
	}

	return "invalid request: " + strings.Join(problems, ", ")
}
