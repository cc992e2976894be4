package httpserver

import (
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	appanalysis "github.com/bryanwahyu/contract-sentinel/internal/application/analysis"
	domain "github.com/bryanwahyu/contract-sentinel/internal/domain/analysis"
	"github.com/bryanwahyu/contract-sentinel/internal/middleware"
)

type Router struct {
	svc *appanalysis.Service
}

func NewRouter(svc *appanalysis.Service) http.Handler {
	r := &Router{svc: svc}
	mux := chi.NewRouter()

	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	mux.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.Get("/metrics", middleware.MetricsHandler)

	mux.Route("/v1/{tenant}", func(rt chi.Router) {
		rt.Post("/analyze", r.wrap(r.handleAnalyze))
		rt.Get("/analyses", r.wrap(r.handleHistory))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// badRequestError marks handler errors caused by the caller's input.
type badRequestError struct{ err error }

func (e *badRequestError) Error() string { return e.err.Error() }
func (e *badRequestError) Unwrap() error { return e.err }

func badRequest(err error) error { return &badRequestError{err: err} }

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			var br *badRequestError
			if errors.As(err, &br) {
				http.Error(w, br.Error(), http.StatusBadRequest)
				return
			}
			if errors.Is(err, sql.ErrNoRows) {
				http.Error(w, "not found", http.StatusNotFound)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

// POST /v1/{tenant}/analyze
// Body: {"text": "...", "image_base64": "...", "mode": "premium|free|demo",
//        "provider": "...", "model": "...", "api_key": "...", "confirm_fallback": bool}
// Text arrives already extracted; binary formats are the uploader's problem.
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	if err := middleware.ValidateTenantID(tenant); err != nil {
		return badRequest(err)
	}

	var body struct {
		Text            string `json:"text"`
		ImageBase64     string `json:"image_base64"`
		Mode            string `json:"mode"`
		Provider        string `json:"provider"`
		Model           string `json:"model"`
		APIKey          string `json:"api_key"`
		ConfirmFallback bool   `json:"confirm_fallback"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return badRequest(err)
	}

	if body.Mode == "" {
		body.Mode = string(domain.ModeFree)
	}
	if err := middleware.ValidateMode(body.Mode); err != nil {
		return badRequest(err)
	}
	if err := middleware.ValidateProvider(body.Provider); err != nil {
		return badRequest(err)
	}
	if err := middleware.ValidateModelName(body.Model); err != nil {
		return badRequest(err)
	}
	if err := middleware.ValidateText(body.Text); err != nil {
		return badRequest(err)
	}

	var image []byte
	if body.ImageBase64 != "" {
		decoded, err := base64.StdEncoding.DecodeString(body.ImageBase64)
		if err != nil {
			return badRequest(fmt.Errorf("invalid image_base64: %w", err))
		}
		image = decoded
	}

	if body.Text == "" && len(image) == 0 && body.Mode != string(domain.ModeDemo) {
		return badRequest(fmt.Errorf("text or image_base64 is required"))
	}

	cmd := appanalysis.Command{
		TenantID:        tenant,
		Text:            middleware.SanitizeString(body.Text),
		Image:           image,
		Mode:            domain.Mode(body.Mode),
		Provider:        body.Provider,
		Model:           body.Model,
		APIKey:          body.APIKey,
		ConfirmFallback: body.ConfirmFallback,
	}

	rep, err := r.svc.Analyze(req.Context(), cmd)
	if err != nil {
		return err
	}

	middleware.IncrementAnalyses()
	if rep.Status == domain.StatusOK && rep.Model == "" {
		middleware.IncrementAIFallbacks()
	}
	if rep.FailureClass != "" {
		middleware.IncrementAIFailures()
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(rep)
}

// GET /v1/{tenant}/analyses?page=&page_size=
func (r *Router) handleHistory(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	if err := middleware.ValidateTenantID(tenant); err != nil {
		return badRequest(err)
	}

	page, _ := strconv.Atoi(req.URL.Query().Get("page"))
	size, _ := strconv.Atoi(req.URL.Query().Get("page_size"))

	list, err := r.svc.History(req.Context(),
		tenant, middleware.ValidatePage(page), middleware.ValidatePageSize(size))
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(list)
}
