package handlers

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/serroba/short-links/internal/shortener"
	"go.uber.org/zap"
)

//go:embed templates/form.html
var templateFS embed.FS

var formTemplate = template.Must(template.ParseFS(templateFS, "templates/form.html"))

const msgInvalidValidity = "Validity must be a whole number of minutes, at least 1."

// formView is the data rendered into the form template.
type formView struct {
	URL        string
	CustomCode string
	Validity   string
	Error      string
	ShortURL   string
	ExpiresAt  string
}

// FormHandler serves the browser form on the root path.
type FormHandler struct {
	shortener Shortener
	logger    *zap.Logger
}

// NewFormHandler creates a new form handler.
func NewFormHandler(s Shortener, logger *zap.Logger) *FormHandler {
	return &FormHandler{
		shortener: s,
		logger:    logger,
	}
}

// Show renders an empty form.
func (h *FormHandler) Show(w http.ResponseWriter, _ *http.Request) {
	h.render(w, http.StatusOK, formView{Validity: strconv.Itoa(shortener.DefaultValidityMinutes)})
}

// Submit shortens the posted URL and renders the result or the validation error inline.
func (h *FormHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, http.StatusBadRequest, formView{Error: "Could not read the form."})

		return
	}

	view := formView{
		URL:        r.PostForm.Get("url"),
		CustomCode: r.PostForm.Get("customCode"),
		Validity:   strings.TrimSpace(r.PostForm.Get("validity")),
	}

	validity, ok := parseValidity(view.Validity)
	if !ok {
		view.Error = msgInvalidValidity
		h.render(w, http.StatusBadRequest, view)

		return
	}

	ref, err := h.shortener.Shorten(r.Context(), shortener.Request{
		LongURL:         view.URL,
		CustomCode:      view.CustomCode,
		ValidityMinutes: validity,
	})
	if err != nil {
		var verr *shortener.ValidationError
		if errors.As(err, &verr) {
			view.Error = verr.Message
			h.render(w, http.StatusBadRequest, view)

			return
		}

		h.logger.Error("failed to shorten url from form", zap.Error(err))
		view.Error = "Something went wrong. Please try again."
		h.render(w, http.StatusInternalServerError, view)

		return
	}

	view.ShortURL = ref.ShortURL
	view.ExpiresAt = ref.ExpiresAt.UTC().Format(time.RFC1123)
	h.render(w, http.StatusOK, view)
}

// parseValidity returns nil for an empty field so the default applies.
func parseValidity(raw string) (*int, bool) {
	if raw == "" {
		return nil, true
	}

	minutes, err := strconv.Atoi(raw)
	if err != nil || minutes < 1 {
		return nil, false
	}

	return &minutes, true
}

func (h *FormHandler) render(w http.ResponseWriter, status int, view formView) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	if err := formTemplate.Execute(w, view); err != nil {
		h.logger.Error("failed to render form", zap.Error(err))
	}
}

// RegisterFormRoutes mounts the form on the root path.
func RegisterFormRoutes(router chi.Router, h *FormHandler) {
	router.Get("/", h.Show)
	router.Post("/", h.Submit)
}
