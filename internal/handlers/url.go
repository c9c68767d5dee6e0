package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/short-links/internal/shortener"
	"go.uber.org/zap"
)

const (
	msgNotFound = "Short URL not found."
	msgExpired  = "This link has expired."
)

// Shortener creates short references.
type Shortener interface {
	Shorten(ctx context.Context, req shortener.Request) (*shortener.ShortReference, error)
}

// Resolver resolves short codes.
type Resolver interface {
	Resolve(ctx context.Context, code string) (shortener.Outcome, error)
}

// URLHandler handles URL shortening operations.
type URLHandler struct {
	shortener Shortener
	resolver  Resolver
	logger    *zap.Logger
}

// NewURLHandler creates a new URL handler.
func NewURLHandler(s Shortener, r Resolver, logger *zap.Logger) *URLHandler {
	return &URLHandler{
		shortener: s,
		resolver:  r,
		logger:    logger,
	}
}

func (h *URLHandler) CreateShortURL(ctx context.Context, req *CreateShortURLRequest) (*CreateShortURLResponse, error) {
	ref, err := h.shortener.Shorten(ctx, shortener.Request{
		LongURL:         req.Body.URL,
		CustomCode:      req.Body.CustomCode,
		ValidityMinutes: req.Body.ValidityMinutes,
	})
	if err != nil {
		var verr *shortener.ValidationError
		if errors.As(err, &verr) {
			return nil, huma.Error400BadRequest(verr.Message)
		}

		h.logger.Error("failed to shorten url", zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to save url")
	}

	resp := &CreateShortURLResponse{}
	resp.Location = ref.ShortURL
	resp.Body.Code = string(ref.Code)
	resp.Body.ShortURL = ref.ShortURL
	resp.Body.OriginalURL = ref.LongURL
	resp.Body.ExpiresAt = ref.ExpiresAt

	return resp, nil
}

// RedirectToURL answers 302 for live codes, 404 for unknown ones and 410 for expired ones.
func (h *URLHandler) RedirectToURL(ctx context.Context, req *RedirectRequest) (*RedirectResponse, error) {
	outcome, err := h.resolver.Resolve(ctx, req.Code)
	if err != nil {
		h.logger.Error("failed to resolve code", zap.String("code", req.Code), zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to get url")
	}

	switch outcome.Kind {
	case shortener.OutcomeRedirect:
		return &RedirectResponse{
			Status:   http.StatusFound,
			Location: outcome.LongURL,
		}, nil
	case shortener.OutcomeExpired:
		return nil, huma.Error410Gone(msgExpired)
	default:
		return nil, huma.Error404NotFound(msgNotFound)
	}
}
