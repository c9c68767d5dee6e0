package handlers

import (
	"time"

	"github.com/serroba/short-links/internal/diagnostics"
)

// CreateShortURLRequest is the request body for creating a short URL.
type CreateShortURLRequest struct {
	Body struct {
		URL             string `doc:"The URL to shorten"                          example:"https://example.com/very/long/path" json:"url"`
		CustomCode      string `doc:"Optional custom short code"                  example:"abc123"                             json:"customCode,omitempty"      maxLength:"64"`
		ValidityMinutes *int   `doc:"Minutes the link stays valid (default 30)" example:"30"                                 json:"validityMinutes,omitempty" minimum:"1"`
	}
}

// CreateShortURLResponse is the response for a successfully created short URL.
type CreateShortURLResponse struct {
	Location string `doc:"The short URL location" header:"Location"`
	Body     struct {
		Code        string    `doc:"The short code"                  example:"abc123"                             json:"code"`
		ShortURL    string    `doc:"The full short URL"              example:"http://localhost:8888/abc123"       json:"shortUrl"`
		OriginalURL string    `doc:"The original URL"                example:"https://example.com/very/long/path" json:"originalUrl"`
		ExpiresAt   time.Time `doc:"When the short URL stops working" json:"expiresAt"`
	}
}

// RedirectRequest is the request for redirecting a short URL.
type RedirectRequest struct {
	Code string `doc:"The short code" example:"abc123" path:"code"`
}

// RedirectResponse sends the client to the original URL.
type RedirectResponse struct {
	Status   int
	Location string `header:"Location"`
}

// IngestLogRequest carries a diagnostic event posted to the sink.
type IngestLogRequest struct {
	Body diagnostics.Event
}
