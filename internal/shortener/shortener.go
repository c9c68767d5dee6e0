package shortener

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/serroba/short-links/internal/diagnostics"
	"github.com/serroba/short-links/internal/store"
)

// Diagnostic package names used by this package.
const (
	PackageShortener = "shortener"
	PackageResolver  = "resolver"
)

const (
	maxGenerateAttempts = 8
	msgReservedCode     = "This short code is reserved. Please choose another."
)

// ErrCodeSpaceExhausted is returned when the generator keeps producing reserved codes.
var ErrCodeSpaceExhausted = errors.New("generator produced only reserved codes")

// Request is the input to Shorten. A nil ValidityMinutes means DefaultValidityMinutes.
type Request struct {
	LongURL         string
	CustomCode      string
	ValidityMinutes *int
}

// Shortener validates long URLs and writes code mappings to the shared store.
type Shortener struct {
	store        store.Store
	generateCode CodeGenerator
	clock        Clock
	baseURL      string
	diag         diagnostics.Logger
	reserved     map[Code]struct{}
}

// NewShortener creates a Shortener. baseURL is joined with the code to build the short URL.
func NewShortener(
	s store.Store,
	generator CodeGenerator,
	clock Clock,
	baseURL string,
	diag diagnostics.Logger,
) *Shortener {
	return &Shortener{
		store:        s,
		generateCode: generator,
		clock:        clock,
		baseURL:      strings.TrimRight(baseURL, "/"),
		diag:         diag,
		reserved:     make(map[Code]struct{}),
	}
}

// Reserve marks codes that must never be stored, such as paths served by other routes.
// It is not safe to call concurrently with Shorten.
func (s *Shortener) Reserve(codes ...string) {
	for _, c := range codes {
		s.reserved[Code(c)] = struct{}{}
	}
}

// IsReserved reports whether code was passed to Reserve.
func (s *Shortener) IsReserved(code Code) bool {
	_, ok := s.reserved[code]

	return ok
}

// Shorten stores a mapping for req and returns the short reference.
// A *ValidationError means nothing was written. Existing mappings with the same code are overwritten.
func (s *Shortener) Shorten(ctx context.Context, req Request) (*ShortReference, error) {
	if err := ValidateURL(req.LongURL); err != nil {
		s.diag.Log(diagnostics.LevelWarn, PackageShortener, "rejected invalid url: "+req.LongURL)

		return nil, err
	}

	code, err := s.chooseCode(strings.TrimSpace(req.CustomCode))
	if err != nil {
		return nil, err
	}

	validity := DefaultValidityMinutes
	if req.ValidityMinutes != nil {
		validity = *req.ValidityMinutes
	}

	mapping := &Mapping{
		Code:      code,
		LongURL:   req.LongURL,
		ExpiresAt: s.clock.Now().UnixMilli() + int64(validity)*millisPerMinute,
	}

	value, err := mapping.Encode()
	if err != nil {
		return nil, err
	}

	if err := s.store.Set(ctx, string(code), value); err != nil {
		s.diag.Log(diagnostics.LevelError, PackageShortener, "failed to save mapping for code "+string(code))

		return nil, fmt.Errorf("save mapping %q: %w", code, err)
	}

	s.diag.Log(diagnostics.LevelInfo, PackageShortener,
		fmt.Sprintf("short link %s created, valid for %d minutes", code, validity))

	return &ShortReference{
		Code:      code,
		ShortURL:  s.baseURL + "/" + url.PathEscape(string(code)),
		LongURL:   mapping.LongURL,
		ExpiresAt: mapping.Expiry(),
	}, nil
}

// chooseCode validates a custom code or draws a generated one that is not reserved.
func (s *Shortener) chooseCode(custom string) (Code, error) {
	if custom != "" {
		if err := ValidateCode(custom); err != nil {
			s.diag.Log(diagnostics.LevelWarn, PackageShortener, "rejected invalid custom code: "+custom)

			return "", err
		}

		if s.IsReserved(Code(custom)) {
			s.diag.Log(diagnostics.LevelWarn, PackageShortener, "rejected reserved custom code: "+custom)

			return "", &ValidationError{Input: custom, Message: msgReservedCode}
		}

		return Code(custom), nil
	}

	for range maxGenerateAttempts {
		if code := Code(s.generateCode()); !s.IsReserved(code) {
			return code, nil
		}
	}

	s.diag.Log(diagnostics.LevelError, PackageShortener, ErrCodeSpaceExhausted.Error())

	return "", ErrCodeSpaceExhausted
}
