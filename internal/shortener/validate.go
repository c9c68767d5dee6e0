package shortener

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidationError reports a long URL that was rejected before reaching the store.
// Message is safe to show to end users.
type ValidationError struct {
	Input   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidateURL checks that rawURL is an absolute URL with a scheme and a host.
func ValidateURL(rawURL string) error {
	if strings.TrimSpace(rawURL) == "" {
		return &ValidationError{Input: rawURL, Message: "Please enter a URL."}
	}

	u, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return &ValidationError{
			Input:   rawURL,
			Message: "Invalid URL. Please enter a full address such as https://example.com.",
			Err:     err,
		}
	}

	if u.Scheme == "" || u.Host == "" {
		return &ValidationError{
			Input:   rawURL,
			Message: "Invalid URL. Please enter a full address such as https://example.com.",
		}
	}

	return nil
}

// MaxCustomCodeLength bounds custom codes from every entry point.
const MaxCustomCodeLength = 64

const msgInvalidCode = "Custom code may only use letters, digits and the characters - _ . ~"

// ValidateCode checks that a custom code fits in a single URL path segment without escaping.
func ValidateCode(code string) error {
	if len(code) > MaxCustomCodeLength {
		return &ValidationError{
			Input:   code,
			Message: fmt.Sprintf("Custom code must be at most %d characters.", MaxCustomCodeLength),
		}
	}

	// Browsers collapse dot segments before the request is sent.
	if code == "." || code == ".." {
		return &ValidationError{Input: code, Message: msgInvalidCode}
	}

	for _, r := range code {
		if !isUnreserved(r) {
			return &ValidationError{Input: code, Message: msgInvalidCode}
		}
	}

	return nil
}

func isUnreserved(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '-', r == '_', r == '.', r == '~':
		return true
	default:
		return false
	}
}
