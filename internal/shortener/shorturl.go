package shortener

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	// DefaultValidityMinutes is used when a request does not specify a validity window.
	DefaultValidityMinutes = 30

	millisPerMinute = int64(time.Minute / time.Millisecond)
)

// Code represents a short URL code.
type Code string

// Mapping is the persisted code -> long URL entry.
// ExpiresAt is an epoch-millisecond timestamp.
type Mapping struct {
	Code      Code
	LongURL   string
	ExpiresAt int64
}

// Expiry returns ExpiresAt as a UTC time.Time.
func (m *Mapping) Expiry() time.Time {
	return time.UnixMilli(m.ExpiresAt).UTC()
}

// ActiveAt reports whether the mapping still resolves at t.
func (m *Mapping) ActiveAt(t time.Time) bool {
	return t.UnixMilli() < m.ExpiresAt
}

// mappingRecord is the stored value. The code is the store key, so it is not repeated here.
type mappingRecord struct {
	LongURL   string `json:"longUrl"`
	ExpiresAt int64  `json:"expiresAt"`
}

// Encode serializes the mapping into the value written to the store.
func (m *Mapping) Encode() (string, error) {
	payload, err := json.Marshal(mappingRecord{
		LongURL:   m.LongURL,
		ExpiresAt: m.ExpiresAt,
	})
	if err != nil {
		return "", err
	}

	return string(payload), nil
}

// DecodeMapping parses a stored value back into a Mapping for code.
func DecodeMapping(code Code, value string) (*Mapping, error) {
	var record mappingRecord
	if err := json.Unmarshal([]byte(value), &record); err != nil {
		return nil, fmt.Errorf("decode mapping %q: %w", code, err)
	}

	if record.LongURL == "" {
		return nil, fmt.Errorf("decode mapping %q: missing longUrl", code)
	}

	return &Mapping{
		Code:      code,
		LongURL:   record.LongURL,
		ExpiresAt: record.ExpiresAt,
	}, nil
}

// ShortReference is returned to callers after a successful Shorten.
type ShortReference struct {
	Code      Code
	ShortURL  string
	LongURL   string
	ExpiresAt time.Time
}

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time {
	return f()
}

// SystemClock reads the wall clock.
var SystemClock Clock = ClockFunc(time.Now)

// OutcomeKind classifies the result of resolving a code.
type OutcomeKind int

const (
	OutcomeNotFound OutcomeKind = iota
	OutcomeRedirect
	OutcomeExpired
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeRedirect:
		return "redirect"
	case OutcomeExpired:
		return "expired"
	default:
		return "not_found"
	}
}

// Outcome is the result of Resolve. LongURL is only set for OutcomeRedirect.
type Outcome struct {
	Kind    OutcomeKind
	LongURL string
}

// Redirect builds a redirect outcome.
func Redirect(longURL string) Outcome {
	return Outcome{Kind: OutcomeRedirect, LongURL: longURL}
}

// NotFound builds a not-found outcome.
func NotFound() Outcome {
	return Outcome{Kind: OutcomeNotFound}
}

// Expired builds an expired outcome.
func Expired() Outcome {
	return Outcome{Kind: OutcomeExpired}
}
