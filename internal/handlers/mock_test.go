package handlers_test

import (
	"context"
	"errors"
	"time"

	"github.com/serroba/short-links/internal/shortener"
)

var errMock = errors.New("mock error")

const testURL = "https://example.com"

// mockShortener is a test double for handlers.Shortener.
type mockShortener struct {
	err     error
	lastReq shortener.Request
}

func (m *mockShortener) Shorten(_ context.Context, req shortener.Request) (*shortener.ShortReference, error) {
	m.lastReq = req

	if m.err != nil {
		return nil, m.err
	}

	return &shortener.ShortReference{
		Code:      "abc123",
		ShortURL:  "http://localhost:8888/abc123",
		LongURL:   req.LongURL,
		ExpiresAt: time.Date(2026, 10, 18, 12, 30, 0, 0, time.UTC),
	}, nil
}

// mockResolver is a test double for handlers.Resolver.
type mockResolver struct {
	outcome shortener.Outcome
	err     error
}

func (m *mockResolver) Resolve(_ context.Context, _ string) (shortener.Outcome, error) {
	return m.outcome, m.err
}
