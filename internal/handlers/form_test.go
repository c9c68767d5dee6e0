package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/serroba/short-links/internal/handlers"
	"github.com/serroba/short-links/internal/shortener"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func postForm(values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return req
}

func TestFormHandler_Show(t *testing.T) {
	handler := handlers.NewFormHandler(&mockShortener{}, zap.NewNop())
	w := httptest.NewRecorder()

	handler.Show(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), `name="url"`)
	assert.Contains(t, w.Body.String(), `value="30"`)
}

func TestFormHandler_Submit(t *testing.T) {
	t.Run("renders the short url", func(t *testing.T) {
		mock := &mockShortener{}
		handler := handlers.NewFormHandler(mock, zap.NewNop())
		w := httptest.NewRecorder()

		handler.Submit(w, postForm(url.Values{
			"url":        {testURL},
			"customCode": {"abc123"},
			"validity":   {"15"},
		}))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "http://localhost:8888/abc123")
		assert.Equal(t, "abc123", mock.lastReq.CustomCode)
		require.NotNil(t, mock.lastReq.ValidityMinutes)
		assert.Equal(t, 15, *mock.lastReq.ValidityMinutes)
	})

	t.Run("empty validity uses default", func(t *testing.T) {
		mock := &mockShortener{}
		handler := handlers.NewFormHandler(mock, zap.NewNop())
		w := httptest.NewRecorder()

		handler.Submit(w, postForm(url.Values{"url": {testURL}}))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Nil(t, mock.lastReq.ValidityMinutes)
	})

	t.Run("rejects non-positive validity without calling shortener", func(t *testing.T) {
		mock := &mockShortener{}
		handler := handlers.NewFormHandler(mock, zap.NewNop())

		for _, v := range []string{"0", "-5", "ten"} {
			w := httptest.NewRecorder()

			handler.Submit(w, postForm(url.Values{"url": {testURL}, "validity": {v}}))

			assert.Equal(t, http.StatusBadRequest, w.Code, "validity %q", v)
			assert.Contains(t, w.Body.String(), "Validity must be")
		}

		assert.Empty(t, mock.lastReq.LongURL)
	})

	t.Run("shows validation error inline and keeps input", func(t *testing.T) {
		srv := newTestServer(t)

		w := srv.do(postForm(url.Values{"url": {"not a url"}}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid URL")
		assert.Contains(t, w.Body.String(), `value="not a url"`)
		assert.Equal(t, 0, srv.store.Len())
	})

	t.Run("shows generic error when store fails", func(t *testing.T) {
		handler := handlers.NewFormHandler(&mockShortener{err: errMock}, zap.NewNop())
		w := httptest.NewRecorder()

		handler.Submit(w, postForm(url.Values{"url": {testURL}}))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "Something went wrong")
	})

	t.Run("form link resolves through redirect route", func(t *testing.T) {
		srv := newTestServer(t)

		w := srv.do(postForm(url.Values{"url": {"https://example.com/form"}, "customCode": {"viaform"}}))
		require.Equal(t, http.StatusOK, w.Code)

		w = srv.do(httptest.NewRequest(http.MethodGet, "/viaform", nil))
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "https://example.com/form", w.Header().Get("Location"))
	})

	t.Run("applies the same custom code rules as the api", func(t *testing.T) {
		srv := newTestServer(t)

		for _, code := range []string{strings.Repeat("x", shortener.MaxCustomCodeLength+1), "a/b", "shorten"} {
			w := srv.do(postForm(url.Values{"url": {testURL}, "customCode": {code}}))

			assert.Equal(t, http.StatusBadRequest, w.Code, "code %q", code)
			assert.Contains(t, w.Body.String(), `class="error"`)
		}

		assert.Equal(t, 0, srv.store.Len())
	})
}
