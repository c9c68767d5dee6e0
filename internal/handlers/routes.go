package handlers

import (
	"net/http"
	"sort"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers the short URL and diagnostic sink routes.
func RegisterRoutes(api huma.API, urlHandler *URLHandler, sinkHandler *LogSinkHandler) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-short-url",
		Method:        http.MethodPost,
		Path:          "/shorten",
		Summary:       "Create short URL",
		Description:   "Creates a short URL that stays valid for the requested number of minutes.",
		Tags:          []string{"URLs"},
		DefaultStatus: http.StatusCreated,
	}, urlHandler.CreateShortURL)

	huma.Register(api, huma.Operation{
		OperationID: "redirect-to-url",
		Method:      http.MethodGet,
		Path:        "/{code}",
		Summary:     "Redirect to original URL",
		Description: "Redirects to the original URL while the short code is still valid.",
		Tags:        []string{"URLs"},
		Errors:      []int{http.StatusNotFound, http.StatusGone},
	}, urlHandler.RedirectToURL)

	huma.Register(api, huma.Operation{
		OperationID:   "ingest-log",
		Method:        http.MethodPost,
		Path:          "/log",
		Summary:       "Receive diagnostic event",
		Description:   "Accepts a diagnostic event and writes it to the service log.",
		Tags:          []string{"Diagnostics"},
		DefaultStatus: http.StatusNoContent,
	}, sinkHandler.Ingest)
}

// ReservedCodes returns the first path segment of every fixed route on router.
// chi matches these before /{code}, so a short code equal to one of them could never resolve.
func ReservedCodes(router chi.Routes) ([]string, error) {
	seen := make(map[string]struct{})

	err := chi.Walk(router, func(_, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		segment, _, _ := strings.Cut(strings.TrimPrefix(route, "/"), "/")
		if segment == "" || strings.HasPrefix(segment, "{") || segment == "*" {
			return nil
		}

		seen[segment] = struct{}{}

		return nil
	})
	if err != nil {
		return nil, err
	}

	codes := make([]string, 0, len(seen))
	for code := range seen {
		codes = append(codes, code)
	}

	sort.Strings(codes)

	return codes, nil
}
