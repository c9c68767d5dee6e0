package diagnostics

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/serroba/short-links/internal/messaging"
)

// ErrSinkRejected is returned when the sink answers with a non-2xx status.
var ErrSinkRejected = errors.New("diagnostic sink rejected event")

// NewHTTPPublish returns a publish function that POSTs each event as JSON to endpoint.
func NewHTTPPublish(client *http.Client, endpoint string) messaging.Publish[Event] {
	return func(ctx context.Context, event *Event) error {
		payload, err := json.Marshal(event)
		if err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
		if err != nil {
			return err
		}

		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			return fmt.Errorf("post diagnostic event: %w", err)
		}
		defer resp.Body.Close()

		_, _ = io.Copy(io.Discard, resp.Body)

		if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
			return fmt.Errorf("%w: status %d", ErrSinkRejected, resp.StatusCode)
		}

		return nil
	}
}
