package publishers

import (
	"context"
	"fmt"
	"time"

	"github.com/samvad-hq/rahkaran-client/pkg/httpclient"
)

// httpPublisher posts events as JSON to a webhook. The event id doubles as
// idempotency key so receivers can drop redeliveries.
type httpPublisher struct {
	id      string
	method  string
	url     string
	headers map[string]string
	client  httpclient.Client
	log     Logger
}

func newHTTPPublisher(_ context.Context, cfg PublisherConfig, log Logger) (Publisher, error) {
	if cfg.HTTP == nil {
		return nil, fmt.Errorf("publisher %q missing http configuration", cfg.ID)
	}
	timeout := time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = defaultHTTPTimeoutSeconds * time.Second
	}
	method := cfg.HTTP.Method
	if method == "" {
		method = "POST"
	}
	return &httpPublisher{
		id:      cfg.ID,
		method:  method,
		url:     cfg.HTTP.URL,
		headers: cfg.HTTP.Headers,
		client:  httpclient.NewRestyClient(timeout),
		log:     ensureLogger(log),
	}, nil
}

func (h *httpPublisher) ID() string   { return h.id }
func (h *httpPublisher) Type() string { return TypeHTTP }

func (h *httpPublisher) Publish(ctx context.Context, evt Event) error {
	headers := make(map[string]string, len(h.headers)+2)
	for k, v := range h.headers {
		headers[k] = v
	}
	headers["Idempotency-Key"] = evt.ID
	headers["X-Rahkaran-Operation"] = evt.Operation

	resp, err := h.client.Do(ctx, httpclient.Request{
		Method:  h.method,
		URL:     h.url,
		Headers: headers,
		JSON:    evt,
	})
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	if status := resp.StatusCode(); status < 200 || status > 299 {
		h.log.WarnObj("http publisher rejected event", "publisher_http_error", map[string]any{
			"publisher_id": h.id,
			"status":       status,
		})
		return fmt.Errorf("http response status %d: %s", status, bodySnippet(resp.Body()))
	}
	return nil
}

func bodySnippet(body []byte) string {
	return httpclient.Truncate(string(body), 256)
}
