package httpclient

import (
	"context"
	"net/http"
	"net/url"
)

// Request describes a single outbound call. JSON and Form are mutually exclusive;
// JSON wins when both are set.
type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	Query   url.Values
	Cookies map[string]string
	JSON    any
	Form    map[string]string
}

// Response is a minimal HTTP response contract.
type Response interface {
	Body() []byte
	StatusCode() int
	Header() http.Header
}

// Client abstracts HTTP calls so callers can inject mocks or different transports.
type Client interface {
	Do(ctx context.Context, req Request) (Response, error)
}
