// Package loginsvc talks to the standalone Rahkaran login web service, which
// performs the ERP login handshake and hands back the resulting session cookies.
//
// The service is called with a form POST carrying base_url, username and
// password and answers with {"cookies": {"name": "value", ...}}.
package loginsvc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/samvad-hq/rahkaran-client/pkg/httpclient"
)

// Authenticator implements rahkaran.Authenticator on top of the login service.
type Authenticator struct {
	url    string
	client httpclient.Client
}

// New returns an Authenticator posting to serviceURL with the given timeout.
func New(serviceURL string, timeout time.Duration) *Authenticator {
	return NewWithClient(serviceURL, httpclient.NewRestyClient(timeout))
}

// NewWithClient is like New but uses the supplied transport.
func NewWithClient(serviceURL string, client httpclient.Client) *Authenticator {
	return &Authenticator{url: strings.TrimSpace(serviceURL), client: client}
}

type loginResponse struct {
	Cookies map[string]string `json:"cookies"`
	Error   string            `json:"error"`
}

// Login runs the handshake for username against the ERP at baseURL.
func (a *Authenticator) Login(ctx context.Context, baseURL, username, password string) (map[string]string, error) {
	if a == nil || a.client == nil {
		return nil, errors.New("login service is not initialized")
	}
	if a.url == "" {
		return nil, errors.New("login service url is empty")
	}

	resp, err := a.client.Do(ctx, httpclient.Request{
		Method:  http.MethodPost,
		URL:     a.url,
		Headers: map[string]string{"Accept": "application/json"},
		Form: map[string]string{
			"base_url": baseURL,
			"username": username,
			"password": password,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("login service request: %w", err)
	}

	body := resp.Body()
	var payload loginResponse
	decodeErr := json.Unmarshal(body, &payload)

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		if decodeErr == nil && payload.Error != "" {
			return nil, fmt.Errorf("login service status %d: %s", resp.StatusCode(), payload.Error)
		}
		return nil, fmt.Errorf("login service status %d: %s", resp.StatusCode(), snippet(body))
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decode login response: %w", decodeErr)
	}
	if payload.Error != "" {
		return nil, fmt.Errorf("login rejected: %s", payload.Error)
	}
	if len(payload.Cookies) == 0 {
		return nil, errors.New("login service returned no cookies")
	}
	return payload.Cookies, nil
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if s == "" {
		return "<empty>"
	}
	return httpclient.Truncate(s, 512)
}
