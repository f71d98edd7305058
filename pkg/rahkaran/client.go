package rahkaran

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/samvad-hq/rahkaran-client/pkg/httpclient"
)

const (
	// DefaultTimeout bounds a single request when no transport is supplied.
	DefaultTimeout = 10 * time.Second
	// DefaultUserAgent is sent with every request unless overridden.
	DefaultUserAgent = "RahkaranGoClient/1.0"
)

// Credentials selects how the session is established. Cookies take precedence
// over Username/Password.
type Credentials struct {
	Username string
	Password string
	Cookies  map[string]string
}

// Authenticator runs the login handshake against baseURL and returns the
// session cookies.
type Authenticator interface {
	Login(ctx context.Context, baseURL, username, password string) (map[string]string, error)
}

// AuthenticatorFunc adapts a function to the Authenticator interface.
type AuthenticatorFunc func(ctx context.Context, baseURL, username, password string) (map[string]string, error)

// Login calls f.
func (f AuthenticatorFunc) Login(ctx context.Context, baseURL, username, password string) (map[string]string, error) {
	return f(ctx, baseURL, username, password)
}

// Client is the Rahkaran web services façade. It is not safe for concurrent use.
type Client struct {
	baseURL   string
	cookies   map[string]string
	http      httpclient.Client
	auth      Authenticator
	endpoints Endpoints
	timeout   time.Duration
	userAgent string
	log       Logger
}

// Option is a functional option for configuring a Client.
type Option func(*Client) error

// WithHTTPClient sets the transport used for every request.
func WithHTTPClient(hc httpclient.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return &ConfigError{Reason: "http client is nil"}
		}
		c.http = hc
		return nil
	}
}

// WithAuthenticator sets the collaborator used for username/password logins.
func WithAuthenticator(a Authenticator) Option {
	return func(c *Client) error {
		c.auth = a
		return nil
	}
}

// WithTimeout sets the request timeout of the default transport. It has no
// effect when WithHTTPClient is used.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return &ConfigError{Reason: "timeout must be positive"}
		}
		c.timeout = d
		return nil
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) error {
		if ua = strings.TrimSpace(ua); ua != "" {
			c.userAgent = ua
		}
		return nil
	}
}

// WithLogger attaches a structured logger.
func WithLogger(l Logger) Option {
	return func(c *Client) error {
		if l != nil {
			c.log = l
		}
		return nil
	}
}

// WithEndpoints replaces the service paths; blank entries keep their defaults.
func WithEndpoints(e Endpoints) Option {
	return func(c *Client) error {
		c.endpoints = e.withDefaults()
		return nil
	}
}

// New creates a Client for baseURL and establishes its session.
//
// With creds.Cookies set the cookies are used as-is and nothing is sent over
// the network. Otherwise Username and Password are handed to the configured
// Authenticator exactly once.
func New(ctx context.Context, baseURL string, creds Credentials, opts ...Option) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		return nil, &ConfigError{Reason: "base url is empty"}
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, &ConfigError{Reason: "parse base url", Err: err}
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, &ConfigError{Reason: "base url must be absolute: " + base}
	}

	c := &Client{
		baseURL:   base,
		endpoints: DefaultEndpoints(),
		timeout:   DefaultTimeout,
		userAgent: DefaultUserAgent,
		log:       NopLogger{},
	}
	for _, o := range opts {
		if err := o(c); err != nil {
			return nil, err
		}
	}
	if c.http == nil {
		c.http = httpclient.NewRestyClient(c.timeout)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	switch {
	case len(creds.Cookies) > 0:
		c.cookies = copyCookies(creds.Cookies)
		c.log.DebugObj("rahkaran session from cookies", "rahkaran_session", map[string]any{
			"base_url":     c.baseURL,
			"cookie_count": len(c.cookies),
		})
	case creds.Username != "" && creds.Password != "":
		if err := c.login(ctx, creds.Username, creds.Password); err != nil {
			return nil, err
		}
	default:
		return nil, &ConfigError{Reason: "either cookies or both username and password are required"}
	}
	return c, nil
}

// MustNew is like New but panics on error. Useful in tests and program init.
func MustNew(ctx context.Context, baseURL string, creds Credentials, opts ...Option) *Client {
	c, err := New(ctx, baseURL, creds, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Client) login(ctx context.Context, username, password string) error {
	if c.auth == nil {
		return &ConfigError{Reason: "username and password given but no authenticator configured"}
	}

	c.log.InfoObj("rahkaran login", "rahkaran_login", map[string]any{
		"base_url": c.baseURL,
		"username": username,
	})
	cookies, err := c.auth.Login(ctx, c.baseURL, username, password)
	if err != nil {
		var authErr *AuthError
		if errors.As(err, &authErr) {
			return authErr
		}
		return &AuthError{Username: username, Err: err}
	}
	if len(cookies) == 0 {
		return &AuthError{Username: username, Err: errors.New("login returned no session cookies")}
	}
	c.cookies = copyCookies(cookies)
	return nil
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Cookies returns a copy of the session cookies.
func (c *Client) Cookies() map[string]string { return copyCookies(c.cookies) }

// Endpoints returns the service paths in use.
func (c *Client) Endpoints() Endpoints { return c.endpoints }

// Call sends a request to endpoint and decodes a JSON object response. query
// and body may be nil.
func (c *Client) Call(ctx context.Context, method, endpoint string, query url.Values, body any) (Record, error) {
	resp, err := c.do(ctx, method, endpoint, query, body)
	if err != nil {
		return nil, err
	}
	rec, err := decodeRecord(resp.body)
	if err != nil {
		return nil, resp.parseError(err)
	}
	return rec, nil
}

// CallList is like Call for endpoints returning a list of objects.
func (c *Client) CallList(ctx context.Context, method, endpoint string, query url.Values, body any) (RecordSet, error) {
	resp, err := c.do(ctx, method, endpoint, query, body)
	if err != nil {
		return nil, err
	}
	set, err := decodeRecordSet(resp.body)
	if err != nil {
		return nil, resp.parseError(err)
	}
	return set, nil
}

type reply struct {
	url    string
	status int
	body   []byte
}

func (r *reply) parseError(err error) error {
	return &ParseError{URL: r.url, Status: r.status, Body: string(r.body), Err: err}
}

// do issues a single request and maps transport failures and non-2xx statuses
// to typed errors.
func (c *Client) do(ctx context.Context, method, endpoint string, query url.Values, body any) (*reply, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	target := BuildURL(c.baseURL, endpoint)
	req := httpclient.Request{
		Method: method,
		URL:    target,
		Headers: map[string]string{
			"Accept":     "application/json",
			"User-Agent": c.userAgent,
		},
		Query:   query,
		Cookies: c.cookies,
		JSON:    body,
	}

	start := time.Now()
	resp, err := c.http.Do(ctx, req)
	if err != nil {
		c.log.WarnObj("rahkaran request failed", "rahkaran_request", map[string]any{
			"method": method,
			"url":    target,
			"error":  err.Error(),
		})
		return nil, &TransportError{Method: method, URL: target, Err: err}
	}

	status := resp.StatusCode()
	c.log.DebugObj("rahkaran request completed", "rahkaran_request", map[string]any{
		"method":     method,
		"url":        target,
		"status":     status,
		"elapsed_ms": time.Since(start).Milliseconds(),
	})

	raw := resp.Body()
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		var contentType string
		if h := resp.Header(); h != nil {
			contentType = h.Get("Content-Type")
		}
		return nil, &ServerError{
			Method:  method,
			URL:     target,
			Status:  status,
			Body:    string(raw),
			Summary: summarizeBody(raw, contentType),
		}
	}
	return &reply{url: target, status: status, body: raw}, nil
}

func copyCookies(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
