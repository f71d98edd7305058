package rahkaran

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClientAgainstHTTPServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sg3g/"+DefaultEndpoints().RetailProducts {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		if c, err := r.Cookie("sg-auth-sg3g"); err != nil || c.Value != "token" {
			http.Error(w, "no session", http.StatusUnauthorized)
			return
		}
		if ua := r.Header.Get("User-Agent"); ua != DefaultUserAgent {
			t.Errorf("user agent = %q", ua)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body["storeId"] != float64(3) {
			t.Errorf("unexpected body %#v err=%v", body, err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id": 2, "name": "X"}]`))
	}))
	defer srv.Close()

	c, err := New(context.Background(), srv.URL+"/sg3g", Credentials{Cookies: map[string]string{"sg-auth-sg3g": "token"}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	set, err := c.GetRetailProducts(context.Background(), 3)
	if err != nil {
		t.Fatalf("GetRetailProducts: %v", err)
	}
	if len(set) != 1 || set[0]["name"] != "X" || set[0]["id"] != json.Number("2") {
		t.Fatalf("unexpected result %#v", set)
	}

	_, err = c.GetRetailShops(context.Background())
	var srvErr *ServerError
	if !errors.As(err, &srvErr) || srvErr.Status != http.StatusNotFound {
		t.Fatalf("expected 404 ServerError, got %v", err)
	}
	if srvErr.Body != "not found\n" || srvErr.Summary != "not found" {
		t.Fatalf("unexpected body %q summary %q", srvErr.Body, srvErr.Summary)
	}
}

func TestClientUnauthorizedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte("<html><head><title>403 - Forbidden: Access is denied.</title></head></html>"))
	}))
	defer srv.Close()

	c := MustNew(context.Background(), srv.URL, Credentials{Cookies: map[string]string{"expired": "1"}})
	_, err := c.GetTrackingFactors(context.Background())
	var srvErr *ServerError
	if !errors.As(err, &srvErr) {
		t.Fatalf("expected ServerError, got %v", err)
	}
	if !srvErr.Unauthorized() || srvErr.Summary != "403 - Forbidden: Access is denied." {
		t.Fatalf("unexpected error %+v", srvErr)
	}
}

func TestClientConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	addr := srv.URL
	srv.Close()

	c := MustNew(context.Background(), addr, Credentials{Cookies: map[string]string{"a": "b"}})
	_, err := c.GetRetailShops(context.Background())
	var trErr *TransportError
	if !errors.As(err, &trErr) {
		t.Fatalf("expected TransportError, got %T %v", err, err)
	}
}

func TestClientTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := MustNew(context.Background(), srv.URL, Credentials{Cookies: map[string]string{"a": "b"}},
		WithTimeout(50*time.Millisecond))
	_, err := c.GetVoucherSpecification(context.Background(), 1)
	var trErr *TransportError
	if !errors.As(err, &trErr) {
		t.Fatalf("expected TransportError, got %T %v", err, err)
	}
	if !trErr.Timeout() {
		t.Fatalf("expected timeout, got %v", trErr.Err)
	}
}
