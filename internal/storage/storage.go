// Package storage keeps Rahkaran session cookies between command runs.
package storage

import (
	"fmt"
	"strings"
	"time"
)

// Store persists session cookies keyed by ERP base URL and user.
type Store interface {
	Close() error
	LoadSession(key string) (map[string]string, bool, error)
	SaveSession(key string, cookies map[string]string) error
	DeleteSession(key string) error
}

// Options tunes a concrete store. Now defaults to time.Now.
type Options struct {
	SessionTTL time.Duration
	Now        func() time.Time
}

const defaultSessionTTL = 30 * time.Minute

// NewStore opens the backend named by typ: "none" (or empty) or "bbolt".
func NewStore(typ, path string, opts Options) (Store, error) {
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = defaultSessionTTL
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	switch strings.ToLower(strings.TrimSpace(typ)) {
	case "", "none", "disabled":
		return noopStore{}, nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		s, err := openBolt(path, opts)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

// SessionKey builds the store key for a base URL and user name.
func SessionKey(baseURL, username string) string {
	return strings.TrimRight(strings.TrimSpace(baseURL), "/") + "|" + strings.TrimSpace(username)
}

type noopStore struct{}

func (noopStore) Close() error                                        { return nil }
func (noopStore) LoadSession(string) (map[string]string, bool, error) { return nil, false, nil }
func (noopStore) SaveSession(string, map[string]string) error         { return nil }
func (noopStore) DeleteSession(string) error                          { return nil }
