package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

var sessionBucket = []byte("sessions")

// sessionRecord is the JSON value stored per key.
type sessionRecord struct {
	Cookies   map[string]string `json:"cookies"`
	SavedAt   time.Time         `json:"saved_at"`
	ExpiresAt time.Time         `json:"expires_at"`
}

func (r sessionRecord) live(now time.Time) bool {
	return len(r.Cookies) > 0 && now.Before(r.ExpiresAt)
}

type boltStore struct {
	db  *bolt.DB
	ttl time.Duration
	now func() time.Time
}

// openBolt opens the database file and drops sessions that expired since the last run.
func openBolt(path string, opts Options) (*boltStore, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create storage directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bbolt db: %w", err)
	}
	s := &boltStore{db: db, ttl: opts.SessionTTL, now: opts.Now}
	if err := db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(sessionBucket)
		if err != nil {
			return err
		}
		return s.purge(b)
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("init session bucket: %w", err)
	}
	return s, nil
}

func (s *boltStore) Close() error {
	return s.db.Close()
}

// LoadSession returns live cookies for key. Expired or unreadable entries are
// removed and reported as absent.
func (s *boltStore) LoadSession(key string) (map[string]string, bool, error) {
	var rec sessionRecord
	found := false
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(sessionBucket)
		raw := b.Get([]byte(key))
		if raw == nil {
			return nil
		}
		if json.Unmarshal(raw, &rec) != nil || !rec.live(s.now()) {
			return b.Delete([]byte(key))
		}
		found = true
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("load session: %w", err)
	}
	if !found {
		return nil, false, nil
	}
	return rec.Cookies, true, nil
}

// SaveSession stores cookies under key for the configured TTL.
func (s *boltStore) SaveSession(key string, cookies map[string]string) error {
	now := s.now()
	raw, err := json.Marshal(sessionRecord{Cookies: cookies, SavedAt: now.UTC(), ExpiresAt: now.Add(s.ttl).UTC()})
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(sessionBucket).Put([]byte(key), raw)
	})
}

func (s *boltStore) DeleteSession(key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(sessionBucket).Delete([]byte(key))
	})
}

// purge deletes every entry that is no longer live.
func (s *boltStore) purge(b *bolt.Bucket) error {
	now := s.now()
	var stale [][]byte
	err := b.ForEach(func(k, v []byte) error {
		var rec sessionRecord
		if json.Unmarshal(v, &rec) != nil || !rec.live(now) {
			stale = append(stale, append([]byte(nil), k...))
		}
		return nil
	})
	if err != nil {
		return err
	}
	for _, k := range stale {
		if err := b.Delete(k); err != nil {
			return err
		}
	}
	return nil
}
