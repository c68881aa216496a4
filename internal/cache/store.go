package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const fileExt = ".json"

// Store errors.
var (
	ErrNotFound   = errors.New("cache entry not found")
	ErrExpired    = errors.New("cache entry expired")
	ErrInvalidKey = errors.New("cache key cannot be empty")
	ErrDisabled   = errors.New("cache is disabled")
)

// Store is a directory of JSON cache entries. It is safe for concurrent use.
type Store struct {
	dir     string
	enabled bool
	ttl     time.Duration
	now     func() time.Time

	mu sync.RWMutex
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Disabled returns a store on which every operation fails with ErrDisabled.
func Disabled() *Store {
	return &Store{now: time.Now}
}

// NewStore opens (creating if needed) a store in dir whose entries live ttlSeconds.
func NewStore(dir string, ttlSeconds int, opts ...Option) (*Store, error) {
	if dir == "" {
		return nil, errors.New("cache directory cannot be empty")
	}
	if err := ValidateTTL(ttlSeconds); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}
	s := &Store{
		dir:     dir,
		enabled: true,
		ttl:     time.Duration(ttlSeconds) * time.Second,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Key derives a stable file-safe key from the parts of a request.
func Key(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return hex.EncodeToString(sum[:])
}

// Enabled reports whether the store caches anything.
func (s *Store) Enabled() bool { return s.enabled }

// Dir returns the cache directory.
func (s *Store) Dir() string { return s.dir }

// TTL returns the entry lifetime.
func (s *Store) TTL() time.Duration { return s.ttl }

// Get returns the live entry for key. Expired entries are removed and reported as
// ErrExpired.
func (s *Store) Get(key string) (Entry, error) {
	if err := s.check(key); err != nil {
		return Entry{}, err
	}
	path := s.path(key)

	s.mu.RLock()
	data, err := os.ReadFile(path)
	s.mu.RUnlock()
	if errors.Is(err, fs.ErrNotExist) {
		return Entry{}, ErrNotFound
	}
	if err != nil {
		return Entry{}, fmt.Errorf("reading cache entry: %w", err)
	}

	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return Entry{}, fmt.Errorf("decoding cache entry: %w", err)
	}
	if e.ExpiredAt(s.now()) {
		s.mu.Lock()
		_ = os.Remove(path)
		s.mu.Unlock()
		return Entry{}, ErrExpired
	}
	return e, nil
}

// Set writes data under key, replacing any previous entry.
func (s *Store) Set(key string, data json.RawMessage) error {
	if err := s.check(key); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(newEntry(key, data, s.now(), s.ttl), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replacing cache entry: %w", err)
	}
	return nil
}

// GetJSON decodes the live entry for key into v.
func (s *Store) GetJSON(key string, v any) error {
	e, err := s.Get(key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(e.Data, v); err != nil {
		return fmt.Errorf("decoding cached value: %w", err)
	}
	return nil
}

// SetJSON encodes v and stores it under key.
func (s *Store) SetJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding cached value: %w", err)
	}
	return s.Set(key, data)
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(key string) error {
	if err := s.check(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("deleting cache entry: %w", err)
	}
	return nil
}

// Clear removes every entry and returns how many were removed.
func (s *Store) Clear() (int, error) {
	return s.sweep(func(string) bool { return true })
}

// Prune removes expired and unreadable entries and returns how many were removed.
func (s *Store) Prune() (int, error) {
	now := s.now()
	return s.sweep(func(path string) bool {
		data, err := os.ReadFile(path)
		if err != nil {
			return false
		}
		var e Entry
		if err := json.Unmarshal(data, &e); err != nil {
			return true
		}
		return e.ExpiredAt(now)
	})
}

// Stats reports the number of entries and their total size in bytes.
func (s *Store) Stats() (count int, bytes int64, err error) {
	if !s.enabled {
		return 0, 0, ErrDisabled
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	files, err := s.files()
	if err != nil {
		return 0, 0, err
	}
	for _, f := range files {
		info, infoErr := f.Info()
		if infoErr != nil {
			continue
		}
		count++
		bytes += info.Size()
	}
	return count, bytes, nil
}

func (s *Store) sweep(remove func(path string) bool) (int, error) {
	if !s.enabled {
		return 0, ErrDisabled
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	files, err := s.files()
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, f := range files {
		path := filepath.Join(s.dir, f.Name())
		if !remove(path) {
			continue
		}
		if err := os.Remove(path); err != nil {
			return removed, fmt.Errorf("removing %s: %w", f.Name(), err)
		}
		removed++
	}
	return removed, nil
}

func (s *Store) files() ([]fs.DirEntry, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("reading cache directory: %w", err)
	}
	out := entries[:0]
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == fileExt {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *Store) check(key string) error {
	if !s.enabled {
		return ErrDisabled
	}
	if key == "" {
		return ErrInvalidKey
	}
	return nil
}

func (s *Store) path(key string) string {
	r := strings.NewReplacer("/", "_", "\\", "_", ":", "_")
	return filepath.Join(s.dir, r.Replace(key)+fileExt)
}
