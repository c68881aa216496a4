package cache

import (
	"encoding/json"
	"time"
)

// Entry is one cached response with its expiry.
type Entry struct {
	Key       string          `json:"key"`
	Data      json.RawMessage `json:"data"`
	CreatedAt time.Time       `json:"created_at"`
	ExpiresAt time.Time       `json:"expires_at"`
}

func newEntry(key string, data json.RawMessage, now time.Time, ttl time.Duration) Entry {
	return Entry{
		Key:       key,
		Data:      data,
		CreatedAt: now.UTC().Truncate(time.Second),
		ExpiresAt: now.Add(ttl).UTC().Truncate(time.Second),
	}
}

// ExpiredAt reports whether the entry has expired at t.
func (e Entry) ExpiredAt(t time.Time) bool {
	return !t.Before(e.ExpiresAt)
}

// Age returns how old the entry is at t.
func (e Entry) Age(t time.Time) time.Duration {
	return t.Sub(e.CreatedAt)
}
