package cache

import "time"

// DefaultTTL is applied when a value is stored without an explicit TTL.
const DefaultTTL = 30 * time.Minute

// Expiration returns ttl, or fallback when ttl is not positive.
func Expiration(ttl, fallback time.Duration) time.Duration {
	if ttl > 0 {
		return ttl
	}
	if fallback > 0 {
		return fallback
	}
	return DefaultTTL
}

// Entry is a raw value held by an in-process store together with its
// absolute expiry.
type Entry struct {
	// Data is the serialized value
	Data string

	// ExpiresAt is when the entry stops being served
	ExpiresAt time.Time
}

// NewEntry creates an entry that expires ttl from now.
func NewEntry(data string, ttl time.Duration) Entry {
	return Entry{
		Data:      data,
		ExpiresAt: time.Now().Add(ttl),
	}
}

// IsExpired returns true if the entry has expired.
func (e Entry) IsExpired() bool {
	return !time.Now().Before(e.ExpiresAt)
}

// TTL returns the time until expiration.
// Returns 0 if already expired.
func (e Entry) TTL() time.Duration {
	ttl := time.Until(e.ExpiresAt)
	if ttl < 0 {
		return 0
	}
	return ttl
}
