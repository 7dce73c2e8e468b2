// Package credential holds the process-wide broker session token.
//
// The store only keeps state; deciding whether the token is still usable is
// the job of the token manager.
package credential

import (
	"sync"
	"time"
)

// Credential is an immutable snapshot of the session token.
//
// Token is empty iff IssuedAt is zero.
type Credential struct {
	Token    string
	IssuedAt time.Time
}

// Empty reports whether no token has been issued yet.
func (c Credential) Empty() bool {
	return c.Token == ""
}

// IssuedOn returns the calendar date the token was issued on, in loc.
// The second return value is false when the credential is empty.
func (c Credential) IssuedOn(loc *time.Location) (time.Time, bool) {
	if c.Empty() {
		return time.Time{}, false
	}
	t := c.IssuedAt.In(loc)
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc), true
}

// Store is the single owner of the current Credential.
type Store interface {
	Current() Credential
	Replace(token string, issuedAt time.Time)
}

// MemoryStore is an in-process Store guarded by a RWMutex.
type MemoryStore struct {
	mu   sync.RWMutex
	cred Credential
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Current returns a copy of the stored credential.
func (s *MemoryStore) Current() Credential {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cred
}

// Replace swaps the whole credential in one step.
// An empty token or zero issue time clears both fields.
func (s *MemoryStore) Replace(token string, issuedAt time.Time) {
	next := Credential{Token: token, IssuedAt: issuedAt}
	if token == "" || issuedAt.IsZero() {
		next = Credential{}
	}

	s.mu.Lock()
	s.cred = next
	s.mu.Unlock()
}
