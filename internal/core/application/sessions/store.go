// Package sessions tracks short-lived "awaiting input" states for admin
// conversations. When an admin picks an action that needs a follow-up text
// message (adding a courier, broadcasting), the store remembers what the next
// message from that chat means until it arrives or the session expires.
package sessions

import (
	"sync"
	"time"
)

// Kind identifies what the next inbound message from a chat will be
// interpreted as.
type Kind int

const (
	// KindUnknown is the zero value and never stored.
	KindUnknown Kind = iota

	// KindAwaitingCourierAdd expects a courier handle to register.
	KindAwaitingCourierAdd

	// KindAwaitingCourierRemove expects a courier handle to remove.
	KindAwaitingCourierRemove

	// KindAwaitingBroadcast expects the text to broadcast to all couriers.
	KindAwaitingBroadcast
)

// String returns the kind name for logs.
func (k Kind) String() string {
	switch k {
	case KindAwaitingCourierAdd:
		return "awaiting_courier_add"
	case KindAwaitingCourierRemove:
		return "awaiting_courier_remove"
	case KindAwaitingBroadcast:
		return "awaiting_broadcast"
	default:
		return "unknown"
	}
}

type session struct {
	kind      Kind
	expiresAt time.Time
}

// Store holds at most one pending session per chat. Starting a new session
// replaces the previous one, so an admin can always change their mind by
// picking a different action.
type Store struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[int64]session
	now      func() time.Time
}

// NewStore creates a store whose sessions expire after ttl.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:      ttl,
		sessions: make(map[int64]session),
		now:      time.Now,
	}
}

// Begin starts a session for the chat, replacing any pending one.
func (s *Store) Begin(chatID int64, kind Kind) {
	if kind == KindUnknown {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[chatID] = session{kind: kind, expiresAt: s.now().Add(s.ttl)}
}

// Pop consumes the pending session for the chat, if any. Expired sessions
// are treated as absent.
func (s *Store) Pop(chatID int64) (Kind, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending, ok := s.sessions[chatID]
	if !ok {
		return KindUnknown, false
	}

	delete(s.sessions, chatID)
	if s.now().After(pending.expiresAt) {
		return KindUnknown, false
	}
	return pending.kind, true
}

// Cancel drops the pending session for the chat, if any.
func (s *Store) Cancel(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, chatID)
}

// PurgeExpired drops every expired session and returns how many were dropped.
func (s *Store) PurgeExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	purged := 0
	for chatID, pending := range s.sessions {
		if now.After(pending.expiresAt) {
			delete(s.sessions, chatID)
			purged++
		}
	}
	return purged
}
