package sessions

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStore_BeginAndPop(t *testing.T) {
	t.Run("pop_returns_the_pending_kind_once", func(t *testing.T) {
		store := NewStore(time.Minute)
		store.Begin(42, KindAwaitingCourierAdd)

		kind, ok := store.Pop(42)
		assert.True(t, ok)
		assert.Equal(t, KindAwaitingCourierAdd, kind)

		_, ok = store.Pop(42)
		assert.False(t, ok)
	})

	t.Run("begin_replaces_a_pending_session", func(t *testing.T) {
		store := NewStore(time.Minute)
		store.Begin(42, KindAwaitingCourierAdd)
		store.Begin(42, KindAwaitingBroadcast)

		kind, ok := store.Pop(42)
		assert.True(t, ok)
		assert.Equal(t, KindAwaitingBroadcast, kind)
	})

	t.Run("sessions_are_per_chat", func(t *testing.T) {
		store := NewStore(time.Minute)
		store.Begin(1, KindAwaitingCourierAdd)
		store.Begin(2, KindAwaitingCourierRemove)

		kind, ok := store.Pop(1)
		assert.True(t, ok)
		assert.Equal(t, KindAwaitingCourierAdd, kind)

		kind, ok = store.Pop(2)
		assert.True(t, ok)
		assert.Equal(t, KindAwaitingCourierRemove, kind)
	})

	t.Run("unknown_kind_is_not_stored", func(t *testing.T) {
		store := NewStore(time.Minute)
		store.Begin(42, KindUnknown)

		_, ok := store.Pop(42)
		assert.False(t, ok)
	})
}

func TestStore_Cancel(t *testing.T) {
	store := NewStore(time.Minute)
	store.Begin(42, KindAwaitingBroadcast)
	store.Cancel(42)

	_, ok := store.Pop(42)
	assert.False(t, ok)
}

func TestStore_Expiry(t *testing.T) {
	now := time.Now()
	store := NewStore(time.Minute)
	store.now = func() time.Time { return now }

	store.Begin(1, KindAwaitingCourierAdd)
	store.Begin(2, KindAwaitingBroadcast)

	now = now.Add(2 * time.Minute)
	store.Begin(3, KindAwaitingCourierRemove)

	t.Run("expired_session_is_absent_on_pop", func(t *testing.T) {
		_, ok := store.Pop(1)
		assert.False(t, ok)
	})

	t.Run("purge_drops_only_expired_sessions", func(t *testing.T) {
		assert.Equal(t, 1, store.PurgeExpired())

		kind, ok := store.Pop(3)
		assert.True(t, ok)
		assert.Equal(t, KindAwaitingCourierRemove, kind)
	})
}
