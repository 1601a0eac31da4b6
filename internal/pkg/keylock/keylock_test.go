package keylock_test

import (
	"sync"
	"testing"
	"time"

	"dispatch/internal/pkg/keylock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyedMutex_SerializesSameKey(t *testing.T) {
	locks := keylock.NewKeyedMutex()

	const goroutines = 50
	var (
		wg      sync.WaitGroup
		counter int
		inside  int
	)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			unlock := locks.Lock("482913")
			defer unlock()

			inside++
			assert.Equal(t, 1, inside, "two goroutines inside the same keyed section")
			counter++
			inside--
		}()
	}

	wg.Wait()
	assert.Equal(t, goroutines, counter)
}

func TestKeyedMutex_IndependentKeysDoNotBlock(t *testing.T) {
	locks := keylock.NewKeyedMutex()

	unlockA := locks.Lock("100001")

	done := make(chan struct{})
	go func() {
		unlockB := locks.Lock("100002")
		unlockB()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("lock on an unrelated key blocked")
	}

	unlockA()
}

func TestKeyedMutex_UnlockAllowsNextHolder(t *testing.T) {
	locks := keylock.NewKeyedMutex()

	unlock := locks.Lock("100001")
	acquired := make(chan struct{})
	go func() {
		u := locks.Lock("100001")
		close(acquired)
		u()
	}()

	select {
	case <-acquired:
		t.Fatal("second holder acquired the section while the first still holds it")
	case <-time.After(50 * time.Millisecond):
	}

	unlock()

	select {
	case <-acquired:
	case <-time.After(2 * time.Second):
		t.Fatal("second holder never acquired the section after release")
	}

	require.NotPanics(t, func() { locks.Lock("100001")() })
}
