package auth

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHMACHash(t *testing.T) {
	h := NewHMAC("test-hmac-key")

	hashed := h.Hash("some-remember-token")
	assert.NotEmpty(t, hashed)
	assert.NotEqual(t, "some-remember-token", hashed)

	// Same input, same key, same hash.
	assert.Equal(t, hashed, h.Hash("some-remember-token"))

	// Different key, different hash.
	other := NewHMAC("other-key")
	assert.NotEqual(t, hashed, other.Hash("some-remember-token"))
}

// Hash is hit concurrently by every authenticated request resolving its
// session cookie, so it must be safe for parallel callers and must not
// corrupt any of their results.
func TestHMACHashConcurrent(t *testing.T) {
	h := NewHMAC("test-hmac-key")
	want := h.Hash("some-remember-token")

	const callers = 100
	results := make(chan string, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- h.Hash("some-remember-token")
		}()
	}
	wg.Wait()
	close(results)

	for got := range results {
		require.Equal(t, want, got)
	}
}
