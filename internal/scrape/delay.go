package scrape

import (
	"context"
	"math/rand"
	"time"
)

// jitterBetween samples a randomized delay in [min, max). Delays are advisory
// throttling of the upstream API, not timeouts.
func jitterBetween(rng *rand.Rand, min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(rng.Int63n(int64(max-min)))
}

// sleep waits for d, returning early only when ctx is canceled (process
// shutdown; a running scrape is otherwise uncancellable).
func sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

func newRNG(seedOffset int64) *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano() + seedOffset))
}
