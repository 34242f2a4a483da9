package timer

import (
	"sync"
	"sync/atomic"
	"time"
)

// Resolution is how often the coarse clock is refreshed. Deadlines computed from it may
// come earlier by at most that much, which is negligible for I/O timeouts measured in
// seconds.
const Resolution = 500 * time.Millisecond

var (
	millis = new(atomic.Int64)
	start  sync.Once
)

// Now returns the coarse current time. The refreshing goroutine is started on the first call.
func Now() time.Time {
	start.Do(func() {
		millis.Store(time.Now().UnixMilli())

		go func() {
			for range time.Tick(Resolution) {
				millis.Store(time.Now().UnixMilli())
			}
		}()
	})

	return time.UnixMilli(millis.Load())
}

// After returns the deadline coming after d since now.
func After(d time.Duration) time.Time {
	return Now().Add(d)
}
