package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNow(t *testing.T) {
	const (
		threshold = 200 * time.Millisecond
		// 1.5*Resolution in order to tolerate scheduling hiccups
		resolution = Resolution + Resolution/2
	)

	for range 2 * time.Second / threshold {
		require.Less(t, time.Since(Now()), resolution, "the timer is too slow")
		time.Sleep(threshold)
	}
}

func TestAfter(t *testing.T) {
	deadline := After(time.Minute)
	require.WithinDuration(t, time.Now().Add(time.Minute), deadline, 2*Resolution)
}

func BenchmarkNow(b *testing.B) {
	b.Run("time.Now()", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = time.Now().Add(5 * time.Second)
		}
	})

	b.Run("timer.After()", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = After(5 * time.Second)
		}
	})
}
