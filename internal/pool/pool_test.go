package pool

import (
	"bytes"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/indigo-web/minihttp/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newPool(workers, queue int) *Pool {
	return New(config.Pool{Workers: workers, QueueSize: queue}, zerolog.Nop())
}

func TestPool(t *testing.T) {
	t.Run("executes every task", func(t *testing.T) {
		p := newPool(4, 16)
		var counter atomic.Int64

		for range 100 {
			require.NoError(t, p.Execute(func() {
				counter.Add(1)
			}))
		}

		p.Stop()
		require.Equal(t, int64(100), counter.Load())
		require.Equal(t, Stats{Executed: 100}, p.Stats())
	})

	t.Run("runs in parallel", func(t *testing.T) {
		const workers = 4
		p := newPool(workers, 0)
		var started sync.WaitGroup
		started.Add(workers)
		release := make(chan struct{})

		for range workers {
			require.NoError(t, p.Execute(func() {
				started.Done()
				<-release
			}))
		}

		done := make(chan struct{})
		go func() {
			started.Wait()
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(time.Second):
			require.Fail(t, "tasks weren't run concurrently")
		}

		close(release)
		p.Stop()
	})

	t.Run("panic doesn't kill the worker", func(t *testing.T) {
		logs := new(bytes.Buffer)
		p := New(config.Pool{Workers: 1, QueueSize: 4}, zerolog.New(logs))
		var ran atomic.Bool

		require.NoError(t, p.Execute(func() {
			panic("boom")
		}))
		require.NoError(t, p.Execute(func() {
			ran.Store(true)
		}))

		p.Stop()
		require.True(t, ran.Load())
		require.Equal(t, Stats{Executed: 2, Panicked: 1}, p.Stats())
		require.Contains(t, logs.String(), "boom")
	})

	t.Run("stop drains the queue", func(t *testing.T) {
		p := newPool(1, 8)
		var counter atomic.Int64
		block := make(chan struct{})

		require.NoError(t, p.Execute(func() {
			<-block
			counter.Add(1)
		}))
		for range 5 {
			require.NoError(t, p.Execute(func() {
				counter.Add(1)
			}))
		}

		go func() {
			time.Sleep(50 * time.Millisecond)
			close(block)
		}()

		p.Stop()
		require.Equal(t, int64(6), counter.Load())
	})

	t.Run("rejects after stop", func(t *testing.T) {
		p := newPool(2, 2)
		p.Stop()
		p.Stop()

		require.ErrorIs(t, p.Execute(func() {}), ErrStopped)
	})

	t.Run("full queue blocks the submitter", func(t *testing.T) {
		p := newPool(1, 1)
		block := make(chan struct{})

		// the first one occupies the worker, the second one the queue slot
		require.NoError(t, p.Execute(func() { <-block }))
		require.NoError(t, p.Execute(func() {}))

		submitted := make(chan struct{})
		go func() {
			_ = p.Execute(func() {})
			close(submitted)
		}()

		select {
		case <-submitted:
			require.Fail(t, "submit must block while the queue is full")
		case <-time.After(50 * time.Millisecond):
		}

		close(block)

		select {
		case <-submitted:
		case <-time.After(time.Second):
			require.Fail(t, "submit didn't unblock")
		}

		p.Stop()
	})

	t.Run("zero workers are clamped", func(t *testing.T) {
		p := newPool(0, -1)
		done := make(chan struct{})
		require.NoError(t, p.Execute(func() { close(done) }))
		<-done
		p.Stop()
	})
}
