package pool

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/indigo-web/minihttp/config"
	"github.com/rs/zerolog"
)

var ErrStopped = errors.New("workers pool is stopped")

// Task is an opaque unit of work. It owns every resource it was given till it returns.
type Task func()

type Stats struct {
	Executed, Panicked uint64
}

// Pool is a fixed set of persistent workers, servicing a shared bounded queue of tasks.
// A panicking task is recovered and logged, the worker keeps pulling the next ones.
type Pool struct {
	log      zerolog.Logger
	queue    chan Task
	wg       sync.WaitGroup
	mu       sync.RWMutex
	stopped  bool
	executed atomic.Uint64
	panicked atomic.Uint64
}

// New spawns cfg.Workers workers at once. Non-positive values are treated as 1, negative
// queue size as 0 (unbuffered queue, every submit waits for a free worker).
func New(cfg config.Pool, log zerolog.Logger) *Pool {
	p := &Pool{
		log:   log,
		queue: make(chan Task, max(cfg.QueueSize, 0)),
	}

	workers := max(cfg.Workers, 1)
	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}

	return p
}

// Execute enqueues the task and returns immediately, unless the queue is full. In this
// case it blocks till a slot frees. After Stop was called, ErrStopped is returned and
// the task is never run.
func (p *Pool) Execute(task Task) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.stopped {
		return ErrStopped
	}

	p.queue <- task
	return nil
}

// Stop stops accepting new tasks, waits for all the queued and in-flight ones to
// complete and joins the workers. It's safe to call it more than once.
func (p *Pool) Stop() {
	p.mu.Lock()
	if !p.stopped {
		p.stopped = true
		close(p.queue)
	}
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *Pool) Stats() Stats {
	return Stats{
		Executed: p.executed.Load(),
		Panicked: p.panicked.Load(),
	}
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	for task := range p.queue {
		p.run(id, task)
	}
}

func (p *Pool) run(id int, task Task) {
	defer func() {
		p.executed.Add(1)

		if r := recover(); r != nil {
			p.panicked.Add(1)
			p.log.Error().
				Int("worker", id).
				Interface("panic", r).
				Msg("task panicked, worker continues")
		}
	}()

	task()
}
