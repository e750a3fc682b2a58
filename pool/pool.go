// Package pool runs jobs on a fixed set of long-lived workers fed by one
// shared queue. The queue is unbounded: submission never blocks, sustained
// overload grows memory instead of pushing back on the submitter.
package pool

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/freekieb7/pebble/uuid"
)

// Job is a unit of work, executed exactly once by one worker.
type Job func()

var ErrClosed = errors.New("pool: closed to new jobs")

type Pool struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []Job
	closed bool
	wg     sync.WaitGroup
	logger *slog.Logger
}

// New starts size workers. Panics if size is not positive.
func New(size int, logger *slog.Logger) *Pool {
	if size <= 0 {
		panic("pool: size must be positive")
	}
	if logger == nil {
		logger = slog.Default()
	}

	p := &Pool{
		queue:  make([]Job, 0),
		logger: logger,
	}
	p.cond = sync.NewCond(&p.mu)

	for i := 0; i < size; i++ {
		w := &worker{id: uuid.NewV4(), pool: p}
		p.wg.Add(1)
		go w.run()
	}

	return p
}

// Submit queues a job for execution. It never blocks; once Close has been
// called it returns ErrClosed and the job is dropped.
func (p *Pool) Submit(job Job) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrClosed
	}

	p.queue = append(p.queue, job)
	p.cond.Signal()
	return nil
}

// Close stops intake and joins every worker. Jobs already queued are drained
// before the workers exit; Close returns only once all of them are done.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.cond.Broadcast()
	p.mu.Unlock()

	p.wg.Wait()
}

type worker struct {
	id   uuid.UUID
	pool *Pool
}

// run is the worker loop: block on the shared queue, execute, repeat. A
// panicking job takes only this worker down; the pool keeps running with
// reduced capacity and no replacement is spawned.
func (w *worker) run() {
	p := w.pool

	defer p.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("worker terminated by panicking job", "worker", w.id.String(), "panic", r)
		}
	}()

	for {
		p.mu.Lock()
		for len(p.queue) == 0 && !p.closed {
			p.cond.Wait()
		}
		if len(p.queue) == 0 {
			p.mu.Unlock()
			p.logger.Info("worker disconnected, shutting down", "worker", w.id.String())
			return
		}
		job := p.queue[0]
		p.queue = p.queue[1:]
		p.mu.Unlock()

		job()
	}
}
