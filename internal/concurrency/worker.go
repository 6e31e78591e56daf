// File: internal/concurrency/worker.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Serial worker goroutine fed by an unbounded FIFO mailbox.

package concurrency

import (
	"context"
	"runtime/pprof"
	"sync"

	"github.com/eapache/queue"
	"github.com/rs/zerolog"

	"github.com/momentics/hioload-loops/affinity"
	"github.com/momentics/hioload-loops/api"
)

// TaskFunc is a unit of work to execute.
type TaskFunc func()

// worker runs submitted tasks one at a time, in order.
type worker struct {
	thread  api.Thread
	reactor api.Reactor // nil for portable workers
	cpu     int         // -1 when not pinned
	log     zerolog.Logger

	mu       sync.Mutex
	cond     *sync.Cond
	mailbox  *queue.Queue
	stopping bool

	done chan struct{}
}

func newWorker(thread api.Thread, reactor api.Reactor, cpu int, log zerolog.Logger) *worker {
	w := &worker{
		thread:  thread,
		reactor: reactor,
		cpu:     cpu,
		log:     log.With().Str("thread", thread.Name).Logger(),
		mailbox: queue.New(),
		done:    make(chan struct{}),
	}
	w.cond = sync.NewCond(&w.mu)
	return w
}

func (w *worker) Name() string { return w.thread.Name }
func (w *worker) Seq() int64   { return w.thread.Seq }
func (w *worker) Daemon() bool { return w.thread.Daemon }

// Submit enqueues a task, returning api.ErrGroupShutdown once stopping.
func (w *worker) Submit(task func()) error {
	if task == nil {
		return api.ErrInvalidArgument
	}
	w.mu.Lock()
	if w.stopping {
		w.mu.Unlock()
		return api.ErrGroupShutdown
	}
	w.mailbox.Add(TaskFunc(task))
	w.mu.Unlock()
	w.cond.Signal()
	return nil
}

// Pending returns tasks not yet started.
func (w *worker) Pending() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.mailbox.Length()
}

// start launches the worker goroutine, labelled with the thread name so it
// shows up in goroutine profiles. A pinned worker owns its OS thread.
func (w *worker) start(wg *sync.WaitGroup) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		if w.cpu >= 0 {
			if err := affinity.SetAffinity(w.cpu); err != nil {
				w.log.Warn().Err(err).Int("cpu", w.cpu).Msg("cpu pinning failed")
			}
		}
		pprof.Do(context.Background(), pprof.Labels("thread", w.thread.Name), func(context.Context) {
			w.run()
		})
	}()
}

// stop rejects new tasks; queued ones still run.
func (w *worker) stop() {
	w.mu.Lock()
	w.stopping = true
	w.mu.Unlock()
	w.cond.Broadcast()
}

func (w *worker) run() {
	defer close(w.done)
	defer w.closeReactor()
	for {
		w.mu.Lock()
		for w.mailbox.Length() == 0 && !w.stopping {
			w.cond.Wait()
		}
		if w.mailbox.Length() == 0 {
			w.mu.Unlock()
			return
		}
		task := w.mailbox.Remove().(TaskFunc)
		w.mu.Unlock()
		w.execute(task)
	}
}

// execute runs the task, recovering from panics to keep the worker alive.
func (w *worker) execute(task TaskFunc) {
	defer func() {
		if r := recover(); r != nil {
			w.log.Error().Interface("panic", r).Msg("task panicked")
		}
	}()
	task()
}

func (w *worker) closeReactor() {
	if w.reactor == nil {
		return
	}
	if err := w.reactor.Close(); err != nil {
		w.log.Warn().Err(err).Msg("reactor close failed")
	}
}

// nativeWorker exposes the reactor of a native worker.
type nativeWorker struct {
	*worker
}

func (w nativeWorker) Reactor() api.Reactor { return w.reactor }
