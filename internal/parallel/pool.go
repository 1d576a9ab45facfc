// Package parallel runs per-pixel frame transforms across a persistent pool
// of worker goroutines.
//
// A frame is split into horizontal row bands. Every band of a stage is
// submitted to the pool and ExecuteAll returns only after all of them have
// finished, which is the full-grid barrier between consecutive stages.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool is a pool of goroutines for parallel frame processing.
//
// The pool distributes work items across multiple workers, each with their own
// queue. Workers steal work from other workers when their own queue is empty,
// which balances bands whose pixels take different paths through a kernel.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	// workers is the number of worker goroutines.
	workers int

	// workQueues holds per-worker work queues.
	workQueues []chan func()

	// done signals workers to stop.
	done chan struct{}

	// wg waits for all workers to finish.
	wg sync.WaitGroup

	// running indicates whether the pool is accepting work.
	running atomic.Bool

	// submitMu is held for reading while ExecuteAll enqueues and for writing
	// while Close stops the workers, so no item lands in a queue nobody
	// drains.
	submitMu sync.RWMutex
}

// NewWorkerPool creates a new worker pool with the specified number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := max(workers*4, 8)

	p := &WorkerPool{
		workers:    workers,
		workQueues: make([]chan func(), workers),
		done:       make(chan struct{}),
	}
	for i := range workers {
		p.workQueues[i] = make(chan func(), queueSize)
	}

	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}

	return p
}

// worker is the main loop for each worker goroutine.
func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	myQueue := p.workQueues[id]

	for {
		select {
		case <-p.done:
			p.drainQueue(myQueue)
			return

		case work := <-myQueue:
			work()

		default:
			if stolen := p.steal(id); stolen != nil {
				stolen()
				continue
			}
			// Nothing to steal, block on own queue
			select {
			case <-p.done:
				p.drainQueue(myQueue)
				return
			case work := <-myQueue:
				work()
			}
		}
	}
}

// drainQueue executes all remaining work in a queue.
func (p *WorkerPool) drainQueue(queue chan func()) {
	for {
		select {
		case work := <-queue:
			work()
		default:
			return
		}
	}
}

// steal attempts to take work from another worker's queue.
// Returns nil if no work is available.
func (p *WorkerPool) steal(myID int) func() {
	for i := range p.workers {
		if i == myID {
			continue
		}
		select {
		case work := <-p.workQueues[i]:
			return work
		default:
		}
	}
	return nil
}

// ExecuteAll runs every work item and blocks until all of them returned.
//
// A nil or closed pool runs the items sequentially on the calling goroutine,
// so callers always observe completed work when ExecuteAll returns. Close may
// run concurrently: it waits until the items already submitted are queued
// and then lets the workers finish them.
func (p *WorkerPool) ExecuteAll(work []func()) {
	if len(work) == 0 {
		return
	}
	if p == nil || len(work) == 1 {
		runInline(work)
		return
	}

	p.submitMu.RLock()
	if !p.running.Load() {
		p.submitMu.RUnlock()
		runInline(work)
		return
	}

	var completionWG sync.WaitGroup
	completionWG.Add(len(work))

	for i, fn := range work {
		p.workQueues[i%p.workers] <- func() {
			defer completionWG.Done()
			fn()
		}
	}
	p.submitMu.RUnlock()

	completionWG.Wait()
}

func runInline(work []func()) {
	for _, fn := range work {
		fn()
	}
}

// Close stops accepting work, lets queued work finish and stops all workers.
// Close is safe to call multiple times.
func (p *WorkerPool) Close() {
	if p == nil {
		return
	}

	p.submitMu.Lock()
	if !p.running.CompareAndSwap(true, false) {
		p.submitMu.Unlock()
		return
	}
	close(p.done)
	p.submitMu.Unlock()

	p.wg.Wait()
}

// Workers returns the number of workers in the pool. A nil pool has one
// (the caller's goroutine).
func (p *WorkerPool) Workers() int {
	if p == nil {
		return 1
	}
	return p.workers
}
