package workerpool

import (
	"context"
	"errors"
	"sync"
)

var ErrClosed = errors.New("workerpool: closed")

// Task is a unit of work. ResultC, if set, receives exactly one Result and
// should be buffered.
type Task struct {
	Fn      func() (any, error)
	ResultC chan Result
}

type Result struct {
	Value any
	Err   error
}

// WorkerPool runs tasks on a fixed number of goroutines. With one worker,
// tasks run strictly in submission order.
type WorkerPool struct {
	tasks  chan Task
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

func NewWorkerPool(workerCount int, queueSize int) *WorkerPool {
	if workerCount < 1 {
		workerCount = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	wp := &WorkerPool{
		tasks:  make(chan Task, queueSize),
		ctx:    ctx,
		cancel: cancel,
	}
	wp.wg.Add(workerCount)
	for i := 0; i < workerCount; i++ {
		go wp.worker()
	}
	return wp
}

func (wp *WorkerPool) worker() {
	defer wp.wg.Done()
	for {
		select {
		case <-wp.ctx.Done():
			return
		case task, ok := <-wp.tasks:
			if !ok {
				return
			}
			res, err := task.Fn()
			if task.ResultC != nil {
				task.ResultC <- Result{Value: res, Err: err}
			}
		}
	}
}

// Submit queues a task, blocking while the queue is full.
func (wp *WorkerPool) Submit(task Task) error {
	wp.mu.RLock()
	defer wp.mu.RUnlock()
	if wp.closed {
		return ErrClosed
	}
	select {
	case wp.tasks <- task:
		return nil
	case <-wp.ctx.Done():
		return ErrClosed
	}
}

// Done is closed once Close has been called.
func (wp *WorkerPool) Done() <-chan struct{} {
	return wp.ctx.Done()
}

// Close stops the workers and waits for them. Queued tasks that have not
// started are dropped.
func (wp *WorkerPool) Close() {
	wp.cancel()
	wp.mu.Lock()
	if !wp.closed {
		wp.closed = true
		close(wp.tasks)
	}
	wp.mu.Unlock()
	wp.wg.Wait()
}
