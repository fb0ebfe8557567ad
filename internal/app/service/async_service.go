package service

import (
	"employee-directory/pkg/workerpool"
)

// AsyncService funnels calls through a pool. Built on a single worker it
// serializes store access from concurrent callers such as bot handlers.
type AsyncService struct {
	Pool *workerpool.WorkerPool
}

func NewAsyncService(pool *workerpool.WorkerPool) *AsyncService {
	return &AsyncService{Pool: pool}
}

func (a *AsyncService) SubmitAsync(fn func() (any, error)) (any, error) {
	resCh := make(chan workerpool.Result, 1)
	if err := a.Pool.Submit(workerpool.Task{
		Fn:      fn,
		ResultC: resCh,
	}); err != nil {
		return nil, err
	}
	select {
	case res := <-resCh:
		return res.Value, res.Err
	case <-a.Pool.Done():
		return nil, workerpool.ErrClosed
	}
}

// Do is a typed wrapper over SubmitAsync.
func Do[T any](a *AsyncService, fn func() (T, error)) (T, error) {
	v, err := a.SubmitAsync(func() (any, error) { return fn() })
	out, _ := v.(T)
	return out, err
}
