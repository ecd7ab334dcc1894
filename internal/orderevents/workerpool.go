package orderevents

import (
	"context"
	"sync"
)

type WorkerPoolI interface {
	Submit(ctx context.Context, task Task) (<-chan error, error)
	Close()
}

type Task func() error

type job struct {
	task   Task
	result chan error
}

// WorkerPool bounds how many order groups are applied concurrently.
type WorkerPool struct {
	jobs chan job
	wg   sync.WaitGroup
	once sync.Once
}

func NewWorkerPool(size int) *WorkerPool {
	if size <= 0 {
		size = 1
	}
	wp := &WorkerPool{jobs: make(chan job, size)}

	wp.wg.Add(size)
	for i := 0; i < size; i++ {
		go wp.run()
	}
	return wp
}

func (wp *WorkerPool) run() {
	defer wp.wg.Done()
	for j := range wp.jobs {
		j.result <- j.task()
	}
}

// Submit queues task. The returned channel receives the task's error once
// it has run.
func (wp *WorkerPool) Submit(ctx context.Context, task Task) (<-chan error, error) {
	result := make(chan error, 1)
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case wp.jobs <- job{task: task, result: result}:
		return result, nil
	}
}

// Close stops accepting tasks and waits for the queued ones to finish.
func (wp *WorkerPool) Close() {
	wp.once.Do(func() { close(wp.jobs) })
	wp.wg.Wait()
}
