package concurrent

import (
	"context"
	"sync"
)

type JobFunc[T any, G any] func(job T) G

// WorkerPool. fixed number of goroutines draining jobQueue. results arrive in completion order.
type WorkerPool[T any, G any] struct {
	numWorkers int
	jobQueue   chan T
	results    chan G
	wg         sync.WaitGroup
}

func NewWorkerPool[T any, G any](numWorkers, jobQueueSize int) *WorkerPool[T, G] {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &WorkerPool[T, G]{
		numWorkers: numWorkers,
		jobQueue:   make(chan T, jobQueueSize),
		results:    make(chan G, jobQueueSize),
	}
}

func (wp *WorkerPool[T, G]) worker(jobFunc JobFunc[T, G]) {
	defer wp.wg.Done()
	for job := range wp.jobQueue {
		wp.results <- jobFunc(job)
	}
}

func (wp *WorkerPool[T, G]) Start(jobFunc JobFunc[T, G]) {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker(jobFunc)
	}
}

// Wait. blocks until every worker returned, then closes the results channel. call after Close.
func (wp *WorkerPool[T, G]) Wait() {
	wp.wg.Wait()
	close(wp.results)
}

func (wp *WorkerPool[T, G]) AddJob(job T) {
	wp.jobQueue <- job
}

func (wp *WorkerPool[T, G]) CollectResults() chan G {
	return wp.results
}

func (wp *WorkerPool[T, G]) Close() {
	close(wp.jobQueue)
}

type indexed[T any] struct {
	pos int
	val T
}

// MapOrdered. applies jobFunc to every job on numWorkers goroutines. out[i] is jobFunc(jobs[i]).
// returns ctx.Err() if ctx is done before all jobs were handed out.
func MapOrdered[T any, G any](ctx context.Context, numWorkers int, jobs []T, jobFunc JobFunc[T, G]) ([]G, error) {
	out := make([]G, len(jobs))
	wp := NewWorkerPool[indexed[T], indexed[G]](numWorkers, len(jobs))
	wp.Start(func(job indexed[T]) indexed[G] {
		return indexed[G]{pos: job.pos, val: jobFunc(job.val)}
	})

	var err error
	for i, job := range jobs {
		if ctx.Err() != nil {
			err = ctx.Err()
			break
		}
		wp.AddJob(indexed[T]{pos: i, val: job})
	}
	wp.Close()
	wp.Wait()

	for res := range wp.CollectResults() {
		out[res.pos] = res.val
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}
