package worker

import (
	"log/slog"
	"sync"
)

type task func()

// Pool runs submitted tasks on a fixed number of goroutines. Tasks still
// queued when Stop is called are drained before Stop returns.
type Pool struct {
	wg       sync.WaitGroup
	jobs     chan task
	stopOnce sync.Once
}

func NewPool(n int) *Pool {
	if n < 1 {
		n = 1
	}
	p := &Pool{jobs: make(chan task, 1024)}
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				run(job)
			}
		}()
	}
	return p
}

func run(job task) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("worker task panic", "err", rec)
		}
	}()
	job()
}

func (p *Pool) Submit(f func()) { p.jobs <- f }

// Depth is the number of queued, not yet started tasks.
func (p *Pool) Depth() int { return len(p.jobs) }

func (p *Pool) Stop() {
	p.stopOnce.Do(func() {
		close(p.jobs)
		p.wg.Wait()
	})
}
