package extract

import (
	"runtime"
	"sync"
)

// cellResult is the outcome of examining one grid cell. data holds the
// encoded PNG for non-empty cells.
type cellResult struct {
	data  []byte
	empty bool
	err   error
}

// executor runs cell tasks. Results are consumed in submission order
// regardless of completion order, which keeps frame numbering and
// progress deterministic across the inline and pooled implementations.
type executor interface {
	submit(fn func() cellResult) <-chan cellResult
	close()
}

// inlineExecutor runs each task on the calling goroutine. Pool setup and
// teardown overhead dominates for small grids, so those run here.
type inlineExecutor struct{}

func (inlineExecutor) submit(fn func() cellResult) <-chan cellResult {
	out := make(chan cellResult, 1)
	out <- fn()
	return out
}

func (inlineExecutor) close() {}

type poolTask struct {
	fn  func() cellResult
	out chan cellResult
}

// poolExecutor fans tasks out over a fixed set of workers.
type poolExecutor struct {
	tasks chan poolTask
	wg    sync.WaitGroup
}

func newPoolExecutor(workers, queue int) *poolExecutor {
	p := &poolExecutor{
		tasks: make(chan poolTask, queue),
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for t := range p.tasks {
				t.out <- t.fn()
			}
		}()
	}
	return p
}

func (p *poolExecutor) submit(fn func() cellResult) <-chan cellResult {
	out := make(chan cellResult, 1)
	p.tasks <- poolTask{fn: fn, out: out}
	return out
}

func (p *poolExecutor) close() {
	close(p.tasks)
	p.wg.Wait()
}

// defaultWorkers sizes the pool for concurrent crop+encode work.
func defaultWorkers() int {
	n := runtime.NumCPU() * 2
	if n > maxWorkers {
		n = maxWorkers
	}
	if n < 1 {
		n = 1
	}
	return n
}
