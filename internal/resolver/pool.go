package resolver

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"sync"

	"github.com/railtools/consistfix/internal/domain/model"
	"github.com/railtools/consistfix/internal/domain/types"
	"github.com/railtools/consistfix/pkg/logger"
)

// maxPoolWorkers caps the worker count; resolution is CPU bound and more
// workers than this just add scheduling overhead.
const maxPoolWorkers = 16

// Task is one consist entry queued for resolution. Index is the entry's
// position in parse order so results can be written back in sequence.
type Task struct {
	Index  int
	Kind   types.Kind
	Folder string
	Name   string
}

// Pool resolves entries concurrently across a fixed set of workers.
type Pool struct {
	resolver *Resolver
	workers  int
	logger   logger.Logger
}

// NewPool creates a worker pool over the resolver. A non-positive
// workerCount picks a size from the CPU count.
func NewPool(resolver *Resolver, workerCount int) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU() * 2
	}
	if workerCount > maxPoolWorkers {
		workerCount = maxPoolWorkers
	}

	return &Pool{
		resolver: resolver,
		workers:  workerCount,
		logger:   logger.Get().Named("resolver-pool"),
	}
}

// Workers returns the configured worker count.
func (p *Pool) Workers() int {
	return p.workers
}

// ResolveAll resolves every task and returns results in task order. A
// panicking resolution marks that one entry unresolved instead of taking
// the run down.
func (p *Pool) ResolveAll(ctx context.Context, tasks []Task) []*model.MatchResult {
	results := make([]*model.MatchResult, len(tasks))
	taskChan := make(chan Task)

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			name := "worker-" + strconv.Itoa(worker)
			for task := range taskChan {
				results[task.Index] = p.resolveSafely(ctx, name, task)
			}
		}(i)
	}

	for _, task := range tasks {
		select {
		case <-ctx.Done():
			close(taskChan)
			wg.Wait()
			p.fillCanceled(tasks, results)
			return results
		case taskChan <- task:
		}
	}
	close(taskChan)
	wg.Wait()

	return results
}

// resolveSafely runs one resolution with panic recovery.
func (p *Pool) resolveSafely(ctx context.Context, worker string, task Task) (result *model.MatchResult) {
	defer func() {
		if rec := recover(); rec != nil {
			p.logger.Error(ctx, "resolution panicked",
				logger.String("worker", worker),
				logger.String("entry", task.Folder+"/"+task.Name),
				logger.Any("panic", rec),
			)
			result = p.failedResult(task, fmt.Sprintf("resolution-panic: %v", rec))
		}
	}()

	return p.resolver.Resolve(ctx, task.Kind, task.Folder, task.Name)
}

// fillCanceled marks tasks that never ran as unresolved.
func (p *Pool) fillCanceled(tasks []Task, results []*model.MatchResult) {
	for i, task := range tasks {
		if results[i] == nil {
			results[i] = p.failedResult(task, "canceled")
		}
	}
}

func (p *Pool) failedResult(task Task, reason string) *model.MatchResult {
	return &model.MatchResult{
		Phase:  types.PhaseUnresolved,
		Score:  0,
		Target: p.resolver.extractor.Extract(task.Kind, task.Name, task.Folder),
		Reason: reason,
	}
}
