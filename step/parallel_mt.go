package step

import (
	"sync"

	"github.com/sarchlab/cosimcore/databus"
	"github.com/sarchlab/cosimcore/status"
	"github.com/sarchlab/cosimcore/task"
)

// ParallelMT steps every concurrency layer's components concurrently on
// a static worker pool, barrier-synced between layers: a layer only
// starts once every component of the previous layer has pushed its
// outputs, since a later layer's inputs may depend on them (spec
// §4.4). Within a layer, order is unconstrained by construction (the
// dependency solver only places independent components in the same
// layer), so no further synchronization is needed there.
type ParallelMT struct {
	pool *staticWorkerPool
}

// NewParallelMT builds a ParallelMT driver backed by a worker pool of
// the given size; workers <= 0 defaults to runtime.NumCPU().
func NewParallelMT(workers int) *ParallelMT {
	return &ParallelMT{pool: newStaticWorkerPool(workers)}
}

// Step implements Driver.
func (d *ParallelMT) Step(plan Plan, t task.Task, p *task.StepTypeParams, interval databus.TimeInterval) status.Result {
	for _, layer := range plan.Layers {
		var mu sync.Mutex
		var first status.Result
		anyFinished := false

		tasks := make([]func(), len(layer))
		for i, e := range layer {
			e := e
			tasks[i] = func() {
				r, finished := stepOne(e, t, p, interval)
				if r.Level == status.Error || finished {
					mu.Lock()
					if r.Level == status.Error && first.Level != status.Error {
						first = r
					}
					if finished {
						anyFinished = true
					}
					mu.Unlock()
				}
			}
		}

		d.pool.runBarrier(tasks)

		if anyFinished {
			p.AComponentFinished = true
		}
		if first.Level == status.Error {
			return first
		}
	}
	return status.Result{}
}

// Close shuts down the driver's worker pool. Callers should call this
// once after the run that owns this driver finishes.
func (d *ParallelMT) Close() {
	d.pool.close()
}
