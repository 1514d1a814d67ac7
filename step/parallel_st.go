package step

import (
	"github.com/sarchlab/cosimcore/databus"
	"github.com/sarchlab/cosimcore/status"
	"github.com/sarchlab/cosimcore/task"
)

// ParallelST steps one concurrency layer at a time on a single
// goroutine: every component in a layer is cooperatively interleaved
// (no component in the layer can observe another's output from this
// step, by construction) before the next layer starts. This is the
// discipline spec §4.4 calls "parallel, single thread" — it exists to
// exercise the same layer-batched evaluation order ParallelMT uses,
// without the overhead of actual goroutines, and is useful as a
// deterministic reference run.
type ParallelST struct{}

// Step implements Driver.
func (ParallelST) Step(plan Plan, t task.Task, p *task.StepTypeParams, interval databus.TimeInterval) status.Result {
	for _, layer := range plan.Layers {
		for _, e := range layer {
			r, finished := stepOne(e, t, p, interval)
			if r.Level == status.Error {
				return r
			}
			if finished {
				p.AComponentFinished = true
			}
		}
	}
	return status.Result{}
}
