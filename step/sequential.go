package step

import (
	"github.com/sarchlab/cosimcore/databus"
	"github.com/sarchlab/cosimcore/status"
	"github.com/sarchlab/cosimcore/task"
)

// Sequential steps every component one at a time, strictly in the
// dependency solver's flattened evaluation order, with no batching by
// layer. It is the simplest discipline (spec §4.4) and the one every
// model should fall back to when step type is unset.
type Sequential struct{}

// Step implements Driver.
func (Sequential) Step(plan Plan, t task.Task, p *task.StepTypeParams, interval databus.TimeInterval) status.Result {
	for _, e := range plan.Entries {
		r, finished := stepOne(e, t, p, interval)
		if r.Level == status.Error {
			return r
		}
		if finished {
			p.AComponentFinished = true
		}
	}
	return status.Result{}
}
