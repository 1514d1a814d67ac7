package step

import (
	"github.com/sarchlab/cosimcore/component"
	"github.com/sarchlab/cosimcore/databus"
	"github.com/sarchlab/cosimcore/status"
	"github.com/sarchlab/cosimcore/task"
)

// Driver advances every component in a Plan by exactly one coupling
// step, from interval.Start to interval.End, and reports whether any
// component finished on its own (spec §4.4's EndFirstComponent signal
// is read back through p.AComponentFinished).
type Driver interface {
	Step(plan Plan, t task.Task, p *task.StepTypeParams, interval databus.TimeInterval) status.Result
}

// stepOne runs the shared trigger/DoStep/push sequence for a single
// entry (spec §4.1 steps 1-3): pull fresh values into its bound inputs,
// advance it across the interval, then publish its outputs timestamped
// at the interval's end. The returned bool reports whether this
// component's FinishState is component.Finished; callers fold it into
// p.AComponentFinished themselves rather than have stepOne write
// through a pointer shared across goroutines.
func stepOne(e Entry, t task.Task, p *task.StepTypeParams, interval databus.TimeInterval) (status.Result, bool) {
	bus := e.Component.Databus()

	if r := bus.TriggerInConnections(interval); r.Level == status.Error {
		return r, false
	}

	deltaTime := interval.End - interval.Start
	if r := e.Component.DoStep(e.Order, interval.Start, deltaTime, interval.End, p.IsNewStep); r.Level == status.Error {
		return r, false
	}

	if r := bus.UpdateOutChannels(interval.End); r.Level == status.Error {
		return r, false
	}

	return status.Result{}, e.Component.FinishState() == component.Finished
}
