package model

import (
	"github.com/sarchlab/cosimcore/databus"
	"github.com/sarchlab/cosimcore/status"
	"github.com/sarchlab/cosimcore/task"
)

// Run drives the coupling loop to completion (spec §4.1, §4.4): each
// iteration advances every component across one [time, time+deltaTime]
// interval using the Driver Build selected, reports every component's
// current output values to the Sink, and advances the task's step
// bookkeeping until Task.Finished reports true.
func (m *Model) Run() status.Result {
	p := task.StepTypeParams{
		CurrentTime: m.Task.StartTime,
		StepSize:    m.Task.DeltaTime,
		SumTime:     m.Task.StartTime,
	}

	for !m.Task.Finished(p) {
		end := m.Task.NextTime(p)
		interval := databus.TimeInterval{Start: p.CurrentTime, End: end}

		p.IsNewStep = true
		if res := m.Driver.Step(m.Plan, m.Task, &p, interval); res.Level == status.Error {
			return res
		}

		logStep("coupling step complete", "step", p.StepCount, "start", p.CurrentTime, "end", end)
		m.report(end)

		p.StepCount++
		p.SumTime += p.StepSize
		p.CurrentTime = end
	}

	return status.Result{}
}

// report hands every component's current scalar output values to the
// configured ResultsSink (spec §11's results-sink stub).
func (m *Model) report(now float64) {
	for _, c := range m.Components {
		bus := c.Databus()
		values := make([]float64, bus.OutCount())
		for i := 0; i < bus.OutCount(); i++ {
			values[i] = bus.Out(i).Value().Double
		}
		m.Sink.OnComponentOutput(c.Name(), now, values)
	}
}
