// Package task carries the simulation-time parameters and the
// per-step bookkeeping the step driver threads through every component
// call (spec §3, §4.4).
package task

import "github.com/sarchlab/cosimcore/input"

// Task is the resolved simulation-time configuration for one run (spec
// §6's TaskInput, defaulted and normalized).
type Task struct {
	StartTime      float64
	EndTime        float64
	DeltaTime      float64
	SumTime        bool
	InputAtEndTime bool
	RelativeEps    float64
	EndType        input.EndType
	StepType       input.StepType
}

// FromInput builds a Task from the parsed TaskInput, applying the
// defaults spec §6 documents for each optional field.
func FromInput(ti input.TaskInput) Task {
	t := Task{
		StartTime:   ti.StartTime.OrElse(0),
		EndTime:     ti.EndTime.OrElse(0),
		DeltaTime:   ti.DeltaTime.OrElse(0),
		RelativeEps: ti.RelativeEps.OrElse(1e-6),
		EndType:     ti.EndType.OrElse(input.EndTime),
		StepType:    ti.StepType,
	}
	t.SumTime = ti.SumTime.OrElse(false)
	t.InputAtEndTime = ti.InputAtEndTime.OrElse(false)
	return t
}

// StepTypeParams is the per-step state the three step disciplines
// (sequential, parallel-ST, parallel-MT) pass down into each
// component's DoStep, mirroring the (time, deltaTime, endTime,
// isNewStep) signature every original_source component implementation
// shares (spec §4.1, §4.4).
type StepTypeParams struct {
	CurrentTime float64
	StepSize    float64
	StepCount   int
	IsNewStep   bool

	// AComponentFinished is set once any component reports
	// component.Finished, the trigger for EndFirstComponent (spec §4.4).
	AComponentFinished bool

	// SumTime is the running sum of step sizes (start time included)
	// that NextTime uses when Task.SumTime is set. With Task.SumTime
	// unset, NextTime uses StartTime + n*DeltaTime instead, which does
	// not accumulate the floating-point drift repeated addition does
	// (spec §4.4's "sumTime vs n*deltaTime0" distinction).
	SumTime float64
}

// NextTime computes the time the next step should start at, using
// either the running SumTime accumulator or n*DeltaTime, depending on
// Task.SumTime (spec §4.4).
func (t Task) NextTime(p StepTypeParams) float64 {
	if t.SumTime {
		return p.SumTime + p.StepSize
	}
	return t.StartTime + float64(p.StepCount+1)*t.DeltaTime
}

// Finished reports whether the run has reached its termination
// condition for the given step state (spec §4.4): EndTime compares
// CurrentTime against EndTime within RelativeEps; EndFirstComponent
// also finishes as soon as any component reports Finished.
func (t Task) Finished(p StepTypeParams) bool {
	if t.EndType == input.EndFirstComponent && p.AComponentFinished {
		return true
	}
	tol := t.RelativeEps * maxAbs(t.EndTime, p.CurrentTime)
	return p.CurrentTime >= t.EndTime-tol
}

func maxAbs(a, b float64) float64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	if a > b {
		return a
	}
	return b
}
