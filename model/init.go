package model

import (
	"github.com/sarchlab/cosimcore/databus"
	"github.com/sarchlab/cosimcore/status"
)

// Initialize runs the four-phase initialization protocol (spec §5),
// grounded on original_source/src/core/Model.c's ModelInitialize: enter
// init mode, initialize every component in INITIAL_DEPENDENCIES order
// (spec §3, §4.3 step 1 — Model.InitialPlan, not the RUNTIME_DEPENDENCIES
// Plan Run uses) at (startTime, startTime), iterate the initial outputs
// once down that same order so downstream components see their upstream
// neighbors' initial values, then exit init mode and flush outputs once
// more for the first real DoStep to read from. No time passes during
// initialization, so every trigger/push in this method uses the
// degenerate [t, t] interval.
//
// EnterInit/ExitInit have no connection-side state to toggle in this
// implementation (Direct/BufferedBinary/filtered links behave
// identically whether or not a run is mid-initialization — the
// original engine's explicit init-mode toggle on each connection exists
// to suppress mid-init filter history pollution, which this filter
// design avoids structurally by only ever recording samples Push
// actually delivers); they are kept as named phases for fidelity to
// the four-phase shape and as an extension point.
func (m *Model) Initialize() status.Result {
	t := m.Task.StartTime
	zero := databus.TimeInterval{Start: t, End: t}

	if res := m.enterInit(); res.Level == status.Error {
		return res
	}

	for _, e := range m.InitialPlan.Entries {
		c := e.Component
		if res := c.Databus().TriggerInConnections(zero); res.Level == status.Error {
			return res
		}
		if res := c.Initialize(t); res.Level == status.Error {
			return res
		}
		if res := c.Databus().UpdateOutChannels(t); res.Level == status.Error {
			return res
		}
	}

	if res := m.iterateInitialOutputs(zero, t); res.Level == status.Error {
		return res
	}

	if res := m.exitInit(); res.Level == status.Error {
		return res
	}

	// Update outputs once more for the first real DoStep to read from.
	for _, e := range m.InitialPlan.Entries {
		if res := e.Component.Databus().UpdateOutChannels(t); res.Level == status.Error {
			return res
		}
	}

	return status.Result{}
}

func (m *Model) enterInit() status.Result { return status.Result{} }

func (m *Model) exitInit() status.Result { return status.Result{} }

// iterateInitialOutputs walks the dependency-solved evaluation order
// once, triggering and re-pushing every component's outputs, so an
// initial value set by one component's Initialize propagates to every
// downstream component before the first coupling step runs.
func (m *Model) iterateInitialOutputs(interval databus.TimeInterval, now float64) status.Result {
	for _, e := range m.InitialPlan.Entries {
		bus := e.Component.Databus()
		if res := bus.TriggerInConnections(interval); res.Level == status.Error {
			return res
		}
		if res := bus.UpdateOutChannels(now); res.Level == status.Error {
			return res
		}
	}
	return status.Result{}
}
