package model

// ResultsSink receives every component's output values as the run
// steps forward, the interface `src/reader/ssp/Results.c` defines on
// the C side. Results storage itself is out of scope (spec §1
// Non-goals); this interface exists only so the core has somewhere to
// call into once a real sink is wired up by a caller.
type ResultsSink interface {
	// OnComponentOutput is called once per component per recorded
	// instant (cadence depends on the configured store level, which is
	// the sink's concern, not the core's).
	OnComponentOutput(componentName string, time float64, values []float64)
}

// NoopResultsSink discards every call; it is the Model's default sink
// so Run never needs a nil check on the hot path.
type NoopResultsSink struct{}

func (NoopResultsSink) OnComponentOutput(string, float64, []float64) {}
