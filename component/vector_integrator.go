package component

import (
	"github.com/sarchlab/cosimcore/databus"
	"github.com/sarchlab/cosimcore/input"
	"github.com/sarchlab/cosimcore/status"
)

// VectorIntegrator advances a vector of states by forward Euler,
// grounded on src/components/comp_vector_integrator.c: one state and
// one derivative slot per output/input channel, state[i] += gain *
// deriv[i] * deltaTime each DoStep (gain per spec.md §8 S1, uniform
// across channels). The C source groups channels into one or more
// declared vector ports and binds each group to a contiguous sub-range
// of a single state/deriv buffer via a running nextIdx offset; this
// keeps the same per-group contiguous layout (SPEC_FULL §11(a)) even
// though Go has no need for the C source's pointer-arithmetic binding
// step.
type VectorIntegrator struct {
	name    string
	bus     *databus.Databus
	state   []float64
	deriv   []float64
	initial float64
	gain    float64
	ownDt   input.Optional[float64]
}

// NewVectorIntegrator builds a VectorIntegrator component.
func NewVectorIntegrator(ci input.ComponentInput) (Component, status.Result) {
	bus, res := BuildDatabus(ci)
	if res.Level == status.Error {
		return nil, res
	}

	var initial float64
	if len(ci.InitialValues) > 0 {
		initial = ci.InitialValues[0]
	}

	gain := 1.0
	if g, ok := ci.Parameters["gain"]; ok {
		gain = g
	}

	return &VectorIntegrator{name: ci.Name, bus: bus, initial: initial, gain: gain, ownDt: ci.DeltaTime}, status.Result{}
}

func (c *VectorIntegrator) Name() string              { return c.name }
func (c *VectorIntegrator) Databus() *databus.Databus { return c.bus }

// Setup validates that the declared input and output channel counts
// match (comp_vector_integrator.c's Read rejects a mismatch) and
// allocates the state/derivative buffers sized to the total channel
// count across every declared vector group.
func (c *VectorIntegrator) Setup() status.Result {
	if c.bus.InCount() != c.bus.OutCount() {
		return status.Errf(status.KindInputStructural,
			"VectorIntegrator %q: #inports (%d) does not match #outports (%d)",
			c.name, c.bus.InCount(), c.bus.OutCount())
	}

	c.state = make([]float64, c.bus.OutCount())
	c.deriv = make([]float64, c.bus.InCount())

	return status.Result{}
}

// Initialize fills every state slot with the declared initial value
// and publishes it to the corresponding output channel.
func (c *VectorIntegrator) Initialize(float64) status.Result {
	for i := range c.state {
		c.state[i] = c.initial
		c.bus.Out(i).SetValue(databus.DoubleValue(c.state[i]))
	}
	return status.Result{}
}

// DoStep reads each input channel into the derivative buffer,
// integrates with the component's (uniform, spec.md §8 S1) gain, and
// publishes the updated state (forward Euler): state[i] += gain *
// deriv[i] * deltaTime.
func (c *VectorIntegrator) DoStep(_ int, _, deltaTime, _ float64, _ bool) status.Result {
	for i := range c.deriv {
		c.deriv[i] = c.bus.In(i).Value().Double
	}
	for i := range c.state {
		c.state[i] += c.gain * c.deriv[i] * deltaTime
		c.bus.Out(i).SetValue(databus.DoubleValue(c.state[i]))
	}
	return status.Result{}
}

// FinishState always reports NeverFinishes.
func (c *VectorIntegrator) FinishState() FinishState { return NeverFinishes }

// OwnDeltaTime returns the component's declared rate, if any.
func (c *VectorIntegrator) OwnDeltaTime() (float64, bool) { return c.ownDt.Get() }
