package component

import (
	"github.com/sarchlab/cosimcore/databus"
	"github.com/sarchlab/cosimcore/input"
	"github.com/sarchlab/cosimcore/status"
)

// Integrator is the scalar special case of VectorIntegrator: one
// derivative input, one state output, advanced by forward Euler each
// step. Kept as its own type (rather than a VectorIntegrator of width
// one) because ComponentIntegrator and ComponentVectorIntegrator are
// distinct declared component types in the input tree (spec §6) and
// src/components/ComponentTypes.c keeps them as distinct classes too.
type Integrator struct {
	name    string
	bus     *databus.Databus
	state   float64
	initial float64
	gain    float64
	ownDt   input.Optional[float64]
}

// NewIntegrator builds a scalar Integrator component.
func NewIntegrator(ci input.ComponentInput) (Component, status.Result) {
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
	return &Integrator{name: ci.Name, bus: bus, initial: initial, gain: gain, ownDt: ci.DeltaTime}, status.Result{}
}

func (c *Integrator) Name() string              { return c.name }
func (c *Integrator) Databus() *databus.Databus { return c.bus }

func (c *Integrator) Setup() status.Result { return status.Result{} }

// Initialize sets the integrator's state to its declared initial
// value and publishes it on the output channel.
func (c *Integrator) Initialize(float64) status.Result {
	c.state = c.initial
	if c.bus.OutCount() > 0 {
		c.bus.Out(0).SetValue(databus.DoubleValue(c.state))
	}
	return status.Result{}
}

// DoStep performs one forward-Euler update: state += gain * derivative *
// deltaTime, grounded on comp_vector_integrator.c's DoStep, specialized
// to a single state, with the `gain` parameter named in spec.md §8 S1.
func (c *Integrator) DoStep(_ int, _, deltaTime, _ float64, _ bool) status.Result {
	if c.bus.InCount() == 0 || c.bus.OutCount() == 0 {
		return status.Result{}
	}
	deriv := c.bus.In(0).Value().Double
	c.state += c.gain * deriv * deltaTime
	c.bus.Out(0).SetValue(databus.DoubleValue(c.state))
	return status.Result{}
}

// FinishState always reports NeverFinishes: an integrator has no
// built-in end condition.
func (c *Integrator) FinishState() FinishState { return NeverFinishes }

// OwnDeltaTime returns the component's declared rate, if any.
func (c *Integrator) OwnDeltaTime() (float64, bool) { return c.ownDt.Get() }
