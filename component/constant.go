package component

import (
	"github.com/sarchlab/cosimcore/databus"
	"github.com/sarchlab/cosimcore/input"
	"github.com/sarchlab/cosimcore/status"
)

// Constant outputs a fixed value on every output channel for the
// entire run, grounded on src/components/comp_constant.c. A vector
// output gets its members filled in order from InitialValues, the same
// way comp_constant.c's Read walks ConstantValuesInput one vector group
// at a time. Unlike the C source, there is no separate Read phase
// (the input tree arrives fully parsed), so InitialValues assignment
// happens directly in Setup.
type Constant struct {
	name   string
	bus    *databus.Databus
	values []float64
}

// NewConstant builds a Constant component.
func NewConstant(ci input.ComponentInput) (Component, status.Result) {
	bus, res := BuildDatabus(ci)
	if res.Level == status.Error {
		return nil, res
	}
	return &Constant{name: ci.Name, bus: bus, values: ci.InitialValues}, status.Result{}
}

func (c *Constant) Name() string             { return c.name }
func (c *Constant) Databus() *databus.Databus { return c.bus }

// Setup assigns InitialValues to the output channels in declaration
// order. A component with more channels than values leaves the
// remainder at their type's zero value; CheckMandatoryConnected later
// on checks wiring, not value presence, so this is not itself an error.
func (c *Constant) Setup() status.Result {
	idx := 0
	for i := 0; i < c.bus.OutCount(); i++ {
		if idx >= len(c.values) {
			break
		}
		ch := c.bus.Out(i)
		ch.SetValue(databus.ValueFromFloat64(ch.Type(), c.values[idx]))
		idx++
	}
	return status.Result{}
}

// Initialize is a no-op: the constant value is already live after
// Setup, matching comp_constant.c's empty Initialize.
func (c *Constant) Initialize(float64) status.Result { return status.Result{} }

// DoStep is a no-op: a constant never changes (comp_constant.c does
// not even register a DoStep function).
func (c *Constant) DoStep(int, float64, float64, float64, bool) status.Result {
	return status.Result{}
}

// FinishState always reports NeverFinishes, per
// CompConstantGetFinishState.
func (c *Constant) FinishState() FinishState { return NeverFinishes }

// OwnDeltaTime reports no preference: a constant has nothing to
// integrate and never needs its own rate.
func (c *Constant) OwnDeltaTime() (float64, bool) { return 0, false }
