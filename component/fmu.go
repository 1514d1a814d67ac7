package component

import (
	"github.com/sarchlab/cosimcore/databus"
	"github.com/sarchlab/cosimcore/input"
	"github.com/sarchlab/cosimcore/status"
)

// fmuStub satisfies Component for ComponentFMU so the Registry stays
// total, without implementing FMI co-simulation itself (spec §1
// Non-goals: "loading or executing FMUs"). Any real FMU adapter would
// replace this constructor via Registry.Register.
type fmuStub struct {
	name string
	bus  *databus.Databus
}

// NewFMUStub builds the placeholder FMU component. It always reports
// an input-structural Error: a model naming an FMU component has
// nothing to actually run without a real adapter registered in its
// place.
func NewFMUStub(ci input.ComponentInput) (Component, status.Result) {
	bus, _ := BuildDatabus(ci)
	return &fmuStub{name: ci.Name, bus: bus},
		status.ErrfAt(status.KindInputStructural, ci.SourceFile, ci.SourceLine,
			"component %q declares type FMU, which has no built-in implementation; "+
				"register a real Constructor for input.ComponentFMU before building this model", ci.Name)
}

func (c *fmuStub) Name() string              { return c.name }
func (c *fmuStub) Databus() *databus.Databus { return c.bus }
func (c *fmuStub) Setup() status.Result      { return status.Result{} }
func (c *fmuStub) Initialize(float64) status.Result { return status.Result{} }
func (c *fmuStub) DoStep(int, float64, float64, float64, bool) status.Result {
	return status.Result{}
}
func (c *fmuStub) FinishState() FinishState       { return NeverFinishes }
func (c *fmuStub) OwnDeltaTime() (float64, bool) { return 0, false }
