// Package component implements the built-in component kinds (spec §1,
// §6) and the registry that turns a parsed ComponentInput into one.
// FMU components are out of scope (spec §1 Non-goals); this package
// only defines the interface shape an FMU adapter would implement.
package component

import (
	"github.com/sarchlab/cosimcore/databus"
	"github.com/sarchlab/cosimcore/input"
	"github.com/sarchlab/cosimcore/status"
)

// FinishState reports whether a component has reached its own
// completion condition, the per-component half of the EndFirstComponent
// task termination rule (spec §4.4).
type FinishState int

const (
	NeverFinishes FinishState = iota
	Finished
)

// Component is the uniform interface the step driver and the model's
// setup pipeline drive every component kind through (spec §1, §4).
type Component interface {
	// Name returns the component's instance name, as declared in the
	// input tree.
	Name() string

	// Databus returns the component's port container.
	Databus() *databus.Databus

	// Setup wires any internal state the component needs onto its own
	// databus (e.g. binary-reference vector channels), run once after
	// construction and before the first Initialize (spec §5 phase 0).
	Setup() status.Result

	// Initialize sets the component's initial output values at
	// startTime (spec §5 phase "Initialize").
	Initialize(startTime float64) status.Result

	// DoStep advances the component from time to time+deltaTime.
	// group is the component's evaluation-order position (used by
	// components that care about decoupled-loop ordering); isNewStep
	// tells a component whether this call starts a fresh coupling step
	// or is a within-step re-evaluation from a decoupled iteration
	// (spec §4.1, §4.3).
	DoStep(group int, time, deltaTime, endTime float64, isNewStep bool) status.Result

	// FinishState reports whether this component has reached its own
	// end condition (spec §4.4).
	FinishState() FinishState

	// OwnDeltaTime returns the component's own preferred time step, if
	// it declares one in the input tree (spec §3 DeltaTime), and
	// whether one was declared at all.
	OwnDeltaTime() (float64, bool)
}

// Constructor builds one Component instance from its parsed
// ComponentInput.
type Constructor func(ci input.ComponentInput) (Component, status.Result)

// Registry maps a ComponentType to the Constructor that builds it,
// grounded on src/components/ComponentFactory.h's type-to-constructor
// dispatch.
type Registry struct {
	ctors map[input.ComponentType]Constructor
}

// NewRegistry builds a Registry pre-populated with the four built-in
// component kinds.
func NewRegistry() *Registry {
	r := &Registry{ctors: make(map[input.ComponentType]Constructor)}
	r.Register(input.ComponentConstant, NewConstant)
	r.Register(input.ComponentIntegrator, NewIntegrator)
	r.Register(input.ComponentVectorIntegrator, NewVectorIntegrator)
	r.Register(input.ComponentFMU, NewFMUStub)
	return r
}

// Register adds or overrides the Constructor for a ComponentType.
func (r *Registry) Register(t input.ComponentType, c Constructor) {
	r.ctors[t] = c
}

// Build constructs the Component described by ci.
func (r *Registry) Build(ci input.ComponentInput) (Component, status.Result) {
	ctor, ok := r.ctors[ci.Type]
	if !ok {
		return nil, status.ErrfAt(status.KindInputStructural, ci.SourceFile, ci.SourceLine,
			"no constructor registered for component type %s", ci.Type)
	}
	return ctor(ci)
}

// knownParameters maps each ComponentType to the set of Parameters keys
// its constructor actually reads. Build's caller uses this to detect an
// "unused parameter binding" (spec §7's soft-warning kind): a key present
// in ComponentInput.Parameters that no constructor for that type ever
// looks at.
var knownParameters = map[input.ComponentType]map[string]bool{
	input.ComponentIntegrator:       {"gain": true},
	input.ComponentVectorIntegrator: {"gain": true},
}

// KnownParameters reports the Parameters keys the given ComponentType's
// constructor reads. A nil/empty map means the type reads none.
func KnownParameters(t input.ComponentType) map[string]bool {
	return knownParameters[t]
}

// BuildDatabus constructs the databus a ComponentInput's Inports/
// Outports declare, the common first step of every built-in
// constructor.
func BuildDatabus(ci input.ComponentInput) (*databus.Databus, status.Result) {
	bus := databus.NewDatabus()

	for _, p := range ci.Inports {
		t, err := databus.ParseChannelType(p.Type)
		if err != nil {
			return nil, status.ErrfAt(status.KindInputStructural, ci.SourceFile, ci.SourceLine, "%v", err)
		}
		if p.Vector {
			bus.AddInVector(p.Name, p.Width, t, databus.ParseMode(p.Mandatory))
		} else {
			bus.AddIn(p.Name, t, databus.ParseMode(p.Mandatory))
		}
	}

	for _, p := range ci.Outports {
		t, err := databus.ParseChannelType(p.Type)
		if err != nil {
			return nil, status.ErrfAt(status.KindInputStructural, ci.SourceFile, ci.SourceLine, "%v", err)
		}
		if p.Vector {
			bus.AddOutVector(p.Name, p.Width, t, databus.ParseMode(p.Mandatory))
		} else {
			bus.AddOut(p.Name, t, databus.ParseMode(p.Mandatory))
		}
	}

	return bus, status.Result{}
}
