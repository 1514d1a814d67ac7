package input

import "fmt"

// ComponentType is the closed variant tag for the four built-in component
// kinds (spec §6, ComponentInput.Type).
type ComponentType int

const (
	ComponentConstant ComponentType = iota
	ComponentFMU
	ComponentIntegrator
	ComponentVectorIntegrator
)

func (t ComponentType) String() string {
	switch t {
	case ComponentConstant:
		return "Constant"
	case ComponentFMU:
		return "FMU"
	case ComponentIntegrator:
		return "Integrator"
	case ComponentVectorIntegrator:
		return "VectorIntegrator"
	default:
		return "Unknown"
	}
}

// StepType selects the step discipline (spec §4.4, §6).
type StepType int

const (
	Sequential StepType = iota
	ParallelST
	ParallelMT
)

func (t StepType) String() string {
	switch t {
	case Sequential:
		return "Sequential"
	case ParallelST:
		return "ParallelST"
	case ParallelMT:
		return "ParallelMT"
	default:
		return "Unknown"
	}
}

// EndType selects the run-termination rule (spec §4.4).
type EndType int

const (
	EndTime EndType = iota
	EndFirstComponent
)

// DecoupleType is the per-connection decoupling policy (spec §3, §4.3).
type DecoupleType int

const (
	DecoupleDefault DecoupleType = iota
	DecoupleNever
	DecoupleAlways
	DecoupleIfNeeded
)

// IntervalType selects when an inter/extrapolation filter is re-anchored.
type IntervalType int

const (
	IntervalCoupling IntervalType = iota
	IntervalSynchronization
)

// OrderType selects the polynomial order of an inter/extrapolation filter.
type OrderType int

const (
	OrderConstant OrderType = iota
	OrderLinear
)

// ParseStepType maps the textual step-type spellings from the input tree
// to the StepType enum, bit-exactly per spec §6's mapping table. This is
// grounded on src/reader/EnumMapping.c, which keeps a literal
// string-to-enum lookup table rather than inferring spellings.
func ParseStepType(s string) (StepType, error) {
	switch s {
	case "sequential":
		return Sequential, nil
	case "parallel_single_thread":
		return ParallelST, nil
	case "parallel_one_step_size":
		return ParallelMT, nil
	case "parallel_sync_all":
		return ParallelMT, nil
	default:
		return 0, fmt.Errorf("unknown stepType %q", s)
	}
}

// ParseEndType maps the textual end-type spellings per spec §6.
func ParseEndType(s string) (EndType, error) {
	switch s {
	case "first_component":
		return EndFirstComponent, nil
	case "end_time":
		return EndTime, nil
	default:
		return 0, fmt.Errorf("unknown endType %q", s)
	}
}

// ParseOrderType maps the textual inter/extrapolation order per spec §6.
func ParseOrderType(s string) (OrderType, error) {
	switch s {
	case "zero":
		return OrderConstant, nil
	case "first":
		return OrderLinear, nil
	default:
		return 0, fmt.Errorf("unknown inter/extrapolation order %q", s)
	}
}

// ParseIntervalType maps the textual interval spelling per spec §6.
func ParseIntervalType(s string) (IntervalType, error) {
	switch s {
	case "coupling":
		return IntervalCoupling, nil
	case "synchronization":
		return IntervalSynchronization, nil
	default:
		return 0, fmt.Errorf("unknown inter/extrapolation interval %q", s)
	}
}

// ParseComponentType maps the textual component type per spec §6.
func ParseComponentType(s string) (ComponentType, error) {
	switch s {
	case "Constant":
		return ComponentConstant, nil
	case "FMU":
		return ComponentFMU, nil
	case "Integrator":
		return ComponentIntegrator, nil
	case "VectorIntegrator":
		return ComponentVectorIntegrator, nil
	default:
		return 0, fmt.Errorf("unknown component type %q", s)
	}
}
