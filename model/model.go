// Package model assembles the pieces every other package only
// implements in isolation — components, their databuses, resolved
// connections, the dependency-ordered evaluation plan and the step
// discipline — into one runnable co-simulation, and drives the
// four-phase initialization protocol and the binary-channel
// optimization pass that only make sense once the whole topology is
// known (spec §5, §4.6).
package model

import (
	"log/slog"

	"github.com/sarchlab/cosimcore/component"
	"github.com/sarchlab/cosimcore/connection"
	"github.com/sarchlab/cosimcore/input"
	"github.com/sarchlab/cosimcore/status"
	"github.com/sarchlab/cosimcore/step"
	"github.com/sarchlab/cosimcore/task"
)

// Model owns every component built from one InputRoot, their resolved
// connections, and the fixed evaluation plans the dependency solver
// derived for them. Build constructs it; Initialize runs the setup
// protocol; Run drives the coupling loop.
type Model struct {
	Components []component.Component
	ByName     map[string]component.Component
	Databuses  connection.Databuses
	Resolver   *connection.Resolver
	Decoupled  []*connection.Connection
	Promoted   []string // component names whose binary output channel was promoted

	// Warnings collects every §7 soft-warning Result Build produced
	// (decoupling-vs-trigger-sequence conflict, unused parameter
	// binding). Clean runs leave this nil.
	Warnings []status.Result

	Task task.Task

	// Plan is the RUNTIME_DEPENDENCIES SubModel: the evaluation order
	// Run always replays.
	Plan step.Plan

	// InitialPlan is the INITIAL_DEPENDENCIES SubModel (spec §3, §4.3
	// step 1): a second, independently solved evaluation order that
	// Initialize drives instead of Plan, so a model whose decoupling
	// decisions differ between the two graph builds still initializes
	// in the order its initial dependency graph actually implies. This
	// implementation always computes and uses it — there is no
	// co-simulation-initialization toggle anywhere in the input tree to
	// condition spec §3's "(only if co-simulation initialization is
	// enabled)" clause on, so the always-on initial SubModel is the safe
	// default the spec's own fallback ("or the runtime one if co-sim
	// init is disabled") describes.
	InitialPlan step.Plan

	Driver step.Driver

	Sink ResultsSink

	mtDriver *step.ParallelMT // non-nil only when Driver is backed by a worker pool
}

// Report builds a SetupReport snapshot of the decisions Build made for
// this Model (spec SPEC_FULL §9.2).
func (m *Model) Report() SetupReport {
	order := make([]string, len(m.Plan.Entries))
	for i, e := range m.Plan.Entries {
		order[i] = e.Component.Name()
	}
	return SetupReport{Order: order, Decoupled: m.Decoupled, Promoted: m.Promoted}
}

// Build runs the full construction pipeline (spec §5 phase 0): build
// every component and its databus from the registry, resolve every
// connection, solve the dependency graph into an acyclic evaluation
// order and its concurrency layering, and assemble the step Plan and
// Driver the chosen StepType calls for. It stops at the first
// input-structural or topology Error.
func Build(root input.InputRoot, registry *component.Registry) (*Model, status.Result) {
	m := &Model{
		ByName:    make(map[string]component.Component, len(root.Model.Components)),
		Databuses: make(connection.Databuses, len(root.Model.Components)),
		Task:      task.FromInput(root.Task),
		Sink:      NoopResultsSink{},
	}

	names := make([]string, 0, len(root.Model.Components))
	for _, ci := range root.Model.Components {
		comp, res := registry.Build(ci)
		if res.Level == status.Error {
			return nil, res
		}
		if _, dup := m.ByName[comp.Name()]; dup {
			return nil, status.ErrfAt(status.KindInputStructural, ci.SourceFile, ci.SourceLine,
				"duplicate component name %q", comp.Name())
		}

		m.Components = append(m.Components, comp)
		m.ByName[comp.Name()] = comp
		m.Databuses[comp.Name()] = comp.Databus()
		names = append(names, comp.Name())
	}

	m.Resolver = connection.NewResolver(m.Databuses)
	for _, ci := range root.Model.Connections {
		if res := m.Resolver.Resolve(ci); res.Level == status.Error {
			return nil, res
		}
	}

	var acc status.Accumulator
	checkUnusedParameters(root.Model.Components, &acc)
	suppressDecoupling := hasTriggerSequenceConflict(root.Model)
	if suppressDecoupling {
		acc.Add(status.Warnf(
			"model declares both a component trigger sequence and connection decoupling metadata; " +
				"decoupling metadata is ignored, trigger sequences take precedence"))
	}
	for _, w := range acc.Warnings() {
		logWarning(w)
	}
	m.Warnings = acc.Warnings()

	edges := buildEdges(m.Resolver.Resolved, suppressDecoupling)

	plan, decoupled, res := solvePlan(names, edges, m.ByName)
	if res.Level == status.Error {
		return nil, res
	}
	m.Plan = plan
	m.Decoupled = decoupled

	initialPlan, _, res := solvePlan(names, edges, m.ByName)
	if res.Level == status.Error {
		return nil, res
	}
	m.InitialPlan = initialPlan

	logTrace("model built", "components", len(m.Components), "connections", len(m.Resolver.Resolved),
		"decoupled", len(m.Decoupled))

	switch m.Task.StepType {
	case input.ParallelST:
		m.Driver = step.ParallelST{}
	case input.ParallelMT:
		d := step.NewParallelMT(0)
		m.Driver = d
		m.mtDriver = d
	default:
		m.Driver = step.Sequential{}
	}

	for _, c := range m.Components {
		if res := c.Setup(); res.Level == status.Error {
			return nil, res
		}
	}

	if m.Task.StepType == input.Sequential {
		PromoteBinaryChannels(m)
	}

	for _, c := range m.Components {
		if res := c.Databus().CheckMandatoryConnected(); res.Level == status.Error {
			return nil, res
		}
	}

	slog.Info("model setup complete", "components", len(m.Components),
		"connections", len(m.Resolver.Resolved), "promoted", len(m.Promoted), "warnings", len(m.Warnings))

	return m, status.Result{}
}

// Close releases any resources a Driver holds open (currently only
// ParallelMT's worker pool). Safe to call on a Model built with any
// step discipline.
func (m *Model) Close() {
	if m.mtDriver != nil {
		m.mtDriver.Close()
	}
}
