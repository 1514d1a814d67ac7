package model

import (
	"github.com/sarchlab/cosimcore/component"
	"github.com/sarchlab/cosimcore/connection"
	"github.com/sarchlab/cosimcore/depsolver"
	"github.com/sarchlab/cosimcore/input"
	"github.com/sarchlab/cosimcore/status"
	"github.com/sarchlab/cosimcore/step"
)

// hasTriggerSequenceConflict reports the single documented policy
// conflict spec §4.3 names: some component declares a trigger sequence
// (sequenceNumber >= 0) while some connection also carries decoupling
// metadata. When both hold, the decoupling metadata is ignored
// entirely and trigger sequences take precedence.
func hasTriggerSequenceConflict(m input.ModelInput) bool {
	hasTriggerSeq := false
	for _, ci := range m.Components {
		if seq, ok := ci.TriggerSequence.Get(); ok && seq >= 0 {
			hasTriggerSeq = true
			break
		}
	}
	if !hasTriggerSeq {
		return false
	}
	for _, conn := range m.Connections {
		if _, ok := conn.Decoupling.Get(); ok {
			return true
		}
	}
	return false
}

// checkUnusedParameters adds a §7 soft warning for every Parameters key
// a ComponentInput declares that its component type's constructor never
// reads (component.KnownParameters), the "unused parameter binding"
// soft-warning kind.
func checkUnusedParameters(components []input.ComponentInput, acc *status.Accumulator) {
	for _, ci := range components {
		known := component.KnownParameters(ci.Type)
		for key := range ci.Parameters {
			if !known[key] {
				acc.Add(status.Warnf("component %q declares unused parameter %q", ci.Name, key))
			}
		}
	}
}

// buildEdges reduces a resolver's resolved connections to depsolver
// edges. When suppressDecoupling is set (the trigger-sequence conflict
// fired), every edge's decoupling metadata is forced to its zero value
// regardless of what the connection itself carries, so neither this
// SubModel solve nor any other sees the ignored metadata.
func buildEdges(resolved []*connection.Connection, suppressDecoupling bool) []depsolver.Edge {
	edges := make([]depsolver.Edge, 0, len(resolved))
	for _, conn := range resolved {
		e := depsolver.Edge{
			Source:        conn.Info.SourceComponent,
			SourceChannel: conn.Info.SourceChannel,
			Target:        conn.Info.TargetComponent,
			Conn:          conn,
			Decouple:      conn.Info.Decouple,
			Priority:      conn.Info.Priority,
		}
		if suppressDecoupling {
			e.Decouple = input.DecoupleDefault
			e.Priority = 0
		}
		edges = append(edges, e)
	}
	return edges
}

// solvePlan runs one independent depsolver.Solver pass over edges and
// assembles the resulting evaluation order into a step.Plan. Build calls
// this twice — once for the RUNTIME_DEPENDENCIES SubModel, once more for
// INITIAL_DEPENDENCIES — so each SubModel gets its own Solver instance
// and therefore its own decoupling decisions, per spec §4.3 step 1.
func solvePlan(names []string, edges []depsolver.Edge, byName map[string]component.Component) (step.Plan, []*connection.Connection, status.Result) {
	solver := depsolver.NewSolver(names)
	for _, e := range edges {
		solver.AddEdge(e)
	}

	groups, decoupled, res := solver.Solve()
	if res.Level == status.Error {
		return step.Plan{}, nil, res
	}

	order := make([]string, 0, len(names))
	for _, g := range groups {
		order = append(order, g.Components...)
	}

	layers := solver.Layers(decoupled)
	layerOf := make(map[string]int, len(order))
	for i, layer := range layers {
		for _, name := range layer {
			layerOf[name] = i
		}
	}

	return step.BuildPlan(order, layerOf, byName), decoupled, status.Result{}
}
