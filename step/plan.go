// Package step implements the three stepping disciplines the task
// configuration can select (spec §4.4): Sequential, ParallelST (single
// thread, layer-batched) and ParallelMT (worker-pool, layer-batched).
// Each discipline drives every component through the same
// trigger-inputs -> DoStep -> push-outputs sequence for one coupling
// step; they differ only in how much of that work happens concurrently
// and how the evaluation order is batched into barriers.
package step

import "github.com/sarchlab/cosimcore/component"

// Entry is one component's position in the evaluation order the
// dependency solver produced.
type Entry struct {
	Component component.Component

	// Order is this entry's position in the full flattened evaluation
	// order, passed to Component.DoStep as the group argument (spec
	// §4.1's per-step "group" position).
	Order int

	// Layer is the concurrency layer this entry belongs to: entries
	// sharing a Layer have no dependency on one another and may be
	// stepped in any order, including concurrently (spec §4.4).
	Layer int
}

// Plan is the fixed evaluation order and layering a model's setup
// pipeline computes once (from depsolver.Solver.Solve/Layers) and every
// coupling step replays unchanged for the rest of the run.
type Plan struct {
	Entries []Entry

	// Layers groups Entries by their Layer index, in layer order. Built
	// once by BuildPlan so step drivers never recompute it per step.
	Layers [][]Entry
}

// BuildPlan assembles a Plan from the depsolver's flat evaluation order
// and its layering, attaching each component.Component by name via
// lookup.
func BuildPlan(order []string, layerOf map[string]int, byName map[string]component.Component) Plan {
	entries := make([]Entry, len(order))
	maxLayer := 0
	for i, name := range order {
		l := layerOf[name]
		entries[i] = Entry{Component: byName[name], Order: i, Layer: l}
		if l > maxLayer {
			maxLayer = l
		}
	}

	layers := make([][]Entry, maxLayer+1)
	for _, e := range entries {
		layers[e.Layer] = append(layers[e.Layer], e)
	}

	return Plan{Entries: entries, Layers: layers}
}
