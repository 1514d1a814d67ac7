// Package depsolver builds the dependency graph over a model's
// resolved connections, finds the strongly connected components that
// form algebraic loops, and applies the decoupling policy that breaks
// each loop into an acyclic evaluation order (spec §4.2, §4.3).
package depsolver

import (
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/sarchlab/cosimcore/connection"
	"github.com/sarchlab/cosimcore/input"
	"github.com/sarchlab/cosimcore/status"
)

// Edge is one resolved connection, reduced to the component-level
// dependency it implies: Target depends on Source.
type Edge struct {
	Source        string
	SourceChannel int
	Target        string
	Conn          *connection.Connection
	Decouple      input.DecoupleType
	Priority      int
}

// Group is one entry of the evaluation order. Solve always emits one
// component per Group, in topological order of the graph that remains
// after decoupling (spec §4.2).
type Group struct {
	Components []string
}

// Solver builds the component-level dependency graph and derives an
// acyclic evaluation order from it, following the gonum/graph/topo
// TarjanSCC + Sort pattern used throughout the retrieval pack for
// cycle analysis over a directed dependency graph.
type Solver struct {
	components []string
	edges      []Edge

	idOf   map[string]int64
	nameOf map[int64]string
}

// NewSolver builds a Solver over the given component names; edges are
// added with AddEdge once per resolved connection.
func NewSolver(components []string) *Solver {
	s := &Solver{
		components: components,
		idOf:       make(map[string]int64, len(components)),
		nameOf:     make(map[int64]string, len(components)),
	}
	for i, c := range components {
		id := int64(i)
		s.idOf[c] = id
		s.nameOf[id] = c
	}
	return s
}

// AddEdge records that target depends on source through conn.
// Self-loops (a component connected to itself) are recorded too: they
// always form a trivial one-node SCC that decoupling must break.
func (s *Solver) AddEdge(e Edge) {
	s.edges = append(s.edges, e)
}

// Solve runs Tarjan's SCC algorithm over the dependency graph and
// repeatedly applies the decoupling policy (DecoupleNever excluded;
// DecoupleAlways first; then highest Priority; ties broken by lowest
// source component id then lowest source channel id) — breaking one
// edge per remaining non-trivial SCC each round — until the graph is
// fully acyclic, and returns the resulting evaluation order (spec
// §4.2, §4.3). Acyclicity is confirmed with topo.Sort; a loop with no
// remaining decoupling candidate is reported as a topology Error.
func (s *Solver) Solve() ([]Group, []*connection.Connection, status.Result) {
	var decoupled []*connection.Connection

	for round := 0; round <= len(s.edges); round++ {
		g := s.buildGraphExcluding(decoupled)
		sccs := topo.TarjanSCC(g)

		nonTrivial := false
		for _, scc := range sccs {
			if len(scc) < 2 && !s.hasSelfLoop(scc, decoupled) {
				continue
			}
			nonTrivial = true
			names := nodeNames(scc, s.nameOf)
			broke, res := s.decoupleSCC(names, decoupled)
			if res.Level == status.Error {
				return nil, nil, res
			}
			decoupled = append(decoupled, broke...)
		}
		if !nonTrivial {
			break
		}
	}

	g := s.buildGraphExcluding(decoupled)
	sorted, err := topo.Sort(g)
	if err != nil {
		return nil, nil, status.Errf(status.KindTopology,
			"model contains an algebraic loop that cannot be broken by decoupling: %v", err)
	}

	groups := make([]Group, 0, len(sorted))
	for _, n := range sorted {
		groups = append(groups, Group{Components: []string{s.nameOf[n.ID()]}})
	}

	return groups, decoupled, status.Result{}
}

// Layers groups the final acyclic evaluation order into concurrency
// layers: every component in a layer has no dependency, direct or
// transitive, on any other component of the same layer, so a step
// driver may evaluate a whole layer in parallel and only needs to
// barrier-sync between layers (spec §4.4's ParallelST/ParallelMT
// disciplines). decoupled must be the set Solve returned. Layer index
// is the longest-path distance from a source node, the standard
// leveling used to turn a DAG into barrier-synchronizable stages.
func (s *Solver) Layers(decoupled []*connection.Connection) [][]string {
	g := s.buildGraphExcluding(decoupled)
	sorted, err := topo.Sort(g)
	if err != nil {
		return nil
	}

	level := make(map[int64]int, len(sorted))
	for _, n := range sorted {
		level[n.ID()] = 0
	}
	for _, n := range sorted {
		to := g.From(n.ID())
		for to.Next() {
			child := to.Node().ID()
			if level[n.ID()]+1 > level[child] {
				level[child] = level[n.ID()] + 1
			}
		}
	}

	maxLevel := 0
	for _, l := range level {
		if l > maxLevel {
			maxLevel = l
		}
	}

	layers := make([][]string, maxLevel+1)
	for _, n := range sorted {
		l := level[n.ID()]
		layers[l] = append(layers[l], s.nameOf[n.ID()])
	}
	return layers
}

func (s *Solver) buildGraphExcluding(decoupled []*connection.Connection) *simple.DirectedGraph {
	skip := make(map[*connection.Connection]bool, len(decoupled))
	for _, c := range decoupled {
		skip[c] = true
	}

	g := simple.NewDirectedGraph()
	for _, c := range s.components {
		g.AddNode(simple.Node(s.idOf[c]))
	}
	for _, e := range s.edges {
		if skip[e.Conn] {
			continue
		}
		from, to := s.idOf[e.Source], s.idOf[e.Target]
		if from == to {
			continue // self-loops can't be gonum edges; decoupling handles them directly
		}
		g.SetEdge(g.NewEdge(simple.Node(from), simple.Node(to)))
	}
	return g
}

func (s *Solver) hasSelfLoop(scc []graph.Node, decoupled []*connection.Connection) bool {
	if len(scc) != 1 {
		return false
	}
	skip := connSet(decoupled)
	name := s.nameOf[scc[0].ID()]
	for _, e := range s.edges {
		if !skip[e.Conn] && e.Source == name && e.Target == name {
			return true
		}
	}
	return false
}

// decoupleSCC picks, among the not-yet-decoupled edges internal to one
// SCC, the one edge to decouple so the SCC's internal cycle breaks (or
// shrinks, for an SCC with more than one independent cycle — Solve
// calls this once per remaining non-trivial SCC each round until none
// are left). Never-eligible edges are excluded from consideration
// entirely; if every remaining internal edge is DecoupleNever,
// decoupling fails with a topology Error (spec §4.3).
func (s *Solver) decoupleSCC(members []string, already []*connection.Connection) ([]*connection.Connection, status.Result) {
	memberSet := make(map[string]bool, len(members))
	for _, m := range members {
		memberSet[m] = true
	}
	skip := connSet(already)

	var candidates []Edge
	for _, e := range s.edges {
		if skip[e.Conn] || !memberSet[e.Source] || !memberSet[e.Target] {
			continue
		}
		if e.Decouple == input.DecoupleNever {
			continue
		}
		candidates = append(candidates, e)
	}

	if len(candidates) == 0 {
		return nil, status.Errf(status.KindTopology,
			"algebraic loop among components %v has no connection eligible for decoupling", members)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		aAlways := a.Decouple == input.DecoupleAlways
		bAlways := b.Decouple == input.DecoupleAlways
		if aAlways != bAlways {
			return aAlways
		}
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		if s.idOf[a.Source] != s.idOf[b.Source] {
			return s.idOf[a.Source] < s.idOf[b.Source]
		}
		return a.SourceChannel < b.SourceChannel
	})

	chosen := candidates[0]
	return []*connection.Connection{chosen.Conn}, status.Result{}
}

func connSet(conns []*connection.Connection) map[*connection.Connection]bool {
	set := make(map[*connection.Connection]bool, len(conns))
	for _, c := range conns {
		set[c] = true
	}
	return set
}

func nodeNames(nodes []graph.Node, nameOf map[int64]string) []string {
	names := make([]string, len(nodes))
	for i, n := range nodes {
		names[i] = nameOf[n.ID()]
	}
	return names
}
