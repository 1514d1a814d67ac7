// Package dotgraph renders a model's component topology as Graphviz DOT
// source, for the setup-time debug dump spec §4.7 asks for (one file per
// component showing its own ports, one for the whole model showing the
// resolved wiring and which connections were decoupled).
package dotgraph

import (
	"github.com/emicklei/dot"

	"github.com/sarchlab/cosimcore/connection"
	"github.com/sarchlab/cosimcore/databus"
)

// WriteModel renders the whole model's component graph: one DOT node
// per component, one edge per resolved connection, decoupled edges
// styled dashed and labeled "decoupled".
func WriteModel(components []string, resolved []*connection.Connection, decoupled []*connection.Connection) string {
	g := dot.NewGraph(dot.Directed)
	g.Attr("rankdir", "LR")

	nodes := make(map[string]dot.Node, len(components))
	for _, name := range components {
		nodes[name] = g.Node(name)
	}

	isDecoupled := make(map[*connection.Connection]bool, len(decoupled))
	for _, c := range decoupled {
		isDecoupled[c] = true
	}

	for _, c := range resolved {
		src, ok := nodes[c.Info.SourceComponent]
		if !ok {
			src = g.Node(c.Info.SourceComponent)
			nodes[c.Info.SourceComponent] = src
		}
		dst, ok := nodes[c.Info.TargetComponent]
		if !ok {
			dst = g.Node(c.Info.TargetComponent)
			nodes[c.Info.TargetComponent] = dst
		}

		edge := g.Edge(src, dst)
		if isDecoupled[c] {
			edge.Attr("style", "dashed").Attr("label", "decoupled")
		}
	}

	return g.String()
}

// WriteComponent renders one component's own ports as a standalone DOT
// graph labeled with the component name: one box node per distinct port
// name, keyed with an in_/out_ prefix and labeled with the port's name
// and type, so a reader can see a single component's interface without
// the rest of the model. No edges are drawn.
func WriteComponent(name string, bus *databus.Databus) string {
	g := dot.NewGraph(dot.Directed)
	g.Attr("rankdir", "LR")
	g.Attr("label", name)

	for i := 0; i < bus.InCount(); i++ {
		ch := bus.In(i)
		n := g.Node("in_" + ch.Name())
		n.Attr("shape", "box").Attr("label", ch.Name()+" : "+ch.Type().String())
	}
	for i := 0; i < bus.OutCount(); i++ {
		ch := bus.Out(i)
		n := g.Node("out_" + ch.Name())
		n.Attr("shape", "box").Attr("label", ch.Name()+" : "+ch.Type().String())
	}

	return g.String()
}
