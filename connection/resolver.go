package connection

import (
	"fmt"

	"github.com/sarchlab/cosimcore/databus"
	"github.com/sarchlab/cosimcore/input"
	"github.com/sarchlab/cosimcore/status"
)

// Databuses maps a component name to its databus, the lookup table the
// Resolver needs to turn an Endpoint's component+channel name into a
// concrete *databus.Channel.
type Databuses map[string]*databus.Databus

// Resolver turns the parsed ConnectionInput tree into live channel
// bindings, expanding vector endpoints into their member scalars and
// rejecting structurally invalid or multiply-driven connections (spec
// §3, §7).
type Resolver struct {
	buses Databuses

	// Resolved, in input order, for depsolver and dotgraph to consume.
	Resolved []*Connection

	drivenBy map[string]bool // target component name + input channel pointer, for inputs already bound
}

// NewResolver builds a Resolver over the given component databuses.
func NewResolver(buses Databuses) *Resolver {
	return &Resolver{buses: buses, drivenBy: make(map[string]bool)}
}

// Resolve expands and wires one ConnectionInput, appending the
// resulting Connection(s) to Resolved. A scalar endpoint produces
// exactly one Connection; a vector endpoint of width N produces N,
// each between corresponding member channels in declaration order
// (spec §3).
func (r *Resolver) Resolve(ci input.ConnectionInput) status.Result {
	srcComp, srcChans, srcIdx, res := r.expandEndpoint(ci.From, false, ci.SourceFile, ci.SourceLine)
	if res.Level == status.Error {
		return res
	}
	dstComp, dstChans, dstIdx, res := r.expandEndpoint(ci.To, true, ci.SourceFile, ci.SourceLine)
	if res.Level == status.Error {
		return res
	}

	if len(srcChans) != len(dstChans) {
		return status.ErrfAt(status.KindInputStructural, ci.SourceFile, ci.SourceLine,
			"connection endpoint width mismatch: %d vs %d", len(srcChans), len(dstChans))
	}

	var decouple input.DecoupleType
	var priority int
	if d, ok := ci.Decoupling.Get(); ok {
		decouple, priority = d.Type, d.Priority
	}

	var filterOrderLinear bool
	haveFilter := false
	if ie, ok := ci.InterExtrapolation.Get(); ok {
		haveFilter = true
		filterOrderLinear = ie.Order == input.OrderLinear
	}

	for i := range srcChans {
		srcCh := srcChans[i]
		dstCh := dstChans[i]

		if !databus.Compatible(srcCh.Type(), dstCh.Type()) {
			return status.ErrfAt(status.KindInputStructural, ci.SourceFile, ci.SourceLine,
				"incompatible channel types: %s -> %s", srcCh.Type(), dstCh.Type())
		}

		key := fmt.Sprintf("%s.%p", dstComp, dstCh)
		if r.drivenBy[key] {
			return status.ErrfAt(status.KindInputStructural, ci.SourceFile, ci.SourceLine,
				"input channel on component %q is driven by more than one connection", dstComp)
		}
		r.drivenBy[key] = true

		info := Info{
			SourceComponent: srcComp,
			SourceChannel:   srcIdx[i],
			TargetComponent: dstComp,
			TargetChannel:   dstIdx[i],
			Decouple:        decouple,
			Priority:        priority,
			SourceFile:      ci.SourceFile,
			SourceLine:      ci.SourceLine,
		}

		switch {
		case haveFilter:
			conn := New(info, dstCh.Mode(), NewFilter(filterOrderLinear))
			srcCh.BindOutgoing(conn)
			dstCh.BindIncoming(conn)
			r.Resolved = append(r.Resolved, conn)

		case srcCh.Type() == databus.Binary:
			// Binary channels default to a copying connection (spec
			// §4.6); the model's setup-time promotion pass rebinds
			// this to a zero-copy BinaryRef when every target and the
			// source share the task time step.
			link := NewBufferedBinary()
			srcCh.BindOutgoing(link)
			dstCh.BindIncoming(link)
			conn := New(info, dstCh.Mode(), nil)
			r.Resolved = append(r.Resolved, conn)

		default:
			link := NewDirect(srcCh)
			srcCh.BindOutgoing(link)
			dstCh.BindIncoming(link)
			conn := New(info, dstCh.Mode(), nil)
			r.Resolved = append(r.Resolved, conn)
		}
	}

	return status.Result{}
}

// expandEndpoint resolves one connection Endpoint into its component
// name and ordered list of member channels. vector endpoints on an
// input side must name a declared input vector group (and symmetrically
// for output), following spec §3's "contiguous range" model; a scalar
// endpoint expands to a single-element list.
func (r *Resolver) expandEndpoint(
	e input.Endpoint, isTarget bool, file string, line int,
) (string, []*databus.Channel, []int, status.Result) {
	compName, ok := e.Component.Get()
	if !ok {
		return "", nil, nil, status.ErrfAt(status.KindInputStructural, file, line,
			"connection endpoint names no component")
	}

	bus, ok := r.buses[compName]
	if !ok {
		return "", nil, nil, status.ErrfAt(status.KindInputStructural, file, line,
			"connection endpoint refers to unknown component %q", compName)
	}

	if e.Kind == input.EndpointScalar {
		idx := findChannel(bus, e.Channel, isTarget)
		if idx < 0 {
			return "", nil, nil, status.ErrfAt(status.KindInputStructural, file, line,
				"component %q has no channel %q", compName, e.Channel)
		}
		ch := channelAt(bus, idx, isTarget)
		return compName, []*databus.Channel{ch}, []int{idx}, status.Result{}
	}

	// Vector endpoint: e.StartIndex/EndIndex name a sub-range of the
	// named vector's members (spec §3 allows connecting a slice of a
	// declared vector, not only the whole thing).
	base := findVectorStart(bus, e.Channel, isTarget)
	if base < 0 {
		return "", nil, nil, status.ErrfAt(status.KindInputStructural, file, line,
			"component %q has no vector channel %q", compName, e.Channel)
	}

	if e.EndIndex < e.StartIndex {
		return "", nil, nil, status.ErrfAt(status.KindInputStructural, file, line,
			"vector endpoint %q has endIndex %d < startIndex %d", e.Channel, e.EndIndex, e.StartIndex)
	}

	var chans []*databus.Channel
	var idxs []int
	for i := e.StartIndex; i <= e.EndIndex; i++ {
		chans = append(chans, channelAt(bus, base+i, isTarget))
		idxs = append(idxs, base+i)
	}
	return compName, chans, idxs, status.Result{}
}

func findChannel(bus *databus.Databus, name string, isTarget bool) int {
	if isTarget {
		return bus.FindIn(name)
	}
	return bus.FindOut(name)
}

func channelAt(bus *databus.Databus, idx int, isTarget bool) *databus.Channel {
	if isTarget {
		return bus.In(idx)
	}
	return bus.Out(idx)
}

func findVectorStart(bus *databus.Databus, name string, isTarget bool) int {
	if isTarget {
		for i := 0; i < bus.InVectorCount(); i++ {
			v := bus.InVectorInfo(i)
			if v.Name == name {
				return v.StartIndex
			}
		}
		return -1
	}
	for i := 0; i < bus.OutVectorCount(); i++ {
		v := bus.OutVectorInfo(i)
		if v.Name == name {
			return v.StartIndex
		}
	}
	return -1
}
