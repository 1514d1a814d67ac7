// Package connection resolves the user-authored ConnectionInput tree
// into live typed links between component databuses, and carries the
// per-connection inter/extrapolation filter and binary-channel
// promotion state (spec §3, §4.5, §4.6).
package connection

import (
	"github.com/sarchlab/cosimcore/databus"
	"github.com/sarchlab/cosimcore/input"
	"github.com/sarchlab/cosimcore/status"
)

// Info is the resolved, scalar-level metadata for one connection: a
// vector ConnectionInput expands into one Info (and one Connection) per
// member channel (spec §3).
type Info struct {
	SourceComponent string
	SourceChannel   int
	TargetComponent string
	TargetChannel   int

	Decouple input.DecoupleType
	Priority int

	SourceFile string
	SourceLine int
}

// Connection is the live, typed link between one source output channel
// and one target input channel. It implements both
// databus.OutgoingLink (the source channel pushes into it) and
// databus.InboundLink (the target channel pulls from it), so that a
// filter — when present — sits between a source that updates on its
// own coupling rate and a target that may sample at a different one.
type Connection struct {
	Info Info

	filter Filter // nil: Direct passthrough, no inter/extrapolation
	mode   databus.Mode

	binRef *[]byte // set once promoted to BinaryReference (spec §4.6)
}

// New builds a Connection. filter may be nil for a Direct passthrough
// (the common case: source and target share a coupling rate).
func New(info Info, targetMode databus.Mode, filter Filter) *Connection {
	return &Connection{Info: info, mode: targetMode, filter: filter}
}

// Push implements databus.OutgoingLink. With no filter it is a no-op:
// the target reads the source channel's value through the separate
// link the resolver binds (Direct or BufferedBinary) instead, which is
// cheaper than staging a copy here when no inter/extrapolation is
// needed.
func (c *Connection) Push(v databus.Value, now float64) status.Result {
	if c.filter != nil {
		c.filter.Record(now, v)
	}
	return status.Result{}
}

// Pull implements databus.InboundLink. When a filter is attached, it
// evaluates the filter at the requested interval's end time. With no
// filter, the caller is expected to have wired the target channel
// Directly off the source's live value (see Resolver.Resolve); Pull exists
// on the Direct path too so Connection satisfies databus.InboundLink
// uniformly, but Resolver only uses it when a filter is present.
func (c *Connection) Pull(interval databus.TimeInterval) (databus.Value, status.Result) {
	if c.filter == nil {
		return databus.Value{}, status.Errf(status.KindRuntime,
			"Pull called on a Direct (unfiltered) connection; this is a resolver bug")
	}
	return c.filter.Evaluate(interval.End), status.Result{}
}

// IsBinaryEligible reports whether this connection can take part in a
// zero-copy BinaryReference promotion (spec §4.6): true exactly when no
// inter/extrapolation filter is attached, since a filter needs to own a
// stable history of copied samples. It does not look at the channel
// type; callers check for Binary themselves.
func (c *Connection) IsBinaryEligible() bool { return c.filter == nil }

// PromoteToBinaryReference records that the connection now aliases src
// directly instead of copying (spec §4.6). It does not rebind the
// target channel; the caller swaps in the BinaryRef link itself.
func (c *Connection) PromoteToBinaryReference(src *[]byte) { c.binRef = src }

// BinaryReference returns the aliased source buffer, if this connection
// has been promoted.
func (c *Connection) BinaryReference() (*[]byte, bool) {
	return c.binRef, c.binRef != nil
}

// Direct wires a target channel's current value straight off the
// source channel when no filter is needed, bypassing Push/Pull. It is
// the zero-overhead path the resolver uses for the overwhelming common
// case (source and target on the same coupling rate).
type Direct struct {
	source *databus.Channel
}

// Push is a no-op: the live value is read directly off source in Pull.
func (d *Direct) Push(databus.Value, float64) status.Result { return status.Result{} }

// Pull returns the source channel's current value verbatim.
func (d *Direct) Pull(databus.TimeInterval) (databus.Value, status.Result) {
	return d.source.Value(), status.Result{}
}

// NewDirect builds the zero-overhead unfiltered link between source and
// whatever target channel gets bound to it. The concrete type satisfies
// both databus.OutgoingLink and databus.InboundLink, since the source
// side binds it as a no-op sentinel and the target side binds it as
// the actual value source.
func NewDirect(source *databus.Channel) *Direct {
	return &Direct{source: source}
}

// BufferedBinary is the default wiring for a Binary-typed connection
// with no filter (spec §4.6): unlike Direct, it owns a private copy of
// every pushed byte slice, so a target never aliases the source
// channel's own buffer. This is the "copying mode" the binary-channel
// optimization promotes away from once source and every target share
// a task time step (see PromoteToBinaryReference / BinaryRef below).
type BufferedBinary struct {
	buf []byte
}

// NewBufferedBinary builds an un-promoted binary connection.
func NewBufferedBinary() *BufferedBinary { return &BufferedBinary{} }

// Push copies the pushed bytes into this connection's own buffer.
func (b *BufferedBinary) Push(v databus.Value, _ float64) status.Result {
	b.buf = append(b.buf[:0], v.Binary...)
	return status.Result{}
}

// Pull hands back a Value over the connection's private copy.
func (b *BufferedBinary) Pull(databus.TimeInterval) (databus.Value, status.Result) {
	return databus.BinaryValue(b.buf), status.Result{}
}

// BinaryRef is the zero-copy wiring a Binary connection is rebound to
// once promoted to BinaryReference (spec §4.6): Pull aliases the
// source channel's own buffer directly instead of copying.
type BinaryRef struct {
	source *databus.Channel
}

// NewBinaryRef builds the promoted, zero-copy wiring aliasing source.
func NewBinaryRef(source *databus.Channel) *BinaryRef { return &BinaryRef{source: source} }

// Push is a no-op: readers alias the source buffer directly in Pull.
func (r *BinaryRef) Push(databus.Value, float64) status.Result { return status.Result{} }

// Pull returns a BinaryReference Value aliasing the source channel's
// own buffer; readers must not mutate it.
func (r *BinaryRef) Pull(databus.TimeInterval) (databus.Value, status.Result) {
	return databus.BinaryRefValue(r.source.BinaryPtr()), status.Result{}
}
