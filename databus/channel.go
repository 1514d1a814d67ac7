package databus

import "github.com/sarchlab/cosimcore/status"

// TimeInterval is the [start, end] coupling interval a trigger or a
// filter evaluates over (spec §4.1, §4.5).
type TimeInterval struct {
	Start float64
	End   float64
}

// OutgoingLink is the push side of a resolved connection: the
// connection package implements this against its own Connection type so
// that databus never imports connection (the dependency only runs the
// other way, connection -> databus).
type OutgoingLink interface {
	// Push delivers the source channel's current value downstream,
	// timestamped at now so an inter/extrapolation filter on the
	// receiving end can build its sample history (spec §3, §4.5). It
	// never returns an Error result for an Optional target: a dangling
	// push is only ever a Warning (spec §7).
	Push(v Value, now float64) status.Result
}

// InboundLink is the pull side of a resolved connection: invoked once
// per coupling step by TriggerInConnections to fetch (and, if the
// connection carries a filter, inter/extrapolate) the value an input
// channel should see for the given interval.
type InboundLink interface {
	Pull(interval TimeInterval) (Value, status.Result)
}

// Channel is one scalar port slot of a component's databus: either an
// input (bound to at most one InboundLink) or an output (fanning out to
// zero or more OutgoingLink targets) (spec §3).
type Channel struct {
	name string
	typ  ChannelType
	mode Mode

	value Value
	bound bool // true once an incoming/outgoing connection is attached

	incoming InboundLink
	outgoing []OutgoingLink
}

// NewChannel constructs an unbound channel with the given declared
// type and mode. The initial value is the type's zero Value; components
// overwrite it during Enter-Init (spec §5 phase 1).
func NewChannel(name string, typ ChannelType, mode Mode) *Channel {
	return &Channel{name: name, typ: typ, mode: mode, value: Value{Type: typ}}
}

// Name returns the channel's port name.
func (c *Channel) Name() string { return c.name }

// Type returns the channel's declared wire type.
func (c *Channel) Type() ChannelType { return c.typ }

// SetType overwrites the declared wire type, used by the binary-channel
// promotion pass to flip Binary to BinaryReference in place (spec §4.6).
func (c *Channel) SetType(t ChannelType) { c.typ = t }

// Mode returns whether this channel must end up connected.
func (c *Channel) Mode() Mode { return c.mode }

// Bound reports whether a connection has been attached to this channel.
func (c *Channel) Bound() bool { return c.bound }

// Value returns the channel's current value.
func (c *Channel) Value() Value { return c.value }

// BinaryPtr returns a pointer to this channel's own Binary byte slice,
// the aliasing target a promoted BinaryReference connection shares
// instead of copying (spec §4.6).
func (c *Channel) BinaryPtr() *[]byte { return &c.value.Binary }

// SetValue overwrites the channel's current value. Called by a
// component's DoStep for an output channel, or by TriggerInConnections
// for an input channel.
func (c *Channel) SetValue(v Value) { c.value = v }

// BindOutgoing attaches one more fan-out target to an output channel.
func (c *Channel) BindOutgoing(l OutgoingLink) {
	c.bound = true
	c.outgoing = append(c.outgoing, l)
}

// BindIncoming attaches the (single) source link to an input channel,
// replacing any earlier one rather than fanning in. The resolver rejects
// a multiply-driven input before binding; the binary-channel promotion
// pass calls it a second time on purpose to swap in a zero-copy link.
func (c *Channel) BindIncoming(l InboundLink) {
	c.bound = true
	c.incoming = l
}

// Outgoing returns the channel's fan-out targets, for diagnostics and
// for the binary-channel promotion pass.
func (c *Channel) Outgoing() []OutgoingLink { return c.outgoing }

// Push forwards the channel's current value, timestamped at now, to
// every bound downstream target. Returns the first non-Ok result, if any.
func (c *Channel) Push(now float64) status.Result {
	for _, l := range c.outgoing {
		if r := l.Push(c.value, now); r.Level != status.Ok {
			return r
		}
	}
	return status.Result{}
}

// Trigger pulls this channel's fresh value for the given interval from
// its bound source, if any, and stores it. Unbound Optional inputs keep
// their last (or zero) value.
func (c *Channel) Trigger(interval TimeInterval) status.Result {
	if c.incoming == nil {
		return status.Result{}
	}
	v, r := c.incoming.Pull(interval)
	if r.Level == status.Error {
		return r
	}
	c.value = v
	return r
}
