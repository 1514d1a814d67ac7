package databus

import "github.com/sarchlab/cosimcore/status"

// VectorInfo describes a contiguous run of scalar channels that
// together form one declared vector port (spec §3, §4.1). StartIndex
// and EndIndex are inclusive indices into the owning Databus's In or
// Out channel list.
type VectorInfo struct {
	Name       string
	StartIndex int
	EndIndex   int
}

// Width returns the number of scalar channels the vector spans.
func (v VectorInfo) Width() int { return v.EndIndex - v.StartIndex + 1 }

// Databus is a component's full set of input and output channels, in
// declaration order, plus the vector groupings over them (spec §3).
// Component implementations read/write through it rather than holding
// their own port state, mirroring the teacher's Port/Buffer split.
type Databus struct {
	in  []*Channel
	out []*Channel

	inVectors  []VectorInfo
	outVectors []VectorInfo
}

// NewDatabus constructs an empty databus; components populate it during
// their own construction via AddIn/AddOut (spec §5 phase 0).
func NewDatabus() *Databus {
	return &Databus{}
}

// AddIn appends a scalar input channel and returns its index.
func (d *Databus) AddIn(name string, typ ChannelType, mode Mode) int {
	d.in = append(d.in, NewChannel(name, typ, mode))
	return len(d.in) - 1
}

// AddOut appends a scalar output channel and returns its index.
func (d *Databus) AddOut(name string, typ ChannelType, mode Mode) int {
	d.out = append(d.out, NewChannel(name, typ, mode))
	return len(d.out) - 1
}

// AddInVector appends width scalar input channels, each named name,
// and records the vector grouping over them, returning the group index.
func (d *Databus) AddInVector(name string, width int, typ ChannelType, mode Mode) int {
	start := len(d.in)
	for i := 0; i < width; i++ {
		d.AddIn(name, typ, mode)
	}
	d.inVectors = append(d.inVectors, VectorInfo{Name: name, StartIndex: start, EndIndex: start + width - 1})
	return len(d.inVectors) - 1
}

// AddOutVector appends width scalar output channels and records the
// vector grouping over them, returning the group index.
func (d *Databus) AddOutVector(name string, width int, typ ChannelType, mode Mode) int {
	start := len(d.out)
	for i := 0; i < width; i++ {
		d.AddOut(name, typ, mode)
	}
	d.outVectors = append(d.outVectors, VectorInfo{Name: name, StartIndex: start, EndIndex: start + width - 1})
	return len(d.outVectors) - 1
}

// InCount returns the number of scalar input channels.
func (d *Databus) InCount() int { return len(d.in) }

// OutCount returns the number of scalar output channels.
func (d *Databus) OutCount() int { return len(d.out) }

// In returns the scalar input channel at index i.
func (d *Databus) In(i int) *Channel { return d.in[i] }

// Out returns the scalar output channel at index i.
func (d *Databus) Out(i int) *Channel { return d.out[i] }

// InVectorInfo returns the i'th declared input vector grouping.
func (d *Databus) InVectorInfo(i int) VectorInfo { return d.inVectors[i] }

// OutVectorInfo returns the i'th declared output vector grouping.
func (d *Databus) OutVectorInfo(i int) VectorInfo { return d.outVectors[i] }

// InVectorCount returns the number of declared input vector groupings.
func (d *Databus) InVectorCount() int { return len(d.inVectors) }

// OutVectorCount returns the number of declared output vector groupings.
func (d *Databus) OutVectorCount() int { return len(d.outVectors) }

// FindIn returns the index of the scalar input channel with the given
// name, or -1 if none exists. For a vector port's members the name is
// the vector's declared name; callers needing a specific element index
// into the vector instead.
func (d *Databus) FindIn(name string) int {
	for i, c := range d.in {
		if c.Name() == name {
			return i
		}
	}
	return -1
}

// FindOut returns the index of the scalar output channel with the
// given name, or -1 if none exists.
func (d *Databus) FindOut(name string) int {
	for i, c := range d.out {
		if c.Name() == name {
			return i
		}
	}
	return -1
}

// TriggerInConnections pulls fresh values into every bound input
// channel for the given coupling interval (spec §4.1 step 1). Stops at
// the first Error; a channel with no bound source is left untouched.
func (d *Databus) TriggerInConnections(interval TimeInterval) status.Result {
	for _, c := range d.in {
		if r := c.Trigger(interval); r.Level == status.Error {
			return r
		}
	}
	return status.Result{}
}

// UpdateOutChannels pushes every output channel's current value,
// timestamped at now, to its bound downstream targets (spec §4.1 step
// 3). Stops at the first Error.
func (d *Databus) UpdateOutChannels(now float64) status.Result {
	for _, c := range d.out {
		if r := c.Push(now); r.Level == status.Error {
			return r
		}
	}
	return status.Result{}
}

// CheckMandatoryConnected verifies every Mandatory channel, input and
// output, ended up bound after connection resolution (spec §3, §7). The
// first unbound mandatory channel is reported as an input-structural
// Error; it is the caller's job to attach file/line via status.ErrfAt.
func (d *Databus) CheckMandatoryConnected() status.Result {
	for _, c := range d.in {
		if c.Mode() == Mandatory && !c.Bound() {
			return status.Errf(status.KindInputStructural, "mandatory input channel %q is not connected", c.Name())
		}
	}
	for _, c := range d.out {
		if c.Mode() == Mandatory && !c.Bound() {
			return status.Errf(status.KindInputStructural, "mandatory output channel %q is not connected", c.Name())
		}
	}
	return status.Result{}
}
