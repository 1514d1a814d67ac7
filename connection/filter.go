package connection

import "github.com/sarchlab/cosimcore/databus"

// Filter re-anchors a source's coupling-rate samples to whatever time a
// target actually needs them at, implementing the inter/extrapolation
// orders of spec §3: constant (zero-order hold) and linear
// (first-order). Only Double-typed channels are interpolated; every
// other channel type degrades to zero-order hold regardless of the
// configured order, since extrapolating a Bool/String/Binary sample is
// meaningless.
type Filter interface {
	// Record is called every time the source pushes a fresh sample.
	Record(t float64, v databus.Value)
	// Evaluate produces the value to hand the target at time t.
	Evaluate(t float64) databus.Value
}

// ConstantFilter holds the last recorded sample and returns it
// unchanged regardless of t (zero-order hold).
type ConstantFilter struct {
	have bool
	v    databus.Value
}

func (f *ConstantFilter) Record(_ float64, v databus.Value) {
	f.have = true
	f.v = v
}

func (f *ConstantFilter) Evaluate(float64) databus.Value { return f.v }

// LinearFilter keeps the last two recorded samples and, for Double
// channels, extrapolates/interpolates linearly between them; any other
// channel type falls back to the last sample (constant hold).
type LinearFilter struct {
	t0, t1 float64
	v0, v1 databus.Value
	n      int // number of samples recorded so far, capped at 2
}

func (f *LinearFilter) Record(t float64, v databus.Value) {
	switch f.n {
	case 0:
		f.t0, f.v0 = t, v
		f.n = 1
	default:
		f.t0, f.v0 = f.t1, f.v1
		f.t1, f.v1 = t, v
		if f.n < 2 {
			f.n++
		}
	}
	if f.n == 1 {
		f.t1, f.v1 = t, v
	}
}

func (f *LinearFilter) Evaluate(t float64) databus.Value {
	if f.n < 2 || f.v1.Type != databus.Double {
		return f.v1
	}
	if f.t1 == f.t0 {
		return f.v1
	}
	slope := (f.v1.Double - f.v0.Double) / (f.t1 - f.t0)
	return databus.DoubleValue(f.v1.Double + slope*(t-f.t1))
}

// NewFilter builds the Filter implementing the given order, per the
// input tree's InterExtrapolationInput (spec §3, §6).
func NewFilter(orderLinear bool) Filter {
	if orderLinear {
		return &LinearFilter{}
	}
	return &ConstantFilter{}
}
