// Package databus implements the per-component port container: the
// typed input/output channel lists, their scalar and vector views, and
// the trigger/update operations the step driver calls each coupling
// step (spec §3, §4.1).
package databus

import "fmt"

// ChannelType is the wire type of a channel (spec §3).
type ChannelType int

const (
	Double ChannelType = iota
	Integer
	Bool
	String
	Binary
	// BinaryReference is the zero-copy promotion of a Binary channel
	// whose source and every target share a task time step (spec §4.6).
	BinaryReference
)

func (t ChannelType) String() string {
	switch t {
	case Double:
		return "Double"
	case Integer:
		return "Integer"
	case Bool:
		return "Bool"
	case String:
		return "String"
	case Binary:
		return "Binary"
	case BinaryReference:
		return "BinaryReference"
	default:
		return "Unknown"
	}
}

// compatible implements the type-promotion rule of spec §3: channel
// types are compatible only by equality, except that a BinaryReference
// target is compatible with a Binary or BinaryReference source (the
// promotion itself, driven by §4.6, rewrites both sides together so in
// practice they always match after promotion; this equality check is
// what the resolver uses before promotion runs).
func compatible(a, b ChannelType) bool {
	if a == b {
		return true
	}
	norm := func(t ChannelType) ChannelType {
		if t == BinaryReference {
			return Binary
		}
		return t
	}
	return norm(a) == norm(b)
}

// Compatible reports whether two channel types may be connected, per
// spec §3's equality-after-promotion rule.
func Compatible(a, b ChannelType) bool { return compatible(a, b) }

// Mode is whether a channel must end up connected after setup (spec §3).
type Mode int

const (
	Optional Mode = iota
	Mandatory
)

// Value is a typed, tagged union carrying one channel's payload. Only
// the field matching Type is meaningful.
type Value struct {
	Type    ChannelType
	Double  float64
	Integer int32
	Bool    bool
	Str     string
	Binary  []byte
	// BinaryRef points directly at a source's Binary buffer; set only
	// when Type == BinaryReference. Readers must not mutate it (spec §5).
	BinaryRef *[]byte
}

// DoubleValue builds a Double-typed Value.
func DoubleValue(v float64) Value { return Value{Type: Double, Double: v} }

// IntegerValue builds an Integer-typed Value.
func IntegerValue(v int32) Value { return Value{Type: Integer, Integer: v} }

// BoolValue builds a Bool-typed Value.
func BoolValue(v bool) Value { return Value{Type: Bool, Bool: v} }

// StringValue builds a String-typed Value.
func StringValue(v string) Value { return Value{Type: String, Str: v} }

// BinaryValue builds a Binary-typed Value, copying the given bytes.
func BinaryValue(v []byte) Value {
	cp := make([]byte, len(v))
	copy(cp, v)
	return Value{Type: Binary, Binary: cp}
}

// BinaryRefValue builds a BinaryReference-typed Value aliasing buf.
func BinaryRefValue(buf *[]byte) Value { return Value{Type: BinaryReference, BinaryRef: buf} }

func (v Value) String() string {
	switch v.Type {
	case Double:
		return fmt.Sprintf("%g", v.Double)
	case Integer:
		return fmt.Sprintf("%d", v.Integer)
	case Bool:
		return fmt.Sprintf("%t", v.Bool)
	case String:
		return v.Str
	case Binary, BinaryReference:
		return fmt.Sprintf("<%d bytes>", len(v.bytes()))
	default:
		return "<invalid>"
	}
}

// ValueFromFloat64 builds a Value of the given type from a float64,
// the numeric representation every component's InitialValues and
// Parameters are carried in (spec §6). String and Binary channels have
// no numeric initializer and return the type's zero Value.
func ValueFromFloat64(t ChannelType, v float64) Value {
	switch t {
	case Double:
		return DoubleValue(v)
	case Integer:
		return IntegerValue(int32(v))
	case Bool:
		return BoolValue(v != 0)
	default:
		return Value{Type: t}
	}
}

func (v Value) bytes() []byte {
	if v.Type == BinaryReference && v.BinaryRef != nil {
		return *v.BinaryRef
	}
	return v.Binary
}
