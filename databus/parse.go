package databus

import "fmt"

// ParseChannelType maps a PortSpec's textual channel type (spec §6) to
// the ChannelType enum, the databus-layer counterpart to
// input.Parse*'s EnumMapping.c-style tables.
func ParseChannelType(s string) (ChannelType, error) {
	switch s {
	case "Double":
		return Double, nil
	case "Integer":
		return Integer, nil
	case "Bool":
		return Bool, nil
	case "String":
		return String, nil
	case "Binary":
		return Binary, nil
	default:
		return 0, fmt.Errorf("unknown channel type %q", s)
	}
}

// ParseMode maps a PortSpec's Mandatory flag to a Mode.
func ParseMode(mandatory bool) Mode {
	if mandatory {
		return Mandatory
	}
	return Optional
}
