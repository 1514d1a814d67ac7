package model

import (
	"github.com/sarchlab/cosimcore/component"
	"github.com/sarchlab/cosimcore/connection"
	"github.com/sarchlab/cosimcore/databus"
)

// PromoteBinaryChannels implements the binary-channel optimization
// (spec §4.6), valid for the Sequential step type only (Build only
// calls it then): for every output channel of type Binary, collect its
// resolved outgoing Connections. If every target component and the
// source component either have no own time step or share the task's
// time step, the channel is promoted on both sides from Binary to
// BinaryReference and every connection is rebound from its copying
// BufferedBinary link to a zero-copy BinaryRef aliasing the source
// buffer directly. A single mismatching target (or a fan-out that
// includes a filtered connection) forces the whole source channel to
// stay Binary — the test is all-or-nothing per source channel.
func PromoteBinaryChannels(m *Model) {
	bySource := make(map[string][]*connection.Connection)
	for _, conn := range m.Resolver.Resolved {
		bySource[conn.Info.SourceComponent] = append(bySource[conn.Info.SourceComponent], conn)
	}

	for _, src := range m.Components {
		bus := src.Databus()
		for ci := 0; ci < bus.OutCount(); ci++ {
			ch := bus.Out(ci)
			if ch.Type() != databus.Binary {
				continue
			}
			if promoteOneChannel(m, src, ch, ci, bySource[src.Name()]) {
				m.Promoted = append(m.Promoted, src.Name())
			}
		}
	}
}

func promoteOneChannel(m *Model, src component.Component, ch *databus.Channel, chIdx int, conns []*connection.Connection) bool {
	var members []*connection.Connection
	for _, conn := range conns {
		if conn.Info.SourceChannel != chIdx {
			continue
		}
		members = append(members, conn)
	}
	if len(members) == 0 || len(members) != len(ch.Outgoing()) {
		// No resolved connection, or an Outgoing() link with no
		// matching resolved connection, keeps the whole channel
		// Binary; filtered members are caught by IsBinaryEligible below.
		return false
	}

	if srcDelta, hasOwn := src.OwnDeltaTime(); hasOwn && srcDelta != m.Task.DeltaTime {
		return false
	}
	for _, conn := range members {
		if !conn.IsBinaryEligible() {
			return false
		}
		target := m.ByName[conn.Info.TargetComponent]
		if delta, hasOwn := target.OwnDeltaTime(); hasOwn && delta != m.Task.DeltaTime {
			return false
		}
	}

	ch.SetType(databus.BinaryReference)
	for _, conn := range members {
		target := m.ByName[conn.Info.TargetComponent]
		targetCh := target.Databus().In(conn.Info.TargetChannel)
		targetCh.SetType(databus.BinaryReference)
		targetCh.BindIncoming(connection.NewBinaryRef(ch))
		conn.PromoteToBinaryReference(ch.BinaryPtr())
	}
	return true
}
