package model

import (
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/sarchlab/cosimcore/connection"
)

// SetupReport summarizes the decisions Build made while assembling a
// Model: the final evaluation order, which connections the dependency
// solver decoupled to break an algebraic loop, and which output
// channels the binary-channel pass promoted to zero-copy. Rendered as
// three tables via String(), grounded on core/util.go's PrintState use
// of go-pretty/table for tabular run-state dumps.
type SetupReport struct {
	Order     []string
	Decoupled []*connection.Connection
	Promoted  []string
}

func (r SetupReport) String() string {
	var out string

	orderTable := table.NewWriter()
	orderTable.SetTitle("Evaluation Order")
	orderTable.AppendHeader(table.Row{"Position", "Component"})
	for i, name := range r.Order {
		orderTable.AppendRow(table.Row{i, name})
	}
	out += orderTable.Render() + "\n"

	decoupleTable := table.NewWriter()
	decoupleTable.SetTitle("Decoupled Connections")
	decoupleTable.AppendHeader(table.Row{"Source", "Channel", "Target"})
	for _, c := range r.Decoupled {
		decoupleTable.AppendRow(table.Row{c.Info.SourceComponent, c.Info.SourceChannel, c.Info.TargetComponent})
	}
	out += decoupleTable.Render() + "\n"

	promotedTable := table.NewWriter()
	promotedTable.SetTitle("Binary Channels Promoted to Zero-Copy")
	promotedTable.AppendHeader(table.Row{"Component"})
	for _, name := range r.Promoted {
		promotedTable.AppendRow(table.Row{name})
	}
	out += promotedTable.Render()

	return out
}
