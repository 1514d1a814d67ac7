package dotgraph_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/cosimcore/connection"
	"github.com/sarchlab/cosimcore/databus"
	"github.com/sarchlab/cosimcore/dotgraph"
)

var _ = Describe("WriteModel", func() {
	It("emits a node per component and an edge per resolved connection", func() {
		conn := connection.New(connection.Info{SourceComponent: "A", TargetComponent: "B"}, databus.Optional, nil)

		out := dotgraph.WriteModel([]string{"A", "B"}, []*connection.Connection{conn}, nil)

		Expect(out).To(ContainSubstring("A"))
		Expect(out).To(ContainSubstring("B"))
	})

	It("styles a decoupled connection as dashed", func() {
		conn := connection.New(connection.Info{SourceComponent: "A", TargetComponent: "B"}, databus.Optional, nil)

		out := dotgraph.WriteModel([]string{"A", "B"}, []*connection.Connection{conn}, []*connection.Connection{conn})

		Expect(out).To(ContainSubstring("dashed"))
	})
})

var _ = Describe("WriteComponent", func() {
	It("emits one node per declared port", func() {
		bus := databus.NewDatabus()
		bus.AddIn("deriv", databus.Double, databus.Mandatory)
		bus.AddOut("state", databus.Double, databus.Optional)

		out := dotgraph.WriteComponent("Sink", bus)

		Expect(strings.Contains(out, "deriv")).To(BeTrue())
		Expect(strings.Contains(out, "state")).To(BeTrue())
	})
})
