package connection_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/cosimcore/connection"
	"github.com/sarchlab/cosimcore/databus"
	"github.com/sarchlab/cosimcore/input"
	"github.com/sarchlab/cosimcore/status"
)

func scalarEndpoint(comp, channel string) input.Endpoint {
	return input.Endpoint{Kind: input.EndpointScalar, Component: input.Some(comp), Channel: channel}
}

func vectorEndpoint(comp, channel string, start, end int) input.Endpoint {
	return input.Endpoint{
		Kind: input.EndpointVector, Component: input.Some(comp), Channel: channel,
		StartIndex: start, EndIndex: end,
	}
}

var _ = Describe("Resolver", func() {
	var buses connection.Databuses

	BeforeEach(func() {
		src := databus.NewDatabus()
		src.AddOut("y", databus.Double, databus.Optional)
		src.AddOutVector("v", 3, databus.Double, databus.Optional)

		dst := databus.NewDatabus()
		dst.AddIn("u", databus.Double, databus.Mandatory)
		dst.AddInVector("w", 3, databus.Double, databus.Mandatory)

		buses = connection.Databuses{"Src": src, "Dst": dst}
	})

	It("wires a scalar connection and binds both channels", func() {
		r := connection.NewResolver(buses)
		ci := input.ConnectionInput{From: scalarEndpoint("Src", "y"), To: scalarEndpoint("Dst", "u")}

		Expect(r.Resolve(ci).Level).To(Equal(status.Ok))
		Expect(buses["Src"].Out(0).Bound()).To(BeTrue())
		Expect(buses["Dst"].In(0).Bound()).To(BeTrue())
		Expect(r.Resolved).To(HaveLen(1))
	})

	It("propagates a value end to end through a direct connection", func() {
		r := connection.NewResolver(buses)
		ci := input.ConnectionInput{From: scalarEndpoint("Src", "y"), To: scalarEndpoint("Dst", "u")}
		Expect(r.Resolve(ci).Level).To(Equal(status.Ok))

		buses["Src"].Out(0).SetValue(databus.DoubleValue(42))
		Expect(buses["Dst"].In(0).Trigger(databus.TimeInterval{}).Level).To(Equal(status.Ok))
		Expect(buses["Dst"].In(0).Value().Double).To(Equal(42.0))
	})

	It("expands a vector connection into one Connection per member", func() {
		r := connection.NewResolver(buses)
		ci := input.ConnectionInput{
			From: vectorEndpoint("Src", "v", 0, 2),
			To:   vectorEndpoint("Dst", "w", 0, 2),
		}
		Expect(r.Resolve(ci).Level).To(Equal(status.Ok))
		Expect(r.Resolved).To(HaveLen(3))
		for i := 0; i < 3; i++ {
			Expect(buses["Dst"].In(i).Bound()).To(BeTrue())
		}
	})

	It("rejects a connection to an unknown component", func() {
		r := connection.NewResolver(buses)
		ci := input.ConnectionInput{From: scalarEndpoint("Ghost", "y"), To: scalarEndpoint("Dst", "u")}

		res := r.Resolve(ci)
		Expect(res.Level).To(Equal(status.Error))
		Expect(res.Kind).To(Equal(status.KindInputStructural))
	})

	It("rejects a connection to an unknown channel", func() {
		r := connection.NewResolver(buses)
		ci := input.ConnectionInput{From: scalarEndpoint("Src", "nope"), To: scalarEndpoint("Dst", "u")}

		Expect(r.Resolve(ci).Level).To(Equal(status.Error))
	})

	It("rejects a vector endpoint with endIndex < startIndex", func() {
		r := connection.NewResolver(buses)
		ci := input.ConnectionInput{
			From: vectorEndpoint("Src", "v", 2, 0),
			To:   vectorEndpoint("Dst", "w", 0, 2),
		}
		res := r.Resolve(ci)
		Expect(res.Level).To(Equal(status.Error))
		Expect(res.Kind).To(Equal(status.KindInputStructural))
	})

	It("rejects mismatched endpoint widths", func() {
		r := connection.NewResolver(buses)
		ci := input.ConnectionInput{
			From: vectorEndpoint("Src", "v", 0, 1),
			To:   vectorEndpoint("Dst", "w", 0, 2),
		}
		Expect(r.Resolve(ci).Level).To(Equal(status.Error))
	})

	It("rejects a second connection driving an already-bound input", func() {
		r := connection.NewResolver(buses)
		ci1 := input.ConnectionInput{From: scalarEndpoint("Src", "y"), To: scalarEndpoint("Dst", "u")}
		Expect(r.Resolve(ci1).Level).To(Equal(status.Ok))

		srcOut2 := databus.NewDatabus()
		srcOut2.AddOut("z", databus.Double, databus.Optional)
		buses["Src2"] = srcOut2
		ci2 := input.ConnectionInput{From: scalarEndpoint("Src2", "z"), To: scalarEndpoint("Dst", "u")}
		res := r.Resolve(ci2)

		Expect(res.Level).To(Equal(status.Error))
		Expect(res.Kind).To(Equal(status.KindInputStructural))
	})
})
