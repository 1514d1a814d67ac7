package connection_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/cosimcore/connection"
	"github.com/sarchlab/cosimcore/databus"
	"github.com/sarchlab/cosimcore/status"
)

var _ = Describe("Connection", func() {
	It("records samples through Push and evaluates through Pull when filtered", func() {
		c := connection.New(connection.Info{}, databus.Mandatory, &connection.ConstantFilter{})

		Expect(c.Push(databus.DoubleValue(3), 0).Level).To(Equal(status.Ok))
		v, r := c.Pull(databus.TimeInterval{Start: 0, End: 1})
		Expect(r.Level).To(Equal(status.Ok))
		Expect(v.Double).To(Equal(3.0))
	})

	It("rejects Pull on a direct (unfiltered) connection", func() {
		c := connection.New(connection.Info{}, databus.Mandatory, nil)
		_, r := c.Pull(databus.TimeInterval{})
		Expect(r.Level).To(Equal(status.Error))
	})

	It("is binary-eligible only without a filter", func() {
		plain := connection.New(connection.Info{}, databus.Mandatory, nil)
		filtered := connection.New(connection.Info{}, databus.Mandatory, &connection.ConstantFilter{})

		Expect(plain.IsBinaryEligible()).To(BeTrue())
		Expect(filtered.IsBinaryEligible()).To(BeFalse())
	})

	It("tracks promotion to a binary reference", func() {
		c := connection.New(connection.Info{}, databus.Mandatory, nil)
		buf := []byte{1, 2, 3}

		_, ok := c.BinaryReference()
		Expect(ok).To(BeFalse())

		c.PromoteToBinaryReference(&buf)
		got, ok := c.BinaryReference()
		Expect(ok).To(BeTrue())
		Expect(*got).To(Equal(buf))
	})
})

var _ = Describe("Direct", func() {
	It("reads the source channel's live value on Pull", func() {
		src := databus.NewChannel("out", databus.Double, databus.Optional)
		src.SetValue(databus.DoubleValue(7))

		d := connection.NewDirect(src)
		v, r := d.Pull(databus.TimeInterval{})

		Expect(r.Level).To(Equal(status.Ok))
		Expect(v.Double).To(Equal(7.0))
	})
})

var _ = Describe("BufferedBinary", func() {
	It("owns a private copy distinct from the pushed slice", func() {
		b := connection.NewBufferedBinary()
		src := []byte{1, 2, 3}

		Expect(b.Push(databus.BinaryValue(src), 0).Level).To(Equal(status.Ok))
		v, r := b.Pull(databus.TimeInterval{})
		Expect(r.Level).To(Equal(status.Ok))
		Expect(v.Type).To(Equal(databus.Binary))
		Expect(v.Binary).To(Equal(src))

		src[0] = 99
		v2, _ := b.Pull(databus.TimeInterval{})
		Expect(v2.Binary[0]).To(Equal(byte(1)))
	})
})

var _ = Describe("BinaryRef", func() {
	It("aliases the source channel's own buffer", func() {
		src := databus.NewChannel("out", databus.Binary, databus.Optional)
		src.SetValue(databus.BinaryValue([]byte{1, 2, 3}))

		r := connection.NewBinaryRef(src)
		v, res := r.Pull(databus.TimeInterval{})

		Expect(res.Level).To(Equal(status.Ok))
		Expect(v.Type).To(Equal(databus.BinaryReference))
		Expect(*v.BinaryRef).To(Equal([]byte{1, 2, 3}))
	})
})
