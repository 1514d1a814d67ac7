package databus_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/cosimcore/databus"
	"github.com/sarchlab/cosimcore/status"
)

type fakeOutgoingLink struct {
	received []databus.Value
	fail     bool
}

func (l *fakeOutgoingLink) Push(v databus.Value, now float64) status.Result {
	if l.fail {
		return status.Errf(status.KindRuntime, "fake push failure")
	}
	l.received = append(l.received, v)
	return status.Result{}
}

type fakeInboundLink struct {
	value databus.Value
	fail  bool
}

func (l *fakeInboundLink) Pull(databus.TimeInterval) (databus.Value, status.Result) {
	if l.fail {
		return databus.Value{}, status.Errf(status.KindRuntime, "fake pull failure")
	}
	return l.value, status.Result{}
}

var _ = Describe("Channel", func() {
	var ch *databus.Channel

	BeforeEach(func() {
		ch = databus.NewChannel("u", databus.Double, databus.Mandatory)
	})

	It("starts unbound with the zero value of its declared type", func() {
		Expect(ch.Bound()).To(BeFalse())
		Expect(ch.Value().Type).To(Equal(databus.Double))
		Expect(ch.Value().Double).To(Equal(0.0))
	})

	It("becomes bound when an outgoing link attaches", func() {
		ch.BindOutgoing(&fakeOutgoingLink{})
		Expect(ch.Bound()).To(BeTrue())
	})

	It("pushes its current value to every outgoing link", func() {
		l1 := &fakeOutgoingLink{}
		l2 := &fakeOutgoingLink{}
		ch.BindOutgoing(l1)
		ch.BindOutgoing(l2)
		ch.SetValue(databus.DoubleValue(4.5))

		Expect(ch.Push(0).Level).To(Equal(status.Ok))
		Expect(l1.received).To(HaveLen(1))
		Expect(l1.received[0].Double).To(Equal(4.5))
		Expect(l2.received).To(HaveLen(1))
	})

	It("stops at the first failing outgoing link", func() {
		ch.BindOutgoing(&fakeOutgoingLink{fail: true})
		l2 := &fakeOutgoingLink{}
		ch.BindOutgoing(l2)

		r := ch.Push(0)
		Expect(r.Level).To(Equal(status.Error))
		Expect(l2.received).To(BeEmpty())
	})

	It("pulls a fresh value from its bound source on Trigger", func() {
		ch.BindIncoming(&fakeInboundLink{value: databus.DoubleValue(2.0)})
		r := ch.Trigger(databus.TimeInterval{Start: 0, End: 1})

		Expect(r.Level).To(Equal(status.Ok))
		Expect(ch.Value().Double).To(Equal(2.0))
	})

	It("leaves an unbound input untouched by Trigger", func() {
		r := ch.Trigger(databus.TimeInterval{Start: 0, End: 1})
		Expect(r.Level).To(Equal(status.Ok))
		Expect(ch.Value().Double).To(Equal(0.0))
	})

	It("propagates a pull failure as an Error", func() {
		ch.BindIncoming(&fakeInboundLink{fail: true})
		r := ch.Trigger(databus.TimeInterval{Start: 0, End: 1})
		Expect(r.Level).To(Equal(status.Error))
	})
})
