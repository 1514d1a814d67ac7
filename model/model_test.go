package model_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/cosimcore/component"
	"github.com/sarchlab/cosimcore/input"
	"github.com/sarchlab/cosimcore/model"
	"github.com/sarchlab/cosimcore/status"
)

// chainInput builds a two-component model: a Constant driving an
// Integrator's derivative input, the standard "source -> sink" shape
// every built-in component pairing in this suite uses.
func chainInput(stepType input.StepType) input.InputRoot {
	constant := input.ComponentInput{
		Type: input.ComponentConstant,
		Name: "Source",
		Outports: []input.PortSpec{
			{Name: "out", Type: "Double"},
		},
		InitialValues: []float64{2.0},
	}
	integrator := input.ComponentInput{
		Type: input.ComponentIntegrator,
		Name: "Sink",
		Inports: []input.PortSpec{
			{Name: "deriv", Type: "Double"},
		},
		Outports: []input.PortSpec{
			{Name: "state", Type: "Double"},
		},
	}

	conn := input.ConnectionInput{
		From: input.Endpoint{Kind: input.EndpointScalar, Component: input.Some("Source"), Channel: "out"},
		To:   input.Endpoint{Kind: input.EndpointScalar, Component: input.Some("Sink"), Channel: "deriv"},
	}

	return input.InputRoot{
		Model: input.ModelInput{
			Components:  []input.ComponentInput{constant, integrator},
			Connections: []input.ConnectionInput{conn},
		},
		Task: input.TaskInput{
			StartTime: input.Some(0.0),
			EndTime:   input.Some(2.0),
			DeltaTime: input.Some(1.0),
			StepType:  stepType,
		},
	}
}

var _ = Describe("Build", func() {
	It("wires a Constant into an Integrator and orders them correctly", func() {
		m, res := model.Build(chainInput(input.Sequential), component.NewRegistry())
		Expect(res.Level).To(Equal(status.Ok))
		Expect(m.Plan.Entries).To(HaveLen(2))
		Expect(m.Plan.Entries[0].Component.Name()).To(Equal("Source"))
		Expect(m.Plan.Entries[1].Component.Name()).To(Equal("Sink"))
	})

	It("also computes an INITIAL_DEPENDENCIES SubModel", func() {
		m, res := model.Build(chainInput(input.Sequential), component.NewRegistry())
		Expect(res.Level).To(Equal(status.Ok))
		Expect(m.InitialPlan.Entries).To(HaveLen(2))
		Expect(m.InitialPlan.Entries[0].Component.Name()).To(Equal("Source"))
		Expect(m.InitialPlan.Entries[1].Component.Name()).To(Equal("Sink"))
	})

	It("rejects a connection to an unknown component", func() {
		root := chainInput(input.Sequential)
		root.Model.Connections[0].To.Component = input.Some("NoSuchComponent")

		_, res := model.Build(root, component.NewRegistry())
		Expect(res.Level).To(Equal(status.Error))
	})

	It("warns and declares an unused parameter binding", func() {
		root := chainInput(input.Sequential)
		root.Model.Components[1].Parameters = map[string]float64{"notAThing": 1}

		m, res := model.Build(root, component.NewRegistry())
		Expect(res.Level).To(Equal(status.Ok))
		Expect(m.Warnings).To(HaveLen(1))
		Expect(m.Warnings[0].Kind).To(Equal(status.KindSoft))
	})

	It("ignores decoupling metadata and warns when a trigger sequence is also declared", func() {
		source := input.ComponentInput{
			Type:            input.ComponentIntegrator,
			Name:            "A",
			Inports:         []input.PortSpec{{Name: "der", Type: "Double"}},
			Outports:        []input.PortSpec{{Name: "y", Type: "Double"}},
			InitialValues:   []float64{0},
			TriggerSequence: input.Some(0),
		}
		target := input.ComponentInput{
			Type:          input.ComponentIntegrator,
			Name:          "B",
			Inports:       []input.PortSpec{{Name: "der", Type: "Double"}},
			Outports:      []input.PortSpec{{Name: "y", Type: "Double"}},
			InitialValues: []float64{0},
		}
		loopOut := input.ConnectionInput{
			From: input.Endpoint{Kind: input.EndpointScalar, Component: input.Some("A"), Channel: "y"},
			To:   input.Endpoint{Kind: input.EndpointScalar, Component: input.Some("B"), Channel: "der"},
			Decoupling: input.Some(input.DecoupleInput{
				Type: input.DecoupleNever,
			}),
		}
		loopBack := input.ConnectionInput{
			From: input.Endpoint{Kind: input.EndpointScalar, Component: input.Some("B"), Channel: "y"},
			To:   input.Endpoint{Kind: input.EndpointScalar, Component: input.Some("A"), Channel: "der"},
			Decoupling: input.Some(input.DecoupleInput{
				Type: input.DecoupleAlways,
			}),
		}

		root := input.InputRoot{
			Model: input.ModelInput{
				Components:  []input.ComponentInput{source, target},
				Connections: []input.ConnectionInput{loopOut, loopBack},
			},
			Task: input.TaskInput{
				StartTime: input.Some(0.0),
				EndTime:   input.Some(1.0),
				DeltaTime: input.Some(1.0),
				StepType:  input.Sequential,
			},
		}

		m, res := model.Build(root, component.NewRegistry())
		Expect(res.Level).To(Equal(status.Ok))

		found := false
		for _, w := range m.Warnings {
			if w.Kind == status.KindSoft {
				found = true
			}
		}
		Expect(found).To(BeTrue())

		// A→B's DecoupleNever metadata is ignored too (suppressed to the
		// zero value), so either connection remains eligible and the
		// solver still decouples exactly one of them to break the loop.
		Expect(m.Decoupled).To(HaveLen(1))
	})
})

var _ = Describe("Initialize", func() {
	It("propagates the Constant's initial value to the Integrator before the first step", func() {
		m, res := model.Build(chainInput(input.Sequential), component.NewRegistry())
		Expect(res.Level).To(Equal(status.Ok))

		res = m.Initialize()
		Expect(res.Level).To(Equal(status.Ok))

		sink := m.ByName["Sink"]
		Expect(sink.Databus().In(0).Value().Double).To(Equal(2.0))
	})
})

type recordingSink struct {
	calls []string
}

func (r *recordingSink) OnComponentOutput(name string, time float64, values []float64) {
	r.calls = append(r.calls, name)
}

var _ = Describe("Run", func() {
	It("integrates the constant derivative over two one-second steps", func() {
		m, res := model.Build(chainInput(input.Sequential), component.NewRegistry())
		Expect(res.Level).To(Equal(status.Ok))
		Expect(m.Initialize().Level).To(Equal(status.Ok))

		sink := &recordingSink{}
		m.Sink = sink

		Expect(m.Run().Level).To(Equal(status.Ok))

		integrator := m.ByName["Sink"]
		Expect(integrator.Databus().Out(0).Value().Double).To(Equal(4.0))
		Expect(sink.calls).NotTo(BeEmpty())
	})

	It("produces the same result under ParallelMT", func() {
		m, res := model.Build(chainInput(input.ParallelMT), component.NewRegistry())
		Expect(res.Level).To(Equal(status.Ok))
		defer m.Close()
		Expect(m.Initialize().Level).To(Equal(status.Ok))

		Expect(m.Run().Level).To(Equal(status.Ok))

		integrator := m.ByName["Sink"]
		Expect(integrator.Databus().Out(0).Value().Double).To(Equal(4.0))
	})
})
