// Sample decoupled-loop wires two Integrators into a feedback cycle —
// A's state drives B's derivative and B's state drives A's derivative
// — the algebraic-loop shape spec §4.3 describes. The A->B connection
// is marked DecoupleAlways so depsolver.Solve can break the otherwise
// unsolvable cycle and hand back an acyclic evaluation order (spec
// §4.3, §4.4).
package main

import (
	"fmt"

	"github.com/tebeka/atexit"

	"github.com/sarchlab/cosimcore/component"
	"github.com/sarchlab/cosimcore/input"
	"github.com/sarchlab/cosimcore/model"
)

func main() {
	root := input.InputRoot{
		Model: input.ModelInput{
			Components: []input.ComponentInput{
				{
					Type:          input.ComponentIntegrator,
					Name:          "A",
					Inports:       []input.PortSpec{{Name: "deriv", Type: "Double"}},
					Outports:      []input.PortSpec{{Name: "state", Type: "Double"}},
					InitialValues: []float64{1.0},
				},
				{
					Type:          input.ComponentIntegrator,
					Name:          "B",
					Inports:       []input.PortSpec{{Name: "deriv", Type: "Double"}},
					Outports:      []input.PortSpec{{Name: "state", Type: "Double"}},
					InitialValues: []float64{-1.0},
				},
			},
			Connections: []input.ConnectionInput{
				{
					From: input.Endpoint{Kind: input.EndpointScalar, Component: input.Some("A"), Channel: "state"},
					To:   input.Endpoint{Kind: input.EndpointScalar, Component: input.Some("B"), Channel: "deriv"},
					Decoupling: input.Some(input.DecoupleInput{
						Type:     input.DecoupleAlways,
						Priority: 0,
					}),
				},
				{
					From: input.Endpoint{Kind: input.EndpointScalar, Component: input.Some("B"), Channel: "state"},
					To:   input.Endpoint{Kind: input.EndpointScalar, Component: input.Some("A"), Channel: "deriv"},
				},
			},
		},
		Task: input.TaskInput{
			StartTime: input.Some(0.0),
			EndTime:   input.Some(3.0),
			DeltaTime: input.Some(1.0),
			StepType:  input.Sequential,
		},
	}

	m, res := model.Build(root, component.NewRegistry())
	if res.Level != 0 {
		panic(res.Error())
	}
	defer m.Close()

	fmt.Printf("decoupled connections: %d\n", len(m.Decoupled))

	if res := m.Initialize(); res.Level != 0 {
		panic(res.Error())
	}

	m.Sink = printingSink{}

	if res := m.Run(); res.Level != 0 {
		panic(res.Error())
	}

	atexit.Exit(0)
}

type printingSink struct{}

func (printingSink) OnComponentOutput(name string, time float64, values []float64) {
	fmt.Printf("t=%.1f %s %v\n", time, name, values)
}
