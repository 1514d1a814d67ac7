// Sample basic wires a Constant feeding an Integrator (spec §8's S1/S2
// narrative) and runs it sequentially to completion, printing the
// integrator's state trajectory.
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
					Type:          input.ComponentConstant,
					Name:          "Source",
					Outports:      []input.PortSpec{{Name: "out", Type: "Double"}},
					InitialValues: []float64{1.0},
				},
				{
					Type:     input.ComponentIntegrator,
					Name:     "Sink",
					Inports:  []input.PortSpec{{Name: "deriv", Type: "Double"}},
					Outports: []input.PortSpec{{Name: "state", Type: "Double"}},
				},
			},
			Connections: []input.ConnectionInput{
				{
					From: input.Endpoint{Kind: input.EndpointScalar, Component: input.Some("Source"), Channel: "out"},
					To:   input.Endpoint{Kind: input.EndpointScalar, Component: input.Some("Sink"), Channel: "deriv"},
				},
			},
		},
		Task: input.TaskInput{
			StartTime: input.Some(0.0),
			EndTime:   input.Some(5.0),
			DeltaTime: input.Some(1.0),
			StepType:  input.Sequential,
		},
	}

	m, res := model.Build(root, component.NewRegistry())
	if res.Level != 0 {
		panic(res.Error())
	}
	defer m.Close()

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
