// Command cosim runs a co-simulation model end to end: build, the
// four-phase initialization protocol, then the coupling loop, logging
// progress the way every teacher sample prints its own result at the
// end of main. Parsing a real system-description file is out of scope
// (spec §1 Non-goals list the SSD/XML reader as an external
// collaborator); this binary's model is the small built-in
// Constant-into-Integrator chain also used in samples/basic, selected
// and timed by flag.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/cosimcore/component"
	"github.com/sarchlab/cosimcore/input"
	"github.com/sarchlab/cosimcore/model"
	"github.com/sarchlab/cosimcore/status"
)

func main() {
	endTime := flag.Float64("end", 5.0, "run end time")
	deltaTime := flag.Float64("dt", 0.1, "coupling step size")
	stepType := flag.String("steptype", "sequential", "sequential | parallel_single_thread | parallel_one_step_size")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	st, err := input.ParseStepType(*stepType)
	if err != nil {
		logger.Error("invalid step type", "steptype", *stepType, "err", err)
		atexit.Exit(1)
		return
	}

	root := basicRoot(*endTime, *deltaTime, st)

	m, res := model.Build(root, component.NewRegistry())
	if res.Level == status.Error {
		logger.Error("build failed", "err", res.Error())
		atexit.Exit(1)
		return
	}
	defer m.Close()

	logger.Info("setup report", "report", m.Report().String())
	for _, w := range m.Warnings {
		logger.Warn(w.Message)
	}

	if res := m.Initialize(); res.Level == status.Error {
		logger.Error("initialize failed", "err", res.Error())
		atexit.Exit(1)
		return
	}

	logger.Info("run starting", "endTime", *endTime, "deltaTime", *deltaTime, "stepType", st)

	if res := m.Run(); res.Level == status.Error {
		logger.Error("run failed", "err", res.Error())
		atexit.Exit(1)
		return
	}

	printResults(m)

	logger.Info("run complete")
	atexit.Exit(0)
}

// basicRoot builds the same Constant-driving-an-Integrator model
// samples/basic/main.go demonstrates, parameterized by the flags this
// binary exposes.
func basicRoot(endTime, deltaTime float64, st input.StepType) input.InputRoot {
	source := input.ComponentInput{
		Type:          input.ComponentConstant,
		Name:          "Source",
		Outports:      []input.PortSpec{{Name: "out", Type: "Double"}},
		InitialValues: []float64{1.0},
	}
	sink := input.ComponentInput{
		Type:     input.ComponentIntegrator,
		Name:     "Sink",
		Inports:  []input.PortSpec{{Name: "deriv", Type: "Double"}},
		Outports: []input.PortSpec{{Name: "state", Type: "Double"}},
	}
	conn := input.ConnectionInput{
		From: input.Endpoint{Kind: input.EndpointScalar, Component: input.Some("Source"), Channel: "out"},
		To:   input.Endpoint{Kind: input.EndpointScalar, Component: input.Some("Sink"), Channel: "deriv"},
	}

	return input.InputRoot{
		Model: input.ModelInput{
			Components:  []input.ComponentInput{source, sink},
			Connections: []input.ConnectionInput{conn},
		},
		Task: input.TaskInput{
			StartTime: input.Some(0.0),
			EndTime:   input.Some(endTime),
			DeltaTime: input.Some(deltaTime),
			StepType:  st,
		},
	}
}

// printResults prints each component's final output values in a table,
// the same shape the teacher's go-pretty-based output would take.
func printResults(m *model.Model) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Component", "Channel", "Value"})

	for _, c := range m.Components {
		bus := c.Databus()
		for i := 0; i < bus.OutCount(); i++ {
			ch := bus.Out(i)
			t.AppendRow(table.Row{c.Name(), ch.Name(), ch.Value().Double})
		}
	}

	t.Render()
}
