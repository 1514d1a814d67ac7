package step_test

import (
	"sync"

	"github.com/sarchlab/cosimcore/component"
	"github.com/sarchlab/cosimcore/databus"
	"github.com/sarchlab/cosimcore/status"
)

// fakeComponent doubles its single input onto its single output and
// records every DoStep call it receives, guarded by a mutex so
// ParallelMT's concurrent callers don't race on the recording.
type fakeComponent struct {
	name string
	bus  *databus.Databus

	mu       sync.Mutex
	calls    []call
	finished bool
}

type call struct {
	group         int
	time, endTime float64
	deltaTime     float64
	isNewStep     bool
}

func newFakeComponent(name string) *fakeComponent {
	bus := databus.NewDatabus()
	bus.AddIn("in", databus.Double, databus.Optional)
	bus.AddOut("out", databus.Double, databus.Optional)
	return &fakeComponent{name: name, bus: bus}
}

func (f *fakeComponent) Name() string               { return f.name }
func (f *fakeComponent) Databus() *databus.Databus  { return f.bus }
func (f *fakeComponent) Setup() status.Result       { return status.Result{} }
func (f *fakeComponent) Initialize(float64) status.Result {
	return status.Result{}
}

func (f *fakeComponent) DoStep(group int, t, deltaTime, endTime float64, isNewStep bool) status.Result {
	f.mu.Lock()
	f.calls = append(f.calls, call{group: group, time: t, endTime: endTime, deltaTime: deltaTime, isNewStep: isNewStep})
	f.mu.Unlock()

	f.bus.Out(0).SetValue(databus.DoubleValue(f.bus.In(0).Value().Double * 2))
	return status.Result{}
}

func (f *fakeComponent) FinishState() component.FinishState {
	if f.finished {
		return component.Finished
	}
	return component.NeverFinishes
}

func (f *fakeComponent) OwnDeltaTime() (float64, bool) { return 0, false }

func (f *fakeComponent) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}
