package task_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/cosimcore/input"
	"github.com/sarchlab/cosimcore/task"
)

var _ = Describe("Task", func() {
	It("defaults RelativeEps and EndType when unset", func() {
		ti := input.TaskInput{
			EndTime:   input.Some(10.0),
			DeltaTime: input.Some(1.0),
			StepType:  input.Sequential,
		}
		tk := task.FromInput(ti)

		Expect(tk.RelativeEps).To(Equal(1e-6))
		Expect(tk.EndType).To(Equal(input.EndTime))
	})

	It("advances by n*deltaTime when SumTime is not set", func() {
		tk := task.Task{StartTime: 0, DeltaTime: 2, EndTime: 10}
		p := task.StepTypeParams{StepCount: 2, StepSize: 2}

		Expect(tk.NextTime(p)).To(Equal(6.0))
	})

	It("advances by the running accumulator when SumTime is set", func() {
		tk := task.Task{StartTime: 0, DeltaTime: 0.1, EndTime: 10, SumTime: true}
		p := task.StepTypeParams{SumTime: 3.0, StepSize: 0.1}

		Expect(tk.NextTime(p)).To(Equal(3.1))
	})

	Describe("Finished", func() {
		It("is not finished before EndTime", func() {
			tk := task.Task{EndTime: 10, RelativeEps: 1e-6}
			Expect(tk.Finished(task.StepTypeParams{CurrentTime: 5})).To(BeFalse())
		})

		It("is finished once CurrentTime reaches EndTime within tolerance", func() {
			tk := task.Task{EndTime: 10, RelativeEps: 1e-6}
			Expect(tk.Finished(task.StepTypeParams{CurrentTime: 10})).To(BeTrue())
		})

		It("finishes early on EndFirstComponent once a component reports done", func() {
			tk := task.Task{EndTime: 100, RelativeEps: 1e-6, EndType: input.EndFirstComponent}
			Expect(tk.Finished(task.StepTypeParams{CurrentTime: 1, AComponentFinished: true})).To(BeTrue())
		})
	})
})
