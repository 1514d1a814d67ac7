package step_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/cosimcore/component"
	"github.com/sarchlab/cosimcore/step"
)

var _ = Describe("BuildPlan", func() {
	It("attaches components by name and groups entries by layer", func() {
		a := newFakeComponent("A")
		b := newFakeComponent("B")
		c := newFakeComponent("C")

		byName := map[string]component.Component{"A": a, "B": b, "C": c}
		layerOf := map[string]int{"A": 0, "B": 0, "C": 1}

		plan := step.BuildPlan([]string{"A", "B", "C"}, layerOf, byName)

		Expect(plan.Entries).To(HaveLen(3))
		Expect(plan.Entries[0].Order).To(Equal(0))
		Expect(plan.Entries[2].Order).To(Equal(2))
		Expect(plan.Layers).To(HaveLen(2))
		Expect(plan.Layers[0]).To(HaveLen(2))
		Expect(plan.Layers[1]).To(HaveLen(1))
		Expect(plan.Layers[1][0].Component.Name()).To(Equal("C"))
	})
})
