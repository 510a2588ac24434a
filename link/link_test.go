package link_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/kncube/flit"
	"github.com/sarchlab/kncube/link"
	"github.com/sarchlab/kncube/vc"
)

var _ = Describe("Link", func() {
	var (
		left  *vc.Port
		right *vc.Port
		l     *link.Link
	)

	BeforeEach(func() {
		left = vc.NewPort(1, 0, 2, 4)
		right = vc.NewPort(0, 1, 2, 4)
		l = link.New(left, right)
	})

	It("carries a flit placed on the left output to the right input", func() {
		left.Output.PushFlit(flit.NewTail(7).WithVC(0))

		l.UpdateEnable()
		l.RunCycle()

		Expect(right.Input.IsFlitEmpty()).To(BeFalse())
		Expect(right.Input.PopFlit().(flit.TailFlit).PacketID).To(Equal(7))
		Expect(left.Output.IsFlitEmpty()).To(BeTrue())
	})

	It("carries a credit placed on the right output to the left input", func() {
		right.Output.PushCredit(flit.NewCredit(1, true))

		l.UpdateEnable()
		l.RunCycle()

		Expect(left.Input.IsCreditEmpty()).To(BeFalse())
		credit := left.Input.PopCredit()
		Expect(credit.VC).To(Equal(1))
		Expect(credit.IsTail).To(BeTrue())
	})

	It("carries traffic in both directions within the same cycle", func() {
		left.Output.PushFlit(flit.NewTail(1).WithVC(0))
		right.Output.PushFlit(flit.NewTail(2).WithVC(0))

		l.UpdateEnable()
		l.RunCycle()

		Expect(right.Input.PopFlit().(flit.TailFlit).PacketID).To(Equal(1))
		Expect(left.Input.PopFlit().(flit.TailFlit).PacketID).To(Equal(2))
	})

	It("does not carry anything when neither output register is enabled", func() {
		l.UpdateEnable()
		l.RunCycle()

		Expect(right.Input.IsFlitEmpty()).To(BeTrue())
		Expect(left.Input.IsFlitEmpty()).To(BeTrue())
	})
})
