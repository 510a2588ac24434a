package vc_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/kncube/flit"
	"github.com/sarchlab/kncube/vc"
)

var _ = Describe("Register", func() {
	var r vc.Register

	BeforeEach(func() {
		r = vc.Register{}
	})

	It("starts with both slots empty", func() {
		Expect(r.IsFlitEmpty()).To(BeTrue())
		Expect(r.IsCreditEmpty()).To(BeTrue())
	})

	It("holds a pushed flit until popped", func() {
		r.PushFlit(flit.NewTail(3))
		Expect(r.IsFlitEmpty()).To(BeFalse())

		f := r.PopFlit()
		Expect(f.(flit.TailFlit).PacketID).To(Equal(3))
		Expect(r.IsFlitEmpty()).To(BeTrue())
	})

	It("holds a pushed credit until popped", func() {
		r.PushCredit(flit.NewCredit(2, true))
		Expect(r.IsCreditEmpty()).To(BeFalse())

		c := r.PopCredit()
		Expect(c.VC).To(Equal(2))
		Expect(c.IsTail).To(BeTrue())
		Expect(r.IsCreditEmpty()).To(BeTrue())
	})

	It("samples emptiness into the enable flags only on UpdateEnable", func() {
		r.PushFlit(flit.NewTail(1))
		Expect(r.FlitEnable).To(BeFalse())

		r.UpdateEnable()
		Expect(r.FlitEnable).To(BeTrue())

		r.PopFlit()
		Expect(r.FlitEnable).To(BeTrue(), "enable flag must not change until the next UpdateEnable")

		r.UpdateEnable()
		Expect(r.FlitEnable).To(BeFalse())
	})
})
