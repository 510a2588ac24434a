package vc_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/kncube/flit"
	"github.com/sarchlab/kncube/vc"
)

var _ = Describe("Port", func() {
	It("reports terminal ports by negative id", func() {
		Expect(vc.NewPort(-1, 0, 2, 4).IsTerminalPort()).To(BeTrue())
		Expect(vc.NewPort(3, 0, 2, 4).IsTerminalPort()).To(BeFalse())
	})

	It("queues and drains a VC's FIFO in order", func() {
		p := vc.NewPort(1, 0, 2, 4)
		p.BufferPush(0, flit.NewTail(1))
		p.BufferPush(0, flit.NewTail(2))

		Expect(p.BufferLen(0)).To(Equal(2))
		Expect(p.BufferFront(0).(flit.TailFlit).PacketID).To(Equal(1))

		Expect(p.BufferPop(0).(flit.TailFlit).PacketID).To(Equal(1))
		Expect(p.BufferPop(0).(flit.TailFlit).PacketID).To(Equal(2))
		Expect(p.BufferEmpty(0)).To(BeTrue())
	})

	It("overwrites the front of a VC's FIFO without popping it", func() {
		p := vc.NewPort(1, 0, 2, 4)
		head := flit.NewHead(-1, flit.Route{1, -2})
		p.BufferPush(0, head)

		trimmed := head.WithRoute(head.Route.Pop())
		p.BufferSetFront(0, trimmed)

		Expect(p.BufferLen(0)).To(Equal(1))
		Expect(p.BufferFront(0).(flit.HeadFlit).Route).To(Equal(flit.Route{-2}))
	})

	It("latches every VC's Enable flag back to true on ResetVCEnable", func() {
		p := vc.NewPort(1, 0, 2, 4)
		p.Controls[0].Enable = false
		p.Controls[1].Enable = false

		p.ResetVCEnable()

		Expect(p.Controls[0].Enable).To(BeTrue())
		Expect(p.Controls[1].Enable).To(BeTrue())
	})
})
