package flit_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/kncube/flit"
)

var _ = Describe("MakeFlits", func() {
	It("splits a packet into a head, one body flit per flitSize words, and a tail", func() {
		p := flit.PacketBuilder{}.
			WithPacketID(5).
			WithSource(-1).
			WithDestination(-2).
			WithPayload([]float64{1, 2, 3, 4, 5}).
			WithSentTime(12).
			Build()

		flits := flit.MakeFlits(p, flit.Route{-2}, 2)

		Expect(flits).To(HaveLen(5))
		head := flits[0].(flit.HeadFlit)
		Expect(head.Kind()).To(Equal(flit.Head))
		Expect(head.Source).To(Equal(-1))
		Expect(head.Route).To(Equal(flit.Route{-2}))
		Expect(head.SentTime).To(Equal(12.0))

		body1 := flits[1].(flit.BodyFlit)
		Expect(body1.Kind()).To(Equal(flit.Body))
		Expect(body1.Payload).To(Equal([]float64{1, 2}))
		Expect(body1.BodyIndex).To(Equal(0))

		body2 := flits[2].(flit.BodyFlit)
		Expect(body2.Kind()).To(Equal(flit.Body))
		Expect(body2.Payload).To(Equal([]float64{3, 4}))
		Expect(body2.BodyIndex).To(Equal(2))

		body3 := flits[3].(flit.BodyFlit)
		Expect(body3.Kind()).To(Equal(flit.Body))
		Expect(body3.Payload).To(Equal([]float64{5}))
		Expect(body3.BodyIndex).To(Equal(4))

		tail := flits[4].(flit.TailFlit)
		Expect(tail.Kind()).To(Equal(flit.Tail))
		Expect(tail.PacketID).To(Equal(5))
	})

	It("produces just a head and tail for an empty payload", func() {
		p := flit.PacketBuilder{}.WithPacketID(1).WithSource(-1).WithDestination(-2).Build()
		flits := flit.MakeFlits(p, flit.Route{-2}, 4)

		Expect(flits).To(HaveLen(2))
		Expect(flits[0].Kind()).To(Equal(flit.Head))
		tail := flits[1].(flit.TailFlit)
		Expect(tail.Kind()).To(Equal(flit.Tail))
		Expect(tail.PacketID).To(Equal(1))
	})
})
