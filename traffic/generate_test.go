package traffic_test

import (
	"golang.org/x/exp/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/kncube/flit"
	"github.com/sarchlab/kncube/traffic"
)

var _ = Describe("GenerateRandomUniform", func() {
	It("generates PacketNumber packets per terminal, never to itself", func() {
		rng := rand.New(rand.NewSource(1))
		p := traffic.Params{PacketSize: 4, SizeOption: traffic.Fixed, PacketNumber: 5}

		info, data := traffic.GenerateRandomUniform(3, p, rng)

		Expect(info).To(HaveLen(3))
		for source, entries := range info {
			Expect(entries).To(HaveLen(5))
			Expect(data[source]).To(HaveLen(5))
			for i, e := range entries {
				Expect(e.Source).To(Equal(source))
				Expect(e.Destination).ToNot(Equal(source))
				Expect(e.PacketSize).To(Equal(4))
				Expect(e.Status).To(Equal(flit.Valid))
				Expect(data[source][i]).To(HaveLen(4))
			}
		}
	})

	It("draws packet sizes in [1, PacketSize] under the random-uniform option", func() {
		rng := rand.New(rand.NewSource(2))
		p := traffic.Params{PacketSize: 8, SizeOption: traffic.RandomUniform, PacketNumber: 20}

		info, _ := traffic.GenerateRandomUniform(2, p, rng)

		for _, entries := range info {
			for _, e := range entries {
				Expect(e.PacketSize).To(BeNumerically(">=", 1))
				Expect(e.PacketSize).To(BeNumerically("<=", 8))
			}
		}
	})
})

var _ = Describe("GeneratePermutation", func() {
	It("sends every non-fixed-point source's packets to its permuted partner", func() {
		rng := rand.New(rand.NewSource(3))
		p := traffic.Params{PacketSize: 2, SizeOption: traffic.Fixed, PacketNumber: 3}
		shiftByOne := func(sourceRouterID int) int { return (sourceRouterID + 1) % 4 }

		info, data := traffic.GeneratePermutation(4, p, rng, shiftByOne)

		Expect(info).To(HaveLen(4))
		for routerID := 0; routerID < 4; routerID++ {
			source := -routerID - 1
			wantDest := -(shiftByOne(routerID)) - 1
			entries := info[source]
			Expect(entries).To(HaveLen(3))
			for i, e := range entries {
				Expect(e.Destination).To(Equal(wantDest))
				Expect(data[source][i]).To(HaveLen(2))
			}
		}
	})

	It("skips a source the permutation maps to itself", func() {
		rng := rand.New(rand.NewSource(4))
		p := traffic.Params{PacketSize: 2, SizeOption: traffic.Fixed, PacketNumber: 3}
		identity := func(sourceRouterID int) int { return sourceRouterID }

		info, _ := traffic.GeneratePermutation(4, p, rng, identity)

		Expect(info).To(BeEmpty())
	})
})
