package topology_test

import (
	"golang.org/x/exp/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/kncube/topology"
)

var _ = Describe("Dimension", func() {
	d := topology.Dimension{X: 4, Y: 4, Z: 1}

	It("round-trips id and coordinate conversion", func() {
		for id := 0; id < d.Size(); id++ {
			c := d.IDToCoordinate(id)
			Expect(d.CoordinateToID(c)).To(Equal(id))
		}
	})
})

var _ = Describe("BuildLinks", func() {
	It("builds the expected edge count for a 4x4 mesh", func() {
		d := topology.Dimension{X: 4, Y: 4, Z: 1, Shape: topology.Mesh}
		links := topology.BuildLinks(d)
		Expect(links).To(HaveLen(2 * 4 * 3))
	})

	It("builds the expected edge count for a 4x4 torus", func() {
		d := topology.Dimension{X: 4, Y: 4, Z: 1, Shape: topology.Torus}
		links := topology.BuildLinks(d)
		Expect(links).To(HaveLen(2 * 4 * 4))
	})
})

var _ = Describe("Route", func() {
	d := topology.Dimension{X: 4, Y: 4, Z: 1, Shape: topology.Mesh}

	It("produces a DOR route whose last hop lands on the destination coordinate", func() {
		src := topology.Coordinate{X: 0, Y: 0}
		dst := topology.Coordinate{X: 3, Y: 2}

		route := topology.Route(d, topology.DOR, src, dst, nil)
		Expect(route).ToNot(BeEmpty())
		Expect(d.IDToCoordinate(route[len(route)-1])).To(Equal(dst))
		Expect(route).To(HaveLen(3 + 2))
	})

	It("takes the wraparound shortcut on a torus when it is shorter", func() {
		torus := topology.Dimension{X: 8, Y: 1, Z: 1, Shape: topology.Torus}
		src := topology.Coordinate{X: 0}
		dst := topology.Coordinate{X: 7}

		route := topology.Route(torus, topology.DOR, src, dst, nil)
		Expect(route).To(HaveLen(1))
		Expect(d.CoordinateToID(topology.Coordinate{})).To(Equal(0))
	})

	It("produces an ROMM route that still terminates at the destination", func() {
		rng := rand.New(rand.NewSource(1))
		src := topology.Coordinate{X: 0, Y: 0}
		dst := topology.Coordinate{X: 3, Y: 3}

		route := topology.Route(d, topology.ROMM, src, dst, rng)
		Expect(d.IDToCoordinate(route[len(route)-1])).To(Equal(dst))
	})
})
