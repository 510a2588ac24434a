// Package network composes routers, terminals and links into a
// k-ary n-cube and drives the two-phase simulation cycle across all of
// them: the enable phase samples register emptiness, the work phase
// runs every component once.
package network

import (
	"github.com/sarchlab/kncube/link"
	"github.com/sarchlab/kncube/router"
	"github.com/sarchlab/kncube/terminal"
	"github.com/sarchlab/kncube/topology"
)

// Network owns every router, terminal and link in stable-indexed slices
// — an arena, not a pointer graph — so the whole topology can be walked,
// logged or serialized without chasing cycles.
type Network struct {
	Dimension topology.Dimension

	Routers   []*router.Router
	Terminals []*terminal.Terminal
	Links     []*link.Link

	Clock *terminal.GlobalClock
}

// RouterCount returns the number of routers in the cube, one per
// coordinate.
func (n *Network) RouterCount() int {
	return len(n.Routers)
}

// UpdateEnable runs the enable phase: links first (sampling the output
// registers routers/terminals wrote to last cycle), then routers, then
// terminals, matching the original's exact component ordering.
func (n *Network) UpdateEnable() {
	for _, l := range n.Links {
		l.UpdateEnable()
	}
	for _, r := range n.Routers {
		r.UpdateEnable()
	}
	for _, t := range n.Terminals {
		t.UpdateEnable()
	}
}

// RunCycle runs one full simulated cycle: the enable phase, then the
// work phase (links, routers, terminals, in that order), then advances
// the shared global clock every terminal timestamps traffic against.
func (n *Network) RunCycle() {
	n.UpdateEnable()

	for _, l := range n.Links {
		l.RunCycle()
	}
	for _, r := range n.Routers {
		r.RunCycle()
	}
	for _, t := range n.Terminals {
		t.RunCycle()
	}

	n.Clock.Tick()
}
