package network

import (
	"log/slog"
	"golang.org/x/exp/rand"

	"github.com/sarchlab/kncube/flit"
	"github.com/sarchlab/kncube/link"
	"github.com/sarchlab/kncube/router"
	"github.com/sarchlab/kncube/terminal"
	"github.com/sarchlab/kncube/topology"
)

// Builder constructs a fully wired Network: one router per coordinate,
// one terminal per router, the router-to-router edges the topology
// calls for, a terminal-to-router link for each terminal, and every
// terminal's source-routing table precomputed for the chosen algorithm.
type Builder struct {
	dimension  topology.Dimension
	algorithm  topology.Algorithm
	numVC      int
	bufferSize int
	flitSize   int
	process    terminal.InjectionProcess
	rate       float64
	alpha      float64
	beta       float64
	rng        *rand.Rand
	logger     *slog.Logger
}

// NewBuilder returns an empty Builder.
func NewBuilder() Builder {
	return Builder{}
}

// WithDimension sets the cube's size and wraparound shape.
func (b Builder) WithDimension(d topology.Dimension) Builder {
	b.dimension = d
	return b
}

// WithRoutingAlgorithm sets the source-routing discipline precomputed
// for every terminal pair.
func (b Builder) WithRoutingAlgorithm(alg topology.Algorithm) Builder {
	b.algorithm = alg
	return b
}

// WithMicroarchitecture sets the per-port virtual-channel count and
// per-VC buffer capacity shared by every router and terminal port.
func (b Builder) WithMicroarchitecture(numVC, bufferSize int) Builder {
	b.numVC = numVC
	b.bufferSize = bufferSize
	return b
}

// WithFlitSize sets the number of payload words carried by each Body
// flit.
func (b Builder) WithFlitSize(flitSize int) Builder {
	b.flitSize = flitSize
	return b
}

// WithInjection sets every terminal's injection process and rate
// parameters.
func (b Builder) WithInjection(process terminal.InjectionProcess, rate, alpha, beta float64) Builder {
	b.process = process
	b.rate = rate
	b.alpha = alpha
	b.beta = beta
	return b
}

// WithRandSource sets the random source threaded into route
// precomputation (ROMM/VAL's intermediate router) and terminal
// injection jitter.
func (b Builder) WithRandSource(rng *rand.Rand) Builder {
	b.rng = rng
	return b
}

// WithLogger sets the logger routers annotate with their own id.
func (b Builder) WithLogger(logger *slog.Logger) Builder {
	b.logger = logger
	return b
}

// Build creates the network: routers and their mesh/torus links first,
// then one terminal per router with its routing table and injection
// process wired in.
func (b Builder) Build() *Network {
	n := &Network{
		Dimension: b.dimension,
		Clock:     &terminal.GlobalClock{},
	}

	n.buildRouters(b)
	n.buildRouterLinks(b)
	n.buildTerminals(b)

	for _, r := range n.Routers {
		r.InitPriorities()
	}

	return n
}

func (n *Network) buildRouters(b Builder) {
	count := b.dimension.Size()
	n.Routers = make([]*router.Router, count)
	for id := 0; id < count; id++ {
		n.Routers[id] = router.New(id, b.logger)
	}
}

func (n *Network) buildRouterLinks(b Builder) {
	for _, spec := range topology.BuildLinks(b.dimension) {
		portA := n.Routers[spec.A].AddPort(spec.B, b.numVC, b.bufferSize)
		portB := n.Routers[spec.B].AddPort(spec.A, b.numVC, b.bufferSize)
		n.Links = append(n.Links, link.New(portA, portB))
	}
}

func (n *Network) buildTerminals(b Builder) {
	count := b.dimension.Size()
	n.Terminals = make([]*terminal.Terminal, count)

	for routerID := 0; routerID < count; routerID++ {
		termID := -routerID - 1

		routes := n.routingTableFor(b, routerID)

		term := terminal.NewBuilder().
			WithID(termID).
			WithRouterNeighbor(routerID, b.numVC, b.bufferSize).
			WithFlitSize(b.flitSize).
			WithInjectionProcess(b.process, b.rate, b.alpha, b.beta).
			WithRoutingTable(routes).
			WithClockSource(n.Clock).
			WithRandSource(b.rng).
			WithLogger(b.logger).
			Build()

		n.Terminals[routerID] = term
		routerPort := n.Routers[routerID].AddPort(termID, b.numVC, b.bufferSize)
		n.Links = append(n.Links, link.New(routerPort, term.Port))
	}
}

// routingTableFor precomputes, for the terminal attached to routerID,
// the route to every other terminal in the cube, keyed by destination
// terminal id and including the never-popped final hop onto that
// terminal.
func (n *Network) routingTableFor(b Builder, routerID int) map[int]flit.Route {
	src := b.dimension.IDToCoordinate(routerID)
	routes := make(map[int]flit.Route, b.dimension.Size()-1)

	for dstRouterID := 0; dstRouterID < b.dimension.Size(); dstRouterID++ {
		if dstRouterID == routerID {
			continue
		}
		dst := b.dimension.IDToCoordinate(dstRouterID)
		dstTermID := -dstRouterID - 1

		route := topology.Route(b.dimension, b.algorithm, src, dst, b.rng)
		routes[dstTermID] = append(route, dstTermID)
	}

	return routes
}
