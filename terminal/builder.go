package terminal

import (
	"log/slog"
	"golang.org/x/exp/rand"

	"github.com/sarchlab/kncube/flit"
	"github.com/sarchlab/kncube/vc"
)

// Builder constructs a Terminal with its port, injection process and
// routing table wired up in one call.
type Builder struct {
	id          int
	numVC       int
	bufferSize  int
	flitSize    int
	process     InjectionProcess
	rate        float64
	alpha, beta float64
	routerID    int
	routes      map[int]flit.Route
	clockSource *GlobalClock
	rng         *rand.Rand
	logger      *slog.Logger
}

// NewBuilder returns an empty Builder.
func NewBuilder() Builder {
	return Builder{}
}

// WithID sets the terminal's own identifier (negative).
func (b Builder) WithID(id int) Builder {
	b.id = id
	return b
}

// WithRouterNeighbor sets the id of the router this terminal's single
// port connects to, and the VC/buffer sizing of that port.
func (b Builder) WithRouterNeighbor(routerID, numVC, bufferSize int) Builder {
	b.routerID = routerID
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

// WithInjectionProcess sets how the terminal decides when to inject a
// pending packet: periodic, bernoulli, or markov-modulated, with the
// rate (and, for markov, the on/off shape parameters alpha and beta).
func (b Builder) WithInjectionProcess(process InjectionProcess, rate, alpha, beta float64) Builder {
	b.process = process
	b.rate = rate
	b.alpha = alpha
	b.beta = beta
	return b
}

// WithRoutingTable sets the precomputed destination-id -> route table
// this terminal looks up when splitting a packet into flits.
func (b Builder) WithRoutingTable(routes map[int]flit.Route) Builder {
	b.routes = routes
	return b
}

// WithClockSource sets the simulation-wide cycle counter the terminal
// timestamps sent/received packets against.
func (b Builder) WithClockSource(clockSource *GlobalClock) Builder {
	b.clockSource = clockSource
	return b
}

// WithRandSource sets the random source used for bernoulli/markov
// injection draws and the periodic clock's starting phase.
func (b Builder) WithRandSource(rng *rand.Rand) Builder {
	b.rng = rng
	return b
}

// WithLogger sets the logger the terminal annotates with its own id.
func (b Builder) WithLogger(logger *slog.Logger) Builder {
	b.logger = logger
	return b
}

// Build creates the terminal and its single port.
func (b Builder) Build() *Terminal {
	logger := b.logger
	if logger == nil {
		logger = slog.Default()
	}

	t := &Terminal{
		ID:            b.id,
		Port:          vc.NewPort(b.routerID, b.id, b.numVC, b.bufferSize),
		process:       b.process,
		rate:          b.rate,
		alpha:         b.alpha,
		beta:          b.beta,
		flitSize:      b.flitSize,
		rng:           b.rng,
		routingTable:  b.routes,
		allocatedVC:   vc.UnassignedOutputVC,
		reorderBuffer: make(map[int][]flit.Flit),
		clockSource:   b.clockSource,
		log:           logger.With("terminal", b.id),
	}
	t.clk = newPeriodicClock(b.clockSource, b.rng)
	return t
}
