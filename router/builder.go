package router

import "log/slog"

// NeighborSpec describes one port to attach: the identifier of the node on
// the other end (negative for a terminal) and the VC/buffer sizing to use
// for that port.
type NeighborSpec struct {
	NeighborID int
	NumVC      int
	BufferSize int
}

// Builder constructs a Router with its full port set and priority tables
// wired up in one call.
type Builder struct {
	id        int
	logger    *slog.Logger
	neighbors []NeighborSpec
}

// NewBuilder returns an empty Builder.
func NewBuilder() Builder {
	return Builder{}
}

// WithID sets the router's own identifier.
func (b Builder) WithID(id int) Builder {
	b.id = id
	return b
}

// WithLogger sets the logger the router annotates with its own id.
func (b Builder) WithLogger(logger *slog.Logger) Builder {
	b.logger = logger
	return b
}

// WithNeighbor appends a port to the router being built.
func (b Builder) WithNeighbor(spec NeighborSpec) Builder {
	b.neighbors = append(b.neighbors, spec)
	return b
}

// Build creates the router, attaches one port per neighbor given to
// WithNeighbor, and initializes its VA/SA priority tables.
func (b Builder) Build() *Router {
	r := New(b.id, b.logger)

	for _, n := range b.neighbors {
		r.AddPort(n.NeighborID, n.NumVC, n.BufferSize)
	}

	r.InitPriorities()

	return r
}
