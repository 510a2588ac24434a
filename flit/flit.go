// Package flit defines the flow-control units that travel through the
// network: Head, Body and Tail flits, the Credit that flows back upstream
// when a buffer slot frees, and the Packet they are assembled from.
package flit

// UnassignedVC is the sentinel value of a flit's VC before VC allocation
// has assigned it a concrete index.
const UnassignedVC = -1

// Kind identifies which of the three disjoint flit variants a Flit is.
type Kind int

const (
	// Head carries a packet's route and originating terminal id.
	Head Kind = iota
	// Body carries one chunk of a packet's payload.
	Body
	// Tail carries the packet id and terminates the packet.
	Tail
)

func (k Kind) String() string {
	switch k {
	case Head:
		return "Head"
	case Body:
		return "Body"
	case Tail:
		return "Tail"
	default:
		return "Unknown"
	}
}

// Route is the ordered sequence of next-hop identifiers a Head flit still
// has to traverse. The final element is always the negative id of the
// destination terminal; it is never popped by RouteCompute (see Pop).
type Route []int

// Front returns the next hop without consuming it. It panics on an empty
// route, which the spec treats as a logic error (RouteNotFound can only
// arise from a terminal routing to itself).
func (r Route) Front() int {
	return r[0]
}

// Pop removes the front hop and returns the remainder, whatever that hop
// is. Callers check Front first so that the destination terminal id
// (negative) is never popped.
func (r Route) Pop() Route {
	return r[1:]
}

// Clone returns an independent copy of the route.
func (r Route) Clone() Route {
	out := make(Route, len(r))
	copy(out, r)
	return out
}

// Flit is the common interface the three disjoint flit kinds satisfy.
// There is no shared struct: a Head, Body or Tail flit carries only the
// fields its kind needs, and a Flit value's concrete type is always one
// of HeadFlit, BodyFlit or TailFlit. Callers recover the kind-specific
// fields with a type switch on Kind(), mirroring the kind tag the
// pipeline already carries at every stage.
type Flit interface {
	Kind() Kind
	VC() int
	WithVC(vc int) Flit
}

// HeadFlit carries a packet's originating terminal, its remaining route
// and the cycle it was injected.
type HeadFlit struct {
	vc int

	Source   int
	Route    Route
	SentTime float64
}

// NewHead creates a Head flit for the given source terminal and route. The
// route slice is cloned so the caller's copy is never mutated by RC's pop.
func NewHead(source int, route Route) HeadFlit {
	return HeadFlit{
		vc:     UnassignedVC,
		Source: source,
		Route:  route.Clone(),
	}
}

func (f HeadFlit) Kind() Kind { return Head }
func (f HeadFlit) VC() int    { return f.vc }

// WithVC returns a copy of the flit with VC set. Used at VC allocation and
// at every switch traversal hop, where the flit's VC field is overwritten
// to the downstream VC index.
func (f HeadFlit) WithVC(vc int) Flit {
	f.vc = vc
	return f
}

// WithSentTime returns a copy of the Head flit with the originating
// terminal's injection cycle stamped on it, so the destination terminal
// can recover it when it reassembles the packet.
func (f HeadFlit) WithSentTime(t float64) HeadFlit {
	f.SentTime = t
	return f
}

// WithRoute returns a copy of the Head flit with its remaining route
// replaced, the form Route Compute writes back after popping a hop.
func (f HeadFlit) WithRoute(route Route) HeadFlit {
	f.Route = route
	return f
}

// BodyFlit carries one chunk of a packet's payload.
type BodyFlit struct {
	vc int

	Payload   []float64
	BodyIndex int
}

// NewBody creates a Body flit carrying payload[bodyIndex:bodyIndex+len(payload)].
func NewBody(payload []float64, bodyIndex int) BodyFlit {
	data := make([]float64, len(payload))
	copy(data, payload)
	return BodyFlit{
		vc:        UnassignedVC,
		Payload:   data,
		BodyIndex: bodyIndex,
	}
}

func (f BodyFlit) Kind() Kind { return Body }
func (f BodyFlit) VC() int    { return f.vc }

func (f BodyFlit) WithVC(vc int) Flit {
	f.vc = vc
	return f
}

// TailFlit carries the packet id and terminates the packet.
type TailFlit struct {
	vc int

	PacketID int
}

// NewTail creates a Tail flit for the given packet id.
func NewTail(packetID int) TailFlit {
	return TailFlit{
		vc:       UnassignedVC,
		PacketID: packetID,
	}
}

func (f TailFlit) Kind() Kind { return Tail }
func (f TailFlit) VC() int    { return f.vc }

func (f TailFlit) WithVC(vc int) Flit {
	f.vc = vc
	return f
}
