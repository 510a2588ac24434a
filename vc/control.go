package vc

// State is the input-side virtual-channel state machine:
// Idle -> Routing -> VCAllocating -> Active -> {Active, WaitingForFlits -> Active} -> Idle.
type State int

const (
	Idle State = iota
	Routing
	VCAllocating
	Active
	WaitingForFlits
)

func (s State) String() string {
	switch s {
	case Idle:
		return "I"
	case Routing:
		return "R"
	case VCAllocating:
		return "V"
	case Active:
		return "A"
	case WaitingForFlits:
		return "F"
	default:
		return "?"
	}
}

// DownstreamState is the output-side virtual-channel state machine:
// Idle -> Active -> {Active, WaitingForCredits -> Active} -> Idle.
type DownstreamState int

const (
	DownstreamIdle DownstreamState = iota
	DownstreamActive
	WaitingForCredits
)

func (s DownstreamState) String() string {
	switch s {
	case DownstreamIdle:
		return "I"
	case DownstreamActive:
		return "A"
	case WaitingForCredits:
		return "C"
	default:
		return "?"
	}
}

// UnassignedOutputVC is the sentinel value of ControlField.AllocatedVC
// before VC allocation has set it.
const UnassignedOutputVC = -1

// ControlField is the per-(port, VC) control-field record: input-side
// routing/allocation state, output-side downstream VC state and credit
// count, and the shared per-cycle enable latch.
type ControlField struct {
	// Shared.
	Enable bool

	// Input side.
	State             State
	RoutedOutputPort  int // sentinel: the owning router's own id
	AllocatedVC       int

	// Output side.
	DownstreamState DownstreamState
	Credit          int
}

// NewControlField returns a ControlField in its reset state: Idle on both
// sides, full credit, routed output port pointing at the sentinel (the
// owning router's own id, supplied by the caller since it isn't known to
// this package), and enable latched true.
func NewControlField(selfID, bufferSize int) ControlField {
	return ControlField{
		Enable:           true,
		State:            Idle,
		RoutedOutputPort: selfID,
		AllocatedVC:      UnassignedOutputVC,
		DownstreamState:  DownstreamIdle,
		Credit:           bufferSize,
	}
}

// ResetInput returns the control field to Idle/unassigned on its input
// side, as done at the end of Switch Traversal for a Tail flit. selfID is
// the owning router's id, restored as the routed-output-port sentinel.
func (c *ControlField) ResetInput(selfID int) {
	c.State = Idle
	c.RoutedOutputPort = selfID
	c.AllocatedVC = UnassignedOutputVC
}
