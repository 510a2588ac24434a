package router

// Connection is a winning switch arbitration for the current cycle: input
// (port, VC) is granted the crossbar path to output (port, VC).
type Connection struct {
	InPort  int
	InVC    int
	OutPort int
	OutVC   int
}
