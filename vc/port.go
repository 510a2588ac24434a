package vc

import "github.com/sarchlab/kncube/flit"

// Port bundles one input/output register pair, a bank of per-VC FIFO
// buffers, and a per-VC control-field record. ID is the identifier of the
// node on the other end of the port's link: negative for a terminal,
// non-negative for a router — a port whose ID is negative is a terminal
// port.
type Port struct {
	ID int

	Input  Register
	Output Register

	buffers  [][]flit.Flit // one FIFO per VC, indexed by VC
	Controls []ControlField
}

// IsTerminalPort reports whether the node on the other end of this port is
// a terminal.
func (p *Port) IsTerminalPort() bool {
	return p.ID < 0
}

// NewPort creates a port with numVC virtual channels, each with the given
// buffer capacity (capacity is advisory bookkeeping only — the protocol's
// credit accounting is what actually prevents overflow). selfID is the
// owning node's own id, used as the routed-output-port sentinel.
func NewPort(id, selfID, numVC, bufferSize int) *Port {
	p := &Port{
		ID:       id,
		buffers:  make([][]flit.Flit, numVC),
		Controls: make([]ControlField, numVC),
	}
	for i := 0; i < numVC; i++ {
		p.Controls[i] = NewControlField(selfID, bufferSize)
	}
	return p
}

// NumVC returns the number of virtual channels on this port.
func (p *Port) NumVC() int {
	return len(p.Controls)
}

// BufferPush appends a flit to the given VC's input FIFO.
func (p *Port) BufferPush(vcIndex int, f flit.Flit) {
	p.buffers[vcIndex] = append(p.buffers[vcIndex], f)
}

// BufferFront returns the flit at the front of the given VC's input FIFO
// without removing it.
func (p *Port) BufferFront(vcIndex int) flit.Flit {
	return p.buffers[vcIndex][0]
}

// BufferPop removes and returns the front flit of the given VC's input
// FIFO.
func (p *Port) BufferPop(vcIndex int) flit.Flit {
	f := p.buffers[vcIndex][0]
	p.buffers[vcIndex] = p.buffers[vcIndex][1:]
	return f
}

// BufferSetFront overwrites the flit at the front of the given VC's input
// FIFO in place, without popping it. Used by Route Compute to record a
// Head flit's route after popping its consumed hop.
func (p *Port) BufferSetFront(vcIndex int, f flit.Flit) {
	p.buffers[vcIndex][0] = f
}

// BufferEmpty reports whether the given VC's input FIFO has no flits.
func (p *Port) BufferEmpty(vcIndex int) bool {
	return len(p.buffers[vcIndex]) == 0
}

// BufferLen returns the number of flits queued on the given VC's input
// FIFO.
func (p *Port) BufferLen(vcIndex int) int {
	return len(p.buffers[vcIndex])
}

// UpdateEnable refreshes the port's input register enables from the
// registers' current emptiness. Called during the enable phase, before
// updating per-VC enable latches.
func (p *Port) UpdateEnable() {
	p.Input.UpdateEnable()
}

// ResetVCEnable latches every VC's Enable flag back to true. Called once
// per cycle during the enable phase, by routers only (terminals never
// consult the Enable latch).
func (p *Port) ResetVCEnable() {
	for i := range p.Controls {
		p.Controls[i].Enable = true
	}
}
