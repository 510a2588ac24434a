// Package vc implements the single-slot register pair, the per-VC FIFO
// buffers and control-field records, and the Port that bundles them — the
// microarchitectural state shared by routers and terminals.
package vc

import "github.com/sarchlab/kncube/flit"

// Register is a pipeline latch for flits and credits. A reader takes at most
// one flit and one credit from it per cycle. FlitEnable/CreditEnable are sampled once per cycle, during the
// enable phase, from the register's emptiness at that instant; the work
// phase reads them rather than re-checking emptiness, so a slot written
// during a cycle is never read again in the same cycle.
type Register struct {
	flits   []flit.Flit
	credits []flit.Credit

	FlitEnable   bool
	CreditEnable bool
}

// PushFlit deposits a flit into the register. A flit pushed while an
// earlier one is still held (a link delivering into an input register its
// router reads later in the same cycle) queues behind it; PopFlit returns
// flits in push order.
func (r *Register) PushFlit(f flit.Flit) {
	r.flits = append(r.flits, f)
}

// PopFlit removes and returns the oldest latched flit.
func (r *Register) PopFlit() flit.Flit {
	f := r.flits[0]
	r.flits = r.flits[1:]
	return f
}

// IsFlitEmpty reports whether the register holds no flit.
func (r *Register) IsFlitEmpty() bool {
	return len(r.flits) == 0
}

// PushCredit deposits a credit into the register, behind any credit it
// still holds.
func (r *Register) PushCredit(c flit.Credit) {
	r.credits = append(r.credits, c)
}

// PopCredit removes and returns the oldest latched credit.
func (r *Register) PopCredit() flit.Credit {
	c := r.credits[0]
	r.credits = r.credits[1:]
	return c
}

// IsCreditEmpty reports whether the register holds no credit.
func (r *Register) IsCreditEmpty() bool {
	return len(r.credits) == 0
}

// UpdateEnable samples the register's current emptiness into the enable
// flags. Called once per cycle, before any component's work phase runs.
func (r *Register) UpdateEnable() {
	r.FlitEnable = !r.IsFlitEmpty()
	r.CreditEnable = !r.IsCreditEmpty()
}
