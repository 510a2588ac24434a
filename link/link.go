// Package link implements the point-to-point connection between two
// ports: one cycle of wire delay, carrying at most one flit and one
// credit in each direction.
package link

import "github.com/sarchlab/kncube/vc"

// Link binds two ports — router-to-router or router-to-terminal — and
// moves whatever each side's output register is holding into the other
// side's input register once per cycle.
type Link struct {
	Left  *vc.Port
	Right *vc.Port
}

// New binds a link between the two given ports. Which side is "left" and
// which is "right" is bookkeeping only; the link is symmetric.
func New(left, right *vc.Port) *Link {
	return &Link{Left: left, Right: right}
}

// UpdateEnable samples both ports' output registers into their enable
// flags. Called during the enable phase, before RunCycle.
func (l *Link) UpdateEnable() {
	l.Left.Output.UpdateEnable()
	l.Right.Output.UpdateEnable()
}

// RunCycle moves a flit and/or a credit across the wire in each
// direction, per the enable flags UpdateEnable last sampled.
func (l *Link) RunCycle() {
	if l.Left.Output.FlitEnable {
		l.Right.Input.PushFlit(l.Left.Output.PopFlit())
	}
	if l.Left.Output.CreditEnable {
		l.Right.Input.PushCredit(l.Left.Output.PopCredit())
	}
	if l.Right.Output.FlitEnable {
		l.Left.Input.PushFlit(l.Right.Output.PopFlit())
	}
	if l.Right.Output.CreditEnable {
		l.Left.Input.PushCredit(l.Right.Output.PopCredit())
	}
}
