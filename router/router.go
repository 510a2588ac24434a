// Package router implements the per-cycle router pipeline: ingress,
// Route Compute, VC Allocation, Switch Allocation and Switch Traversal,
// plus the round-robin priority tables and crossbar that SA and ST share.
package router

import (
	"log/slog"

	"github.com/sarchlab/kncube/flit"
	"github.com/sarchlab/kncube/vc"
)

// Router owns a set of ports, a crossbar connection set populated by
// Switch Allocation and consumed by the next cycle's Switch Traversal, and
// two round-robin priority tables (one for VA, one for SA).
type Router struct {
	ID    int
	Ports []*vc.Port

	crossbar []Connection

	priorityVA *PriorityTable
	prioritySA *PriorityTable

	log *slog.Logger
}

// New creates a router with no ports; ports are added with AddPort once the
// network knows which neighbors this router connects to.
func New(id int, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		ID:  id,
		log: logger.With("router", id),
	}
}

// AddPort appends a port bound to the neighbor with the given id.
// portID is negative for a terminal neighbor, non-negative for a router
// neighbor. Ports must all be added before InitPriorities is called.
func (r *Router) AddPort(portID, numVC, bufferSize int) *vc.Port {
	p := vc.NewPort(portID, r.ID, numVC, bufferSize)
	r.Ports = append(r.Ports, p)
	return p
}

// InitPriorities (re)builds the VA and SA priority tables from the
// router's current port set. Called once, after all ports are attached.
func (r *Router) InitPriorities() {
	numVC := 0
	if len(r.Ports) > 0 {
		numVC = r.Ports[0].NumVC()
	}
	r.priorityVA = NewPriorityTable(len(r.Ports), numVC)
	r.prioritySA = NewPriorityTable(len(r.Ports), numVC)
}

// portIndexByID returns the index into Ports of the port connected to the
// neighbor with the given id, or -1 if none matches.
func (r *Router) portIndexByID(id int) int {
	for i, p := range r.Ports {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// UpdateEnable is the enable phase for this router: refresh every port's
// input-register enables from current emptiness, then latch every VC's
// Enable flag back to true.
func (r *Router) UpdateEnable() {
	for _, p := range r.Ports {
		p.UpdateEnable()
		p.ResetVCEnable()
	}
}

// RunCycle executes one cycle of the router pipeline, in the order the
// protocol requires: ingress flit, ingress credit, Route Compute,
// VC Allocation, Switch Traversal (on the crossbar SA populated last
// cycle), Switch Allocation (populates the crossbar ST will traverse next
// cycle).
func (r *Router) RunCycle() {
	r.ingressFlit()
	r.ingressCredit()
	r.routeCompute()
	r.vcAllocate()
	r.switchTraverse()
	r.switchAllocate()
}

func (r *Router) ingressFlit() {
	for _, p := range r.Ports {
		if !p.Input.FlitEnable {
			continue
		}
		f := p.Input.PopFlit()
		p.BufferPush(f.VC(), f)
		r.log.Debug("ingressFlit", "port", p.ID, "vc", f.VC(), "kind", f.Kind())

		cf := &p.Controls[f.VC()]
		switch cf.State {
		case vc.Idle:
			cf.State = vc.Routing
		case vc.WaitingForFlits:
			cf.State = vc.Active
		}
	}
}

func (r *Router) ingressCredit() {
	for _, p := range r.Ports {
		if !p.Input.CreditEnable {
			continue
		}
		c := p.Input.PopCredit()
		cf := &p.Controls[c.VC]
		cf.Credit++
		if cf.DownstreamState == vc.WaitingForCredits {
			cf.DownstreamState = vc.DownstreamActive
		}
		if c.IsTail {
			cf.DownstreamState = vc.DownstreamIdle
		}
	}
}

func (r *Router) routeCompute() {
	for _, p := range r.Ports {
		for v := 0; v < p.NumVC(); v++ {
			cf := &p.Controls[v]
			if cf.State != vc.Routing || !cf.Enable {
				continue
			}

			head := p.BufferFront(v).(flit.HeadFlit)
			cf.RoutedOutputPort = head.Route.Front()
			if head.Route.Front() >= 0 {
				head = head.WithRoute(head.Route.Pop())
				p.BufferSetFront(v, head)
			}
			cf.State = vc.VCAllocating
			cf.Enable = false

			r.log.Debug("routeCompute", "port", p.ID, "vc", v, "outputPort", cf.RoutedOutputPort)
		}
	}
}

func (r *Router) vcAllocate() {
	var winners []Entry

	for _, entry := range r.priorityVA.Entries() {
		inPort := r.Ports[entry.Port]
		cf := &inPort.Controls[entry.VC]
		if cf.State != vc.VCAllocating || !cf.Enable {
			continue
		}

		outIdx := r.portIndexByID(cf.RoutedOutputPort)
		if outIdx < 0 {
			continue
		}
		outPort := r.Ports[outIdx]

		for i := 0; i < outPort.NumVC(); i++ {
			if outPort.Controls[i].DownstreamState != vc.DownstreamIdle {
				continue
			}
			cf.AllocatedVC = i
			cf.State = vc.Active
			outPort.Controls[i].DownstreamState = vc.DownstreamActive
			cf.Enable = false
			winners = append(winners, entry)

			r.log.Debug("vcAllocate", "inPort", entry.Port, "inVC", entry.VC, "outPort", outIdx, "outVC", i)
			break
		}
	}

	r.priorityVA.MoveToBack(winners)
}

func (r *Router) switchAllocate() {
	var winners []Entry

	for _, entry := range r.prioritySA.Entries() {
		inPort := r.Ports[entry.Port]
		cf := &inPort.Controls[entry.VC]
		if cf.State != vc.Active || !cf.Enable {
			continue
		}

		for outIdx, outPort := range r.Ports {
			if outPort.ID != cf.RoutedOutputPort {
				continue
			}
			if outPort.Controls[cf.AllocatedVC].DownstreamState != vc.DownstreamActive {
				continue
			}

			if !r.crossbarConflicts(entry.Port, outIdx) {
				r.crossbar = append(r.crossbar, Connection{
					InPort:  entry.Port,
					InVC:    entry.VC,
					OutPort: outIdx,
					OutVC:   cf.AllocatedVC,
				})
				r.log.Debug("switchAllocate", "inPort", entry.Port, "inVC", entry.VC, "outPort", outIdx, "outVC", cf.AllocatedVC)
			}
			winners = append(winners, entry)
			cf.Enable = false
			break
		}
	}

	r.prioritySA.MoveToBack(winners)
}

func (r *Router) crossbarConflicts(inPort, outPort int) bool {
	for _, c := range r.crossbar {
		if c.InPort == inPort || c.OutPort == outPort {
			return true
		}
	}
	return false
}

func (r *Router) switchTraverse() {
	for _, c := range r.crossbar {
		inPort := r.Ports[c.InPort]
		outPort := r.Ports[c.OutPort]

		f := inPort.BufferFront(c.InVC).WithVC(c.OutVC)
		outPort.Output.PushFlit(f)
		r.log.Debug("switchTraverse", "kind", f.Kind(), "inPort", c.InPort, "inVC", c.InVC, "outPort", c.OutPort, "outVC", c.OutVC)

		outCF := &outPort.Controls[c.OutVC]
		if !outPort.IsTerminalPort() {
			outCF.Credit--
			if outCF.Credit == 0 {
				outCF.DownstreamState = vc.WaitingForCredits
			}
		}

		inPort.BufferPop(c.InVC)
		inCF := &inPort.Controls[c.InVC]
		if inPort.BufferEmpty(c.InVC) {
			inCF.State = vc.WaitingForFlits
		}

		isTail := f.Kind() == flit.Tail
		inPort.Output.PushCredit(flit.NewCredit(c.InVC, isTail))

		if isTail {
			inCF.ResetInput(r.ID)
			if outPort.IsTerminalPort() {
				outCF.DownstreamState = vc.DownstreamIdle
			}
		}
	}

	r.crossbar = r.crossbar[:0]
}
