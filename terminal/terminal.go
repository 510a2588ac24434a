// Package terminal implements the network's traffic sources and sinks:
// injecting packets into flit trains on a schedule, allocating the
// outbound virtual channel, and reassembling inbound flits back into
// packets in a per-VC reorder buffer.
package terminal

import (
	"log/slog"
	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/sarchlab/kncube/flit"
	"github.com/sarchlab/kncube/vc"
)

// Terminal is a single traffic source/sink attached to the network by
// exactly one port, bound to the router it injects into and receives
// from.
type Terminal struct {
	ID int

	Port *vc.Port

	process InjectionProcess
	rate    float64
	alpha   float64
	beta    float64
	flitSize int

	clk *periodicClock
	rng *rand.Rand

	routingTable map[int]flit.Route

	outputInfo []flit.InfoEntry
	outputData [][]float64

	sourceQueue []flit.Flit
	allocatedVC int

	reorderBuffer map[int][]flit.Flit

	InputInfo []flit.InfoEntry
	InputData [][]float64

	clockSource *GlobalClock

	log *slog.Logger
}

// RunCycle runs injectTraffic, receiveCredit, sendFlit and receiveFlit in
// that order, as the original terminal loop does — credit accounting
// lands before the flit this cycle's send consumes its result, and the
// flit this cycle receives is reassembled only after that.
func (t *Terminal) RunCycle() {
	t.injectTraffic()
	t.receiveCredit()
	t.sendFlit()
	t.receiveFlit()
}

// UpdateEnable refreshes the terminal's single port's input enable
// flags. Terminals have no per-VC enable latch of their own — the
// VC-allocation handshake they run against is single-flight, gated by
// sourceQueue occupancy rather than an Enable field.
func (t *Terminal) UpdateEnable() {
	t.Port.UpdateEnable()
}

// SetTraffic loads the pending outbound packets a traffic generator
// produced for this terminal. info and data are parallel: data[i] is the
// payload for info[i].
func (t *Terminal) SetTraffic(info []flit.InfoEntry, data [][]float64) {
	t.outputInfo = info
	t.outputData = data
}

// SentInfo returns the subset of this terminal's outbound bookkeeping
// that has already been injected (Status Sent), in the order the
// traffic generator produced it.
func (t *Terminal) SentInfo() []flit.InfoEntry {
	var sent []flit.InfoEntry
	for _, e := range t.outputInfo {
		if e.Status != flit.Valid {
			sent = append(sent, e)
		}
	}
	return sent
}

func (t *Terminal) injectTraffic() {
	switch t.process {
	case Periodic:
		if t.clk.trigger() {
			t.readPacket()
			t.clk.set(1 / t.rate)
		}
	case Bernoulli:
		if (distuv.Bernoulli{P: t.rate, Src: t.rng}).Rand() == 1 {
			t.readPacket()
		}
	case MarkovModulated:
		onProbability := t.alpha / (t.alpha + t.beta)
		on := (distuv.Bernoulli{P: onProbability, Src: t.rng}).Rand() == 1
		if on && (distuv.Bernoulli{P: t.rate, Src: t.rng}).Rand() == 1 {
			t.readPacket()
		}
	}
}

func (t *Terminal) readPacket() {
	for i := range t.outputInfo {
		if t.outputInfo[i].Status != flit.Valid {
			continue
		}

		t.outputInfo[i].Status = flit.Sent
		t.outputInfo[i].SentTime = t.clockSource.Now()

		packet := flit.PacketBuilder{}.
			WithPacketID(t.outputInfo[i].PacketID).
			WithSource(t.outputInfo[i].Source).
			WithDestination(t.outputInfo[i].Destination).
			WithPayload(t.outputData[i]).
			WithSentTime(t.outputInfo[i].SentTime).
			Build()

		t.log.Debug("readPacket", "packetID", packet.PacketID, "destination", packet.Destination, "sentTime", packet.SentTime)

		t.makeFlits(packet)
		return
	}
}

func (t *Terminal) makeFlits(p flit.Packet) {
	route := t.getRoute(p.Destination)
	t.sourceQueue = append(t.sourceQueue, flit.MakeFlits(p, route, t.flitSize)...)
}

func (t *Terminal) getRoute(destination int) flit.Route {
	return t.routingTable[destination]
}

func (t *Terminal) sendFlit() {
	if len(t.sourceQueue) == 0 {
		return
	}

	head := t.sourceQueue[0]
	if head.Kind() == flit.Head {
		if t.allocateVirtualChannel() {
			t.moveFlitOut()
		}
		return
	}

	if t.Port.Controls[t.allocatedVC].DownstreamState == vc.DownstreamActive {
		t.moveFlitOut()
	}
}

func (t *Terminal) allocateVirtualChannel() bool {
	for i := 0; i < t.Port.NumVC(); i++ {
		if t.Port.Controls[i].DownstreamState == vc.DownstreamIdle {
			t.allocatedVC = i
			t.Port.Controls[i].DownstreamState = vc.DownstreamActive
			return true
		}
	}
	return false
}

func (t *Terminal) moveFlitOut() {
	f := t.sourceQueue[0].WithVC(t.allocatedVC)
	t.Port.Output.PushFlit(f)

	cf := &t.Port.Controls[t.allocatedVC]
	cf.Credit--
	if cf.Credit == 0 {
		cf.DownstreamState = vc.WaitingForCredits
	}

	t.sourceQueue = t.sourceQueue[1:]
}

func (t *Terminal) receiveCredit() {
	if !t.Port.Input.CreditEnable {
		return
	}

	c := t.Port.Input.PopCredit()
	cf := &t.Port.Controls[c.VC]
	cf.Credit++
	if cf.DownstreamState == vc.WaitingForCredits {
		cf.DownstreamState = vc.DownstreamActive
	}
	if c.IsTail {
		cf.DownstreamState = vc.DownstreamIdle
	}
}

func (t *Terminal) receiveFlit() {
	if !t.Port.Input.FlitEnable {
		return
	}

	f := t.Port.Input.PopFlit()
	t.reorderBuffer[f.VC()] = append(t.reorderBuffer[f.VC()], f)

	if f.Kind() == flit.Tail {
		t.log.Debug("receiveFlit", "vc", f.VC(), "reassembling", true)
		t.makePacket(f.VC())
	}
}

func (t *Terminal) makePacket(v int) {
	var p flit.Packet

	for _, entry := range t.reorderBuffer[v] {
		switch e := entry.(type) {
		case flit.HeadFlit:
			p.Source = e.Source
			p.Destination = e.Route[len(e.Route)-1]
			p.SentTime = e.SentTime
		case flit.BodyFlit:
			p.Payload = append(p.Payload, e.Payload...)
		case flit.TailFlit:
			p.PacketID = e.PacketID
		}
	}

	delete(t.reorderBuffer, v)
	t.writePacket(p)
}

func (t *Terminal) writePacket(p flit.Packet) {
	t.InputInfo = append(t.InputInfo, flit.InfoEntry{
		PacketID:     p.PacketID,
		Source:       p.Source,
		Destination:  p.Destination,
		PacketSize:   len(p.Payload),
		Status:       flit.Received,
		SentTime:     p.SentTime,
		ReceivedTime: t.clockSource.Now(),
	})
	t.InputData = append(t.InputData, p.Payload)
}
