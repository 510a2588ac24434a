// Package stats filters a run's packet records down to the steady-state
// measurement window and reports throughput, offered demand and average
// packet latency.
package stats

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/sarchlab/kncube/flit"
)

// Window is the measurement period, in cycles: [Warmup, Warmup+Measurement).
type Window struct {
	Warmup      int
	Measurement int
}

func (w Window) contains(cycle float64) bool {
	return cycle >= float64(w.Warmup) && cycle < float64(w.Warmup+w.Measurement)
}

// Collect keeps the Received entries whose received time falls inside
// the measurement window, the filter the original applies before
// counting flits toward throughput. Sent time plays no part here — a
// packet sent just before the window still counts on arrival.
func Collect(entries []flit.InfoEntry, w Window) []flit.InfoEntry {
	var kept []flit.InfoEntry
	for _, e := range entries {
		if e.Status != flit.Received {
			continue
		}
		if w.contains(e.ReceivedTime) {
			kept = append(kept, e)
		}
	}
	return kept
}

// CollectLatency keeps the Received entries whose sent time falls
// inside the measurement window, independent of where the matching
// receive lands. A packet sent near the window's close still has its
// full latency accumulated even though it arrives during drain,
// matching the original's separate sentTime-gated accumulation in
// calculatePerformance.
func CollectLatency(entries []flit.InfoEntry, w Window) []flit.InfoEntry {
	var kept []flit.InfoEntry
	for _, e := range entries {
		if e.Status != flit.Received {
			continue
		}
		if w.contains(e.SentTime) {
			kept = append(kept, e)
		}
	}
	return kept
}

// CollectSent keeps every entry whose sent time falls inside the
// measurement window, whether or not it has been received yet by the
// time the run's records are read back. The original counts these
// toward offered demand and the latency average's denominator.
func CollectSent(entries []flit.InfoEntry, w Window) []flit.InfoEntry {
	var kept []flit.InfoEntry
	for _, e := range entries {
		if e.Status == flit.Valid {
			continue
		}
		if w.contains(e.SentTime) {
			kept = append(kept, e)
		}
	}
	return kept
}

// FlitCount sums the packet sizes of entries, converting a packet count
// into the flit count throughput and demand are measured in.
func FlitCount(entries []flit.InfoEntry) int {
	total := 0
	for _, e := range entries {
		total += e.PacketSize
	}
	return total
}

// Report is the summary of one measurement window across the whole
// cube.
type Report struct {
	Throughput float64
	Demand     float64
	Latency    float64
}

// Calculate computes throughput, offered demand and average latency
// from the measurement-window entries. received, latencyReceived and
// sent are independently filtered (Collect, CollectLatency, CollectSent
// respectively) and need not have the same length or overlap: sent
// packets that haven't arrived yet still count toward demand and the
// latency denominator, and a packet's latency counts even if its
// receive time falls after the window closes, matching the original's
// calculatePerformance.
func Calculate(received, latencyReceived, sent []flit.InfoEntry, w Window, routerCount int) Report {
	denominator := float64(w.Measurement) * float64(routerCount)

	var r Report
	if denominator > 0 {
		r.Throughput = float64(FlitCount(received)) / denominator
		r.Demand = float64(FlitCount(sent)) / denominator
	}

	if len(sent) > 0 {
		var accumulated float64
		for _, e := range latencyReceived {
			accumulated += e.ReceivedTime - e.SentTime - 1
		}
		r.Latency = accumulated / float64(len(sent))
	}

	return r
}

// Render writes a two-column table of the report's fields to stdout,
// in the style the rest of the corpus renders run summaries.
func Render(r Report) {
	t := table.NewWriter()
	t.SetTitle("Simulation Result")
	t.AppendHeader(table.Row{"Metric", "Value"})
	t.AppendRow(table.Row{"Throughput (flits/cycle/router)", fmt.Sprintf("%.6f", r.Throughput)})
	t.AppendRow(table.Row{"Demand (flits/cycle/router)", fmt.Sprintf("%.6f", r.Demand)})
	t.AppendRow(table.Row{"Average latency (cycles)", fmt.Sprintf("%.6f", r.Latency)})
	fmt.Println(t.Render())
}

// RenderPlain writes the same three aggregates as bare "key: value"
// lines, for --quiet runs that want output a script can grep without
// stripping table borders.
func RenderPlain(r Report) {
	fmt.Printf("throughput: %.6f\n", r.Throughput)
	fmt.Printf("demand: %.6f\n", r.Demand)
	fmt.Printf("latency: %.6f\n", r.Latency)
}
