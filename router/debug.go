package router

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
)

// DumpState renders every port/VC control-field slot as a table, in the
// style the corpus uses for state checkpoints: one row per (port, VC)
// showing the input state, downstream state, credit count and queued
// flit count. Intended for --debug runs, not the steady-state report.
func (r *Router) DumpState() string {
	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("Router %d", r.ID))
	t.AppendHeader(table.Row{"Port", "VC", "State", "RoutedPort", "AllocVC", "Downstream", "Credit", "Queued"})

	for _, p := range r.Ports {
		for v := 0; v < p.NumVC(); v++ {
			cf := p.Controls[v]
			t.AppendRow(table.Row{
				p.ID, v, cf.State, cf.RoutedOutputPort, cf.AllocatedVC, cf.DownstreamState, cf.Credit, p.BufferLen(v),
			})
		}
	}

	return t.Render()
}
