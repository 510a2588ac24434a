package terminal

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
)

// DumpState renders this terminal's single port's per-VC control fields
// plus its source queue depth, the terminal-side counterpart to
// Router.DumpState for --debug runs.
func (t *Terminal) DumpState() string {
	out := table.NewWriter()
	out.SetTitle(fmt.Sprintf("Terminal %d", t.ID))
	out.AppendHeader(table.Row{"VC", "Downstream", "Credit", "AllocatedVC", "SourceQueue", "Reassembling"})

	for v := 0; v < t.Port.NumVC(); v++ {
		cf := t.Port.Controls[v]
		out.AppendRow(table.Row{v, cf.DownstreamState, cf.Credit, t.allocatedVC, len(t.sourceQueue), len(t.reorderBuffer[v])})
	}

	return out.Render()
}
