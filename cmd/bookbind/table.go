package main

import (
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"bookbind/internal/deps"
	"bookbind/internal/sessions"
)

// newTableWriter applies the shared table look: rounded borders and headers
// kept in their written case instead of go-pretty's uppercase default.
func newTableWriter() table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Header = text.FormatDefault
	return tw
}

func sessionsTable(listed []sessions.Session) string {
	tw := newTableWriter()
	tw.AppendHeader(table.Row{"Workspace", "Target", "Origin", "Created"})
	for _, s := range listed {
		tw.AppendRow(table.Row{
			s.Workspace,
			s.Target,
			s.Origin,
			s.CreatedAt.Local().Format(time.DateTime),
		})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight},
	})
	return tw.Render()
}

func doctorTable(statuses []deps.Status) string {
	tw := newTableWriter()
	tw.AppendHeader(table.Row{"Tool", "Command", "Status", "Detail"})
	for _, status := range statuses {
		state := "ok"
		if !status.Available {
			state = "missing"
			if status.Optional {
				state = "missing (optional)"
			}
		}
		tw.AppendRow(table.Row{status.Name, status.Command, state, status.Detail})
	}
	return tw.Render()
}
