package pipeline

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/Cmaury/Meeting-Summary-Automation/internal/model"
)

// Renderer prints rankings for the terminal
type Renderer struct {
	headlineWidth int
}

// NewRenderer creates a renderer that wraps headlines at width characters.
// A width of zero disables wrapping.
func NewRenderer(width int) *Renderer {
	return &Renderer{headlineWidth: width}
}

// RenderRanking writes the ranking as a rounded table
func (r *Renderer) RenderRanking(w io.Writer, rows []model.RankedHeadline) error {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Header = text.FormatDefault
	tw.AppendHeader(table.Row{"Rank", "Label", "Headline", "Mean", "Deviation", "CI95"})

	for _, row := range rows {
		tw.AppendRow(table.Row{
			strconv.Itoa(row.Rank),
			row.Label,
			row.Headline,
			fmt.Sprintf("%.2f", row.Mean),
			fmt.Sprintf("%.2f", row.Deviation),
			fmt.Sprintf("± %.2f", row.CI95),
		})
	}

	configs := []table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 5, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 6, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	}
	if r.headlineWidth > 0 {
		configs = append(configs, table.ColumnConfig{Number: 3, WidthMax: r.headlineWidth})
	}
	tw.SetColumnConfigs(configs)

	_, err := fmt.Fprintln(w, tw.Render())
	return err
}
