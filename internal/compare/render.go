package compare

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
)

const (
	disagreementTextWidth = 60
	percentFactor         = 100
)

// RenderSummary writes the per-engine accuracy and timing table.
func (rep *Report) RenderSummary(w io.Writer) {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Options.SeparateColumns = false
	tbl.Style().Options.DrawBorder = false
	tbl.Style().Options.SeparateHeader = false

	tbl.AppendHeader(table.Row{"ENGINE", "CORRECT", "TOTAL", "ACCURACY", "AVG TIME"})
	for _, engine := range rep.Engines {
		tbl.AppendRow(table.Row{
			engine.Name,
			engine.Correct,
			engine.Total,
			fmt.Sprintf("%.1f%%", engine.Accuracy()*percentFactor),
			engine.AveragePerSample().Round(time.Microsecond),
		})
	}
	tbl.AppendFooter(table.Row{fmt.Sprintf("Total: %d samples", len(rep.Rows))})

	fmt.Fprintln(w, tbl.Render())
}

// RenderAgreement writes the pairwise agreement matrix. Each cell counts the
// samples on which the two engines returned the same code.
func (rep *Report) RenderAgreement(w io.Writer) {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Options.SeparateColumns = false
	tbl.Style().Options.DrawBorder = false
	tbl.Style().Options.SeparateHeader = false

	header := table.Row{"AGREEMENT"}
	for _, engine := range rep.Engines {
		header = append(header, engine.Name)
	}
	tbl.AppendHeader(header)

	for i, engine := range rep.Engines {
		row := table.Row{engine.Name}
		for j := range rep.Engines {
			row = append(row, rep.Agreement[i][j])
		}
		tbl.AppendRow(row)
	}

	fmt.Fprintln(w, tbl.Render())
}

// RenderDisagreements writes up to limit samples on which the engines gave
// different answers, with each engine's guess colored by correctness.
// limit <= 0 means all.
func (rep *Report) RenderDisagreements(w io.Writer, limit int) {
	shown := 0
	for _, row := range rep.Rows {
		if !row.Disagreement() {
			continue
		}
		if limit > 0 && shown >= limit {
			break
		}
		shown++

		fmt.Fprintf(w, "%s\n", truncateText(row.Sample.Text, disagreementTextWidth))
		for i, guess := range row.Guesses {
			name := rep.Engines[i].Name
			switch {
			case guess.Language == "":
				color.New(color.FgYellow).Fprintf(w, "  %-10s no answer\n", name)
			case guess.Language == row.Sample.Language:
				color.New(color.FgGreen).Fprintf(w, "  %-10s %s (%.3f)\n", name, guess.Language, guess.Confidence)
			default:
				color.New(color.FgRed).Fprintf(w, "  %-10s %s (%.3f), expected %s\n",
					name, guess.Language, guess.Confidence, row.Sample.Language)
			}
		}
	}

	if shown == 0 {
		color.New(color.FgGreen).Fprintf(w, "All engines agree on every sample.\n")
	}
}

func truncateText(s string, maxRunes int) string {
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return string(runes[:maxRunes]) + "..."
}
