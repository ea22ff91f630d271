package loadtest

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/samber/lo"
)

var reportHeaders = []string{"Scenario", "Iterations", "Passed", "Failed", "Dropped", "Min", "p50", "p90", "p95", "p99", "Max"}

// WriteReport renders a results table to w.
func WriteReport(w io.Writer, results []*Result) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(reportHeaders...).
		Rows(lo.Map(results, func(r *Result, _ int) []string { return r.row() })...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().PaddingLeft(1).PaddingRight(1)
			if row == -1 {
				return style.Bold(true)
			}
			if col > 0 {
				return style.Align(lipgloss.Right)
			}
			return style
		})

	_, err := fmt.Fprintf(w, "Check: %s\n%s\n", CheckName, t.String())
	return err
}

// TotalFailed sums failed checks across results.
func TotalFailed(results []*Result) int64 {
	return lo.SumBy(results, func(r *Result) int64 { return r.Failed() })
}
