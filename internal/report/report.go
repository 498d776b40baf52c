// Package report renders analysis results into the two output panes.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spacesedan/reviewlens/internal/models"
)

const NoSpamMessage = "No spam reviews detected."

// Summary renders the four-line results pane.
func Summary(s models.AnalysisSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Overall Score: %s\n", s.OverallScore)
	fmt.Fprintf(&b, "Positive: %.2f%%\n", s.Positive)
	fmt.Fprintf(&b, "Negative: %.2f%%\n", s.Negative)
	fmt.Fprintf(&b, "Neutral: %.2f%%\n", s.Neutral)
	return b.String()
}

// Spam renders the flagged-reviews pane.
func Spam(reviews []string) string {
	if len(reviews) == 0 {
		return NoSpamMessage + "\n"
	}

	var b strings.Builder
	for _, r := range reviews {
		fmt.Fprintf(&b, "- %s\n", r)
	}
	return b.String()
}

// Table writes the summary as a terminal table followed by the spam pane.
func Table(w io.Writer, result *models.AnalysisResult) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(result.URL)
	t.AppendHeader(table.Row{"Overall Score", "Positive", "Negative", "Neutral", "Reviews"})
	t.AppendRow(table.Row{
		result.Summary.OverallScore,
		fmt.Sprintf("%.2f%%", result.Summary.Positive),
		fmt.Sprintf("%.2f%%", result.Summary.Negative),
		fmt.Sprintf("%.2f%%", result.Summary.Neutral),
		len(result.Reviews),
	})
	t.SetStyle(table.StyleLight)
	t.Render()

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Spam Reviews Detected")
	fmt.Fprint(w, Spam(result.Spam))
}
