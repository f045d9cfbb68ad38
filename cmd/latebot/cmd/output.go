package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/corey/latebot/internal/adapters/socket"
)

// ANSI color codes for terminal output.
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorCyan   = "\033[36m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
)

// colorEnabled is set from the stdout TTY check before each command runs.
var colorEnabled bool

// paint wraps s in an ANSI color when color output is enabled.
func paint(color, s string) string {
	if !colorEnabled {
		return s
	}
	return color + s + colorReset
}

// formatMatch renders the check outcome.
//
//	✓ matched "ill be late"
//	✗ no match
func formatMatch(phrase string, matched bool) string {
	if !matched {
		return paint(colorYellow, "✗ no match") + "\n"
	}
	return fmt.Sprintf("%s %s\n", paint(colorGreen, "✓ matched"), paint(colorCyan, strconv.Quote(phrase)))
}

// formatCounts renders the leaderboard as a table, highest first.
func formatCounts(result *socket.CountsResult) string {
	if len(result.Counts) == 0 {
		return "⏰ nobody has been late yet\n"
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "User", "Late"})
	for i, c := range result.Counts {
		tw.AppendRow(table.Row{i + 1, c.UserID, c.Count})
	}
	tw.AppendFooter(table.Row{"", "Total", result.Total})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 2, Align: text.AlignLeft},
		{Number: 3, Align: text.AlignRight, AlignFooter: text.AlignRight},
	})

	var sb strings.Builder
	sb.WriteString(paint(colorBold, fmt.Sprintf("⏰ %d late (%d users)", result.Total, len(result.Counts))))
	sb.WriteString("\n")
	sb.WriteString(tw.Render())
	sb.WriteString("\n")
	return sb.String()
}

// formatHealth formats a HealthResult for terminal display.
func formatHealth(h *socket.HealthResult) string {
	var sb strings.Builder
	sb.WriteString(paint(colorBold, "⏰ latebot daemon") + "\n")
	sb.WriteString(fmt.Sprintf("  Status:   %s\n", paint(colorGreen, h.Status)))
	sb.WriteString(fmt.Sprintf("  Phrases:  %d\n", h.PhraseCount))
	sb.WriteString(fmt.Sprintf("  Scorer:   %s\n", h.Scorer))
	sb.WriteString(fmt.Sprintf("  Uptime:   %s\n", paint(colorGray, h.Uptime)))
	return sb.String()
}
