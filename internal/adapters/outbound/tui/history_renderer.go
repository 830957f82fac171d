package tui

import (
	"fmt"
	"strings"

	"github.com/abdidvp/iceready/internal/domain"
)

// RenderHistory renders past audit runs, most recent last.
func RenderHistory(entries []domain.RunEntry) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No audit history yet.") + "\n"
	}

	var b strings.Builder
	b.WriteString("  " + titleStyle.Render("Audit History") + "\n\n")
	for _, e := range entries {
		scope := e.Database
		if e.Schema != "" {
			scope += "." + e.Schema
		}
		style := passStyle
		switch {
		case e.Score < 0.5:
			style = failStyle
		case e.Score < 0.8:
			style = warnStyle
		}
		fmt.Fprintf(&b, "    %s  %s  %s  %s\n",
			dimStyle.Render(e.Timestamp),
			titleStyle.Render(fmt.Sprintf("%-30s", scope)),
			style.Render(fmt.Sprintf("%.2f", e.Score)),
			faintStyle.Render(fmt.Sprintf("%d tables, %d blocked", e.Tables, e.Blocked)),
		)
	}
	return b.String()
}
