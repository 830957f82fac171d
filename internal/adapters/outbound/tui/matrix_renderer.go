package tui

import (
	"fmt"
	"strings"

	"github.com/abdidvp/iceready/internal/domain/rules"
)

// RenderFeatureMatrix renders the native/managed/external comparison table.
func RenderFeatureMatrix(matrix []rules.FeatureSupport) string {
	var b strings.Builder

	b.WriteString("  " + titleStyle.Render("Feature Comparison") + "  " +
		dimStyle.Render("native vs managed vs external Iceberg") + "\n\n")
	b.WriteString("    " + dimStyle.Render(fmt.Sprintf("%-22s %-10s %-10s %s", "Feature", "Native", "Managed", "External")) + "\n")

	for _, row := range matrix {
		fmt.Fprintf(&b, "    %-22s %s %s %s\n",
			row.Feature, supportCell(row.Native), supportCell(row.Managed), supportCell(row.External))
	}
	return b.String()
}

func supportCell(v string) string {
	padded := fmt.Sprintf("%-10s", v)
	switch v {
	case "Yes":
		return passStyle.Render(padded)
	case "No":
		return failStyle.Render(padded)
	default:
		return warnStyle.Render(padded)
	}
}
