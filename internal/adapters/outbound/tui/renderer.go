package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/abdidvp/iceready/internal/domain"
)

// ── Warm palette ──
var (
	accent  = lipgloss.Color("#0EA5E9") // ice blue
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle        = lipgloss.NewStyle().Foreground(dim)
	faintStyle      = lipgloss.NewStyle().Foreground(faint)
	passStyle       = lipgloss.NewStyle().Foreground(success)
	failStyle       = lipgloss.NewStyle().Foreground(danger)
	warnStyle       = lipgloss.NewStyle().Foreground(warning)
	titleStyle      = lipgloss.NewStyle().Bold(true).Foreground(fg)
	blockerTagStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	warnTagStyle    = lipgloss.NewStyle().Foreground(warning).Bold(true)
	separatorLine   = faintStyle.Render(strings.Repeat("─", 64))

	verdictStyles = map[string]lipgloss.Style{
		domain.VerdictManagedIceberg:  passStyle,
		domain.VerdictExternalIceberg: passStyle,
		domain.VerdictNativeOnly:      failStyle,
		domain.VerdictBlocked:         warnStyle,
	}
)

// RenderReport renders a full audit report as a styled TUI string.
func RenderReport(report *domain.AuditReport) string {
	var b strings.Builder

	// ── Header ──
	scope := report.Database
	if report.Schema != "" {
		scope += "." + report.Schema
	}
	title := headerStyle.Render("iceready")
	subtitle := dimStyle.Render("Iceberg Readiness Audit · " + scope)
	scoreStyled := lipgloss.NewStyle().
		Bold(true).
		Foreground(scoreColor(report.Summary.Score)).
		Render(fmt.Sprintf("%.2f", report.Summary.Score))
	tablesLine := dimStyle.Render(fmt.Sprintf("%d tables audited", report.Summary.TotalTables))

	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + scoreStyled + "  " + tablesLine))
	b.WriteString("\n\n")

	renderVerdictCounts(&b, report.Summary)
	renderSchemas(&b, report.Schemas)
	renderBlockers(&b, report.Summary.TopBlockers)

	b.WriteString("\n  " + separatorLine + "\n\n")

	renderTables(&b, report.Audits)
	renderFailures(&b, report.Failures)

	if report.Narrative != "" {
		b.WriteString("\n  " + titleStyle.Render("Executive Summary") + "\n\n")
		for _, line := range strings.Split(report.Narrative, "\n") {
			b.WriteString("  " + line + "\n")
		}
	}

	return b.String()
}

func renderVerdictCounts(b *strings.Builder, s domain.ReadinessSummary) {
	order := []string{
		domain.VerdictManagedIceberg,
		domain.VerdictExternalIceberg,
		domain.VerdictNativeOnly,
		domain.VerdictBlocked,
	}
	b.WriteString("  " + titleStyle.Render("Verdicts") + "\n")
	for _, v := range order {
		n := s.VerdictCounts[v]
		style := dimStyle
		if n > 0 {
			style = verdictStyles[v]
		}
		fmt.Fprintf(b, "    %s %d\n", style.Render(fmt.Sprintf("%-17s", v)), n)
	}
	b.WriteString("\n")
}

func renderSchemas(b *strings.Builder, schemas []domain.SchemaStats) {
	if len(schemas) == 0 {
		return
	}
	b.WriteString("  " + titleStyle.Render("Schemas") + "\n")
	for _, s := range schemas {
		fmt.Fprintf(b, "    %s %s %s\n",
			dimStyle.Render(fmt.Sprintf("%-24s", s.Schema)),
			progressBar(s.Suitable, s.Total),
			faintStyle.Render(fmt.Sprintf("%d/%d suitable", s.Suitable, s.Total)),
		)
	}
	b.WriteString("\n")
}

func renderBlockers(b *strings.Builder, blockers []domain.BlockerFrequency) {
	if len(blockers) == 0 {
		return
	}
	b.WriteString("  " + titleStyle.Render("Top Blockers") + "\n")
	for _, bf := range blockers {
		fmt.Fprintf(b, "    %s %s %s\n",
			failStyle.Render("●"),
			bf.Category,
			dimStyle.Render(fmt.Sprintf("(%d)", bf.Count)),
		)
	}
	b.WriteString("\n")
}

func renderTables(b *strings.Builder, audits []domain.TableAudit) {
	b.WriteString("  " + titleStyle.Render("Tables") + "\n\n")
	for _, a := range audits {
		marker := passStyle.Render("✓")
		if !a.Suitable() {
			marker = failStyle.Render("✗")
		}
		style, ok := verdictStyles[a.Verdict]
		if !ok {
			style = dimStyle
		}
		fmt.Fprintf(b, "    %s %s  %s\n", marker, titleStyle.Render(a.Table.QualifiedName()), style.Render(a.Verdict))

		if a.NeedsClustering {
			fmt.Fprintf(b, "        %s clustered on %s\n",
				dimStyle.Render("·"), dimStyle.Render(strings.Join(a.Table.ClusteringKeys, ", ")))
		}
		for _, f := range a.Findings {
			renderFinding(b, f)
		}
	}
}

func renderFinding(b *strings.Builder, f domain.Finding) {
	tag := warnTagStyle.Render("WARNING")
	if f.Severity == domain.SeverityBlocker {
		tag = blockerTagStyle.Render("BLOCKER")
	}
	loc := ""
	if f.Column != "" {
		loc = dimStyle.Render(f.Column) + "  "
	}
	fmt.Fprintf(b, "        %s  %s%s %s\n", tag, loc, f.Message, faintStyle.Render("["+f.Category+"]"))
}

func renderFailures(b *strings.Builder, failures []domain.TableError) {
	if len(failures) == 0 {
		return
	}
	b.WriteString("\n  " + titleStyle.Render("Skipped") + "  " + dimStyle.Render(fmt.Sprintf("(%d)", len(failures))) + "\n")
	for _, f := range failures {
		fmt.Fprintf(b, "    %s %s  %s", failStyle.Render("●"), f.Table, f.Message)
		if f.Field != "" {
			fmt.Fprintf(b, " %s", faintStyle.Render("(field: "+f.Field+")"))
		}
		b.WriteString("\n")
	}
}

func progressBar(filled, total int) string {
	const width = 16
	if total == 0 {
		return faintStyle.Render(strings.Repeat("░", width))
	}
	n := filled * width / total
	return passStyle.Render(strings.Repeat("█", n)) + faintStyle.Render(strings.Repeat("░", width-n))
}

func scoreColor(score float64) lipgloss.Color {
	switch {
	case score >= 0.8:
		return success
	case score >= 0.5:
		return warning
	default:
		return danger
	}
}
