// Package cortex implements domain.Narrator on top of Snowflake Cortex,
// invoked as SQL through the same session the collector uses.
package cortex

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/abdidvp/iceready/internal/domain"
)

// Narrator generates the executive summary with SNOWFLAKE.CORTEX.COMPLETE.
type Narrator struct {
	db    *sql.DB
	model string
}

func New(db *sql.DB, model string) *Narrator {
	if model == "" {
		model = domain.DefaultModel
	}
	return &Narrator{db: db, model: model}
}

// Narrate renders the report into a prompt, runs Cortex COMPLETE, and returns
// the cleaned prose. Failures are the caller's to scope; the report itself is
// already complete by the time this runs.
func (n *Narrator) Narrate(ctx context.Context, report *domain.AuditReport) (string, error) {
	prompt := BuildPrompt(report)

	var text string
	err := n.db.QueryRowContext(ctx,
		"SELECT SNOWFLAKE.CORTEX.COMPLETE(?, ?)", n.model, prompt,
	).Scan(&text)
	if err != nil {
		return "", fmt.Errorf("cortex complete: %w", err)
	}

	return clean(text), nil
}

// BuildPrompt flattens the structured report into the summary prompt. The
// model only narrates; every number and blocker it sees was computed by the
// core first.
func BuildPrompt(report *domain.AuditReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Summarize the Iceberg migration readiness assessment for the %s database.\n", report.Database)
	b.WriteString("Do not escape underscores or use backslashes in table names.\n")
	b.WriteString("Write a brief section on each of these. Be specific.\n")
	fmt.Fprintf(&b, "1. Overall readiness (%d of %d tables have a viable Iceberg target, readiness score %.2f)\n",
		report.Summary.VerdictCounts[domain.VerdictManagedIceberg]+report.Summary.VerdictCounts[domain.VerdictExternalIceberg],
		report.Summary.TotalTables, report.Summary.Score)
	b.WriteString("2. Common blockers or issues found across tables\n")
	b.WriteString("3. Key recommendations for the migration\n\n")

	if len(report.Summary.TopBlockers) > 0 {
		b.WriteString("Most frequent blocker categories:\n")
		for _, bf := range report.Summary.TopBlockers {
			fmt.Fprintf(&b, "- %s (%d)\n", bf.Category, bf.Count)
		}
		b.WriteString("\n")
	}

	b.WriteString("Table assessments:\n")
	for _, a := range report.Audits {
		b.WriteString(tableLine(a))
		b.WriteString("\n")
	}

	b.WriteString("\nWrite in a professional tone suitable for a technical report.")
	return b.String()
}

func tableLine(a domain.TableAudit) string {
	status := "not suitable"
	if a.Suitable() {
		status = "suitable"
	}

	var blockers []string
	for _, f := range a.Findings {
		if f.Severity == domain.SeverityBlocker {
			blockers = append(blockers, f.Code)
		}
	}

	line := fmt.Sprintf("%s: %s, verdict %s", a.Table.QualifiedName(), status, a.Verdict)
	if len(blockers) > 0 {
		line += fmt.Sprintf(" (blockers: %s)", strings.Join(blockers, ", "))
	}
	return line
}

// clean strips markdown fences and stray backslash escapes the model
// sometimes emits despite instructions.
func clean(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.ReplaceAll(text, "```json", "")
		text = strings.ReplaceAll(text, "```", "")
		text = strings.TrimSpace(text)
	}
	return strings.ReplaceAll(text, `\`, "")
}
