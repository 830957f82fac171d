package domain

import (
	"fmt"
	"time"
)

// Table lifecycle kinds as reported by the catalog.
const (
	KindPermanent = "PERMANENT"
	KindTransient = "TRANSIENT"
	KindTemporary = "TEMPORARY"
)

// Finding severities.
const (
	SeverityBlocker = "BLOCKER"
	SeverityWarning = "WARNING"
)

// Finding categories.
const (
	CategoryDataType        = "data-type"
	CategoryMetadataFeature = "metadata-feature"
	CategoryLifecycle       = "lifecycle"
	CategoryPrecision       = "precision"
)

// Verdicts. Exactly one per table per audit run.
const (
	VerdictNativeOnly      = "NATIVE_ONLY"
	VerdictManagedIceberg  = "MANAGED_ICEBERG"
	VerdictExternalIceberg = "EXTERNAL_ICEBERG"
	VerdictBlocked         = "BLOCKED"
)

// ColumnDescriptor is an immutable snapshot of one column's catalog metadata.
type ColumnDescriptor struct {
	Name              string `json:"name"`
	DataType          string `json:"data_type"`
	Collation         string `json:"collation,omitempty"`
	DatetimePrecision *int   `json:"datetime_precision,omitempty"`
	Nullable          bool   `json:"nullable"`
}

// TableDescriptor is an immutable snapshot of one table's catalog metadata at
// audit time. Created by the metadata collector, consumed read-only by the
// rule engine.
type TableDescriptor struct {
	Schema         string             `json:"schema"`
	Name           string             `json:"name"`
	Kind           string             `json:"kind"`
	Columns        []ColumnDescriptor `json:"columns"`
	ClusteringKeys []string           `json:"clustering_keys,omitempty"`
	RetentionDays  int                `json:"retention_days"`
}

func (t TableDescriptor) QualifiedName() string {
	if t.Schema == "" {
		return t.Name
	}
	return t.Schema + "." + t.Name
}

// Validate checks that required fields carry known values. A failure aborts
// only this table's audit, never the whole run.
func (t TableDescriptor) Validate() error {
	if t.Name == "" {
		return &ValidationError{Table: t.QualifiedName(), Field: "name", Reason: "table name is empty"}
	}
	switch t.Kind {
	case KindPermanent, KindTransient, KindTemporary:
	default:
		return &ValidationError{
			Table:  t.QualifiedName(),
			Field:  "kind",
			Reason: fmt.Sprintf("unknown table kind %q", t.Kind),
		}
	}
	for _, c := range t.Columns {
		if c.Name == "" {
			return &ValidationError{Table: t.QualifiedName(), Field: "columns", Reason: "column with empty name"}
		}
	}
	return nil
}

// ValidationError identifies the table and field that made a descriptor
// unusable.
type ValidationError struct {
	Table  string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid descriptor for %s: %s: %s", e.Table, e.Field, e.Reason)
}

// CollaboratorError wraps a failure in an external collaborator (catalog
// access, Cortex call). Findings already computed for other tables are never
// lost to one of these.
type CollaboratorError struct {
	Collaborator string
	Err          error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s: %v", e.Collaborator, e.Err)
}

func (e *CollaboratorError) Unwrap() error { return e.Err }

// Finding is a single rule hit against a table. Findings are generated fresh
// per audit run and never persisted.
type Finding struct {
	Severity string `json:"severity"`
	Category string `json:"category"`
	Code     string `json:"code"`
	Column   string `json:"column,omitempty"`
	Message  string `json:"message"`
}

// TableAudit is the atomic unit the aggregator consumes: one descriptor, its
// findings in evaluation order, and exactly one verdict.
type TableAudit struct {
	Table           TableDescriptor `json:"table"`
	Findings        []Finding       `json:"findings"`
	NeedsClustering bool            `json:"needs_clustering"`
	Verdict         string          `json:"verdict"`
}

// Suitable reports whether the audit reached a viable Iceberg target.
func (a TableAudit) Suitable() bool {
	return a.Verdict == VerdictManagedIceberg || a.Verdict == VerdictExternalIceberg
}

// BlockerFrequency is one entry in the ranked blocker-category list.
type BlockerFrequency struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// ReadinessSummary is the database-level rollup of one audit run. Derived,
// recomputed per run, never cached across runs.
type ReadinessSummary struct {
	TotalTables   int                `json:"total_tables"`
	VerdictCounts map[string]int     `json:"verdict_counts"`
	TopBlockers   []BlockerFrequency `json:"top_blockers,omitempty"`
	Score         float64            `json:"score"`
}

// SchemaStats is the per-schema suitability rollup shown in the report.
type SchemaStats struct {
	Schema   string `json:"schema"`
	Suitable int    `json:"suitable"`
	Total    int    `json:"total"`
}

// TableError records a table whose audit was aborted by a malformed
// descriptor. The rest of the run is unaffected.
type TableError struct {
	Table   string `json:"table"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// AuditReport is the full structured payload of one run: the audited scope,
// every table audit in catalog order, the rollups, and the optional
// AI-generated narrative. This is exactly what the narrator consumes — its
// output never feeds back into any decision.
type AuditReport struct {
	Database    string           `json:"database"`
	Schema      string           `json:"schema,omitempty"`
	GeneratedAt time.Time        `json:"generated_at"`
	Audits      []TableAudit     `json:"audits"`
	Failures    []TableError     `json:"failures,omitempty"`
	Summary     ReadinessSummary `json:"summary"`
	Schemas     []SchemaStats    `json:"schemas,omitempty"`
	Narrative   string           `json:"narrative,omitempty"`
}

// RunEntry is one line of the local audit history.
type RunEntry struct {
	Timestamp string  `json:"timestamp"`
	Database  string  `json:"database"`
	Schema    string  `json:"schema,omitempty"`
	Tables    int     `json:"tables"`
	Score     float64 `json:"score"`
	Blocked   int     `json:"blocked"`
}

// NewRunEntry derives a history entry from a finished report.
func NewRunEntry(report *AuditReport) RunEntry {
	return RunEntry{
		Timestamp: report.GeneratedAt.Format(time.RFC3339),
		Database:  report.Database,
		Schema:    report.Schema,
		Tables:    report.Summary.TotalTables,
		Score:     report.Summary.Score,
		Blocked: report.Summary.VerdictCounts[VerdictBlocked] +
			report.Summary.VerdictCounts[VerdictNativeOnly],
	}
}
