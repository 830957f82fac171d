// Package rules implements the Iceberg readiness rule set: the evaluation
// engine that maps one table descriptor to findings, and the resolver that
// picks exactly one migration verdict from them.
package rules

import (
	"fmt"
	"strings"

	"github.com/abdidvp/iceready/internal/domain"
)

// Stable reason codes carried on findings.
const (
	CodeUnsupportedType     = "unsupported_data_type"
	CodeCollatedColumn      = "collated_column"
	CodeUUIDColumn          = "uuid_column"
	CodeNonPermanentTable   = "non_permanent_table"
	CodeNanosecondTimestamp = "nanosecond_timestamp"
)

// Iceberg stores timestamps at microsecond precision; anything finer
// truncates on migration.
const maxTimestampPrecision = 6

// Evaluation is the engine's output for one table: findings in column order
// (table-level checks last) plus the clustering requirement flag the resolver
// consumes.
type Evaluation struct {
	Findings        []domain.Finding
	NeedsClustering bool
}

// Evaluate runs every rule against one descriptor. Pure and deterministic:
// same descriptor, same findings. Rules are additive — every applicable rule
// fires, nothing short-circuits.
func Evaluate(t domain.TableDescriptor) Evaluation {
	var findings []domain.Finding

	for _, col := range t.Columns {
		findings = append(findings, evaluateColumn(col)...)
	}

	if t.Kind == domain.KindTransient || t.Kind == domain.KindTemporary {
		findings = append(findings, domain.Finding{
			Severity: domain.SeverityBlocker,
			Category: domain.CategoryLifecycle,
			Code:     CodeNonPermanentTable,
			Message:  fmt.Sprintf("%s tables cannot be converted to Iceberg; only permanent tables are supported", strings.ToLower(t.Kind)),
		})
	}

	return Evaluation{
		Findings:        findings,
		NeedsClustering: len(t.ClusteringKeys) > 0,
	}
}

func evaluateColumn(col domain.ColumnDescriptor) []domain.Finding {
	var findings []domain.Finding

	switch col.DataType {
	case "GEOGRAPHY", "GEOMETRY":
		findings = append(findings, domain.Finding{
			Severity: domain.SeverityBlocker,
			Category: domain.CategoryDataType,
			Code:     CodeUnsupportedType,
			Column:   col.Name,
			Message:  fmt.Sprintf("%s is not supported by any Iceberg target", col.DataType),
		})
	case "VARIANT":
		findings = append(findings, domain.Finding{
			Severity: domain.SeverityBlocker,
			Category: domain.CategoryDataType,
			Code:     CodeUnsupportedType,
			Column:   col.Name,
			Message:  "VARIANT is not supported; convert to a structured OBJECT, ARRAY, or MAP first",
		})
	case "UUID":
		findings = append(findings, domain.Finding{
			Severity: domain.SeverityBlocker,
			Category: domain.CategoryMetadataFeature,
			Code:     CodeUUIDColumn,
			Column:   col.Name,
			Message:  "UUID is not supported in Snowflake-managed Iceberg tables",
		})
	}

	if col.Collation != "" {
		findings = append(findings, domain.Finding{
			Severity: domain.SeverityBlocker,
			Category: domain.CategoryMetadataFeature,
			Code:     CodeCollatedColumn,
			Column:   col.Name,
			Message:  fmt.Sprintf("collation %q is not supported on Snowflake-managed Iceberg tables", col.Collation),
		})
	}

	if isTimestamp(col.DataType) && col.DatetimePrecision != nil && *col.DatetimePrecision > maxTimestampPrecision {
		findings = append(findings, domain.Finding{
			Severity: domain.SeverityWarning,
			Category: domain.CategoryPrecision,
			Code:     CodeNanosecondTimestamp,
			Column:   col.Name,
			Message:  fmt.Sprintf("precision %d exceeds microseconds and will truncate after migration", *col.DatetimePrecision),
		})
	}

	return findings
}

// isTimestamp matches the timestamp family as INFORMATION_SCHEMA reports it
// (TIMESTAMP_NTZ, TIMESTAMP_LTZ, TIMESTAMP_TZ; DATETIME normalizes to
// TIMESTAMP_NTZ in the catalog).
func isTimestamp(dataType string) bool {
	return strings.HasPrefix(dataType, "TIMESTAMP") || dataType == "DATETIME"
}
