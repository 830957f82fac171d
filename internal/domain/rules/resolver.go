package rules

import "github.com/abdidvp/iceready/internal/domain"

// Resolve picks exactly one verdict from a table's findings and its
// clustering requirement. Precedence, first match wins:
//
//  1. Any data-type or lifecycle blocker: no Iceberg target is reachable
//     until the data is remediated.
//  2. Otherwise target viability is computed independently. A
//     metadata-feature blocker (collation, UUID) rules out the managed
//     target; a clustering requirement rules out the external target, which
//     cannot receive automatic-clustering maintenance.
//  3. Managed wins whenever viable — richer feature parity (see
//     FeatureMatrix).
//  4. A table that simultaneously needs a feature managed lacks and
//     maintenance only managed provides is BLOCKED.
//
// Warnings never affect the verdict.
func Resolve(findings []domain.Finding, needsClustering bool) string {
	metadataBlocker := false
	for _, f := range findings {
		if f.Severity != domain.SeverityBlocker {
			continue
		}
		switch f.Category {
		case domain.CategoryDataType, domain.CategoryLifecycle:
			return domain.VerdictNativeOnly
		case domain.CategoryMetadataFeature:
			metadataBlocker = true
		}
	}

	managedViable := !metadataBlocker
	externalViable := !needsClustering

	switch {
	case managedViable:
		return domain.VerdictManagedIceberg
	case externalViable:
		return domain.VerdictExternalIceberg
	default:
		return domain.VerdictBlocked
	}
}
