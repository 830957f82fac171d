// Package summary folds per-table audits into database-level rollups.
package summary

import (
	"math"
	"sort"

	"github.com/abdidvp/iceready/internal/domain"
)

// Summarize computes the readiness rollup for one audit run. Pure and
// idempotent: the same audit sequence always yields bit-identical output.
// Blocker categories are ranked by frequency, ties broken by first-seen order
// in the input, truncated to topN (topN <= 0 keeps all). An empty scope is
// not an error: all counts zero, score 0.00.
func Summarize(audits []domain.TableAudit, topN int) domain.ReadinessSummary {
	s := domain.ReadinessSummary{
		TotalTables:   len(audits),
		VerdictCounts: map[string]int{},
	}

	counts := map[string]int{}
	firstSeen := map[string]int{}
	seq := 0

	for _, a := range audits {
		s.VerdictCounts[a.Verdict]++
		for _, f := range a.Findings {
			if f.Severity != domain.SeverityBlocker {
				continue
			}
			if _, ok := firstSeen[f.Category]; !ok {
				firstSeen[f.Category] = seq
				seq++
			}
			counts[f.Category]++
		}
	}

	ranked := make([]domain.BlockerFrequency, 0, len(counts))
	for cat, n := range counts {
		ranked = append(ranked, domain.BlockerFrequency{Category: cat, Count: n})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return firstSeen[ranked[i].Category] < firstSeen[ranked[j].Category]
	})
	if topN > 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}
	s.TopBlockers = ranked

	if len(audits) > 0 {
		ready := s.VerdictCounts[domain.VerdictManagedIceberg] +
			s.VerdictCounts[domain.VerdictExternalIceberg]
		s.Score = round2(float64(ready) / float64(len(audits)))
	}

	return s
}

// SchemaBreakdown computes suitable/total per schema, schemas in first-seen
// order of the input.
func SchemaBreakdown(audits []domain.TableAudit) []domain.SchemaStats {
	var stats []domain.SchemaStats
	index := map[string]int{}

	for _, a := range audits {
		i, ok := index[a.Table.Schema]
		if !ok {
			i = len(stats)
			index[a.Table.Schema] = i
			stats = append(stats, domain.SchemaStats{Schema: a.Table.Schema})
		}
		stats[i].Total++
		if a.Suitable() {
			stats[i].Suitable++
		}
	}

	return stats
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
