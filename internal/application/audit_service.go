package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/abdidvp/iceready/internal/domain"
	"github.com/abdidvp/iceready/internal/domain/rules"
	"github.com/abdidvp/iceready/internal/domain/summary"
)

// AuditService orchestrates the audit pipeline:
// collect metadata → evaluate + resolve per table → aggregate → narrate.
//
// Evaluation is pure and per-table independent, so it fans out across a
// bounded worker pool; results are re-joined in catalog order before
// aggregation so ranked output never depends on completion order.
type AuditService struct {
	collector domain.MetadataCollector
	narrator  domain.Narrator
	cfg       domain.Config
}

func NewAuditService(collector domain.MetadataCollector, narrator domain.Narrator, cfg domain.Config) *AuditService {
	return &AuditService{
		collector: collector,
		narrator:  narrator,
		cfg:       cfg,
	}
}

// AuditDatabase audits every base table in the database (optionally narrowed
// to one schema) and returns the full report.
//
// A malformed descriptor aborts only that table's audit and is recorded under
// Failures. A narrator failure is returned as a *domain.CollaboratorError
// alongside the otherwise complete report; callers decide whether to render
// without prose.
func (s *AuditService) AuditDatabase(ctx context.Context, database, schema string) (*domain.AuditReport, error) {
	tables, err := s.collector.Tables(ctx, database, schema)
	if err != nil {
		return nil, &domain.CollaboratorError{Collaborator: "catalog", Err: err}
	}

	scoped := tables[:0:0]
	for _, t := range tables {
		if !s.cfg.IsExcludedSchema(t.Schema) {
			scoped = append(scoped, t)
		}
	}

	audits, failures := s.evaluateAll(scoped)

	report := &domain.AuditReport{
		Database:    database,
		Schema:      schema,
		GeneratedAt: time.Now().UTC(),
		Audits:      audits,
		Failures:    failures,
		Summary:     summary.Summarize(audits, s.cfg.TopBlockers),
		Schemas:     summary.SchemaBreakdown(audits),
	}

	if s.narrator != nil {
		text, err := s.narrator.Narrate(ctx, report)
		if err != nil {
			return report, &domain.CollaboratorError{Collaborator: "narrative", Err: err}
		}
		report.Narrative = text
	}

	return report, nil
}

// Databases lists the databases visible to the session.
func (s *AuditService) Databases(ctx context.Context) ([]string, error) {
	names, err := s.collector.Databases(ctx)
	if err != nil {
		return nil, &domain.CollaboratorError{Collaborator: "catalog", Err: err}
	}
	return names, nil
}

// EvaluateTable classifies a single descriptor without touching the catalog.
func EvaluateTable(t domain.TableDescriptor) (domain.TableAudit, error) {
	if err := t.Validate(); err != nil {
		return domain.TableAudit{}, err
	}
	ev := rules.Evaluate(t)
	return domain.TableAudit{
		Table:           t,
		Findings:        ev.Findings,
		NeedsClustering: ev.NeedsClustering,
		Verdict:         rules.Resolve(ev.Findings, ev.NeedsClustering),
	}, nil
}

// evaluateAll fans table evaluation out across workers, then joins results
// back into catalog order. Indexed result slots keep the join deterministic.
func (s *AuditService) evaluateAll(tables []domain.TableDescriptor) ([]domain.TableAudit, []domain.TableError) {
	audits := make([]*domain.TableAudit, len(tables))
	tableErrs := make([]*domain.TableError, len(tables))

	workers := s.cfg.Workers
	if workers <= 0 {
		workers = domain.DefaultWorkers
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for i, t := range tables {
		g.Go(func() error {
			audit, err := EvaluateTable(t)
			if err != nil {
				tableErrs[i] = asTableError(t, err)
				return nil
			}
			audits[i] = &audit
			return nil
		})
	}
	_ = g.Wait() // workers only record results, never fail the group

	joined := make([]domain.TableAudit, 0, len(tables))
	var failures []domain.TableError
	for i := range tables {
		if audits[i] != nil {
			joined = append(joined, *audits[i])
		}
		if tableErrs[i] != nil {
			failures = append(failures, *tableErrs[i])
		}
	}
	return joined, failures
}

func asTableError(t domain.TableDescriptor, err error) *domain.TableError {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return &domain.TableError{Table: verr.Table, Field: verr.Field, Message: verr.Reason}
	}
	return &domain.TableError{Table: t.QualifiedName(), Message: fmt.Sprintf("audit failed: %v", err)}
}
