package application_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/abdidvp/iceready/internal/application"
	"github.com/abdidvp/iceready/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCollector struct {
	tables    []domain.TableDescriptor
	databases []string
	err       error
}

func (s *stubCollector) Databases(ctx context.Context) ([]string, error) {
	return s.databases, s.err
}

func (s *stubCollector) Tables(ctx context.Context, database, schema string) ([]domain.TableDescriptor, error) {
	return s.tables, s.err
}

type stubNarrator struct {
	text string
	err  error
}

func (s *stubNarrator) Narrate(ctx context.Context, report *domain.AuditReport) (string, error) {
	return s.text, s.err
}

func table(schema, name, kind string, cols ...domain.ColumnDescriptor) domain.TableDescriptor {
	return domain.TableDescriptor{Schema: schema, Name: name, Kind: kind, Columns: cols}
}

func newService(collector domain.MetadataCollector, narrator domain.Narrator) *application.AuditService {
	return application.NewAuditService(collector, narrator, domain.DefaultConfig())
}

func TestAuditDatabase_FullPipeline(t *testing.T) {
	collector := &stubCollector{tables: []domain.TableDescriptor{
		table("SALES", "ORDERS", domain.KindPermanent,
			domain.ColumnDescriptor{Name: "ID", DataType: "NUMBER"}),
		table("SALES", "EVENTS", domain.KindPermanent,
			domain.ColumnDescriptor{Name: "PAYLOAD", DataType: "VARIANT"}),
		table("HR", "TEMP_LOAD", domain.KindTransient,
			domain.ColumnDescriptor{Name: "ID", DataType: "NUMBER"}),
	}}

	svc := newService(collector, &stubNarrator{text: "All good."})
	report, err := svc.AuditDatabase(context.Background(), "ANALYTICS", "")
	require.NoError(t, err)

	assert.Equal(t, "ANALYTICS", report.Database)
	require.Len(t, report.Audits, 3)
	assert.Equal(t, domain.VerdictManagedIceberg, report.Audits[0].Verdict)
	assert.Equal(t, domain.VerdictNativeOnly, report.Audits[1].Verdict)
	assert.Equal(t, domain.VerdictNativeOnly, report.Audits[2].Verdict)

	assert.Equal(t, 3, report.Summary.TotalTables)
	assert.Equal(t, 0.33, report.Summary.Score)
	assert.Equal(t, "All good.", report.Narrative)

	require.Len(t, report.Schemas, 2)
	assert.Equal(t, "SALES", report.Schemas[0].Schema)
}

func TestAuditDatabase_PreservesCatalogOrder(t *testing.T) {
	// Many tables through a small worker pool: output order must match the
	// catalog order, not completion order.
	var tables []domain.TableDescriptor
	for i := 0; i < 50; i++ {
		tables = append(tables, table("S", fmt.Sprintf("T%02d", i), domain.KindPermanent,
			domain.ColumnDescriptor{Name: "ID", DataType: "NUMBER"}))
	}
	cfg := domain.DefaultConfig()
	cfg.Workers = 8

	svc := application.NewAuditService(&stubCollector{tables: tables}, nil, cfg)
	report, err := svc.AuditDatabase(context.Background(), "DB", "")
	require.NoError(t, err)

	require.Len(t, report.Audits, 50)
	for i, a := range report.Audits {
		assert.Equal(t, fmt.Sprintf("T%02d", i), a.Table.Name)
	}
}

func TestAuditDatabase_MalformedTableFailsAlone(t *testing.T) {
	collector := &stubCollector{tables: []domain.TableDescriptor{
		table("S", "GOOD", domain.KindPermanent, domain.ColumnDescriptor{Name: "ID", DataType: "NUMBER"}),
		table("S", "BAD", "MYSTERY"),
		table("S", "ALSO_GOOD", domain.KindPermanent, domain.ColumnDescriptor{Name: "ID", DataType: "NUMBER"}),
	}}

	svc := newService(collector, nil)
	report, err := svc.AuditDatabase(context.Background(), "DB", "")
	require.NoError(t, err)

	require.Len(t, report.Audits, 2)
	assert.Equal(t, "GOOD", report.Audits[0].Table.Name)
	assert.Equal(t, "ALSO_GOOD", report.Audits[1].Table.Name)

	require.Len(t, report.Failures, 1)
	assert.Equal(t, "S.BAD", report.Failures[0].Table)
	assert.Equal(t, "kind", report.Failures[0].Field)

	assert.Equal(t, 2, report.Summary.TotalTables, "failed table is not counted")
}

func TestAuditDatabase_EmptyScopeIsNotAnError(t *testing.T) {
	svc := newService(&stubCollector{}, nil)

	report, err := svc.AuditDatabase(context.Background(), "EMPTY", "")
	require.NoError(t, err)

	assert.Empty(t, report.Audits)
	assert.Equal(t, 0, report.Summary.TotalTables)
	assert.Equal(t, 0.00, report.Summary.Score)
}

func TestAuditDatabase_CollectorFailure(t *testing.T) {
	svc := newService(&stubCollector{err: errors.New("access denied")}, nil)

	report, err := svc.AuditDatabase(context.Background(), "DB", "")
	assert.Nil(t, report)

	var collabErr *domain.CollaboratorError
	require.ErrorAs(t, err, &collabErr)
	assert.Equal(t, "catalog", collabErr.Collaborator)
}

func TestAuditDatabase_NarratorFailureKeepsReport(t *testing.T) {
	collector := &stubCollector{tables: []domain.TableDescriptor{
		table("S", "T", domain.KindPermanent, domain.ColumnDescriptor{Name: "ID", DataType: "NUMBER"}),
	}}

	svc := newService(collector, &stubNarrator{err: errors.New("model unavailable")})
	report, err := svc.AuditDatabase(context.Background(), "DB", "")

	var collabErr *domain.CollaboratorError
	require.ErrorAs(t, err, &collabErr)
	assert.Equal(t, "narrative", collabErr.Collaborator)

	// The computed audits survive the collaborator failure.
	require.NotNil(t, report)
	require.Len(t, report.Audits, 1)
	assert.Equal(t, domain.VerdictManagedIceberg, report.Audits[0].Verdict)
	assert.Empty(t, report.Narrative)
}

func TestAuditDatabase_NilNarratorSkipsNarrative(t *testing.T) {
	collector := &stubCollector{tables: []domain.TableDescriptor{
		table("S", "T", domain.KindPermanent, domain.ColumnDescriptor{Name: "ID", DataType: "NUMBER"}),
	}}

	svc := newService(collector, nil)
	report, err := svc.AuditDatabase(context.Background(), "DB", "")
	require.NoError(t, err)
	assert.Empty(t, report.Narrative)
}

func TestAuditDatabase_ExcludedSchemas(t *testing.T) {
	collector := &stubCollector{tables: []domain.TableDescriptor{
		table("SALES", "ORDERS", domain.KindPermanent, domain.ColumnDescriptor{Name: "ID", DataType: "NUMBER"}),
		table("STAGING", "RAW", domain.KindPermanent, domain.ColumnDescriptor{Name: "ID", DataType: "NUMBER"}),
	}}
	cfg := domain.DefaultConfig()
	cfg.ExcludeSchemas = []string{"STAGING"}

	svc := application.NewAuditService(collector, nil, cfg)
	report, err := svc.AuditDatabase(context.Background(), "DB", "")
	require.NoError(t, err)

	require.Len(t, report.Audits, 1)
	assert.Equal(t, "SALES", report.Audits[0].Table.Schema)
}

func TestAuditDatabase_Deterministic(t *testing.T) {
	collector := &stubCollector{tables: []domain.TableDescriptor{
		table("S", "A", domain.KindPermanent, domain.ColumnDescriptor{Name: "G", DataType: "GEOGRAPHY"}),
		table("S", "B", domain.KindTransient, domain.ColumnDescriptor{Name: "ID", DataType: "NUMBER"}),
		table("S", "C", domain.KindPermanent, domain.ColumnDescriptor{Name: "N", DataType: "TEXT", Collation: "en"}),
	}}
	svc := newService(collector, nil)

	first, err := svc.AuditDatabase(context.Background(), "DB", "")
	require.NoError(t, err)
	second, err := svc.AuditDatabase(context.Background(), "DB", "")
	require.NoError(t, err)

	assert.Equal(t, first.Audits, second.Audits)
	assert.Equal(t, first.Summary, second.Summary)
}

func TestDatabases(t *testing.T) {
	svc := newService(&stubCollector{databases: []string{"A", "B"}}, nil)

	names, err := svc.Databases(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, names)
}

func TestDatabases_Failure(t *testing.T) {
	svc := newService(&stubCollector{err: errors.New("no privileges")}, nil)

	_, err := svc.Databases(context.Background())
	var collabErr *domain.CollaboratorError
	require.ErrorAs(t, err, &collabErr)
	assert.Equal(t, "catalog", collabErr.Collaborator)
}

func TestEvaluateTable_Valid(t *testing.T) {
	audit, err := application.EvaluateTable(
		table("S", "T", domain.KindPermanent, domain.ColumnDescriptor{Name: "ID", DataType: "NUMBER"}),
	)
	require.NoError(t, err)
	assert.Equal(t, domain.VerdictManagedIceberg, audit.Verdict)
}

func TestEvaluateTable_Invalid(t *testing.T) {
	_, err := application.EvaluateTable(table("S", "T", "BOGUS"))

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "kind", verr.Field)
}
