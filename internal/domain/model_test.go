package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/abdidvp/iceready/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableDescriptor_QualifiedName(t *testing.T) {
	table := domain.TableDescriptor{Schema: "SALES", Name: "ORDERS"}
	assert.Equal(t, "SALES.ORDERS", table.QualifiedName())

	noSchema := domain.TableDescriptor{Name: "ORDERS"}
	assert.Equal(t, "ORDERS", noSchema.QualifiedName())
}

func TestTableDescriptor_ValidateKinds(t *testing.T) {
	for _, kind := range []string{domain.KindPermanent, domain.KindTransient, domain.KindTemporary} {
		table := domain.TableDescriptor{Schema: "S", Name: "T", Kind: kind}
		assert.NoError(t, table.Validate(), kind)
	}
}

func TestTableDescriptor_ValidateUnknownKind(t *testing.T) {
	table := domain.TableDescriptor{Schema: "SALES", Name: "ORDERS", Kind: "EXTERNAL"}

	err := table.Validate()
	require.Error(t, err)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "SALES.ORDERS", verr.Table)
	assert.Equal(t, "kind", verr.Field)
	assert.Contains(t, err.Error(), "EXTERNAL")
}

func TestTableDescriptor_ValidateEmptyName(t *testing.T) {
	table := domain.TableDescriptor{Schema: "SALES", Kind: domain.KindPermanent}

	var verr *domain.ValidationError
	require.ErrorAs(t, table.Validate(), &verr)
	assert.Equal(t, "name", verr.Field)
}

func TestTableDescriptor_ValidateEmptyColumnName(t *testing.T) {
	table := domain.TableDescriptor{
		Schema:  "S",
		Name:    "T",
		Kind:    domain.KindPermanent,
		Columns: []domain.ColumnDescriptor{{DataType: "NUMBER"}},
	}

	var verr *domain.ValidationError
	require.ErrorAs(t, table.Validate(), &verr)
	assert.Equal(t, "columns", verr.Field)
}

func TestTableAudit_Suitable(t *testing.T) {
	assert.True(t, domain.TableAudit{Verdict: domain.VerdictManagedIceberg}.Suitable())
	assert.True(t, domain.TableAudit{Verdict: domain.VerdictExternalIceberg}.Suitable())
	assert.False(t, domain.TableAudit{Verdict: domain.VerdictNativeOnly}.Suitable())
	assert.False(t, domain.TableAudit{Verdict: domain.VerdictBlocked}.Suitable())
}

func TestCollaboratorError_Unwrap(t *testing.T) {
	cause := errors.New("permission denied")
	err := &domain.CollaboratorError{Collaborator: "catalog", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "catalog")
}

func TestNewRunEntry(t *testing.T) {
	report := &domain.AuditReport{
		Database:    "ANALYTICS",
		Schema:      "SALES",
		GeneratedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Summary: domain.ReadinessSummary{
			TotalTables: 5,
			Score:       0.6,
			VerdictCounts: map[string]int{
				domain.VerdictManagedIceberg: 3,
				domain.VerdictNativeOnly:     1,
				domain.VerdictBlocked:        1,
			},
		},
	}

	entry := domain.NewRunEntry(report)

	assert.Equal(t, "2026-03-01T12:00:00Z", entry.Timestamp)
	assert.Equal(t, "ANALYTICS", entry.Database)
	assert.Equal(t, "SALES", entry.Schema)
	assert.Equal(t, 5, entry.Tables)
	assert.Equal(t, 0.6, entry.Score)
	assert.Equal(t, 2, entry.Blocked)
}

func TestConfig_IsExcludedSchema(t *testing.T) {
	cfg := domain.Config{ExcludeSchemas: []string{"STAGING"}}

	assert.True(t, cfg.IsExcludedSchema("INFORMATION_SCHEMA"), "always excluded")
	assert.True(t, cfg.IsExcludedSchema("STAGING"))
	assert.False(t, cfg.IsExcludedSchema("SALES"))
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, domain.DefaultConfig().Validate())
	assert.Error(t, domain.Config{Workers: -1}.Validate())
	assert.Error(t, domain.Config{TopBlockers: -2}.Validate())
}
