package history_test

import (
	"testing"

	"github.com/abdidvp/iceready/internal/adapters/outbound/history"
	"github.com/abdidvp/iceready/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileHistory_LoadEmpty(t *testing.T) {
	h := history.NewAt(t.TempDir())

	entries, err := h.Load()
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestFileHistory_SaveAndLoad(t *testing.T) {
	h := history.NewAt(t.TempDir())

	first := domain.RunEntry{
		Timestamp: "2026-03-01T12:00:00Z",
		Database:  "ANALYTICS",
		Tables:    10,
		Score:     0.7,
		Blocked:   3,
	}
	second := domain.RunEntry{
		Timestamp: "2026-03-02T12:00:00Z",
		Database:  "ANALYTICS",
		Schema:    "SALES",
		Tables:    4,
		Score:     1.0,
	}

	require.NoError(t, h.Save(first))
	require.NoError(t, h.Save(second))

	entries, err := h.Load()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, first, entries[0])
	assert.Equal(t, second, entries[1])
}
