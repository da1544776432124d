package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulseform/internal/form/models"
	"pulseform/pkg/platform/sentinel"
)

func TestMemoryActiveQuestions(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	t.Run("unknown form returns not found", func(t *testing.T) {
		_, err := m.ActiveQuestions(ctx, "missing")
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("filters inactive and sorts by display order", func(t *testing.T) {
		m.SeedForm("f1", []models.Question{
			{ID: "q3", DisplayOrder: 3, Active: true},
			{ID: "q1", DisplayOrder: 1, Active: true},
			{ID: "q2", DisplayOrder: 2, Active: false},
		}, nil)

		questions, err := m.ActiveQuestions(ctx, "f1")
		require.NoError(t, err)
		require.Len(t, questions, 2)
		assert.Equal(t, "q1", questions[0].ID)
		assert.Equal(t, "q3", questions[1].ID)
	})
}

func TestMemoryRules(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	m.SeedForm("f1", nil, []models.Rule{{ID: "r1"}, {ID: "r2"}})

	rules, err := m.Rules(ctx, "f1")
	require.NoError(t, err)
	assert.Len(t, rules, 2)

	t.Run("unknown form yields empty rules not error", func(t *testing.T) {
		rules, err := m.Rules(ctx, "missing")
		require.NoError(t, err)
		assert.Empty(t, rules)
	})

	t.Run("returned slice is a copy", func(t *testing.T) {
		rules, _ := m.Rules(ctx, "f1")
		rules[0].ID = "mutated"
		again, _ := m.Rules(ctx, "f1")
		assert.Equal(t, "r1", again[0].ID)
	})
}
