package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pulseform/internal/form/models"
)

func TestClassifyTier(t *testing.T) {
	bands := models.DefaultTierBands()

	classify := func(wtp, usage string) models.Tier {
		answers := models.AnswerSet{}
		if wtp != "" {
			answers["wtp"] = models.Scalar(wtp)
		}
		if usage != "" {
			answers["usage"] = models.Scalar(usage)
		}
		return ClassifyTier(answers, "wtp", "usage", bands)
	}

	t.Run("high value requires both top bands", func(t *testing.T) {
		assert.Equal(t, models.TierHighValue, classify("gt_15000", "gt_50gb"))
		assert.Equal(t, models.TierHighValue, classify("10000_15000", "25_50gb"))
	})

	t.Run("one top band alone is not enough", func(t *testing.T) {
		assert.Equal(t, models.TierStandard, classify("gt_15000", "10_25gb"))
		assert.Equal(t, models.TierStandard, classify("5000_10000", "gt_50gb"))
	})

	t.Run("lowest price band is budget regardless of usage", func(t *testing.T) {
		assert.Equal(t, models.TierBudget, classify("lt_5000", "gt_50gb"))
		assert.Equal(t, models.TierBudget, classify("lt_5000", "lt_10gb"))
	})

	t.Run("middle bands are standard", func(t *testing.T) {
		assert.Equal(t, models.TierStandard, classify("5000_10000", "10_25gb"))
	})

	t.Run("unanswered questions default to standard", func(t *testing.T) {
		assert.Equal(t, models.TierStandard, classify("", ""))
		assert.Equal(t, models.TierStandard, classify("gt_15000", ""))
		assert.Equal(t, models.TierStandard, classify("", "gt_50gb"))
		assert.Equal(t, models.TierStandard, classify("lt_5000", ""))
	})

	t.Run("unknown band values are standard", func(t *testing.T) {
		assert.Equal(t, models.TierStandard, classify("free", "unlimited"))
	})

	t.Run("empty band config never classifies high or budget", func(t *testing.T) {
		answers := models.AnswerSet{
			"wtp":   models.Scalar("gt_15000"),
			"usage": models.Scalar("gt_50gb"),
		}
		assert.Equal(t, models.TierStandard, ClassifyTier(answers, "wtp", "usage", models.TierBands{}))
	})
}
