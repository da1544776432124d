package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pulseform/internal/form/models"
)

func flagRule(id, dep, match string, kind models.FlagKind) models.Rule {
	return models.Rule{ID: id, SourceQuestionID: dep, DependsOnQuestionID: dep,
		Operator: models.OperatorEquals, MatchValue: match,
		Action: models.ActionFlag, FlagKind: kind}
}

func TestComputeFlags(t *testing.T) {
	t.Run("starts all false", func(t *testing.T) {
		flags := ComputeFlags(nil, models.AnswerSet{})
		assert.Equal(t, models.FlagSet{}, flags)
	})

	t.Run("matching rules raise their flags", func(t *testing.T) {
		rules := []models.Rule{
			flagRule("r1", "cancel_reason", "too_expensive", models.FlagChurnRisk),
			flagRule("r2", "referrer", "friend", models.FlagHighReferrer),
		}
		answers := models.AnswerSet{"cancel_reason": models.Scalar("too_expensive")}

		flags := ComputeFlags(rules, answers)
		assert.True(t, flags.ChurnRisk)
		assert.False(t, flags.HighReferrer)
		assert.False(t, flags.Priority)
		assert.False(t, flags.UpsellCandidate)
	})

	t.Run("redundant rules accumulate monotonically", func(t *testing.T) {
		rules := []models.Rule{
			flagRule("r1", "q", "yes", models.FlagUpsellCandidate),
			flagRule("r2", "q", "yes", models.FlagUpsellCandidate),
			flagRule("r3", "q", "no", models.FlagUpsellCandidate),
		}
		flags := ComputeFlags(rules, models.AnswerSet{"q": models.Scalar("yes")})
		assert.True(t, flags.UpsellCandidate)
	})

	t.Run("non-flag actions are ignored", func(t *testing.T) {
		rules := []models.Rule{showRule("r1", "q", "q", "yes")}
		flags := ComputeFlags(rules, models.AnswerSet{"q": models.Scalar("yes")})
		assert.Equal(t, models.FlagSet{}, flags)
	})

	t.Run("idempotent over same inputs", func(t *testing.T) {
		rules := []models.Rule{flagRule("r1", "q", "yes", models.FlagPriority)}
		answers := models.AnswerSet{"q": models.Scalar("yes")}
		first := ComputeFlags(rules, answers)
		second := ComputeFlags(rules, answers)
		assert.Equal(t, first, second)
	})
}

func TestApplyPriorityOverride(t *testing.T) {
	t.Run("urgent path forces priority with zero flag rules", func(t *testing.T) {
		answers := models.AnswerSet{"entry": models.Scalar("PATH_D")}
		flags := ComputeFlags(nil, answers)
		flags = ApplyPriorityOverride(flags, answers, "entry", "PATH_D")

		assert.Equal(t, models.FlagSet{Priority: true}, flags)
	})

	t.Run("other paths leave flags untouched", func(t *testing.T) {
		answers := models.AnswerSet{"entry": models.Scalar("PATH_A")}
		flags := ApplyPriorityOverride(models.FlagSet{}, answers, "entry", "PATH_D")
		assert.False(t, flags.Priority)
	})

	t.Run("unanswered entry question is a no-op", func(t *testing.T) {
		flags := ApplyPriorityOverride(models.FlagSet{}, models.AnswerSet{}, "entry", "PATH_D")
		assert.False(t, flags.Priority)
	})

	t.Run("missing entry question id is a no-op", func(t *testing.T) {
		answers := models.AnswerSet{"entry": models.Scalar("PATH_D")}
		flags := ApplyPriorityOverride(models.FlagSet{}, answers, "", "PATH_D")
		assert.False(t, flags.Priority)
	})

	t.Run("never clears an already-set flag", func(t *testing.T) {
		answers := models.AnswerSet{"entry": models.Scalar("PATH_A")}
		flags := ApplyPriorityOverride(models.FlagSet{Priority: true}, answers, "entry", "PATH_D")
		assert.True(t, flags.Priority)
	})
}
