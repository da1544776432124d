package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pulseform/internal/form/models"
)

func showRule(id, target, dep, match string) models.Rule {
	return models.Rule{ID: id, SourceQuestionID: target, DependsOnQuestionID: dep,
		Operator: models.OperatorEquals, MatchValue: match, Action: models.ActionShow}
}

func hideRule(id, target, dep, match string) models.Rule {
	return models.Rule{ID: id, SourceQuestionID: target, DependsOnQuestionID: dep,
		Operator: models.OperatorEquals, MatchValue: match, Action: models.ActionHide}
}

func TestIsVisible(t *testing.T) {
	t.Run("no rules means always visible", func(t *testing.T) {
		assert.True(t, IsVisible("q1", nil, models.AnswerSet{}))
		assert.True(t, IsVisible("q1", nil, models.AnswerSet{"other": models.Scalar("x")}))
	})

	t.Run("rules for other questions are ignored", func(t *testing.T) {
		rules := []models.Rule{showRule("r1", "q2", "dep", "x")}
		assert.True(t, IsVisible("q1", rules, models.AnswerSet{}))
	})

	t.Run("matching hide rule hides", func(t *testing.T) {
		rules := []models.Rule{hideRule("r1", "q1", "dep", "skip")}
		answers := models.AnswerSet{"dep": models.Scalar("skip")}
		assert.False(t, IsVisible("q1", rules, answers))
	})

	t.Run("hide wins over matching show", func(t *testing.T) {
		rules := []models.Rule{
			showRule("r1", "q1", "dep", "both"),
			hideRule("r2", "q1", "dep", "both"),
		}
		answers := models.AnswerSet{"dep": models.Scalar("both")}
		assert.False(t, IsVisible("q1", rules, answers))
	})

	t.Run("show rules are OR not AND", func(t *testing.T) {
		rules := []models.Rule{
			showRule("r1", "q1", "dep", "a"),
			showRule("r2", "q1", "dep", "b"),
		}
		assert.True(t, IsVisible("q1", rules, models.AnswerSet{"dep": models.Scalar("b")}))
		assert.False(t, IsVisible("q1", rules, models.AnswerSet{"dep": models.Scalar("c")}))
	})

	t.Run("show rule with unanswered dependency hides", func(t *testing.T) {
		rules := []models.Rule{showRule("r1", "q1", "dep", "a")}
		assert.False(t, IsVisible("q1", rules, models.AnswerSet{}))
	})

	t.Run("only hide rules and none match means visible", func(t *testing.T) {
		rules := []models.Rule{hideRule("r1", "q1", "dep", "skip")}
		assert.True(t, IsVisible("q1", rules, models.AnswerSet{"dep": models.Scalar("keep")}))
		assert.True(t, IsVisible("q1", rules, models.AnswerSet{}))
	})

	t.Run("require and flag rules do not affect visibility", func(t *testing.T) {
		rules := []models.Rule{
			{ID: "r1", SourceQuestionID: "q1", DependsOnQuestionID: "dep",
				Operator: models.OperatorEquals, MatchValue: "x", Action: models.ActionRequire},
			{ID: "r2", SourceQuestionID: "q1", DependsOnQuestionID: "dep",
				Operator: models.OperatorEquals, MatchValue: "x", Action: models.ActionFlag,
				FlagKind: models.FlagPriority},
		}
		assert.True(t, IsVisible("q1", rules, models.AnswerSet{"dep": models.Scalar("x")}))
	})
}

func TestVisibleSequence(t *testing.T) {
	questions := []models.Question{
		{ID: "entry", DisplayOrder: 1},
		{ID: "followup", DisplayOrder: 2},
		{ID: "phone", DisplayOrder: 3},
	}
	rules := []models.Rule{showRule("r1", "followup", "entry", "PATH_A")}

	t.Run("filters while preserving order", func(t *testing.T) {
		seq := VisibleSequence(questions, rules, models.AnswerSet{"entry": models.Scalar("PATH_A")})
		ids := []string{seq[0].ID, seq[1].ID, seq[2].ID}
		assert.Equal(t, []string{"entry", "followup", "phone"}, ids)
	})

	t.Run("gated question drops out when answer changes", func(t *testing.T) {
		seq := VisibleSequence(questions, rules, models.AnswerSet{"entry": models.Scalar("PATH_B")})
		assert.Len(t, seq, 2)
		assert.Equal(t, "entry", seq[0].ID)
		assert.Equal(t, "phone", seq[1].ID)
	})
}
