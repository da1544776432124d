package logic

import "pulseform/internal/form/models"

// IsVisible decides whether a question should be shown given the
// configured rules and the current answers.
//
// Policy: questions with no show/hide rules are always visible. A
// matching hide rule wins over any show rule. When only show rules are
// attached, at least one must match (OR semantics).
func IsVisible(questionID string, rules []models.Rule, answers models.AnswerSet) bool {
	var showRules, hideRules []models.Rule
	for _, r := range rules {
		if r.SourceQuestionID != questionID {
			continue
		}
		switch r.Action {
		case models.ActionShow:
			showRules = append(showRules, r)
		case models.ActionHide:
			hideRules = append(hideRules, r)
		}
	}

	if len(showRules) == 0 && len(hideRules) == 0 {
		return true
	}

	for _, r := range hideRules {
		if Evaluate(r, answers) {
			return false
		}
	}

	if len(showRules) > 0 {
		for _, r := range showRules {
			if Evaluate(r, answers) {
				return true
			}
		}
		return false
	}

	return true
}

// VisibleSequence filters questions down to the currently visible ones,
// preserving display order. The returned sequence is the single source
// of truth for step navigation, progress, and last-step checks; callers
// must recompute it after every answer change.
func VisibleSequence(questions []models.Question, rules []models.Rule, answers models.AnswerSet) []models.Question {
	visible := make([]models.Question, 0, len(questions))
	for _, q := range questions {
		if IsVisible(q.ID, rules, answers) {
			visible = append(visible, q)
		}
	}
	return visible
}
