// Package logic implements the conditional form-logic engine: rule
// evaluation, question visibility, flag computation, and tier
// classification. This is pure domain logic - no I/O, no side effects.
// The same functions run in the live flow and at the authoritative
// submission boundary so the two passes can never disagree.
package logic

import (
	"strconv"
	"strings"

	"pulseform/internal/form/models"
)

// Evaluate reports whether a rule matches the current answer set.
// A rule can never match against an unanswered dependency, and malformed
// input resolves to false rather than an error.
func Evaluate(rule models.Rule, answers models.AnswerSet) bool {
	answer, ok := answers[rule.DependsOnQuestionID]
	if !ok {
		return false
	}
	values := answer.Values()
	match := rule.MatchValue

	switch rule.Operator {
	case models.OperatorEquals:
		return containsExact(values, match)
	case models.OperatorNotEquals:
		return !containsExact(values, match)
	case models.OperatorIncludes:
		return containsLoose(values, match)
	case models.OperatorExcludes:
		// Mirrors the includes predicate so the pair stays an exact
		// complement for any answered dependency.
		return !containsLoose(values, match)
	case models.OperatorGreaterThan:
		a, m, ok := numericPair(values, match)
		return ok && a > m
	case models.OperatorLessThan:
		a, m, ok := numericPair(values, match)
		return ok && a < m
	default:
		return false
	}
}

// containsExact reports whether any element equals match.
func containsExact(values []string, match string) bool {
	for _, v := range values {
		if v == match {
			return true
		}
	}
	return false
}

// containsLoose reports whether any element equals match or contains it
// as a substring, covering partial matches on free-text answers.
func containsLoose(values []string, match string) bool {
	for _, v := range values {
		if v == match || strings.Contains(v, match) {
			return true
		}
	}
	return false
}

// numericPair parses the first answer element and the match value.
// Non-numeric input fails the comparison outright.
func numericPair(values []string, match string) (float64, float64, bool) {
	if len(values) == 0 {
		return 0, 0, false
	}
	a, err := strconv.ParseFloat(strings.TrimSpace(values[0]), 64)
	if err != nil {
		return 0, 0, false
	}
	m, err := strconv.ParseFloat(strings.TrimSpace(match), 64)
	if err != nil {
		return 0, 0, false
	}
	return a, m, true
}
