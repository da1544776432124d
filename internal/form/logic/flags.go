package logic

import "pulseform/internal/form/models"

// ComputeFlags evaluates all flag rules against the answers and
// accumulates the triage flag set. Flags only ever turn on within one
// computation; running it twice over the same inputs yields the same set.
func ComputeFlags(rules []models.Rule, answers models.AnswerSet) models.FlagSet {
	var flags models.FlagSet
	for _, r := range rules {
		if r.Action != models.ActionFlag || r.FlagKind == "" {
			continue
		}
		if Evaluate(r, answers) {
			flags.Set(r.FlagKind)
		}
	}
	return flags
}

// ApplyPriorityOverride forces the priority flag when the entry
// question's answer is the urgent-path marker. This is a fixed business
// rule, not configurable rule data, and always wins; it runs after
// generic rule evaluation in both the live and authoritative passes.
func ApplyPriorityOverride(flags models.FlagSet, answers models.AnswerSet, entryQuestionID, urgentMarker string) models.FlagSet {
	if entryQuestionID == "" || urgentMarker == "" {
		return flags
	}
	if answer, ok := answers[entryQuestionID]; ok && answer.First() == urgentMarker {
		flags.Priority = true
	}
	return flags
}
