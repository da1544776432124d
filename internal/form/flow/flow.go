// Package flow models a respondent's pass through the questionnaire as
// an explicit state machine. It owns the in-progress answer set, keeps
// the visible question sequence current, and guards advance/submit
// transitions so a re-entrant action during a transition window is
// ignored rather than queued.
package flow

import (
	"sync"

	"pulseform/internal/form/logic"
	"pulseform/internal/form/models"
)

// State names one phase of the respondent session.
type State string

const (
	StateDisplaying    State = "displaying"
	StateTransitioning State = "transitioning"
	StateSubmitting    State = "submitting"
	StateSubmitted     State = "submitted"
	StateErrored       State = "errored"
)

// Config carries the fixed business parameters the live pass shares with
// the authoritative one.
type Config struct {
	UrgentPathMarker string
	Bands            models.TierBands
}

// Flow is one respondent's session. One user, one device, one in-flight
// edit at a time; the mutex only protects against a stray re-entrant
// UI event, not concurrent collaborators.
type Flow struct {
	mu        sync.Mutex
	questions []models.Question
	rules     []models.Rule
	cfg       Config

	answers models.AnswerSet
	visible []models.Question
	index   int
	state   State
}

// New builds a flow over admin-configured questions (in display order)
// and rules. Both are read-only for the lifetime of the session.
func New(questions []models.Question, rules []models.Rule, cfg Config) *Flow {
	f := &Flow{
		questions: questions,
		rules:     rules,
		cfg:       cfg,
		answers:   models.AnswerSet{},
		state:     StateDisplaying,
	}
	f.visible = logic.VisibleSequence(questions, rules, f.answers)
	return f
}

// State returns the current session state.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Answer records a value and recomputes the visible sequence with the
// update already applied, so any navigation decision that follows sees
// post-change visibility rather than a one-step-stale view.
func (f *Flow) Answer(questionID string, value models.AnswerValue) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateDisplaying {
		return false
	}

	var currentID string
	if f.index < len(f.visible) {
		currentID = f.visible[f.index].ID
	}

	f.answers[questionID] = value
	f.recomputeLocked(currentID)
	return true
}

// recomputeLocked rebuilds the visible sequence and re-anchors the step
// index on the question that was current, falling back to a clamp when
// that question itself was filtered out.
func (f *Flow) recomputeLocked(currentID string) {
	f.visible = logic.VisibleSequence(f.questions, f.rules, f.answers)
	if currentID != "" {
		for i, q := range f.visible {
			if q.ID == currentID {
				f.index = i
				return
			}
		}
	}
	if f.index >= len(f.visible) && len(f.visible) > 0 {
		f.index = len(f.visible) - 1
	}
}

// Current returns the question at the current step.
func (f *Flow) Current() (models.Question, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.index >= len(f.visible) {
		return models.Question{}, false
	}
	return f.visible[f.index], true
}

// Visible returns a copy of the current visible question sequence.
func (f *Flow) Visible() []models.Question {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Question, len(f.visible))
	copy(out, f.visible)
	return out
}

// IsLast reports whether the current step is the final visible question.
// A question filtered out by a later answer never blocks submission.
func (f *Flow) IsLast() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.visible) > 0 && f.index == len(f.visible)-1
}

// Progress returns completion as a fraction of the visible sequence.
func (f *Flow) Progress() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.visible) == 0 {
		return 0
	}
	return float64(f.index+1) / float64(len(f.visible))
}

// Advance moves to the next visible question. Only legal while
// displaying; a second advance fired during the transition window is
// ignored, not queued. The caller ends the window with FinishTransition.
func (f *Flow) Advance() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateDisplaying {
		return false
	}
	if f.index >= len(f.visible)-1 {
		return false
	}
	f.index++
	f.state = StateTransitioning
	return true
}

// FinishTransition returns the flow to the displaying state after the
// UI's transition animation completes.
func (f *Flow) FinishTransition() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == StateTransitioning {
		f.state = StateDisplaying
	}
}

// Back steps to the previous visible question.
func (f *Flow) Back() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateDisplaying || f.index == 0 {
		return false
	}
	f.index--
	return true
}

// BeginSubmit enters the blocking submitting state. Only legal from the
// last visible question; a repeat call while already submitting is
// ignored, which is the double-submission guard.
func (f *Flow) BeginSubmit() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateDisplaying {
		return false
	}
	if len(f.visible) == 0 || f.index != len(f.visible)-1 {
		return false
	}
	f.state = StateSubmitting
	return true
}

// FinishSubmit resolves the in-flight submission. Failure keeps the
// locally held answers so the respondent can retry.
func (f *Flow) FinishSubmit(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateSubmitting {
		return
	}
	if err != nil {
		f.state = StateErrored
		return
	}
	f.state = StateSubmitted
}

// Retry returns an errored flow to displaying with answers intact.
func (f *Flow) Retry() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateErrored {
		return false
	}
	f.state = StateDisplaying
	return true
}

// Answers snapshots the in-progress answer set.
func (f *Flow) Answers() models.AnswerSet {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.answers.Clone()
}

// Snapshot computes the live flag set and tier from the current answers,
// using the same evaluation functions the authoritative boundary runs.
func (f *Flow) Snapshot() (models.FlagSet, models.Tier) {
	f.mu.Lock()
	defer f.mu.Unlock()

	flags := logic.ComputeFlags(f.rules, f.answers)
	flags = logic.ApplyPriorityOverride(flags, f.answers, f.questionByCategoryLocked(models.CategoryEntry), f.cfg.UrgentPathMarker)
	tier := logic.ClassifyTier(f.answers,
		f.questionByCategoryLocked(models.CategoryWillingnessToPay),
		f.questionByCategoryLocked(models.CategoryUsageVolume),
		f.cfg.Bands)
	return flags, tier
}

func (f *Flow) questionByCategoryLocked(category string) string {
	for _, q := range f.questions {
		if q.CategoryTag == category {
			return q.ID
		}
	}
	return ""
}
