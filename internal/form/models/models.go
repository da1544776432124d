// Package models defines the form schema: questions, conditional rules,
// derived flags, and customer tiers. Pure data shapes, no logic.
package models

import "fmt"

// Operator compares a dependency answer against a rule's match value.
type Operator string

const (
	OperatorEquals      Operator = "equals"
	OperatorNotEquals   Operator = "not_equals"
	OperatorIncludes    Operator = "includes"
	OperatorExcludes    Operator = "excludes"
	OperatorGreaterThan Operator = "greater_than"
	OperatorLessThan    Operator = "less_than"
)

// Action is the effect a rule has on its source question.
type Action string

const (
	ActionShow Action = "show"
	ActionHide Action = "hide"
	// ActionRequire is accepted in the schema but not evaluated anywhere;
	// required-answer enforcement is keyed off Question.Required instead.
	ActionRequire Action = "require"
	ActionFlag    Action = "flag"
)

// FlagKind names the triage signal a flag rule raises.
type FlagKind string

const (
	FlagPriority        FlagKind = "priority"
	FlagChurnRisk       FlagKind = "churn_risk"
	FlagHighReferrer    FlagKind = "high_referrer"
	FlagUpsellCandidate FlagKind = "upsell_candidate"
)

// Rule links one question's answer to an effect on another question.
// Rules are admin-configured and read-only during a respondent session.
type Rule struct {
	ID                  string   `json:"id"`
	SourceQuestionID    string   `json:"source_question_id"`
	DependsOnQuestionID string   `json:"depends_on_question_id"`
	Operator            Operator `json:"operator"`
	MatchValue          string   `json:"match_value"`
	Action              Action   `json:"action"`
	FlagKind            FlagKind `json:"flag_kind,omitempty"`
}

// Validate enforces the schema invariant: action = flag if and only if a
// flag kind is present.
func (r Rule) Validate() error {
	if r.Action == ActionFlag && r.FlagKind == "" {
		return fmt.Errorf("rule %s: flag action requires a flag kind", r.ID)
	}
	if r.Action != ActionFlag && r.FlagKind != "" {
		return fmt.Errorf("rule %s: flag kind only valid with flag action", r.ID)
	}
	return nil
}

// QuestionType describes the input widget and answer shape.
type QuestionType string

const (
	QuestionSingleChoice   QuestionType = "single_choice"
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionText           QuestionType = "text"
	QuestionPhone          QuestionType = "phone"
	QuestionNumber         QuestionType = "number"
)

// Category tags used by the engine. Free-form on the schema side; these
// are the values the classifier and guard key off.
const (
	CategoryEntry            = "entry"
	CategoryIdentity         = "identity"
	CategoryWillingnessToPay = "willingness_to_pay"
	CategoryUsageVolume      = "usage_volume"
)

// Option is one selectable choice for a choice-type question.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Question is a configured form question. The evaluation core only reads
// ID, Type, and CategoryTag; the rest drives rendering and validation.
type Question struct {
	ID           string       `json:"id"`
	FormID       string       `json:"form_id"`
	Label        string       `json:"label"`
	Type         QuestionType `json:"question_type"`
	CategoryTag  string       `json:"category_tag,omitempty"`
	Required     bool         `json:"required"`
	Options      []Option     `json:"options,omitempty"`
	DisplayOrder int          `json:"display_order"`
	Active       bool         `json:"active"`
}

// QuestionMeta is the slim projection of a question carried on the
// submission payload: enough for flag, tier, and duplicate resolution.
type QuestionMeta struct {
	ID          string       `json:"id"`
	Type        QuestionType `json:"question_type"`
	CategoryTag string       `json:"category_tag,omitempty"`
}

// FlagSet holds the four derived triage booleans. Always computed fresh
// per submission, never partially updated.
type FlagSet struct {
	Priority        bool `json:"priority"`
	ChurnRisk       bool `json:"churn_risk"`
	HighReferrer    bool `json:"high_referrer"`
	UpsellCandidate bool `json:"upsell_candidate"`
}

// Set raises the named flag. Flags accumulate monotonically within one
// computation.
func (f *FlagSet) Set(kind FlagKind) {
	switch kind {
	case FlagPriority:
		f.Priority = true
	case FlagChurnRisk:
		f.ChurnRisk = true
	case FlagHighReferrer:
		f.HighReferrer = true
	case FlagUpsellCandidate:
		f.UpsellCandidate = true
	}
}

// Tier is the coarse customer classification derived at submission time.
type Tier string

const (
	TierHighValue Tier = "high_value"
	TierStandard  Tier = "standard"
	TierBudget    Tier = "budget"
)

// TierBands carries the ordered band identifiers (lowest first) the
// classifier ranks answers against. Band values are configuration, not
// engine logic.
type TierBands struct {
	Price []string
	Usage []string
}

// DefaultTierBands matches the live questionnaire's configured bands.
func DefaultTierBands() TierBands {
	return TierBands{
		Price: []string{"lt_5000", "5000_10000", "10000_15000", "gt_15000"},
		Usage: []string{"lt_10gb", "10_25gb", "25_50gb", "gt_50gb"},
	}
}
