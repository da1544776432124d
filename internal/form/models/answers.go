package models

import (
	"encoding/json"
	"fmt"
)

// AnswerValue is a tagged union: either a single string or an ordered
// list of strings (multi-select). The shape is fixed at capture time so
// downstream code never branches on runtime types.
type AnswerValue struct {
	multi  bool
	values []string
}

// Scalar wraps a single-value answer.
func Scalar(v string) AnswerValue {
	return AnswerValue{values: []string{v}}
}

// Multi wraps a multi-select answer, preserving selection order.
func Multi(vs ...string) AnswerValue {
	return AnswerValue{multi: true, values: vs}
}

// IsMulti reports whether the answer came from a multi-select question.
func (a AnswerValue) IsMulti() bool { return a.multi }

// Values normalizes the answer to a list: a scalar becomes a singleton.
func (a AnswerValue) Values() []string { return a.values }

// First returns the first value, or "" when the answer is empty.
func (a AnswerValue) First() string {
	if len(a.values) == 0 {
		return ""
	}
	return a.values[0]
}

// IsEmpty reports whether the answer carries no usable value. An empty
// scalar string counts as empty; an answered question key with "" is
// still distinct from an absent key.
func (a AnswerValue) IsEmpty() bool {
	if len(a.values) == 0 {
		return true
	}
	return !a.multi && a.values[0] == ""
}

// MarshalJSON emits a plain string for scalars and an array for
// multi-select answers, matching the submission wire format.
func (a AnswerValue) MarshalJSON() ([]byte, error) {
	if a.multi {
		if a.values == nil {
			return json.Marshal([]string{})
		}
		return json.Marshal(a.values)
	}
	return json.Marshal(a.First())
}

// UnmarshalJSON accepts either a JSON string or an array of strings.
func (a *AnswerValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = Scalar(s)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*a = Multi(list...)
		return nil
	}
	return fmt.Errorf("answer value must be a string or an array of strings")
}

// AnswerSet maps question IDs to given answers. A key is present only
// when the respondent actually answered; absence means unanswered.
type AnswerSet map[string]AnswerValue

// Clone returns a shallow copy so callers can snapshot the set.
func (s AnswerSet) Clone() AnswerSet {
	out := make(AnswerSet, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
