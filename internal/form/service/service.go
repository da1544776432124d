// Package service loads form definitions and validates respondent input
// ahead of submission. Orchestration lives here; evaluation semantics
// stay in the logic package.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"pulseform/internal/form/logic"
	"pulseform/internal/form/models"
	"pulseform/internal/metadata"
	dErrors "pulseform/pkg/domain-errors"
	"pulseform/pkg/platform/sentinel"
)

// Store provides the configured questions and rules for a form.
type Store interface {
	ActiveQuestions(ctx context.Context, formID string) ([]models.Question, error)
	Rules(ctx context.Context, formID string) ([]models.Rule, error)
}

// DefinitionCache caches assembled definitions. Implementations may be
// nil-safe no-ops; the Redis-backed one lives in the store package.
type DefinitionCache interface {
	Get(ctx context.Context, formID string) (*Definition, bool)
	Set(ctx context.Context, def *Definition)
}

// Definition is the renderable form: ordered active questions plus the
// conditional rules, fetched together so client and server evaluate the
// same configuration.
type Definition struct {
	FormID    string            `json:"form_id"`
	Questions []models.Question `json:"questions"`
	Rules     []models.Rule     `json:"rules"`
}

// Service loads definitions and validates answers.
type Service struct {
	store  Store
	cache  DefinitionCache
	logger *slog.Logger
}

// New constructs the form service. cache may be nil.
func New(store Store, cache DefinitionCache, logger *slog.Logger) *Service {
	return &Service{store: store, cache: cache, logger: logger}
}

// Definition returns the active form configuration. A form with no
// active questions is a configuration absence: the caller gets a
// not_found error and renders nothing partial.
func (s *Service) Definition(ctx context.Context, formID string) (*Definition, error) {
	if s.cache != nil {
		if def, ok := s.cache.Get(ctx, formID); ok {
			return def, nil
		}
	}

	questions, err := s.store.ActiveQuestions(ctx, formID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "no active form")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "load questions")
	}
	if len(questions) == 0 {
		return nil, dErrors.New(dErrors.CodeNotFound, "no active form")
	}

	rules, err := s.store.Rules(ctx, formID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "load rules")
	}
	for _, r := range rules {
		if err := r.Validate(); err != nil {
			s.logger.WarnContext(ctx, "skipping malformed rule", "form_id", formID, "rule_id", r.ID, "error", err.Error())
		}
	}

	def := &Definition{FormID: formID, Questions: questions, Rules: rules}
	if s.cache != nil {
		s.cache.Set(ctx, def)
	}
	return def, nil
}

// ValidateAnswers checks the answer set against the currently visible
// questions: required ones must be answered, phone answers must parse.
// Validation failures are local and recoverable; nothing is persisted.
func (s *Service) ValidateAnswers(def *Definition, answers models.AnswerSet) error {
	for _, q := range logic.VisibleSequence(def.Questions, def.Rules, answers) {
		answer, answered := answers[q.ID]
		if !answered || answer.IsEmpty() {
			if q.Required {
				return dErrors.New(dErrors.CodeBadRequest, fmt.Sprintf("question %s requires an answer", q.ID))
			}
			continue
		}
		if q.Type == models.QuestionPhone && !metadata.ValidPhone(answer.First()) {
			return dErrors.New(dErrors.CodeBadRequest, "invalid phone number")
		}
	}
	return nil
}
