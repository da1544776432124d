// Package service implements the authoritative submission boundary: the
// honeypot and duplicate guards, the flag/tier computation, and the
// persistence of a response with its answers. This path alone decides
// what gets written; the client's live computation is advisory UX.
package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	formmodels "pulseform/internal/form/models"
	"pulseform/internal/form/logic"
	"pulseform/internal/metadata"
	"pulseform/internal/platform/metrics"
	"pulseform/internal/submission/models"
	dErrors "pulseform/pkg/domain-errors"
)

// Store persists submissions and answers the duplicate-window query.
type Store interface {
	// InsertSubmission writes the response record and its answer rows as
	// one unit. Implementations with transaction support wrap both in a
	// single transaction so no orphaned response can remain.
	InsertSubmission(ctx context.Context, response *models.Response, answers []models.AnswerRow) error
	// HasRecentAnswer reports whether any prior answer matches the
	// question/value pair with an owning submission at or after since.
	HasRecentAnswer(ctx context.Context, questionID, value string, since time.Time) (bool, error)
}

// RuleSource provides the configured rules for a form.
type RuleSource interface {
	Rules(ctx context.Context, formID string) ([]formmodels.Rule, error)
}

// Notifier receives accepted submissions that warrant follow-up.
type Notifier interface {
	Notify(event TriageEvent)
}

// TriageEvent describes a submission the triage worker should act on.
type TriageEvent struct {
	ResponseID string
	Flags      formmodels.FlagSet
	Tier       formmodels.Tier
}

// Config carries the guard and classification parameters.
type Config struct {
	DuplicateWindow  time.Duration
	UrgentPathMarker string
	Bands            formmodels.TierBands
	Source           string
}

// Service is the submission processor.
type Service struct {
	store    Store
	rules    RuleSource
	notifier Notifier
	metrics  *metrics.Metrics
	logger   *slog.Logger
	cfg      Config
	clock    func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock injects a clock for deterministic window tests.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// New constructs the submission service. notifier and metrics may be nil.
func New(store Store, rules RuleSource, notifier Notifier, m *metrics.Metrics, logger *slog.Logger, cfg Config, opts ...Option) *Service {
	if cfg.Source == "" {
		cfg.Source = "live_form"
	}
	s := &Service{
		store:    store,
		rules:    rules,
		notifier: notifier,
		metrics:  m,
		logger:   logger,
		cfg:      cfg,
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit runs the full authoritative pass: guards, flag and tier
// computation, then persistence. The returned result is what the caller
// sees; a spam hit looks like success with nothing written.
func (s *Service) Submit(ctx context.Context, payload *models.Payload) (*models.Result, error) {
	start := s.clock()

	// Honeypot: bots fill the hidden field. Respond as if accepted so
	// nothing tips them off, and write nothing.
	if payload.Honeypot != "" {
		s.logger.InfoContext(ctx, "honeypot triggered, dropping submission",
			"form_id", payload.FormID, "session_id", payload.SessionID)
		if s.metrics != nil {
			s.metrics.SubmissionsSpam.Inc()
		}
		return &models.Result{Accepted: true, Tier: formmodels.TierStandard}, nil
	}

	rules, err := s.rules.Rules(ctx, payload.FormID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "load rules")
	}

	flags := logic.ComputeFlags(rules, payload.Answers)
	flags = logic.ApplyPriorityOverride(flags, payload.Answers,
		questionByCategory(payload.Questions, formmodels.CategoryEntry, ""),
		s.cfg.UrgentPathMarker)

	tier := logic.ClassifyTier(payload.Answers,
		questionByCategory(payload.Questions, formmodels.CategoryWillingnessToPay, ""),
		questionByCategory(payload.Questions, formmodels.CategoryUsageVolume, ""),
		s.cfg.Bands)

	phoneQuestionID := questionByCategory(payload.Questions, formmodels.CategoryIdentity, formmodels.QuestionPhone)
	var phone string
	if phoneQuestionID != "" {
		if answer, ok := payload.Answers[phoneQuestionID]; ok {
			phone = answer.First()
		}
	}

	// Duplicate check: same phone question/value inside the window.
	// Duplicates are flagged for admin triage, never dropped. The check
	// and the insert below are not atomic; two near-simultaneous
	// submissions can both pass, costing only a missed duplicate flag.
	duplicate := false
	if phone != "" {
		since := s.clock().Add(-s.cfg.DuplicateWindow)
		duplicate, err = s.store.HasRecentAnswer(ctx, phoneQuestionID, phone, since)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "duplicate check")
		}
	}

	response := &models.Response{
		ID:          uuid.NewString(),
		FormID:      payload.FormID,
		EstateID:    payload.EstateID,
		SessionID:   payload.SessionID,
		PhoneNumber: metadata.NormalizePhone(phone),
		Tier:        tier,
		Flags:       flags,
		Duplicate:   duplicate,
		Source:      s.cfg.Source,
		Meta:        payload.Meta,
		SubmittedAt: s.clock(),
	}

	answerRows, err := buildAnswerRows(response.ID, payload)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "encode answers")
	}

	if err := s.store.InsertSubmission(ctx, response, answerRows); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "persist submission")
	}

	s.recordMetrics(flags, duplicate, s.clock().Sub(start))
	s.logger.InfoContext(ctx, "submission accepted",
		"response_id", response.ID,
		"form_id", payload.FormID,
		"tier", tier,
		"duplicate", duplicate,
		"priority", flags.Priority,
	)

	if s.notifier != nil && (flags.Priority || flags.UpsellCandidate) {
		s.notifier.Notify(TriageEvent{ResponseID: response.ID, Flags: flags, Tier: tier})
	}

	return &models.Result{
		Accepted:   true,
		ResponseID: response.ID,
		Flags:      flags,
		Tier:       tier,
		Duplicate:  duplicate,
	}, nil
}

// buildAnswerRows converts answered, non-empty questions into rows.
// Multi-select answers are JSON-encoded, scalars stored as-is.
func buildAnswerRows(responseID string, payload *models.Payload) ([]models.AnswerRow, error) {
	rows := make([]models.AnswerRow, 0, len(payload.Answers))
	for _, q := range payload.Questions {
		answer, ok := payload.Answers[q.ID]
		if !ok || answer.IsEmpty() {
			continue
		}
		value := answer.First()
		if answer.IsMulti() {
			encoded, err := json.Marshal(answer.Values())
			if err != nil {
				return nil, err
			}
			value = string(encoded)
		}
		rows = append(rows, models.AnswerRow{
			ResponseID: responseID,
			QuestionID: q.ID,
			Value:      value,
		})
	}
	return rows, nil
}

// questionByCategory finds the first question with the given category
// tag, optionally narrowed by type. Empty string when absent.
func questionByCategory(questions []formmodels.QuestionMeta, category string, qType formmodels.QuestionType) string {
	for _, q := range questions {
		if q.CategoryTag != category {
			continue
		}
		if qType != "" && q.Type != qType {
			continue
		}
		return q.ID
	}
	return ""
}

func (s *Service) recordMetrics(flags formmodels.FlagSet, duplicate bool, elapsed time.Duration) {
	if s.metrics == nil {
		return
	}
	s.metrics.SubmissionsAccepted.Inc()
	if duplicate {
		s.metrics.SubmissionsDuplicate.Inc()
	}
	for kind, set := range map[string]bool{
		string(formmodels.FlagPriority):        flags.Priority,
		string(formmodels.FlagChurnRisk):       flags.ChurnRisk,
		string(formmodels.FlagHighReferrer):    flags.HighReferrer,
		string(formmodels.FlagUpsellCandidate): flags.UpsellCandidate,
	} {
		if set {
			s.metrics.FlagsRaised.WithLabelValues(kind).Inc()
		}
	}
	s.metrics.SubmissionDuration.Observe(elapsed.Seconds())
}
