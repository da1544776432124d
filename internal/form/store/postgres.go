package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"pulseform/internal/form/models"
)

// Postgres reads form configuration from PostgreSQL.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed form store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// ActiveQuestions returns the form's active questions in display order.
// Option values and labels are stored as parallel text arrays.
func (p *Postgres) ActiveQuestions(ctx context.Context, formID string) ([]models.Question, error) {
	query := `
		SELECT id, form_id, label, question_type, COALESCE(category_tag, ''),
		       required, option_values, option_labels, display_order
		FROM questions
		WHERE form_id = $1 AND active = TRUE
		ORDER BY display_order
	`
	rows, err := p.db.QueryContext(ctx, query, formID)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		var q models.Question
		var optionValues, optionLabels []string
		if err := rows.Scan(&q.ID, &q.FormID, &q.Label, &q.Type, &q.CategoryTag,
			&q.Required, pq.Array(&optionValues), pq.Array(&optionLabels), &q.DisplayOrder); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		q.Active = true
		for i, v := range optionValues {
			opt := models.Option{Value: v}
			if i < len(optionLabels) {
				opt.Label = optionLabels[i]
			}
			q.Options = append(q.Options, opt)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}
	return questions, nil
}

// Rules returns all rules configured for the form.
func (p *Postgres) Rules(ctx context.Context, formID string) ([]models.Rule, error) {
	query := `
		SELECT id, source_question_id, depends_on_question_id,
		       operator, match_value, action, flag_kind
		FROM logic_rules
		WHERE form_id = $1
	`
	rows, err := p.db.QueryContext(ctx, query, formID)
	if err != nil {
		return nil, fmt.Errorf("query rules: %w", err)
	}
	defer rows.Close()

	var rules []models.Rule
	for rows.Next() {
		var r models.Rule
		var flagKind sql.NullString
		if err := rows.Scan(&r.ID, &r.SourceQuestionID, &r.DependsOnQuestionID,
			&r.Operator, &r.MatchValue, &r.Action, &flagKind); err != nil {
			return nil, fmt.Errorf("scan rule: %w", err)
		}
		if flagKind.Valid {
			r.FlagKind = models.FlagKind(flagKind.String)
		}
		rules = append(rules, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rules: %w", err)
	}
	return rules, nil
}
