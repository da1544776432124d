// Package store persists submissions. Postgres is the production path;
// the memory store backs unit tests.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"pulseform/internal/submission/models"
)

// Postgres persists responses and answers in PostgreSQL. Response and
// answer inserts run in one transaction, so a failed answer batch rolls
// the response back instead of leaving an orphan.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed submission store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// InsertSubmission writes the response row and its answer rows
// transactionally. The answer batch uses COPY for one round trip.
func (p *Postgres) InsertSubmission(ctx context.Context, response *models.Response, answers []models.AnswerRow) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin submission tx: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO responses (
			id, form_id, estate_id, session_id, phone_number,
			customer_tier, priority_flag, churn_risk_flag, high_referrer_flag, upsell_candidate,
			is_duplicate, source, ip_address, user_agent, device_type, browser, os,
			referral_source, utm_medium, utm_campaign, submitted_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
	`
	_, err = tx.ExecContext(ctx, query,
		response.ID, response.FormID, response.EstateID, response.SessionID, nullable(response.PhoneNumber),
		response.Tier, response.Flags.Priority, response.Flags.ChurnRisk, response.Flags.HighReferrer, response.Flags.UpsellCandidate,
		response.Duplicate, response.Source, nullable(response.Meta.IPAddress), response.Meta.UserAgent,
		response.Meta.DeviceType, response.Meta.Browser, response.Meta.OS,
		nullable(response.Meta.ReferralSource), nullable(response.Meta.UTMMedium), nullable(response.Meta.UTMCampaign),
		response.SubmittedAt,
	)
	if err != nil {
		return fmt.Errorf("insert response: %w", err)
	}

	if len(answers) > 0 {
		stmt, err := tx.PrepareContext(ctx, pq.CopyIn("answers", "response_id", "question_id", "answer_value"))
		if err != nil {
			return fmt.Errorf("prepare answer copy: %w", err)
		}
		for _, row := range answers {
			if _, err := stmt.ExecContext(ctx, row.ResponseID, row.QuestionID, row.Value); err != nil {
				stmt.Close()
				return fmt.Errorf("copy answer row: %w", err)
			}
		}
		if _, err := stmt.ExecContext(ctx); err != nil {
			stmt.Close()
			return fmt.Errorf("flush answer copy: %w", err)
		}
		if err := stmt.Close(); err != nil {
			return fmt.Errorf("close answer copy: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit submission: %w", err)
	}
	return nil
}

// HasRecentAnswer reports whether any answer matches the question/value
// pair with an owning response submitted at or after since.
func (p *Postgres) HasRecentAnswer(ctx context.Context, questionID, value string, since time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM answers a
			JOIN responses r ON r.id = a.response_id
			WHERE a.question_id = $1 AND a.answer_value = $2 AND r.submitted_at >= $3
		)
	`
	var exists bool
	if err := p.db.QueryRowContext(ctx, query, questionID, value, since).Scan(&exists); err != nil {
		return false, fmt.Errorf("duplicate lookup: %w", err)
	}
	return exists, nil
}

// RecentResponses returns the latest responses for a form, newest first,
// for the admin triage view.
func (p *Postgres) RecentResponses(ctx context.Context, formID string, limit int) ([]*models.Response, error) {
	query := `
		SELECT id, form_id, estate_id, session_id, COALESCE(phone_number, ''),
		       customer_tier, priority_flag, churn_risk_flag, high_referrer_flag, upsell_candidate,
		       is_duplicate, source, submitted_at
		FROM responses
		WHERE form_id = $1
		ORDER BY submitted_at DESC
		LIMIT $2
	`
	rows, err := p.db.QueryContext(ctx, query, formID, limit)
	if err != nil {
		return nil, fmt.Errorf("query responses: %w", err)
	}
	defer rows.Close()

	var out []*models.Response
	for rows.Next() {
		var r models.Response
		if err := rows.Scan(&r.ID, &r.FormID, &r.EstateID, &r.SessionID, &r.PhoneNumber,
			&r.Tier, &r.Flags.Priority, &r.Flags.ChurnRisk, &r.Flags.HighReferrer, &r.Flags.UpsellCandidate,
			&r.Duplicate, &r.Source, &r.SubmittedAt); err != nil {
			return nil, fmt.Errorf("scan response: %w", err)
		}
		out = append(out, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate responses: %w", err)
	}
	return out, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
