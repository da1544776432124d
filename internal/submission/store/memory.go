package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"pulseform/internal/submission/models"
)

// Memory stores submissions in process for tests and local development.
type Memory struct {
	mu        sync.RWMutex
	responses map[string]*models.Response
	answers   []models.AnswerRow

	// failInsert makes the next insert fail, for persistence-failure tests.
	failInsert error
}

// NewMemory constructs an empty in-memory submission store.
func NewMemory() *Memory {
	return &Memory{responses: make(map[string]*models.Response)}
}

// FailNextInsert makes the next InsertSubmission return err.
func (m *Memory) FailNextInsert(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failInsert = err
}

// InsertSubmission stores the response and its answer rows atomically
// under one lock, mirroring the Postgres transaction.
func (m *Memory) InsertSubmission(_ context.Context, response *models.Response, answers []models.AnswerRow) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failInsert != nil {
		err := m.failInsert
		m.failInsert = nil
		return err
	}
	m.responses[response.ID] = response
	m.answers = append(m.answers, answers...)
	return nil
}

// HasRecentAnswer reports whether any stored answer matches the
// question/value pair with an owning response submitted at or after since.
func (m *Memory) HasRecentAnswer(_ context.Context, questionID, value string, since time.Time) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, row := range m.answers {
		if row.QuestionID != questionID || row.Value != value {
			continue
		}
		if resp, ok := m.responses[row.ResponseID]; ok && !resp.SubmittedAt.Before(since) {
			return true, nil
		}
	}
	return false, nil
}

// RecentResponses returns the latest responses for a form, newest first.
func (m *Memory) RecentResponses(_ context.Context, formID string, limit int) ([]*models.Response, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*models.Response
	for _, r := range m.responses {
		if r.FormID == formID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].SubmittedAt.After(out[j].SubmittedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ResponseCount reports how many responses are stored, for tests that
// assert the honeypot writes nothing.
func (m *Memory) ResponseCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.responses)
}

// AnswerCount reports how many answer rows are stored.
func (m *Memory) AnswerCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.answers)
}
