// Package store persists form configuration. The Postgres store is the
// production path; the memory store backs tests and local development.
package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"pulseform/internal/form/models"
	"pulseform/pkg/platform/sentinel"
)

// Memory holds form configuration in process.
//
// Error contract (all stores): ErrNotFound when the form has no
// configuration, nil on success, wrapped errors for infrastructure
// failures.
type Memory struct {
	mu        sync.RWMutex
	questions map[string][]models.Question
	rules     map[string][]models.Rule
}

// NewMemory constructs an empty in-memory form store.
func NewMemory() *Memory {
	return &Memory{
		questions: make(map[string][]models.Question),
		rules:     make(map[string][]models.Rule),
	}
}

// SeedForm loads a form's configuration, replacing any previous seed.
func (m *Memory) SeedForm(formID string, questions []models.Question, rules []models.Rule) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.questions[formID] = questions
	m.rules[formID] = rules
}

// ActiveQuestions returns the form's active questions in display order.
func (m *Memory) ActiveQuestions(_ context.Context, formID string) ([]models.Question, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all, ok := m.questions[formID]
	if !ok {
		return nil, fmt.Errorf("form %s: %w", formID, sentinel.ErrNotFound)
	}
	active := make([]models.Question, 0, len(all))
	for _, q := range all {
		if q.Active {
			active = append(active, q)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].DisplayOrder < active[j].DisplayOrder
	})
	return active, nil
}

// Rules returns all rules configured for the form.
func (m *Memory) Rules(_ context.Context, formID string) ([]models.Rule, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Rule, len(m.rules[formID]))
	copy(out, m.rules[formID])
	return out, nil
}
