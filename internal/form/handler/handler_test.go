package handler_test

import (
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"pulseform/internal/form/handler"
	"pulseform/internal/form/models"
	formservice "pulseform/internal/form/service"
	"pulseform/internal/form/store"
	"pulseform/pkg/testutil"
)

type FormHandlerSuite struct {
	suite.Suite
	store  *store.Memory
	router chi.Router
}

func (s *FormHandlerSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.store = store.NewMemory()
	svc := formservice.New(s.store, nil, logger)

	s.router = chi.NewRouter()
	handler.New(svc, logger).Register(s.router)
}

func (s *FormHandlerSuite) seedForm() {
	s.store.SeedForm("feedback-v1",
		[]models.Question{
			{ID: "q-entry", FormID: "feedback-v1", Label: "What brings you here?", Type: models.QuestionSingleChoice, CategoryTag: models.CategoryEntry, DisplayOrder: 1, Active: true, Required: true},
			{ID: "q-phone", FormID: "feedback-v1", Label: "Phone number", Type: models.QuestionPhone, CategoryTag: models.CategoryIdentity, DisplayOrder: 2, Active: true},
			{ID: "q-retired", FormID: "feedback-v1", Label: "Old question", Type: models.QuestionText, DisplayOrder: 3, Active: false},
		},
		[]models.Rule{
			{ID: "r1", SourceQuestionID: "q-phone", DependsOnQuestionID: "q-entry", Operator: models.OperatorEquals, MatchValue: "PATH_A", Action: models.ActionShow},
		},
	)
}

func (s *FormHandlerSuite) TestDefinitionReturnsActiveQuestionsAndRules() {
	s.seedForm()

	req := testutil.NewJSONRequest(s.T(), http.MethodGet, "/forms/feedback-v1", nil)
	rr := testutil.DoRequest(s.router, req)

	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	def := testutil.UnmarshalResponse[formservice.Definition](s.T(), rr)
	assert.Equal(s.T(), "feedback-v1", def.FormID)
	if assert.Len(s.T(), def.Questions, 2) {
		assert.Equal(s.T(), "q-entry", def.Questions[0].ID)
		assert.Equal(s.T(), "q-phone", def.Questions[1].ID)
	}
	assert.Len(s.T(), def.Rules, 1)
}

func (s *FormHandlerSuite) TestDefinitionUnknownFormIsNotFound() {
	req := testutil.NewJSONRequest(s.T(), http.MethodGet, "/forms/missing", nil)
	rr := testutil.DoRequest(s.router, req)

	testutil.AssertStatus(s.T(), rr, http.StatusNotFound)
	testutil.AssertErrorCode(s.T(), rr, "not_found")
}

func (s *FormHandlerSuite) TestDefinitionNoActiveQuestionsIsNotFound() {
	s.store.SeedForm("feedback-v1", []models.Question{
		{ID: "q-retired", FormID: "feedback-v1", Active: false},
	}, nil)

	req := testutil.NewJSONRequest(s.T(), http.MethodGet, "/forms/feedback-v1", nil)
	rr := testutil.DoRequest(s.router, req)

	testutil.AssertStatus(s.T(), rr, http.StatusNotFound)
	testutil.AssertErrorCode(s.T(), rr, "not_found")
}

func TestFormHandlerSuite(t *testing.T) {
	suite.Run(t, new(FormHandlerSuite))
}
