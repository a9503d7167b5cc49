package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"Backend-TanyaPintar/src/errs"
	"Backend-TanyaPintar/src/models"
	"Backend-TanyaPintar/test"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type mockSubmitter struct {
	mock.Mock
}

func (m *mockSubmitter) Submit(ctx context.Context, req models.SubmitRequest) (*models.Submission, error) {
	args := m.Called(req.UserName, req.ClassName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Submission), args.Error(1)
}

type mockForms struct {
	mock.Mock
}

func (m *mockForms) Form(ctx context.Context, className string) (*models.PortalForm, error) {
	args := m.Called(className)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PortalForm), args.Error(1)
}

func portalApp(forms FormBuilder, sub Submitter) *fiber.App {
	pc := NewPortalController(forms, sub, nil, 0)
	app := fiber.New()
	app.Get("/portal/form", pc.GetForm)
	app.Get("/portal/classes", pc.GetClasses)
	app.Post("/portal/submissions", pc.Submit)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) (int, models.ErrorResponse, []byte) {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var raw bytes.Buffer
	_, _ = raw.ReadFrom(resp.Body)
	var er models.ErrorResponse
	_ = json.Unmarshal(raw.Bytes(), &er)
	return resp.StatusCode, er, raw.Bytes()
}

func TestPortalSubmit(t *testing.T) {
	suite := test.NewSuite("Portal Submit")
	defer suite.PrintSummary()

	body := map[string]interface{}{
		"userName":  "Budi",
		"className": "X-IPA-1",
		"answers":   map[string]interface{}{"q1": 5},
	}

	suite.Run(t, "Created", 100*time.Millisecond, func(t *testing.T) {
		sub := new(mockSubmitter)
		stored := &models.Submission{ID: primitive.NewObjectID(), UserName: "Budi", ClassName: "X-IPA-1"}
		sub.On("Submit", "Budi", "X-IPA-1").Return(stored, nil)

		status, _, raw := postJSON(t, portalApp(new(mockForms), sub), "/portal/submissions", body)
		assert.Equal(t, fiber.StatusCreated, status)

		var got models.Submission
		require.NoError(t, json.Unmarshal(raw, &got))
		assert.Equal(t, stored.ID, got.ID)
		sub.AssertExpectations(t)
	})

	suite.Run(t, "PortalClosed", 100*time.Millisecond, func(t *testing.T) {
		sub := new(mockSubmitter)
		sub.On("Submit", "Budi", "X-IPA-1").Return(nil, errs.ErrPortalClosed)

		status, er, _ := postJSON(t, portalApp(new(mockForms), sub), "/portal/submissions", body)
		assert.Equal(t, fiber.StatusForbidden, status)
		assert.Equal(t, "PORTAL_CLOSED", er.Code)
	})

	suite.Run(t, "IncompleteAnswers", 100*time.Millisecond, func(t *testing.T) {
		sub := new(mockSubmitter)
		sub.On("Submit", "Budi", "X-IPA-1").Return(nil, &errs.IncompleteAnswersError{Missing: 2, MissingIDs: []string{"q2", "q3"}})

		status, er, _ := postJSON(t, portalApp(new(mockForms), sub), "/portal/submissions", body)
		assert.Equal(t, fiber.StatusUnprocessableEntity, status)
		assert.Equal(t, "INCOMPLETE_ANSWERS", er.Code)
		assert.Equal(t, 2, er.Missing)
	})

	suite.Run(t, "BlankNameRejectedBeforeIntake", 100*time.Millisecond, func(t *testing.T) {
		sub := new(mockSubmitter)
		status, _, _ := postJSON(t, portalApp(new(mockForms), sub), "/portal/submissions", map[string]interface{}{
			"userName":  "   ",
			"className": "X-IPA-1",
		})
		assert.Equal(t, fiber.StatusBadRequest, status)
		sub.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
	})

	suite.Run(t, "StoreUnavailable", 100*time.Millisecond, func(t *testing.T) {
		sub := new(mockSubmitter)
		sub.On("Submit", "Budi", "X-IPA-1").Return(nil, errs.Store(assert.AnError, "insert submission"))

		status, er, _ := postJSON(t, portalApp(new(mockForms), sub), "/portal/submissions", body)
		assert.Equal(t, fiber.StatusServiceUnavailable, status)
		assert.Equal(t, "STORE_UNAVAILABLE", er.Code)
	})
}

func TestPortalForm(t *testing.T) {
	forms := new(mockForms)
	cfg := models.DefaultEventConfig()
	forms.On("Form", "x-ipa-1").Return(&models.PortalForm{
		Config:    cfg,
		Classes:   []string{"X-IPA-1"},
		ClassName: "X-IPA-1",
		Questions: []models.Question{test.Question("Kantin?", models.QuestionRating, true)},
	}, nil)
	forms.On("Form", "XII-GONE").Return(nil, errs.ErrUnknownClass)
	forms.On("Form", "").Return(&models.PortalForm{Config: cfg, Classes: []string{"X-IPA-1", "X-IPA-2"}}, nil)

	app := portalApp(forms, new(mockSubmitter))

	resp, err := app.Test(httptest.NewRequest("GET", "/portal/form?className=x-ipa-1", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var form models.PortalForm
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&form))
	assert.Len(t, form.Questions, 1)
	assert.Equal(t, "X-IPA-1", form.ClassName)

	resp, err = app.Test(httptest.NewRequest("GET", "/portal/form?className=XII-GONE", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/portal/classes", nil), -1)
	require.NoError(t, err)
	var names []string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&names))
	assert.Equal(t, []string{"X-IPA-1", "X-IPA-2"}, names)
}
