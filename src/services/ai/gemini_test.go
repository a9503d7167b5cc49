package ai

import (
	"context"
	"strings"
	"testing"

	"Backend-TanyaPintar/src/errs"
	"Backend-TanyaPintar/src/models"
	"Backend-TanyaPintar/test"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type mockModel struct {
	mock.Mock
}

func (m *mockModel) GenerateText(ctx context.Context, model, prompt string, cfg *genai.GenerateContentConfig) (string, error) {
	args := m.Called(model, prompt)
	return args.String(0), args.Error(1)
}

func TestParseSuggestions(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   string
		want []models.QuestionSuggestion
	}{
		{
			name: "ThreeValid",
			in:   `[{"text":"Seberapa bersih kantin?","type":"rating"},{"text":"Apa menu favoritmu?","type":"text"},{"text":"Saran untuk kantin?","type":"text"}]`,
			want: []models.QuestionSuggestion{
				{Text: "Seberapa bersih kantin?", Type: models.QuestionRating},
				{Text: "Apa menu favoritmu?", Type: models.QuestionText},
				{Text: "Saran untuk kantin?", Type: models.QuestionText},
			},
		},
		{
			name: "DropsUnknownTypeAndBlankText",
			in:   `[{"text":"Pilih satu","type":"choice"},{"text":"   ","type":"text"},{"text":" Nilai guru ","type":" Rating "}]`,
			want: []models.QuestionSuggestion{{Text: "Nilai guru", Type: models.QuestionRating}},
		},
		{
			name: "CapsAtThree",
			in:   `[{"text":"a","type":"text"},{"text":"b","type":"text"},{"text":"c","type":"text"},{"text":"d","type":"text"}]`,
			want: []models.QuestionSuggestion{
				{Text: "a", Type: models.QuestionText},
				{Text: "b", Type: models.QuestionText},
				{Text: "c", Type: models.QuestionText},
			},
		},
		{
			name: "FencedJSON",
			in:   "```json\n[{\"text\":\"x\",\"type\":\"text\"}]\n```",
			want: []models.QuestionSuggestion{{Text: "x", Type: models.QuestionText}},
		},
		{
			name: "Empty",
			in:   "",
			want: []models.QuestionSuggestion{},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseSuggestions(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := ParseSuggestions("not json")
	assert.Error(t, err)
}

func TestSuggestQuestions(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		m := new(mockModel)
		m.On("GenerateText", "flash", mock.MatchedBy(func(p string) bool {
			return strings.Contains(p, `"Kebersihan"`)
		})).Return(`[{"text":"Nilai kebersihan?","type":"rating"}]`, nil)

		got, err := NewService(m, "flash", "pro").SuggestQuestions(context.Background(), " Kebersihan ")
		require.NoError(t, err)
		assert.Equal(t, []models.QuestionSuggestion{{Text: "Nilai kebersihan?", Type: models.QuestionRating}}, got)
		m.AssertExpectations(t)
	})

	t.Run("ModelFailureReturnsEmpty", func(t *testing.T) {
		m := new(mockModel)
		m.On("GenerateText", "flash", mock.Anything).Return("", errors.New("quota"))

		got, err := NewService(m, "flash", "pro").SuggestQuestions(context.Background(), "x")
		assert.ErrorIs(t, err, errs.ErrAIServiceFailure)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("Unparseable", func(t *testing.T) {
		m := new(mockModel)
		m.On("GenerateText", "flash", mock.Anything).Return("Maaf, saya tidak bisa.", nil)

		got, err := NewService(m, "flash", "pro").SuggestQuestions(context.Background(), "x")
		assert.ErrorIs(t, err, errs.ErrAIServiceFailure)
		assert.Empty(t, got)
	})

	t.Run("Disabled", func(t *testing.T) {
		got, err := NewService(nil, "flash", "pro").SuggestQuestions(context.Background(), "x")
		assert.ErrorIs(t, err, errs.ErrAIServiceFailure)
		assert.Empty(t, got)
	})
}

func TestAnalyzeSubmissions(t *testing.T) {
	q := test.Question("Nilai kantin", models.QuestionRating, true)
	subs := []models.Submission{
		{UserName: "Budi", ClassName: "X-IPA-1", Answers: models.Answers{q.ID.Hex(): 4, "gone": "lama"}},
	}

	t.Run("NoData", func(t *testing.T) {
		m := new(mockModel)
		report, err := NewService(m, "flash", "pro").AnalyzeSubmissions(context.Background(), nil, nil)
		require.NoError(t, err)
		assert.Equal(t, NoDataReport, report)
		m.AssertNotCalled(t, "GenerateText", mock.Anything, mock.Anything)
	})

	t.Run("Success", func(t *testing.T) {
		m := new(mockModel)
		m.On("GenerateText", "pro", mock.MatchedBy(func(p string) bool {
			return strings.Contains(p, `[Kelas: X-IPA-1] {"Nilai kantin":4,"gone":"lama"}`)
		})).Return("1. Rata-rata 4.0", nil)

		report, err := NewService(m, "flash", "pro").AnalyzeSubmissions(context.Background(), subs, []models.Question{q})
		require.NoError(t, err)
		assert.Equal(t, "1. Rata-rata 4.0", report)
	})

	t.Run("FailureFallsBack", func(t *testing.T) {
		m := new(mockModel)
		m.On("GenerateText", "pro", mock.Anything).Return("", errors.New("deadline exceeded"))

		report, err := NewService(m, "flash", "pro").AnalyzeSubmissions(context.Background(), subs, nil)
		assert.ErrorIs(t, err, errs.ErrAIServiceFailure)
		assert.Equal(t, FailedReport, report)
	})

	t.Run("EmptyAnswerFallsBack", func(t *testing.T) {
		m := new(mockModel)
		m.On("GenerateText", "pro", mock.Anything).Return("  ", nil)

		report, err := NewService(m, "flash", "pro").AnalyzeSubmissions(context.Background(), subs, nil)
		assert.Error(t, err)
		assert.Equal(t, FailedReport, report)
	})
}
