// Package ai talks to Gemini for question suggestions and submission analysis.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"Backend-TanyaPintar/src/errs"
	"Backend-TanyaPintar/src/models"

	"github.com/google/logger"
	"github.com/pkg/errors"
	"google.golang.org/genai"
)

const (
	// NoDataReport returned without calling the model when there is nothing to analyze.
	NoDataReport = "Belum ada data untuk dianalisis."
	// FailedReport returned when the model call fails or answers with nothing.
	FailedReport = "Analisis gagal."

	maxSuggestions = 3
	suggestTimeout = 30 * time.Second
	analyzeTimeout = 2 * time.Minute
)

const suggestPrompt = `Berikan 3 saran pertanyaan survei untuk topik "%s" bagi siswa. Satu pertanyaan harus berupa rating (skala 1-5) dan dua lainnya teks terbuka. Berikan dalam JSON array object dengan field "text" dan "type" ('text' atau 'rating').`

const analyzePrompt = `Lakukan analisis mendalam pada data jawaban siswa ini.
1. Berikan skor rata-rata untuk pertanyaan bertipe rating.
2. Identifikasi 3 masalah utama yang paling sering muncul di jawaban teks.
3. Berikan rekomendasi kebijakan sekolah yang konkret.

Data:
%s`

const analystInstruction = "Anda adalah analis data pendidikan profesional. Berikan output dalam Bahasa Indonesia yang sangat terstruktur dengan poin-poin yang tajam."

// TextModel generates text for a prompt. The Gemini client implements it;
// tests substitute a fake.
type TextModel interface {
	GenerateText(ctx context.Context, model, prompt string, cfg *genai.GenerateContentConfig) (string, error)
}

type geminiModel struct {
	client *genai.Client
}

func (g *geminiModel) GenerateText(ctx context.Context, model, prompt string, cfg *genai.GenerateContentConfig) (string, error) {
	res, err := g.client.Models.GenerateContent(ctx, model, genai.Text(prompt), cfg)
	if err != nil {
		return "", err
	}
	return res.Text(), nil
}

// NewGeminiModel creates a Gemini API client. An empty key returns nil so the
// service reports the AI as unavailable instead of failing startup.
func NewGeminiModel(ctx context.Context, apiKey string) (TextModel, error) {
	if strings.TrimSpace(apiKey) == "" {
		logger.Warningf("⚠️ GEMINI_API_KEY not set, AI features disabled")
		return nil, nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create gemini client")
	}
	logger.Infof("✅ Gemini client ready")
	return &geminiModel{client: client}, nil
}

type Service struct {
	model        TextModel
	suggestModel string
	analyzeModel string
}

func NewService(model TextModel, suggestModel, analyzeModel string) *Service {
	return &Service{model: model, suggestModel: suggestModel, analyzeModel: analyzeModel}
}

// Enabled reports whether a model client is configured.
func (s *Service) Enabled() bool {
	return s != nil && s.model != nil
}

var errDisabled = errors.New("gemini api key not configured")

// SuggestQuestions asks for three questions about topic. On failure it
// returns an empty list together with an AI error.
func (s *Service) SuggestQuestions(ctx context.Context, topic string) ([]models.QuestionSuggestion, error) {
	empty := []models.QuestionSuggestion{}
	if !s.Enabled() {
		return empty, errs.AI(errDisabled, "suggest questions")
	}
	ctx, cancel := context.WithTimeout(ctx, suggestTimeout)
	defer cancel()

	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"text": {Type: genai.TypeString},
					"type": {Type: genai.TypeString, Description: "Hanya 'text' atau 'rating'"},
				},
				Required: []string{"text", "type"},
			},
		},
	}
	text, err := s.model.GenerateText(ctx, s.suggestModel, fmt.Sprintf(suggestPrompt, strings.TrimSpace(topic)), cfg)
	if err != nil {
		logger.Errorf("❌ [ai] suggest failed: %v", err)
		return empty, errs.AI(err, "suggest questions")
	}
	out, err := ParseSuggestions(text)
	if err != nil {
		logger.Errorf("❌ [ai] suggest returned unparseable content: %v", err)
		return empty, errs.AI(err, "parse suggestions")
	}
	return out, nil
}

// ParseSuggestions decodes the model's JSON array. Items with an unknown type
// or blank text are dropped and the result is capped at three.
func ParseSuggestions(text string) ([]models.QuestionSuggestion, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)
	if text == "" {
		return []models.QuestionSuggestion{}, nil
	}

	var raw []struct {
		Text string `json:"text"`
		Type string `json:"type"`
	}
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, errors.Wrap(err, "decode suggestions")
	}

	out := make([]models.QuestionSuggestion, 0, maxSuggestions)
	for _, r := range raw {
		t := models.QuestionType(strings.ToLower(strings.TrimSpace(r.Type)))
		q := strings.TrimSpace(r.Text)
		if !t.Valid() || q == "" {
			continue
		}
		out = append(out, models.QuestionSuggestion{Text: q, Type: t})
		if len(out) == maxSuggestions {
			break
		}
	}
	return out, nil
}

// AnalyzeSubmissions produces a free-text report. It never returns an empty
// string: no data yields NoDataReport and any failure yields FailedReport
// together with the AI error.
func (s *Service) AnalyzeSubmissions(ctx context.Context, subs []models.Submission, questions []models.Question) (string, error) {
	if len(subs) == 0 {
		return NoDataReport, nil
	}
	if !s.Enabled() {
		return FailedReport, errs.AI(errDisabled, "analyze submissions")
	}
	ctx, cancel := context.WithTimeout(ctx, analyzeTimeout)
	defer cancel()

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(analystInstruction, genai.RoleUser),
		ThinkingConfig:    &genai.ThinkingConfig{ThinkingBudget: genai.Ptr[int32](0)},
	}
	text, err := s.model.GenerateText(ctx, s.analyzeModel, fmt.Sprintf(analyzePrompt, AnalysisData(subs, questions)), cfg)
	if err != nil {
		logger.Errorf("❌ [ai] analyze failed: %v", err)
		return FailedReport, errs.AI(err, "analyze submissions")
	}
	if strings.TrimSpace(text) == "" {
		return FailedReport, errs.AI(errors.New("empty response"), "analyze submissions")
	}
	return text, nil
}

// AnalysisData renders one line per submission: the class tag followed by the
// answers keyed by question text. Answers to deleted questions keep their id.
func AnalysisData(subs []models.Submission, questions []models.Question) string {
	texts := make(map[string]string, len(questions))
	for _, q := range questions {
		texts[q.ID.Hex()] = q.Text
	}
	lines := make([]string, 0, len(subs))
	for _, s := range subs {
		named := make(map[string]interface{}, len(s.Answers))
		for id, v := range s.Answers {
			key := id
			if t, ok := texts[id]; ok {
				key = t
			}
			named[key] = v
		}
		b, err := json.Marshal(named)
		if err != nil {
			b = []byte("{}")
		}
		lines = append(lines, fmt.Sprintf("[Kelas: %s] %s", s.ClassName, b))
	}
	return strings.Join(lines, "\n")
}
