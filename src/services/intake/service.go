// Package intake validates a respondent's answers against the targeted question
// set and records one immutable submission.
package intake

import (
	"context"
	"strings"
	"time"

	"Backend-TanyaPintar/src/errs"
	"Backend-TanyaPintar/src/models"
	"Backend-TanyaPintar/src/services/targeting"

	"github.com/google/logger"
)

type Catalog interface {
	ActiveQuestions(ctx context.Context) ([]models.Question, error)
}

type Gate interface {
	GetConfig(ctx context.Context) (*models.EventConfig, error)
}

type Registry interface {
	ClassExists(ctx context.Context, name string) (bool, error)
}

type Recorder interface {
	InsertSubmission(ctx context.Context, s *models.Submission) error
}

// Notifier is told about new submissions so live views can re-derive.
type Notifier interface {
	Publish(ctx context.Context, topic string)
}

// TopicSubmissions change topic published after a submission is stored.
const TopicSubmissions = "submissions"

type Service struct {
	catalog  Catalog
	gate     Gate
	registry Registry
	recorder Recorder
	notifier Notifier
	now      func() time.Time
}

func NewService(catalog Catalog, gate Gate, registry Registry, recorder Recorder, notifier Notifier) *Service {
	return &Service{
		catalog:  catalog,
		gate:     gate,
		registry: registry,
		recorder: recorder,
		notifier: notifier,
		now:      time.Now,
	}
}

// Submit runs the intake checks in order: gate, class, completeness. On
// success exactly one submission is stored and returned.
func (s *Service) Submit(ctx context.Context, req models.SubmitRequest) (*models.Submission, error) {
	// 1) portal ต้องเปิดอยู่ (ปิดแล้วตอบ PortalClosed เสมอ ไม่ว่า input จะเป็นอะไร)
	cfg, err := s.gate.GetConfig(ctx)
	if err != nil {
		return nil, errs.Store(err, "load event config")
	}
	if !cfg.IsOpen {
		return nil, errs.ErrPortalClosed
	}

	userName := strings.TrimSpace(req.UserName)
	className := models.NormalizeClassName(req.ClassName)
	if userName == "" {
		return nil, errs.Invalid("userName is required")
	}
	if className == "" {
		return nil, errs.Invalid("className is required")
	}

	// 2) class ต้องมีอยู่ใน registry
	ok, err := s.registry.ClassExists(ctx, className)
	if err != nil {
		return nil, errs.Store(err, "check class")
	}
	if !ok {
		return nil, errs.ErrUnknownClass
	}

	// 3) ตอบครบทุกข้อที่ถูก target
	catalog, err := s.catalog.ActiveQuestions(ctx)
	if err != nil {
		return nil, errs.Store(err, "load catalog")
	}
	required := targeting.Resolve(className, catalog)
	answers, missing := Check(required, req.Answers)
	if len(missing) > 0 {
		return nil, &errs.IncompleteAnswersError{Missing: len(missing), MissingIDs: missing}
	}

	sub := &models.Submission{
		UserName:  userName,
		ClassName: className,
		Answers:   answers,
		Timestamp: s.now(),
	}
	if err := s.recorder.InsertSubmission(ctx, sub); err != nil {
		return nil, errs.Store(err, "insert submission")
	}

	logger.Infof("[intake] ✅ submission id=%s class=%s answers=%d", sub.ID.Hex(), sub.ClassName, len(sub.Answers))
	if s.notifier != nil {
		s.notifier.Publish(ctx, TopicSubmissions)
	}
	return sub, nil
}

// Check validates answers against the required questions. It returns the
// normalized answers restricted to the required ids and the ids that are
// missing or invalid. Ratings must be integers 1..5, text must be non-blank.
func Check(required []models.Question, answers map[string]interface{}) (models.Answers, []string) {
	out := make(models.Answers, len(required))
	var missing []string
	for _, q := range required {
		id := q.ID.Hex()
		raw, present := answers[id]
		if !present {
			missing = append(missing, id)
			continue
		}
		switch q.Type {
		case models.QuestionRating:
			v, ok := models.RatingValue(raw)
			if !ok {
				missing = append(missing, id)
				continue
			}
			out[id] = v
		default:
			v, ok := models.TextValue(raw)
			if !ok {
				missing = append(missing, id)
				continue
			}
			out[id] = v
		}
	}
	return out, missing
}
