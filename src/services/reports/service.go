package reports

import (
	"context"
	"time"

	"Backend-TanyaPintar/src/models"
)

type ClassLister interface {
	List(ctx context.Context) ([]models.Class, error)
}

type QuestionLister interface {
	List(ctx context.Context) ([]models.Question, error)
}

type SubmissionLister interface {
	List(ctx context.Context, filter models.SubmissionFilter) ([]models.Submission, error)
}

// Snapshot one consistent-enough read of the three collections.
type Snapshot struct {
	Classes     []models.Class
	Questions   []models.Question
	Submissions []models.Submission
}

type Service struct {
	classes     ClassLister
	questions   QuestionLister
	submissions SubmissionLister
	now         func() time.Time
}

func NewService(classes ClassLister, questions QuestionLister, submissions SubmissionLister) *Service {
	return &Service{classes: classes, questions: questions, submissions: submissions, now: time.Now}
}

// Load reads classes, the full catalog and every submission. The reads are not
// transactional; the aggregation tolerates a catalog older than the submissions.
func (s *Service) Load(ctx context.Context) (*Snapshot, error) {
	classes, err := s.classes.List(ctx)
	if err != nil {
		return nil, err
	}
	questions, err := s.questions.List(ctx)
	if err != nil {
		return nil, err
	}
	subs, err := s.submissions.List(ctx, models.SubmissionFilter{})
	if err != nil {
		return nil, err
	}
	return &Snapshot{Classes: classes, Questions: questions, Submissions: subs}, nil
}

// Build loads a fresh snapshot and aggregates it.
func (s *Service) Build(ctx context.Context) (*models.Report, error) {
	snap, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	report := Aggregate(snap.Classes, snap.Questions, snap.Submissions, s.now())
	return &report, nil
}
