// Package insights runs AI analysis over the submission set and keeps the
// resulting reports.
package insights

import (
	"context"
	"time"

	"Backend-TanyaPintar/src/errs"
	"Backend-TanyaPintar/src/models"
	"Backend-TanyaPintar/src/services/email"
	"Backend-TanyaPintar/src/services/realtime"

	"github.com/google/logger"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	opTimeout = 5 * time.Second
	// runTimeout bounds an in-process analysis run.
	runTimeout = 3 * time.Minute
)

type Analyzer interface {
	AnalyzeSubmissions(ctx context.Context, subs []models.Submission, questions []models.Question) (string, error)
}

type SubmissionLister interface {
	List(ctx context.Context, filter models.SubmissionFilter) ([]models.Submission, error)
}

type QuestionLister interface {
	List(ctx context.Context) ([]models.Question, error)
}

// Enqueuer hands an analysis run to the background queue.
type Enqueuer interface {
	EnqueueAnalyze(insightID string) error
}

// Store persists insights. *MongoStore implements it.
type Store interface {
	Insert(ctx context.Context, in *models.Insight) error
	Finish(ctx context.Context, id primitive.ObjectID, status, report string, count int, at time.Time) error
	Get(ctx context.Context, id primitive.ObjectID) (*models.Insight, error)
	List(ctx context.Context, limit int64) ([]models.Insight, error)
}

type Service struct {
	store       Store
	analyzer    Analyzer
	submissions SubmissionLister
	questions   QuestionLister
	queue       Enqueuer
	notifier    realtime.Notifier
	mailer      Mailer
	mailTo      string
	now         func() time.Time
}

// Mailer delivers the finished report to an admin inbox.
type Mailer interface {
	Send(to, subject, html string) error
}

func NewService(store Store, analyzer Analyzer, submissions SubmissionLister, questions QuestionLister, queue Enqueuer, notifier realtime.Notifier) *Service {
	if notifier == nil {
		notifier = realtime.Nop{}
	}
	return &Service{
		store:       store,
		analyzer:    analyzer,
		submissions: submissions,
		questions:   questions,
		queue:       queue,
		notifier:    notifier,
		now:         time.Now,
	}
}

// SetMailer sends every finished analysis to `to`.
func (s *Service) SetMailer(m Mailer, to string) {
	s.mailer = m
	s.mailTo = to
}

// SetQueue wires the background queue after construction; the queue's
// handler needs the service first.
func (s *Service) SetQueue(q Enqueuer) {
	s.queue = q
}

// Start records a pending insight and schedules its analysis. Without a queue
// the analysis runs in a goroutine of this process.
func (s *Service) Start(ctx context.Context) (*models.Insight, error) {
	in := &models.Insight{
		ID:        primitive.NewObjectID(),
		Status:    models.InsightPending,
		CreatedAt: s.now(),
	}
	if err := s.store.Insert(ctx, in); err != nil {
		return nil, errs.Store(err, "insert insight")
	}

	id := in.ID.Hex()
	if s.queue != nil {
		err := s.queue.EnqueueAnalyze(id)
		if err == nil {
			logger.Infof("[insights] 📨 queued analysis %s", id)
			s.notifier.Publish(ctx, realtime.TopicInsights)
			return in, nil
		}
		logger.Warningf("⚠️ [insights] enqueue failed, running in-process: %v", err)
	}

	go func() {
		rctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()
		if err := s.Run(rctx, id); err != nil {
			logger.Errorf("❌ [insights] in-process analysis %s: %v", id, err)
		}
	}()
	s.notifier.Publish(ctx, realtime.TopicInsights)
	return in, nil
}

// Run performs the analysis for insight id and stores the outcome. An AI
// failure is recorded on the insight with the fallback report and is not
// returned; store failures are.
func (s *Service) Run(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errs.Invalid("invalid insight id")
	}

	subs, err := s.submissions.List(ctx, models.SubmissionFilter{})
	if err != nil {
		return err
	}
	questions, err := s.questions.List(ctx)
	if err != nil {
		return err
	}

	status := models.InsightDone
	report, aerr := s.analyzer.AnalyzeSubmissions(ctx, subs, questions)
	if aerr != nil {
		status = models.InsightFailed
		logger.Errorf("❌ [insights] analysis %s failed: %v", id, aerr)
	}

	if err := s.store.Finish(ctx, oid, status, report, len(subs), s.now()); err != nil {
		return errs.Store(err, "finish insight")
	}
	logger.Infof("[insights] ✅ analysis %s %s over %d submissions", id, status, len(subs))
	s.notifier.Publish(ctx, realtime.TopicInsights)
	s.mail(models.Insight{ID: oid, Status: status, Report: report, SubmissionCount: len(subs)})
	return nil
}

func (s *Service) mail(in models.Insight) {
	if s.mailer == nil || s.mailTo == "" {
		return
	}
	subject, body := email.InsightMail(in)
	if err := s.mailer.Send(s.mailTo, subject, body); err != nil {
		logger.Warningf("⚠️ [insights] mail for %s not sent: %v", in.ID.Hex(), err)
	}
}

func (s *Service) Get(ctx context.Context, id string) (*models.Insight, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errs.Invalid("invalid insight id")
	}
	return s.store.Get(ctx, oid)
}

func (s *Service) List(ctx context.Context, limit int64) ([]models.Insight, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.store.List(ctx, limit)
}

// MongoStore keeps insights in a collection.
type MongoStore struct {
	col *mongo.Collection
}

func NewMongoStore(col *mongo.Collection) *MongoStore {
	return &MongoStore{col: col}
}

func (m *MongoStore) Insert(ctx context.Context, in *models.Insight) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	_, err := m.col.InsertOne(ctx, in)
	return err
}

func (m *MongoStore) Finish(ctx context.Context, id primitive.ObjectID, status, report string, count int, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	_, err := m.col.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"status":          status,
		"report":          report,
		"submissionCount": count,
		"finishedAt":      at,
	}})
	return err
}

func (m *MongoStore) Get(ctx context.Context, id primitive.ObjectID) (*models.Insight, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	var in models.Insight
	if err := m.col.FindOne(ctx, bson.M{"_id": id}).Decode(&in); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.Wrap(errs.ErrNotFound, "insight")
		}
		return nil, errs.Store(err, "get insight")
	}
	return &in, nil
}

func (m *MongoStore) List(ctx context.Context, limit int64) ([]models.Insight, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	cursor, err := m.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(limit))
	if err != nil {
		return nil, errs.Store(err, "list insights")
	}
	defer cursor.Close(ctx)

	out := []models.Insight{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, errs.Store(err, "decode insights")
	}
	return out, nil
}
