// Package questions manages the question catalog.
package questions

import (
	"context"
	"fmt"
	"strings"
	"time"

	"Backend-TanyaPintar/src/errs"
	"Backend-TanyaPintar/src/models"
	"Backend-TanyaPintar/src/services/realtime"
	"Backend-TanyaPintar/src/services/targeting"
	"Backend-TanyaPintar/src/utils"

	"github.com/google/logger"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	opTimeout = 5 * time.Second

	// activeCacheKey Redis key of the cached active catalog read by the portal.
	activeCacheKey = "questions:active"
)

// Registry checks that targeted classes exist.
type Registry interface {
	Unknown(ctx context.Context, names []string) ([]string, error)
}

type Service struct {
	col      *mongo.Collection
	registry Registry
	notifier realtime.Notifier
	cacheTTL time.Duration
	now      func() time.Time
}

func NewService(col *mongo.Collection, registry Registry, notifier realtime.Notifier, cacheTTL time.Duration) *Service {
	if notifier == nil {
		notifier = realtime.Nop{}
	}
	return &Service{col: col, registry: registry, notifier: notifier, cacheTTL: cacheTTL, now: time.Now}
}

// Create adds an admin-authored question. Active defaults to true and
// targeting to global.
func (s *Service) Create(ctx context.Context, req models.QuestionRequest) (*models.Question, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, errs.Invalid("question text is required")
	}
	if !req.Type.Valid() {
		return nil, errs.Invalid("type must be text or rating")
	}
	targetType, targets, err := s.resolveTargets(ctx, req.TargetType, req.TargetClasses)
	if err != nil {
		return nil, err
	}

	q := &models.Question{
		ID:            primitive.NewObjectID(),
		Text:          text,
		Type:          req.Type,
		Active:        req.Active == nil || *req.Active,
		CreatedAt:     s.now(),
		TargetType:    targetType,
		TargetClasses: targets,
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	if _, err := s.col.InsertOne(ctx, q); err != nil {
		return nil, errs.Store(err, "insert question")
	}

	logger.Infof("[questions] ✅ created %s type=%s target=%s", q.ID.Hex(), q.Type, q.TargetType)
	s.changed(ctx)
	return q, nil
}

// CreateDrafts stores AI suggestions as inactive global questions.
func (s *Service) CreateDrafts(ctx context.Context, suggestions []models.QuestionSuggestion) ([]models.Question, error) {
	if len(suggestions) == 0 {
		return []models.Question{}, nil
	}
	now := s.now()
	drafts := make([]models.Question, 0, len(suggestions))
	docs := make([]interface{}, 0, len(suggestions))
	for i, sg := range suggestions {
		q := models.Question{
			ID:            primitive.NewObjectID(),
			Text:          sg.Text,
			Type:          sg.Type,
			Active:        false,
			CreatedAt:     now.Add(time.Duration(i) * time.Millisecond),
			TargetType:    models.TargetGlobal,
			TargetClasses: []string{},
		}
		drafts = append(drafts, q)
		docs = append(docs, q)
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	if _, err := s.col.InsertMany(ctx, docs); err != nil {
		return nil, errs.Store(err, "insert drafts")
	}

	logger.Infof("[questions] 🤖 %d AI drafts added", len(drafts))
	s.changed(ctx)
	return drafts, nil
}

// List returns the whole catalog, newest first.
func (s *Service) List(ctx context.Context) ([]models.Question, error) {
	return s.find(ctx, bson.M{})
}

// ActiveQuestions returns active questions newest first, read through the
// Redis cache.
func (s *Service) ActiveQuestions(ctx context.Context) ([]models.Question, error) {
	var cached []models.Question
	if utils.GetCache(activeCacheKey, &cached) {
		return cached, nil
	}
	qs, err := s.find(ctx, bson.M{"active": true})
	if err != nil {
		return nil, err
	}
	if s.cacheTTL > 0 {
		utils.SetCache(activeCacheKey, qs, s.cacheTTL)
	}
	return qs, nil
}

// Preview resolves the form a respondent in className would see. It shares
// the resolver with intake.
func (s *Service) Preview(ctx context.Context, className string) ([]models.Question, error) {
	catalog, err := s.ActiveQuestions(ctx)
	if err != nil {
		return nil, err
	}
	return targeting.Resolve(className, catalog), nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.Question, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errs.Invalid("invalid question id")
	}
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var q models.Question
	if err := s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&q); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.Wrap(errs.ErrNotFound, "question")
		}
		return nil, errs.Store(err, "get question")
	}
	return &q, nil
}

// Update applies the non-nil fields of patch.
func (s *Service) Update(ctx context.Context, id string, patch models.QuestionPatch) (*models.Question, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	if patch.Text != nil {
		text := strings.TrimSpace(*patch.Text)
		if text == "" {
			return nil, errs.Invalid("question text cannot be blank")
		}
		set["text"] = text
	}
	if patch.Type != nil {
		if !patch.Type.Valid() {
			return nil, errs.Invalid("type must be text or rating")
		}
		set["type"] = *patch.Type
	}
	if patch.Active != nil {
		set["active"] = *patch.Active
	}
	if patch.TargetType != nil || patch.TargetClasses != nil {
		tt := current.TargetType
		if patch.TargetType != nil {
			tt = *patch.TargetType
		}
		classes := current.TargetClasses
		if patch.TargetClasses != nil {
			classes = patch.TargetClasses
		}
		targetType, targets, err := s.resolveTargets(ctx, tt, classes)
		if err != nil {
			return nil, err
		}
		set["targetType"] = targetType
		set["targetClasses"] = targets
	}
	if len(set) == 0 {
		return current, nil
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	var updated models.Question
	err = s.col.FindOneAndUpdate(ctx, bson.M{"_id": current.ID}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.Wrap(errs.ErrNotFound, "question")
		}
		return nil, errs.Store(err, "update question")
	}

	logger.Infof("[questions] ✏️ updated %s fields=%d", id, len(set))
	s.changed(ctx)
	return &updated, nil
}

// ToggleActive flips the active flag (publish or back to draft).
func (s *Service) ToggleActive(ctx context.Context, id string) (*models.Question, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	active := !current.Active
	return s.Update(ctx, id, models.QuestionPatch{Active: &active})
}

func (s *Service) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errs.Invalid("invalid question id")
	}
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := s.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return errs.Store(err, "delete question")
	}
	if res.DeletedCount == 0 {
		return errors.Wrap(errs.ErrNotFound, "question")
	}

	logger.Infof("[questions] 🗑️ deleted %s", id)
	s.changed(ctx)
	return nil
}

func (s *Service) find(ctx context.Context, filter bson.M) ([]models.Question, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, errs.Store(err, "list questions")
	}
	defer cursor.Close(ctx)

	qs := []models.Question{}
	if err := cursor.All(ctx, &qs); err != nil {
		return nil, errs.Store(err, "decode questions")
	}
	return qs, nil
}

// resolveTargets normalizes the targeting fields. Specific targets must be
// registered classes; an empty list is kept and means "shown to nobody".
func (s *Service) resolveTargets(ctx context.Context, tt models.TargetType, classes []string) (models.TargetType, []string, error) {
	if tt == "" {
		tt = models.TargetGlobal
	}
	if !tt.Valid() {
		return "", nil, errs.Invalid("targetType must be global or specific")
	}
	if tt == models.TargetGlobal {
		return tt, []string{}, nil
	}

	targets := models.NormalizeClassNames(classes)
	if len(targets) == 0 || s.registry == nil {
		return tt, targets, nil
	}
	unknown, err := s.registry.Unknown(ctx, targets)
	if err != nil {
		return "", nil, errs.Store(err, "check target classes")
	}
	if len(unknown) > 0 {
		return "", nil, errs.Invalid(fmt.Sprintf("unknown target classes: %s", strings.Join(unknown, ", ")))
	}
	return tt, targets, nil
}

// changed drops the cached active catalog and tells live views.
func (s *Service) changed(ctx context.Context) {
	utils.DelCache(activeCacheKey)
	s.notifier.Publish(ctx, realtime.TopicQuestions)
}
