// Package classes is the class registry.
package classes

import (
	"context"
	"time"

	"Backend-TanyaPintar/src/errs"
	"Backend-TanyaPintar/src/models"
	"Backend-TanyaPintar/src/services/realtime"

	"github.com/google/logger"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const opTimeout = 5 * time.Second

type Service struct {
	col      *mongo.Collection
	notifier realtime.Notifier
}

func NewService(col *mongo.Collection, notifier realtime.Notifier) *Service {
	if notifier == nil {
		notifier = realtime.Nop{}
	}
	return &Service{col: col, notifier: notifier}
}

// Create registers a class. The name is trimmed and upper-cased first.
func (s *Service) Create(ctx context.Context, name string) (*models.Class, error) {
	name = models.NormalizeClassName(name)
	if name == "" {
		return nil, errs.Invalid("class name is required")
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	n, err := s.col.CountDocuments(ctx, bson.M{"name": name})
	if err != nil {
		return nil, errs.Store(err, "check class")
	}
	if n > 0 {
		return nil, errors.Wrap(errs.ErrDuplicateClass, name)
	}

	class := &models.Class{ID: primitive.NewObjectID(), Name: name}
	if _, err := s.col.InsertOne(ctx, class); err != nil {
		// unique index catches a concurrent insert of the same name
		if mongo.IsDuplicateKeyError(err) {
			return nil, errors.Wrap(errs.ErrDuplicateClass, name)
		}
		return nil, errs.Store(err, "insert class")
	}

	logger.Infof("[classes] ✅ created %s", name)
	s.notifier.Publish(ctx, realtime.TopicClasses)
	return class, nil
}

// List returns classes in creation order.
func (s *Service) List(ctx context.Context) ([]models.Class, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	cursor, err := s.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, errs.Store(err, "list classes")
	}
	defer cursor.Close(ctx)

	classes := []models.Class{}
	if err := cursor.All(ctx, &classes); err != nil {
		return nil, errs.Store(err, "decode classes")
	}
	return classes, nil
}

// Names returns the registered class names in creation order.
func (s *Service) Names(ctx context.Context) ([]string, error) {
	classes, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(classes))
	for _, c := range classes {
		names = append(names, c.Name)
	}
	return names, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.Class, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errs.Invalid("invalid class id")
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var class models.Class
	if err := s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&class); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.Wrap(errs.ErrNotFound, "class")
		}
		return nil, errs.Store(err, "get class")
	}
	return &class, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errs.Invalid("invalid class id")
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := s.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return errs.Store(err, "delete class")
	}
	if res.DeletedCount == 0 {
		return errors.Wrap(errs.ErrNotFound, "class")
	}

	logger.Infof("[classes] 🗑️ deleted %s", id)
	s.notifier.Publish(ctx, realtime.TopicClasses)
	return nil
}

// ClassExists reports whether name (after normalization) is registered.
func (s *Service) ClassExists(ctx context.Context, name string) (bool, error) {
	name = models.NormalizeClassName(name)
	if name == "" {
		return false, nil
	}
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	n, err := s.col.CountDocuments(ctx, bson.M{"name": name}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Unknown returns the entries of names that are not registered. names must
// already be normalized.
func (s *Service) Unknown(ctx context.Context, names []string) ([]string, error) {
	if len(names) == 0 {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	cursor, err := s.col.Find(ctx, bson.M{"name": bson.M{"$in": names}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var found []models.Class
	if err := cursor.All(ctx, &found); err != nil {
		return nil, err
	}
	known := make(map[string]bool, len(found))
	for _, c := range found {
		known[c.Name] = true
	}
	var unknown []string
	for _, n := range names {
		if !known[n] {
			unknown = append(unknown, n)
		}
	}
	return unknown, nil
}
