// Package submissions stores respondent submissions and serves the admin
// listing, deletion and clear-all flows.
package submissions

import (
	"context"
	"regexp"
	"strings"
	"time"

	"Backend-TanyaPintar/src/errs"
	"Backend-TanyaPintar/src/models"
	"Backend-TanyaPintar/src/services/realtime"
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
	// listTimeout covers full scans used by reports and export.
	listTimeout = 30 * time.Second

	resetCodePurpose = "submissions-reset"
	resetCodeLength  = 6
	// ResetCodeTTL how long a clear-all confirmation code stays valid.
	ResetCodeTTL = 2 * time.Minute
)

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

// InsertSubmission persists s and sets its id.
func (s *Service) InsertSubmission(ctx context.Context, sub *models.Submission) error {
	if sub.ID.IsZero() {
		sub.ID = primitive.NewObjectID()
	}
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := s.col.InsertOne(ctx, sub)
	if err != nil {
		return err
	}
	// sync inserted id (เผื่อไดรเวอร์คืนค่า id ใหม่)
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		sub.ID = oid
	}
	return nil
}

// Filter translates the admin filter into a Mongo query. The search is a
// case-insensitive substring match on the respondent name.
func Filter(f models.SubmissionFilter) bson.M {
	filter := bson.M{}
	if f.HasClass() {
		filter["className"] = models.NormalizeClassName(f.ClassName)
	}
	if q := strings.TrimSpace(f.Search); q != "" {
		filter["userName"] = bson.M{"$regex": regexp.QuoteMeta(q), "$options": "i"}
	}
	return filter
}

// List returns every submission matching f, newest first.
func (s *Service) List(ctx context.Context, f models.SubmissionFilter) ([]models.Submission, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	cursor, err := s.col.Find(ctx, Filter(f), options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}))
	if err != nil {
		return nil, errs.Store(err, "list submissions")
	}
	defer cursor.Close(ctx)

	subs := []models.Submission{}
	if err := cursor.All(ctx, &subs); err != nil {
		return nil, errs.Store(err, "decode submissions")
	}
	return subs, nil
}

// Page returns one page of matching submissions and the total count.
func (s *Service) Page(ctx context.Context, f models.SubmissionFilter, params models.PaginationParams) ([]models.Submission, int64, error) {
	params.Normalize()
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	filter := Filter(f)
	total, err := s.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, errs.Store(err, "count submissions")
	}

	findOptions := options.Find().
		SetSkip(params.GetSkip()).
		SetLimit(int64(params.Limit)).
		SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cursor, err := s.col.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, errs.Store(err, "list submissions")
	}
	defer cursor.Close(ctx)

	subs := []models.Submission{}
	if err := cursor.All(ctx, &subs); err != nil {
		return nil, 0, errs.Store(err, "decode submissions")
	}
	return subs, total, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.Submission, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errs.Invalid("invalid submission id")
	}
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var sub models.Submission
	if err := s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&sub); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.Wrap(errs.ErrNotFound, "submission")
		}
		return nil, errs.Store(err, "get submission")
	}
	return &sub, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errs.Invalid("invalid submission id")
	}
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := s.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return errs.Store(err, "delete submission")
	}
	if res.DeletedCount == 0 {
		return errors.Wrap(errs.ErrNotFound, "submission")
	}

	logger.Infof("[submissions] 🗑️ deleted %s", id)
	s.notifier.Publish(ctx, realtime.TopicSubmissions)
	return nil
}

// IssueResetCode creates the confirmation code required by ClearAll.
func (s *Service) IssueResetCode() (string, time.Time, error) {
	code := utils.GenerateCode(resetCodeLength)
	if code == "" {
		return "", time.Time{}, errors.New("generate reset code")
	}
	if err := utils.StoreCode(resetCodePurpose, code, ResetCodeTTL); err != nil {
		return "", time.Time{}, errs.Store(err, "store reset code")
	}
	logger.Warningf("⚠️ [submissions] clear-all code issued")
	return code, time.Now().Add(ResetCodeTTL), nil
}

// ClearAll deletes every submission in one batch once code matches the last
// issued reset code.
func (s *Service) ClearAll(ctx context.Context, code string) (int64, error) {
	ok, err := utils.ConsumeCode(resetCodePurpose, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return 0, errs.Store(err, "check reset code")
	}
	if !ok {
		return 0, errs.ErrInvalidCode
	}

	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()
	res, err := s.col.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, errs.Store(err, "clear submissions")
	}

	logger.Warningf("⚠️ [submissions] cleared %d submissions", res.DeletedCount)
	s.notifier.Publish(ctx, realtime.TopicSubmissions)
	return res.DeletedCount, nil
}
