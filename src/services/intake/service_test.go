package intake

import (
	"context"
	"testing"
	"time"

	"Backend-TanyaPintar/src/errs"
	"Backend-TanyaPintar/src/models"
	"Backend-TanyaPintar/test"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeStore backs every intake dependency with in-memory data.
type fakeStore struct {
	open      bool
	classes   []string
	catalog   []models.Question
	inserted  []*models.Submission
	insertErr error
	configErr error
}

func (f *fakeStore) ActiveQuestions(ctx context.Context) ([]models.Question, error) {
	var out []models.Question
	for _, q := range f.catalog {
		if q.Active {
			out = append(out, q)
		}
	}
	return out, nil
}

func (f *fakeStore) GetConfig(ctx context.Context) (*models.EventConfig, error) {
	if f.configErr != nil {
		return nil, f.configErr
	}
	cfg := models.DefaultEventConfig()
	cfg.IsOpen = f.open
	return &cfg, nil
}

func (f *fakeStore) ClassExists(ctx context.Context, name string) (bool, error) {
	for _, c := range f.classes {
		if c == name {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) InsertSubmission(ctx context.Context, s *models.Submission) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	s.ID = primitive.NewObjectID()
	f.inserted = append(f.inserted, s)
	return nil
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Publish(ctx context.Context, topic string) {
	m.Called(ctx, topic)
}

func newService(store *fakeStore, n Notifier) *Service {
	s := NewService(store, store, store, store, n)
	s.now = func() time.Time { return time.Date(2025, 5, 2, 8, 0, 0, 0, time.UTC) }
	return s
}

func TestSubmit(t *testing.T) {
	suite := test.NewSuite("Submission Intake")
	defer suite.PrintSummary()

	rating := test.Question("Kantin?", models.QuestionRating, true)
	text := test.Question("Saran?", models.QuestionText, true)
	ipa := test.Targeted("Lab?", models.QuestionText, "X-IPA-1")
	draft := test.Question("Draft", models.QuestionText, false)
	catalog := []models.Question{rating, text, ipa, draft}

	suite.Run(t, "Success", 50*time.Millisecond, func(t *testing.T) {
		store := &fakeStore{open: true, classes: []string{"X-IPA-1"}, catalog: catalog}
		n := new(mockNotifier)
		n.On("Publish", mock.Anything, TopicSubmissions).Once()

		sub, err := newService(store, n).Submit(context.Background(), models.SubmitRequest{
			UserName:  "  Budi ",
			ClassName: "x-ipa-1",
			Answers: map[string]interface{}{
				rating.ID.Hex(): float64(4),
				text.ID.Hex():   "  lebih bersih ",
				ipa.ID.Hex():    "alat baru",
				draft.ID.Hex():  "ignored",
				"extra":         "dropped",
			},
		})

		require.NoError(t, err)
		assert.Equal(t, "Budi", sub.UserName)
		assert.Equal(t, "X-IPA-1", sub.ClassName)
		assert.Equal(t, models.Answers{
			rating.ID.Hex(): 4,
			text.ID.Hex():   "lebih bersih",
			ipa.ID.Hex():    "alat baru",
		}, sub.Answers)
		assert.Equal(t, time.Date(2025, 5, 2, 8, 0, 0, 0, time.UTC), sub.Timestamp)
		assert.Len(t, store.inserted, 1)
		n.AssertExpectations(t)
	})

	suite.Run(t, "ClosedGateWins", 50*time.Millisecond, func(t *testing.T) {
		store := &fakeStore{open: false, classes: []string{"X-IPA-1"}, catalog: catalog}
		_, err := newService(store, nil).Submit(context.Background(), models.SubmitRequest{
			UserName: "Budi", ClassName: "X-IPA-1",
		})
		assert.ErrorIs(t, err, errs.ErrPortalClosed)
		assert.Empty(t, store.inserted)
	})

	suite.Run(t, "ClosedGateWinsOverBlankInput", 50*time.Millisecond, func(t *testing.T) {
		store := &fakeStore{open: false, classes: []string{"X-IPA-1"}, catalog: catalog}
		_, err := newService(store, nil).Submit(context.Background(), models.SubmitRequest{
			UserName: "  ", ClassName: "",
		})
		assert.ErrorIs(t, err, errs.ErrPortalClosed)
		assert.NotErrorIs(t, err, errs.ErrInvalidInput)
	})

	suite.Run(t, "UnknownClass", 50*time.Millisecond, func(t *testing.T) {
		store := &fakeStore{open: true, classes: []string{"X-IPA-1"}, catalog: catalog}
		_, err := newService(store, nil).Submit(context.Background(), models.SubmitRequest{
			UserName: "Budi", ClassName: "XII-Z",
		})
		assert.ErrorIs(t, err, errs.ErrUnknownClass)
	})

	suite.Run(t, "IncompleteCountsMissing", 50*time.Millisecond, func(t *testing.T) {
		store := &fakeStore{open: true, classes: []string{"X-IPA-1"}, catalog: catalog}
		_, err := newService(store, nil).Submit(context.Background(), models.SubmitRequest{
			UserName:  "Budi",
			ClassName: "X-IPA-1",
			Answers: map[string]interface{}{
				rating.ID.Hex(): 9,     // out of range
				text.ID.Hex():   "   ", // blank
			},
		})

		var incomplete *errs.IncompleteAnswersError
		require.True(t, errors.As(err, &incomplete))
		assert.Equal(t, 3, incomplete.Missing)
		assert.ElementsMatch(t, []string{rating.ID.Hex(), text.ID.Hex(), ipa.ID.Hex()}, incomplete.MissingIDs)
		assert.Empty(t, store.inserted)
	})

	suite.Run(t, "TargetedElsewhereNotRequired", 50*time.Millisecond, func(t *testing.T) {
		store := &fakeStore{open: true, classes: []string{"X-IPA-1", "X-IPS-1"}, catalog: catalog}
		sub, err := newService(store, nil).Submit(context.Background(), models.SubmitRequest{
			UserName:  "Sari",
			ClassName: "X-IPS-1",
			Answers: map[string]interface{}{
				rating.ID.Hex(): "5",
				text.ID.Hex():   "ok",
			},
		})
		require.NoError(t, err)
		assert.NotContains(t, sub.Answers, ipa.ID.Hex())
		assert.Equal(t, 5, sub.Answers[rating.ID.Hex()])
	})

	suite.Run(t, "ZeroRequiredIsComplete", 50*time.Millisecond, func(t *testing.T) {
		store := &fakeStore{open: true, classes: []string{"X-IPA-1"}}
		sub, err := newService(store, nil).Submit(context.Background(), models.SubmitRequest{
			UserName: "Budi", ClassName: "X-IPA-1",
		})
		require.NoError(t, err)
		assert.Empty(t, sub.Answers)
	})

	suite.Run(t, "StoreFailures", 50*time.Millisecond, func(t *testing.T) {
		store := &fakeStore{open: true, classes: []string{"X-IPA-1"}, insertErr: errors.New("connection reset")}
		_, err := newService(store, nil).Submit(context.Background(), models.SubmitRequest{
			UserName: "Budi", ClassName: "X-IPA-1",
		})
		assert.ErrorIs(t, err, errs.ErrStoreUnavailable)

		store = &fakeStore{configErr: errors.New("timeout")}
		_, err = newService(store, nil).Submit(context.Background(), models.SubmitRequest{
			UserName: "Budi", ClassName: "X-IPA-1",
		})
		assert.ErrorIs(t, err, errs.ErrStoreUnavailable)
	})

	suite.Run(t, "BlankName", 50*time.Millisecond, func(t *testing.T) {
		store := &fakeStore{open: true, classes: []string{"X-IPA-1"}}
		_, err := newService(store, nil).Submit(context.Background(), models.SubmitRequest{
			UserName: " ", ClassName: "X-IPA-1",
		})
		assert.ErrorIs(t, err, errs.ErrInvalidInput)
	})
}

func TestSubmitProperties(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	// answered is a bitmask over catalog positions; a set bit means the
	// respondent sent a valid answer for that question.
	properties.Property("succeeds iff gate open and every required id answered", prop.ForAll(
		func(codes []int, classIdx int, answered int64, open bool) bool {
			className := test.ClassFromIndex(classIdx)
			catalog := test.CatalogFromCodes(codes)
			store := &fakeStore{open: open, classes: []string{className}, catalog: catalog}

			answers := map[string]interface{}{}
			for i, q := range catalog {
				if answered&(1<<uint(i%63)) == 0 {
					continue
				}
				if q.Type == models.QuestionRating {
					answers[q.ID.Hex()] = 3
				} else {
					answers[q.ID.Hex()] = "jawaban"
				}
			}

			covered := true
			for _, q := range catalog {
				if !q.Active {
					continue
				}
				if q.TargetType == models.TargetSpecific && !containsClass(q.TargetClasses, className) {
					continue
				}
				if _, ok := answers[q.ID.Hex()]; !ok {
					covered = false
				}
			}

			_, err := newService(store, nil).Submit(context.Background(), models.SubmitRequest{
				UserName: "Budi", ClassName: className, Answers: answers,
			})
			switch {
			case !open:
				return errors.Is(err, errs.ErrPortalClosed)
			case covered:
				return err == nil && len(store.inserted) == 1
			default:
				var incomplete *errs.IncompleteAnswersError
				return errors.As(err, &incomplete) && incomplete.Missing > 0 && len(store.inserted) == 0
			}
		},
		gen.SliceOfN(12, gen.IntRange(0, 63)),
		gen.IntRange(0, 3),
		gen.Int64Range(0, 1<<12),
		gen.Bool(),
	))

	properties.Property("stored answers are a subset of the required ids", prop.ForAll(
		func(codes []int, classIdx int) bool {
			className := test.ClassFromIndex(classIdx)
			catalog := test.CatalogFromCodes(codes)
			store := &fakeStore{open: true, classes: []string{className}, catalog: catalog}

			answers := map[string]interface{}{"stray": "x"}
			for _, q := range catalog {
				answers[q.ID.Hex()] = 5
				if q.Type == models.QuestionText {
					answers[q.ID.Hex()] = "teks"
				}
			}
			sub, err := newService(store, nil).Submit(context.Background(), models.SubmitRequest{
				UserName: "Budi", ClassName: className, Answers: answers,
			})
			if err != nil {
				return false
			}
			required := map[string]bool{}
			for _, q := range catalog {
				if q.Active && (q.TargetType == models.TargetGlobal || containsClass(q.TargetClasses, className)) {
					required[q.ID.Hex()] = true
				}
			}
			if len(sub.Answers) != len(required) {
				return false
			}
			for id := range sub.Answers {
				if !required[id] {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 63)),
		gen.IntRange(0, 3),
	))

	properties.TestingRun(t)
}

func TestCheckRatingCoercion(t *testing.T) {
	q := test.Question("Rate", models.QuestionRating, true)
	for _, tc := range []struct {
		in   interface{}
		want bool
	}{
		{float64(5), true},
		{int32(1), true},
		{"3", true},
		{float64(2.5), false},
		{0, false},
		{6, false},
		{"lima", false},
		{nil, false},
	} {
		_, missing := Check([]models.Question{q}, map[string]interface{}{q.ID.Hex(): tc.in})
		assert.Equal(t, tc.want, len(missing) == 0, "value %v", tc.in)
	}
}

func containsClass(list []string, c string) bool {
	for _, s := range list {
		if s == c {
			return true
		}
	}
	return false
}
