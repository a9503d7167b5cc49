package reports

import (
	"math"
	"reflect"
	"testing"
	"time"

	"Backend-TanyaPintar/src/models"
	"Backend-TanyaPintar/test"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var fixedNow = time.Date(2025, 5, 2, 8, 0, 0, 0, time.UTC)

func classes(names ...string) []models.Class {
	out := make([]models.Class, 0, len(names))
	for _, n := range names {
		out = append(out, models.Class{ID: primitive.NewObjectID(), Name: n})
	}
	return out
}

func submission(class string, answers models.Answers) models.Submission {
	return models.Submission{ID: primitive.NewObjectID(), UserName: "Budi", ClassName: class, Answers: answers, Timestamp: fixedNow}
}

func TestAggregate(t *testing.T) {
	suite := test.NewSuite("Reporting")
	defer suite.PrintSummary()

	suite.Run(t, "RatingAverageScenario", 50*time.Millisecond, func(t *testing.T) {
		q1 := test.Question("Kantin?", models.QuestionRating, true)
		catalog := []models.Question{q1}
		cls := classes("X-A")

		subs := []models.Submission{submission("X-A", models.Answers{q1.ID.Hex(): 4})}
		r := Aggregate(cls, catalog, subs, fixedNow)
		require.Len(t, r.RatingAverages, 1)
		assert.Equal(t, "4.0", r.RatingAverages[0].Display)
		assert.Equal(t, 4.0, r.RatingAverages[0].Average)

		subs = append(subs, submission("X-A", models.Answers{q1.ID.Hex(): 2}))
		r = Aggregate(cls, catalog, subs, fixedNow)
		assert.Equal(t, "3.0", r.RatingAverages[0].Display)
		assert.Equal(t, 2, r.RatingAverages[0].Responses)
	})

	suite.Run(t, "EmptyInputs", 50*time.Millisecond, func(t *testing.T) {
		r := Aggregate(nil, nil, nil, fixedNow)
		assert.Empty(t, r.Participation)
		assert.Empty(t, r.RatingAverages)
		assert.Empty(t, r.Leaderboard)
		assert.Equal(t, 0.0, r.Summary.AvgPerClass)
		assert.Equal(t, "0.0", r.Summary.AvgPerClassDisplay)

		q := test.Question("Unanswered", models.QuestionRating, true)
		r = Aggregate(classes("X-A"), []models.Question{q}, nil, fixedNow)
		assert.Equal(t, "0.0", r.RatingAverages[0].Display)
		assert.Equal(t, "0.0", r.Leaderboard[0].Display)
		assert.False(t, math.IsNaN(r.Leaderboard[0].Average))
	})

	suite.Run(t, "ParticipationSortedStable", 50*time.Millisecond, func(t *testing.T) {
		cls := classes("X-A", "X-B", "X-C", "X-D")
		subs := []models.Submission{
			submission("X-C", nil), submission("X-C", nil),
			submission("X-B", nil),
			submission("X-D", nil),
			submission("XII-GONE", nil),
		}
		got := Participation(cls, subs)
		assert.Equal(t, []models.ClassParticipation{
			{Name: "X-C", Count: 2},
			{Name: "X-B", Count: 1},
			{Name: "X-D", Count: 1},
			{Name: "X-A", Count: 0},
		}, got)
	})

	suite.Run(t, "LeaderboardRanksByExactMean", 50*time.Millisecond, func(t *testing.T) {
		r := test.Question("R", models.QuestionRating, true)
		cls := classes("X-B", "X-A")
		var subs []models.Submission
		// X-B: 38/11 = 3.4545..., listed first
		for _, v := range []int{4, 4, 4, 4, 4, 4, 3, 3, 3, 3, 2} {
			subs = append(subs, submission("X-B", models.Answers{r.ID.Hex(): v}))
		}
		// X-A: 7/2 = 3.5
		subs = append(subs,
			submission("X-A", models.Answers{r.ID.Hex(): 3}),
			submission("X-A", models.Answers{r.ID.Hex(): 4}),
		)

		got := Leaderboard(cls, []models.Question{r}, subs)
		require.Len(t, got, 2)
		assert.Equal(t, "X-A", got[0].Name)
		assert.Equal(t, "X-B", got[1].Name)
		assert.Equal(t, "3.5", got[0].Display)
		assert.Equal(t, "3.5", got[1].Display)
		assert.Equal(t, 11, got[1].Ratings)
	})

	suite.Run(t, "LeaderboardFlattensRatings", 50*time.Millisecond, func(t *testing.T) {
		r1 := test.Question("R1", models.QuestionRating, true)
		r2 := test.Question("R2", models.QuestionRating, false)
		txt := test.Question("T", models.QuestionText, true)
		catalog := []models.Question{r1, r2, txt}
		cls := classes("X-A", "X-B", "X-C")
		subs := []models.Submission{
			submission("X-A", models.Answers{r1.ID.Hex(): 5, r2.ID.Hex(): 3, txt.ID.Hex(): "bagus"}),
			submission("X-A", models.Answers{r1.ID.Hex(): 4}),
			submission("X-B", models.Answers{r1.ID.Hex(): 5, "deleted-q": 1}),
			submission("X-C", models.Answers{r2.ID.Hex(): 5}),
		}
		got := Leaderboard(cls, catalog, subs)
		require.Len(t, got, 3)
		// X-B and X-C tie at 5.0; listing order decides.
		assert.Equal(t, "X-B", got[0].Name)
		assert.Equal(t, "X-C", got[1].Name)
		assert.Equal(t, "X-A", got[2].Name)
		assert.Equal(t, 4.0, got[2].Average)
		assert.Equal(t, 3, got[2].Ratings)
	})

	suite.Run(t, "RoundingHalfAwayFromZero", 50*time.Millisecond, func(t *testing.T) {
		assert.Equal(t, "3.5", Display(3.45+1e-9))
		assert.Equal(t, "4.3", Display(13.0/3.0))
		assert.Equal(t, "0.0", Display(math.NaN()))
		assert.Equal(t, 2.7, Round1(2.666))
	})

	suite.Run(t, "SummaryAvgPerClass", 50*time.Millisecond, func(t *testing.T) {
		catalog := []models.Question{
			test.Question("a", models.QuestionText, true),
			test.Question("b", models.QuestionText, false),
		}
		subs := []models.Submission{submission("X-A", nil), submission("X-A", nil), submission("X-B", nil)}
		s := Summary(classes("X-A", "X-B"), catalog, subs)
		assert.Equal(t, 3, s.TotalResponses)
		assert.Equal(t, 1.5, s.AvgPerClass)
		assert.Equal(t, "1.5", s.AvgPerClassDisplay)
		assert.Equal(t, 1, s.ActiveQuestions)
		assert.Equal(t, 2, s.Classes)

		s = Summary(nil, nil, subs)
		assert.Equal(t, 3.0, s.AvgPerClass)
	})

	suite.Run(t, "DescribeAnswersMarksDeleted", 50*time.Millisecond, func(t *testing.T) {
		q := test.Question("Saran?", models.QuestionText, true)
		sub := submission("X-A", models.Answers{q.ID.Hex(): "ok", "gone-1": 4})
		views := DescribeAnswers(sub, []models.Question{q})
		require.Len(t, views, 2)
		assert.Equal(t, "Saran?", views[0].QuestionText)
		assert.False(t, views[0].Deleted)
		assert.Equal(t, DeletedQuestionLabel, views[1].QuestionText)
		assert.True(t, views[1].Deleted)
		assert.Equal(t, 4, views[1].Value)
	})
}

func TestAggregateProperties(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	build := func(codes []int, ratings []int) ([]models.Class, []models.Question, []models.Submission) {
		cls := classes(test.FixtureClasses...)
		catalog := test.CatalogFromCodes(codes)
		var subs []models.Submission
		for i, r := range ratings {
			answers := models.Answers{}
			for j, q := range catalog {
				if (i+j)%2 == 0 {
					answers[q.ID.Hex()] = r
				}
			}
			subs = append(subs, submission(test.ClassFromIndex(i%4), answers))
		}
		return cls, catalog, subs
	}

	properties.Property("re-aggregation is idempotent", prop.ForAll(
		func(codes []int, ratings []int) bool {
			cls, catalog, subs := build(codes, ratings)
			a := Aggregate(cls, catalog, subs, fixedNow)
			b := Aggregate(cls, catalog, subs, fixedNow)
			return reflect.DeepEqual(a, b)
		},
		gen.SliceOf(gen.IntRange(0, 63)),
		gen.SliceOf(gen.IntRange(1, 5)),
	))

	properties.Property("averages stay within the rating scale and never NaN", prop.ForAll(
		func(codes []int, ratings []int) bool {
			cls, catalog, subs := build(codes, ratings)
			r := Aggregate(cls, catalog, subs, fixedNow)
			for _, ra := range r.RatingAverages {
				if math.IsNaN(ra.Average) || (ra.Responses == 0 && ra.Average != 0) {
					return false
				}
				if ra.Responses > 0 && (ra.Average < 1 || ra.Average > 5) {
					return false
				}
			}
			for _, cs := range r.Leaderboard {
				if math.IsNaN(cs.Average) || cs.Average < 0 || cs.Average > 5 {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 63)),
		gen.SliceOf(gen.IntRange(1, 5)),
	))

	properties.Property("participation counts add up to registered submissions", prop.ForAll(
		func(ratings []int) bool {
			cls, _, subs := build(nil, ratings)
			registered := 0
			for _, s := range subs {
				if s.ClassName != "XII-UNKNOWN" {
					registered++
				}
			}
			total := 0
			for _, p := range Participation(cls, subs) {
				total += p.Count
			}
			return total == registered
		},
		gen.SliceOf(gen.IntRange(1, 5)),
	))

	properties.TestingRun(t)
}
