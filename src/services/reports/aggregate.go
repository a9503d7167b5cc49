// Package reports derives dashboard statistics from full snapshots of the
// catalog, class registry and submission set. Nothing here is cached; every
// call recomputes from its inputs.
package reports

import (
	"fmt"
	"math"
	"sort"
	"time"

	"Backend-TanyaPintar/src/models"
)

// DeletedQuestionLabel shown for answers whose question no longer exists.
const DeletedQuestionLabel = "Deleted question"

// Round1 rounds to one decimal place, half away from zero.
func Round1(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return math.Round(x*10) / 10
}

// Display formats a rounded value the way the dashboard shows it ("4.0").
func Display(x float64) string {
	return fmt.Sprintf("%.1f", Round1(x))
}

func mean(sum float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// Aggregate builds the full report for one snapshot.
func Aggregate(classes []models.Class, questions []models.Question, subs []models.Submission, now time.Time) models.Report {
	return models.Report{
		Summary:        Summary(classes, questions, subs),
		Participation:  Participation(classes, subs),
		RatingAverages: RatingAverages(questions, subs),
		Leaderboard:    Leaderboard(classes, questions, subs),
		GeneratedAt:    now,
	}
}

// Participation counts submissions per registered class, most active first.
// Classes with equal counts keep their listing order.
func Participation(classes []models.Class, subs []models.Submission) []models.ClassParticipation {
	counts := make(map[string]int, len(classes))
	for _, s := range subs {
		counts[s.ClassName]++
	}
	out := make([]models.ClassParticipation, 0, len(classes))
	for _, c := range classes {
		out = append(out, models.ClassParticipation{Name: c.Name, Count: counts[c.Name]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// RatingAverages averages every rating question over the submissions that
// carry a numeric answer for it. Catalog order is kept.
func RatingAverages(questions []models.Question, subs []models.Submission) []models.RatingAverage {
	out := make([]models.RatingAverage, 0)
	for _, q := range questions {
		if q.Type != models.QuestionRating {
			continue
		}
		id := q.ID.Hex()
		var sum float64
		var n int
		for _, s := range subs {
			raw, ok := s.Answers[id]
			if !ok {
				continue
			}
			v, ok := models.NumericValue(raw)
			if !ok {
				continue
			}
			sum += v
			n++
		}
		avg := Round1(mean(sum, n))
		out = append(out, models.RatingAverage{
			QuestionID: id,
			Text:       q.Text,
			Average:    avg,
			Display:    Display(avg),
			Responses:  n,
		})
	}
	return out
}

// Leaderboard averages the flattened rating answers of each class's
// respondents. Only answers to questions that are currently rating questions
// count. Ties keep class listing order.
func Leaderboard(classes []models.Class, questions []models.Question, subs []models.Submission) []models.ClassScore {
	rating := make(map[string]bool)
	for _, q := range questions {
		if q.Type == models.QuestionRating {
			rating[q.ID.Hex()] = true
		}
	}

	type acc struct {
		sum float64
		n   int
	}
	per := make(map[string]*acc, len(classes))
	for _, c := range classes {
		per[c.Name] = &acc{}
	}
	for _, s := range subs {
		a, ok := per[s.ClassName]
		if !ok {
			continue
		}
		for id, raw := range s.Answers {
			if !rating[id] {
				continue
			}
			if v, ok := models.NumericValue(raw); ok {
				a.sum += v
				a.n++
			}
		}
	}

	// ranking uses the exact mean; rounding is for display only
	order := make([]string, 0, len(classes))
	raw := make(map[string]float64, len(classes))
	for _, c := range classes {
		a := per[c.Name]
		order = append(order, c.Name)
		raw[c.Name] = mean(a.sum, a.n)
	}
	sort.SliceStable(order, func(i, j int) bool { return raw[order[i]] > raw[order[j]] })

	out := make([]models.ClassScore, 0, len(order))
	for _, name := range order {
		avg := Round1(raw[name])
		out = append(out, models.ClassScore{Name: name, Average: avg, Display: Display(avg), Ratings: per[name].n})
	}
	return out
}

// Summary headline numbers of the dashboard.
func Summary(classes []models.Class, questions []models.Question, subs []models.Submission) models.DashboardSummary {
	active := 0
	for _, q := range questions {
		if q.Active {
			active++
		}
	}
	divisor := len(classes)
	if divisor == 0 {
		divisor = 1
	}
	avg := Round1(float64(len(subs)) / float64(divisor))
	return models.DashboardSummary{
		TotalResponses:     len(subs),
		AvgPerClass:        avg,
		AvgPerClassDisplay: Display(avg),
		ActiveQuestions:    active,
		Classes:            len(classes),
	}
}

// DescribeAnswers joins a submission's answers to the catalog. Answers come
// out in catalog order; answers to questions that no longer exist follow,
// sorted by id, labelled DeletedQuestionLabel.
func DescribeAnswers(sub models.Submission, questions []models.Question) []models.AnswerView {
	out := make([]models.AnswerView, 0, len(sub.Answers))
	known := make(map[string]bool, len(questions))
	for _, q := range questions {
		id := q.ID.Hex()
		known[id] = true
		v, ok := sub.Answers[id]
		if !ok {
			continue
		}
		out = append(out, models.AnswerView{QuestionID: id, QuestionText: q.Text, Type: q.Type, Value: v})
	}

	var orphans []string
	for id := range sub.Answers {
		if !known[id] {
			orphans = append(orphans, id)
		}
	}
	sort.Strings(orphans)
	for _, id := range orphans {
		out = append(out, models.AnswerView{
			QuestionID:   id,
			QuestionText: DeletedQuestionLabel,
			Value:        sub.Answers[id],
			Deleted:      true,
		})
	}
	return out
}

// Describe wraps a list of submissions with their answer views.
func Describe(subs []models.Submission, questions []models.Question) []models.SubmissionView {
	out := make([]models.SubmissionView, 0, len(subs))
	for _, s := range subs {
		out = append(out, models.SubmissionView{Submission: s, AnswerViews: DescribeAnswers(s, questions)})
	}
	return out
}
