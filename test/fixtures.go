package test

import (
	"time"

	"Backend-TanyaPintar/src/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FixtureClasses class names used across the property tests.
var FixtureClasses = []string{"X-IPA-1", "X-IPA-2", "XI-IPS-1"}

// Question builds a question with a fresh id.
func Question(text string, typ models.QuestionType, active bool) models.Question {
	return models.Question{
		ID:         primitive.NewObjectID(),
		Text:       text,
		Type:       typ,
		Active:     active,
		CreatedAt:  time.Now(),
		TargetType: models.TargetGlobal,
	}
}

// Targeted builds an active question shown only to the given classes.
func Targeted(text string, typ models.QuestionType, classes ...string) models.Question {
	q := Question(text, typ, true)
	q.TargetType = models.TargetSpecific
	q.TargetClasses = classes
	return q
}

// CatalogFromCodes turns generated integers into a catalog, newest first.
// bit0 = active, bit1 = specific targeting, bit2.. = membership in FixtureClasses,
// bit5 = rating type.
func CatalogFromCodes(codes []int) []models.Question {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	catalog := make([]models.Question, 0, len(codes))
	for i, code := range codes {
		q := models.Question{
			ID:         primitive.NewObjectID(),
			Text:       "question",
			Type:       models.QuestionText,
			Active:     code&1 == 1,
			CreatedAt:  base.Add(-time.Duration(i) * time.Minute),
			TargetType: models.TargetGlobal,
		}
		if code&2 == 2 {
			q.TargetType = models.TargetSpecific
			q.TargetClasses = []string{}
			for j, c := range FixtureClasses {
				if code&(4<<j) != 0 {
					q.TargetClasses = append(q.TargetClasses, c)
				}
			}
		}
		if code&32 == 32 {
			q.Type = models.QuestionRating
		}
		catalog = append(catalog, q)
	}
	return catalog
}

// ClassFromIndex maps a generated index to a class name; out-of-range yields a
// class that no question targets.
func ClassFromIndex(i int) string {
	if i >= 0 && i < len(FixtureClasses) {
		return FixtureClasses[i]
	}
	return "XII-UNKNOWN"
}
