package targeting

import (
	"testing"
	"time"

	"Backend-TanyaPintar/src/models"
	"Backend-TanyaPintar/test"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	suite := test.NewSuite("Targeting Resolver")
	defer suite.PrintSummary()

	global := test.Question("Kantin bersih?", models.QuestionRating, true)
	draft := test.Question("Draft", models.QuestionText, false)
	ipaOnly := test.Targeted("Lab IPA?", models.QuestionText, "X-IPA-1")
	nobody := test.Targeted("Nobody", models.QuestionText)
	catalog := []models.Question{global, draft, ipaOnly, nobody}

	suite.Run(t, "GlobalAndTargeted", 50*time.Millisecond, func(t *testing.T) {
		got := Resolve("X-IPA-1", catalog)
		assert.Equal(t, []models.Question{global, ipaOnly}, got)
	})

	suite.Run(t, "OtherClassSkipsTargeted", 50*time.Millisecond, func(t *testing.T) {
		got := Resolve("X-IPS-2", catalog)
		assert.Equal(t, []models.Question{global}, got)
	})

	suite.Run(t, "ClassNameIsNormalized", 50*time.Millisecond, func(t *testing.T) {
		got := Resolve("  x-ipa-1 ", catalog)
		assert.Len(t, got, 2)
	})

	suite.Run(t, "EmptyTargetsShownToNobody", 50*time.Millisecond, func(t *testing.T) {
		for _, c := range []string{"X-IPA-1", "X-IPS-2", ""} {
			assert.NotContains(t, Resolve(c, catalog), nobody)
		}
	})

	suite.Run(t, "EmptyCatalog", 50*time.Millisecond, func(t *testing.T) {
		got := Resolve("X-IPA-1", nil)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	suite.Run(t, "MissingTargetTypeIsGlobal", 50*time.Millisecond, func(t *testing.T) {
		legacy := test.Question("legacy", models.QuestionText, true)
		legacy.TargetType = ""
		assert.Equal(t, []string{legacy.ID.Hex()}, RequiredIDs("ANY", []models.Question{legacy}))
	})
}

func TestResolveProperties(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("returns only active questions aimed at the class", prop.ForAll(
		func(codes []int, classIdx int) bool {
			className := test.ClassFromIndex(classIdx)
			for _, q := range Resolve(className, test.CatalogFromCodes(codes)) {
				if !q.Active {
					return false
				}
				if q.TargetType == models.TargetSpecific && !contains(q.TargetClasses, className) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 63)),
		gen.IntRange(0, 3),
	))

	properties.Property("keeps every eligible question in catalog order", prop.ForAll(
		func(codes []int, classIdx int) bool {
			className := test.ClassFromIndex(classIdx)
			catalog := test.CatalogFromCodes(codes)
			got := Resolve(className, catalog)

			i := 0
			for _, q := range catalog {
				eligible := q.Active && (q.TargetType == models.TargetGlobal || contains(q.TargetClasses, className))
				if !eligible {
					continue
				}
				if i >= len(got) || got[i].ID != q.ID {
					return false
				}
				i++
			}
			return i == len(got)
		},
		gen.SliceOf(gen.IntRange(0, 63)),
		gen.IntRange(0, 3),
	))

	properties.Property("is deterministic", prop.ForAll(
		func(codes []int, classIdx int) bool {
			className := test.ClassFromIndex(classIdx)
			catalog := test.CatalogFromCodes(codes)
			a := RequiredIDs(className, catalog)
			b := RequiredIDs(className, catalog)
			if len(a) != len(b) {
				return false
			}
			for i := range a {
				if a[i] != b[i] {
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

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
