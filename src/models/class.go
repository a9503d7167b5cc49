package models

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Class rombel / kelas yang dipilih responden (contoh "X-IPA-1")
type Class struct {
	ID   primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty" swaggertype:"string" example:"507f1f77bcf86cd799439011"`
	Name string             `json:"name" bson:"name" example:"X-IPA-1"`
}

// CreateClassRequest body สำหรับเพิ่ม class
type CreateClassRequest struct {
	Name string `json:"name" validate:"required,notblank,max=64" example:"x-ipa-1"`
}

// NormalizeClassName trims and upper-cases a class name so it can be compared
// with the stored registry entries.
func NormalizeClassName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// NormalizeClassNames normalizes every entry, dropping blanks and duplicates
// while keeping the first-seen order.
func NormalizeClassNames(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		norm := NormalizeClassName(n)
		if norm == "" || seen[norm] {
			continue
		}
		seen[norm] = true
		out = append(out, norm)
	}
	return out
}
