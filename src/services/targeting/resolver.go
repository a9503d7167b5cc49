// Package targeting decides which catalog questions a respondent must answer.
// Both the public portal and the admin preview call Resolve, so the rule lives
// in exactly one place.
package targeting

import "Backend-TanyaPintar/src/models"

// Resolve returns the questions a respondent of className has to answer, in
// catalog order. A question is included when it is active and either global
// or specifically targeted at className.
func Resolve(className string, catalog []models.Question) []models.Question {
	class := models.NormalizeClassName(className)
	out := make([]models.Question, 0, len(catalog))
	for _, q := range catalog {
		if Applies(q, class) {
			out = append(out, q)
		}
	}
	return out
}

// Applies reports whether q is offered to a respondent of className.
func Applies(q models.Question, className string) bool {
	if !q.Active {
		return false
	}
	switch q.TargetType {
	case models.TargetSpecific:
		class := models.NormalizeClassName(className)
		if class == "" {
			return false
		}
		for _, target := range q.TargetClasses {
			if models.NormalizeClassName(target) == class {
				return true
			}
		}
		return false
	default:
		// documents written before targeting existed have no targetType
		return true
	}
}

// RequiredIDs returns the hex ids of Resolve(className, catalog).
func RequiredIDs(className string, catalog []models.Question) []string {
	required := Resolve(className, catalog)
	ids := make([]string, 0, len(required))
	for _, q := range required {
		ids = append(ids, q.ID.Hex())
	}
	return ids
}
