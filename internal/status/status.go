// Package status maps free-form task status strings to canonical
// kanban buckets. Historical records carry multiple spellings of the
// same state ("Pending Review", "ONGOING", "Completed"); normalizing
// at the read boundary keeps old rows intact while giving new code a
// three-state contract.
package status

import (
	"strings"

	"github.com/opaline-labs/taskdeck/internal/domain"
)

// Keyword sets matched as case-insensitive substrings. Evaluated in a
// fixed order so every input lands in at most one bucket.
var (
	todoKeywords       = []string{"todo", "pending"}
	inProgressKeywords = []string{"in_progress", "in progress", "ongoing"}
	doneKeywords       = []string{"done", "completed"}
)

// Normalize maps a raw status string to its display bucket. Empty or
// unrecognized input yields BucketUnrecognized: an ambiguous legacy
// value must be surfaced, never silently defaulted to todo.
func Normalize(raw string) domain.Bucket {
	s := strings.ToLower(raw)

	switch {
	case containsAny(s, todoKeywords):
		return domain.BucketTodo
	case containsAny(s, inProgressKeywords):
		return domain.BucketInProgress
	case containsAny(s, doneKeywords):
		return domain.BucketDone
	default:
		return domain.BucketUnrecognized
	}
}

// NormalizePtr is Normalize for optional status fields. A nil status
// normalizes like the empty string.
func NormalizePtr(raw *string) domain.Bucket {
	if raw == nil {
		return domain.BucketUnrecognized
	}
	return Normalize(*raw)
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
