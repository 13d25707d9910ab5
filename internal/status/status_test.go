package status_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opaline-labs/taskdeck/internal/domain"
	"github.com/opaline-labs/taskdeck/internal/status"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want domain.Bucket
	}{
		{"canonical todo", "todo", domain.BucketTodo},
		{"canonical in_progress", "in_progress", domain.BucketInProgress},
		{"canonical done", "done", domain.BucketDone},
		{"legacy pending review", "Pending Review", domain.BucketTodo},
		{"legacy uppercase ongoing", "ONGOING", domain.BucketInProgress},
		{"legacy completed", "Completed", domain.BucketDone},
		{"legacy spaced in progress", "In Progress", domain.BucketInProgress},
		{"empty string", "", domain.BucketUnrecognized},
		{"unknown vocabulary", "blocked", domain.BucketUnrecognized},
		{"whitespace only", "   ", domain.BucketUnrecognized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, status.Normalize(tt.raw))
		})
	}
}

// Todo keywords win over later sets when a legacy value matches more
// than one, keeping the bucket deterministic.
func TestNormalize_PriorityOrder(t *testing.T) {
	assert.Equal(t, domain.BucketTodo, status.Normalize("todo but ongoing"))
	assert.Equal(t, domain.BucketInProgress, status.Normalize("ongoing, almost done"))
}

func TestNormalizePtr(t *testing.T) {
	assert.Equal(t, domain.BucketUnrecognized, status.NormalizePtr(nil))

	s := "Completed"
	assert.Equal(t, domain.BucketDone, status.NormalizePtr(&s))
}
