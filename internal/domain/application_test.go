package domain_test

import (
	"encoding/json"
	"testing"

	"go-applytrack-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestStatusVocabularyRoundTrip(t *testing.T) {
	for _, external := range domain.ExternalStatuses() {
		internal, ok := domain.InternalStatus(external)
		assert.True(t, ok, "display status %q should map", external)
		assert.Equal(t, external, domain.ExternalStatus(internal))
	}
}

func TestInternalStatusRejectsUnknown(t *testing.T) {
	for _, bad := range []string{"applied", "ghosted", "UNDER REVIEW", ""} {
		_, ok := domain.InternalStatus(bad)
		assert.False(t, ok, "%q should not map", bad)
	}
}

func TestExternalStatusPassesThroughLegacyValues(t *testing.T) {
	assert.Equal(t, "archived", domain.ExternalStatus("archived"))
}

func TestAnswerSetDecodesBothWireShapes(t *testing.T) {
	var flat domain.AnswerSet
	err := json.Unmarshal([]byte(`{"visa": "yes", "start": "2023-06"}`), &flat)
	assert.NoError(t, err)
	assert.Equal(t, domain.AnswerSet{"visa": "yes", "start": "2023-06"}, flat)

	var entries domain.AnswerSet
	err = json.Unmarshal([]byte(`[{"question_id": "visa", "answer": "yes"}, {"question_id": "start", "answer": "2023-06"}]`), &entries)
	assert.NoError(t, err)
	assert.Equal(t, flat, entries)
}

func TestAnswerSetRejectsUnusableShapes(t *testing.T) {
	var a domain.AnswerSet
	assert.Error(t, json.Unmarshal([]byte(`"just a string"`), &a))
}

func TestJobAcceptsApplications(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{"open", true},
		{"", true}, // legacy rows predate the status column
		{"  ", true},
		{"draft", false},
		{"closed", false},
		{"paused", false},
	}
	for _, tt := range tests {
		job := domain.Job{Status: tt.status}
		assert.Equal(t, tt.want, job.AcceptsApplications(), "status %q", tt.status)
	}
}

func TestJobOwnedBy(t *testing.T) {
	owner := "rec1"
	owned := domain.Job{EmployerID: &owner}
	assert.True(t, owned.OwnedBy("rec1"))
	assert.False(t, owned.OwnedBy("rec2"))

	legacy := domain.Job{}
	assert.True(t, legacy.OwnedBy("anyone"))
}

func TestRequiredQuestionIDs(t *testing.T) {
	req := domain.Requirements{
		Questions: []domain.SupplementalQuestion{
			{ID: "visa", Required: true},
			{ID: "extra"},
			{ID: "start", Required: true},
		},
	}
	assert.Equal(t, []string{"visa", "start"}, req.RequiredQuestionIDs())
}
