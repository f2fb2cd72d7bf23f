// internal/workers/response/decide-application/handler_test.go
package decideapplication

import (
	"context"
	"testing"
	"time"

	apperrors "medimatch-workers/internal/common/errors"
	"medimatch-workers/internal/common/logger"
	"medimatch-workers/internal/common/validation"
	"medimatch-workers/internal/lifecycle"
	"medimatch-workers/internal/models"
	"medimatch-workers/internal/store/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) (*Handler, *memory.Store) {
	store := memory.New()
	svc := lifecycle.NewService(store, store.Applications(), logger.NewTestLogger(t))
	handler := NewHandler(&Config{Timeout: 5 * time.Second}, svc, logger.NewTestLogger(t))
	return handler, store
}

func seedApplication(t *testing.T, store *memory.Store) {
	t.Helper()
	err := store.CreateApplication(context.Background(), &models.Application{
		ID:          "app-1",
		MissionID:   "mission-1",
		CandidateID: "cand-1",
		Status:      models.ApplicationPending,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	})
	require.NoError(t, err)
}

func TestExecute_Accepts(t *testing.T) {
	handler, store := newTestHandler(t)
	seedApplication(t, store)

	output, err := handler.Execute(context.Background(), &Input{
		ApplicationID: "app-1",
		Decision:      "accepted",
		Feedback:      "welcome aboard",
	})

	require.NoError(t, err)
	assert.Equal(t, models.ApplicationAccepted, output.Application.Status)
	assert.Equal(t, "welcome aboard", output.Application.Feedback)
}

func TestExecute_Rejects(t *testing.T) {
	handler, store := newTestHandler(t)
	seedApplication(t, store)

	output, err := handler.Execute(context.Background(), &Input{ApplicationID: "app-1", Decision: "rejected"})

	require.NoError(t, err)
	assert.Equal(t, models.ApplicationRejected, output.Application.Status)
}

func TestExecute_SecondDecisionRejected(t *testing.T) {
	handler, store := newTestHandler(t)
	seedApplication(t, store)

	_, err := handler.Execute(context.Background(), &Input{ApplicationID: "app-1", Decision: "accepted"})
	require.NoError(t, err)

	_, err = handler.Execute(context.Background(), &Input{ApplicationID: "app-1", Decision: "rejected"})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidTransition))
}

func TestExecute_InvalidDecisionValue(t *testing.T) {
	handler, store := newTestHandler(t)
	seedApplication(t, store)

	_, err := handler.Execute(context.Background(), &Input{ApplicationID: "app-1", Decision: "pending"})

	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeValidationFailed))
}

func TestExecute_UnknownApplication(t *testing.T) {
	handler, _ := newTestHandler(t)

	_, err := handler.Execute(context.Background(), &Input{ApplicationID: "missing", Decision: "accepted"})

	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeApplicationNotFound))
}

func TestInputSchema(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		valid bool
	}{
		{name: "valid without feedback", raw: `{"applicationId": "app-1", "decision": "accepted"}`, valid: true},
		{name: "valid with feedback", raw: `{"applicationId": "app-1", "decision": "rejected", "feedback": "filled"}`, valid: true},
		{name: "missing decision", raw: `{"applicationId": "app-1"}`, valid: false},
		{name: "unknown decision", raw: `{"applicationId": "app-1", "decision": "declined"}`, valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := validation.ValidateJSON([]byte(tt.raw), InputSchema)
			require.NoError(t, err)
			assert.Equal(t, tt.valid, result.Valid)
		})
	}
}
