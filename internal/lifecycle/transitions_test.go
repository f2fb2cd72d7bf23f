// internal/lifecycle/transitions_test.go
package lifecycle

import (
	"testing"

	"medimatch-workers/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionNotification(t *testing.T) {
	tests := []struct {
		from    models.NotificationStatus
		to      models.NotificationStatus
		allowed bool
	}{
		{models.NotificationNew, models.NotificationViewed, true},
		{models.NotificationNew, models.NotificationApplied, true},
		{models.NotificationNew, models.NotificationDeclined, true},
		{models.NotificationViewed, models.NotificationApplied, true},
		{models.NotificationViewed, models.NotificationDeclined, true},
		{models.NotificationViewed, models.NotificationNew, false},
		{models.NotificationApplied, models.NotificationDeclined, false},
		{models.NotificationApplied, models.NotificationViewed, false},
		{models.NotificationDeclined, models.NotificationApplied, false},
		{models.NotificationDeclined, models.NotificationViewed, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransitionNotification(tt.from, tt.to))
		})
	}
}

func TestCanTransitionApplication(t *testing.T) {
	tests := []struct {
		from    models.ApplicationStatus
		to      models.ApplicationStatus
		allowed bool
	}{
		{models.ApplicationPending, models.ApplicationAccepted, true},
		{models.ApplicationPending, models.ApplicationRejected, true},
		{models.ApplicationAccepted, models.ApplicationRejected, false},
		{models.ApplicationRejected, models.ApplicationAccepted, false},
		{models.ApplicationAccepted, models.ApplicationPending, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransitionApplication(tt.from, tt.to))
		})
	}
}

func TestIsTerminalNotification(t *testing.T) {
	assert.False(t, IsTerminalNotification(models.NotificationNew))
	assert.False(t, IsTerminalNotification(models.NotificationViewed))
	assert.True(t, IsTerminalNotification(models.NotificationApplied))
	assert.True(t, IsTerminalNotification(models.NotificationDeclined))
}

func TestParseResponse(t *testing.T) {
	for _, valid := range []string{"viewed", "applied", "declined"} {
		st, err := ParseResponse(valid)
		assert.NoError(t, err)
		assert.Equal(t, models.NotificationStatus(valid), st)
	}

	_, err := ParseResponse("new")
	assert.Error(t, err)
	_, err = ParseResponse("accepted")
	assert.Error(t, err)
}

func TestParseDecision(t *testing.T) {
	for _, valid := range []string{"accepted", "rejected"} {
		st, err := ParseDecision(valid)
		assert.NoError(t, err)
		assert.Equal(t, models.ApplicationStatus(valid), st)
	}

	_, err := ParseDecision("pending")
	assert.Error(t, err)
	_, err = ParseDecision("declined")
	assert.Error(t, err)
}
