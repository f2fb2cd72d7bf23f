// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeValidationFailed      ErrorCode = "VALIDATION_FAILED"
	ErrCodeMissionNotFound       ErrorCode = "MISSION_NOT_FOUND"
	ErrCodeProfileFetchFailed    ErrorCode = "PROFILE_FETCH_FAILED"
	ErrCodeNoEligibleCandidates  ErrorCode = "NO_ELIGIBLE_CANDIDATES"

	ErrCodeDatabaseInsertFailed  ErrorCode = "DATABASE_INSERT_FAILED"
	ErrCodeDuplicateNotification ErrorCode = "DUPLICATE_NOTIFICATION"
	ErrCodeTransportSendFailed   ErrorCode = "TRANSPORT_SEND_FAILED"

	ErrCodeNotificationNotFound  ErrorCode = "NOTIFICATION_NOT_FOUND"
	ErrCodeApplicationNotFound   ErrorCode = "APPLICATION_NOT_FOUND"
	ErrCodeInvalidTransition     ErrorCode = "INVALID_TRANSITION"
	ErrCodeTransitionConflict    ErrorCode = "TRANSITION_CONFLICT"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// IsCode reports whether err is (or wraps) a StandardError with the given code.
func IsCode(err error, code ErrorCode) bool {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Code == code
	}
	return false
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	if e.ErrorVariables != nil {
		for k, v := range e.ErrorVariables {
			vars[k] = v
		}
	}

	return vars
}

// ConvertToBPMNError maps a StandardError to its BPMN representation.
func ConvertToBPMNError(err *StandardError) *BPMNError {
	return &BPMNError{
		Code:      string(err.Code),
		Message:   err.Message,
		Details:   err.Details,
		Retryable: err.Retryable,
		Retries:   GetRetryCount(err.Code),
	}
}

// GetRetryCount returns how many times a job failing with this code should be
// retried. Non-retryable codes return 0.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeDatabaseInsertFailed, ErrCodeProfileFetchFailed, ErrCodeTransportSendFailed:
		return 3
	default:
		return 0
	}
}

// ==========================
// 3. Error Constructors
// ==========================

// NewValidationFailedError creates a non-retryable input validation error.
func NewValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Mission or candidate profile failed validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMissionNotFoundError creates a non-retryable mission lookup error.
func NewMissionNotFoundError(missionID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMissionNotFound,
		Message:   "Mission not found",
		Details:   fmt.Sprintf("missionId: %s", missionID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewProfileFetchFailedError creates a retryable profile store error.
func NewProfileFetchFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeProfileFetchFailed,
		Message:   "Failed to load candidate profiles",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseInsertFailedError creates a retryable persistence error.
func NewDatabaseInsertFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseInsertFailed,
		Message:   "Database write failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDuplicateNotificationError marks an already-notified (candidate, mission)
// pair. Dispatch treats it as a no-op, never as a batch failure.
func NewDuplicateNotificationError(candidateID, missionID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeDuplicateNotification,
		Message:   "Notification already exists for candidate and mission",
		Details:   fmt.Sprintf("candidateId: %s, missionId: %s", candidateID, missionID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewTransportSendFailedError creates a retryable delivery error for one candidate.
func NewTransportSendFailedError(candidateID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeTransportSendFailed,
		Message:   "Push delivery failed",
		Details:   fmt.Sprintf("candidateId: %s, error: %s", candidateID, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationNotFoundError creates a non-retryable notification lookup error.
func NewNotificationNotFoundError(notificationID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationNotFound,
		Message:   "Notification not found",
		Details:   fmt.Sprintf("notificationId: %s", notificationID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewApplicationNotFoundError creates a non-retryable application lookup error.
func NewApplicationNotFoundError(applicationID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeApplicationNotFound,
		Message:   "Application not found",
		Details:   fmt.Sprintf("applicationId: %s", applicationID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidTransitionError rejects a state-machine transition from a terminal
// or non-adjacent state. The stored state is preserved; the caller must
// surface the conflict.
func NewInvalidTransitionError(entity, from, to string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidTransition,
		Message:   fmt.Sprintf("Invalid %s transition", entity),
		Details:   fmt.Sprintf("from %q to %q", from, to),
		Retryable: false,
		Metadata: map[string]interface{}{
			"from": from,
			"to":   to,
		},
		Timestamp: time.Now().UTC(),
	}
}

// NewTransitionConflictError marks an optimistic-concurrency conflict: the row
// moved past the expected source state between read and write.
func NewTransitionConflictError(entity, id string) *StandardError {
	return &StandardError{
		Code:      ErrCodeTransitionConflict,
		Message:   fmt.Sprintf("Concurrent %s transition detected", entity),
		Details:   fmt.Sprintf("id: %s", id),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}
