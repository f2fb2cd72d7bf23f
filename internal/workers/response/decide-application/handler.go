// internal/workers/response/decide-application/handler.go
package decideapplication

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	apperrors "medimatch-workers/internal/common/errors"
	"medimatch-workers/internal/common/logger"
	"medimatch-workers/internal/common/metrics"
	"medimatch-workers/internal/common/validation"
	"medimatch-workers/internal/lifecycle"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "decide-application"
)

type Handler struct {
	config    *Config
	lifecycle *lifecycle.Service
	logger    logger.Logger
}

func NewHandler(config *Config, svc *lifecycle.Service, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		lifecycle: svc,
		logger:    log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey": job.Key,
	})

	raw := []byte(job.Variables)
	if result, err := validation.ValidateJSON(raw, InputSchema); err != nil || !result.Valid {
		detail := "schema validation unavailable"
		if result != nil {
			detail = result.FirstError()
		}
		h.failJob(client, job, string(apperrors.ErrCodeValidationFailed), detail)
		return
	}

	var input Input
	if err := json.Unmarshal(raw, &input); err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		errorCode := "DECISION_FAILED"
		if stdErr, ok := err.(*apperrors.StandardError); ok {
			errorCode = string(stdErr.Code)
		}
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, errorCode).Inc()
		h.failJob(client, job, errorCode, err.Error())
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	decision, err := lifecycle.ParseDecision(input.Decision)
	if err != nil {
		return nil, apperrors.NewValidationFailedError(err.Error())
	}

	app, err := h.lifecycle.DecideApplication(ctx, input.ApplicationID, decision, input.Feedback)
	if err != nil {
		return nil, err
	}

	h.logger.Info("application decided", map[string]interface{}{
		"applicationId": app.ID,
		"status":        app.Status,
	})

	return &Output{Application: app}, nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
	})

	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{
			"error": err,
		})
	}
}

// Execute runs the core logic directly, bypassing job plumbing.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
