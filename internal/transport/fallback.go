// internal/transport/fallback.go
package transport

import (
	"context"

	"medimatch-workers/internal/common/logger"
)

// FallbackTransport tries the primary transport and falls back to the
// secondary when the primary fails, typically SNS push backed by SES email
// for candidates without a registered device.
type FallbackTransport struct {
	primary   PushTransport
	secondary PushTransport
	logger    logger.Logger
}

func NewFallbackTransport(primary, secondary PushTransport, log logger.Logger) *FallbackTransport {
	return &FallbackTransport{
		primary:   primary,
		secondary: secondary,
		logger:    log.WithFields(map[string]interface{}{"component": "transport"}),
	}
}

func (t *FallbackTransport) Send(ctx context.Context, candidateID string, payload Payload) error {
	err := t.primary.Send(ctx, candidateID, payload)
	if err == nil {
		return nil
	}

	t.logger.Warn("primary transport failed, falling back", map[string]interface{}{
		"candidateId":    candidateID,
		"notificationId": payload.NotificationID,
		"error":          err.Error(),
	})
	return t.secondary.Send(ctx, candidateID, payload)
}

// LogTransport records deliveries in the log only. Used in local
// environments where no AWS credentials are configured.
type LogTransport struct {
	logger logger.Logger
}

func NewLogTransport(log logger.Logger) *LogTransport {
	return &LogTransport{logger: log}
}

func (t *LogTransport) Send(ctx context.Context, candidateID string, payload Payload) error {
	t.logger.Info("notification delivery (log only)", map[string]interface{}{
		"candidateId":    candidateID,
		"notificationId": payload.NotificationID,
		"missionId":      payload.MissionID,
		"score":          payload.Score,
	})
	return nil
}
