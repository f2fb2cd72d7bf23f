// internal/workers/response/record-response/models.go
package recordresponse

import "medimatch-workers/internal/models"

type Input struct {
	NotificationID string `json:"notificationId"`
	Response       string `json:"response"`
}

type Output struct {
	Notification *models.Notification `json:"notification"`
}

const InputSchema = `{
	"type": "object",
	"properties": {
		"notificationId": {"type": "string", "minLength": 1},
		"response": {"type": "string", "enum": ["viewed", "applied", "declined"]}
	},
	"required": ["notificationId", "response"]
}`
