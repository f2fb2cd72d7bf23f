// internal/workers/response/decide-application/models.go
package decideapplication

import "medimatch-workers/internal/models"

type Input struct {
	ApplicationID string `json:"applicationId"`
	Decision      string `json:"decision"`
	Feedback      string `json:"feedback,omitempty"`
}

type Output struct {
	Application *models.Application `json:"application"`
}

const InputSchema = `{
	"type": "object",
	"properties": {
		"applicationId": {"type": "string", "minLength": 1},
		"decision": {"type": "string", "enum": ["accepted", "rejected"]},
		"feedback": {"type": "string"}
	},
	"required": ["applicationId", "decision"]
}`
