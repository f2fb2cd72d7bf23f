// pkg/registry/registry_test.go
package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAndValidateShippedRegistry(t *testing.T) {
	reg, err := Load("../../configs/task-registry.json")
	require.NoError(t, err)

	require.NoError(t, reg.Validate())
	assert.Len(t, reg.Tasks, 4)

	for _, taskType := range []string{"match-and-dispatch", "score-candidates", "record-response", "decide-application"} {
		task, ok := reg.FindByTaskType(taskType)
		require.True(t, ok, taskType)
		assert.NotEmpty(t, task.InputSchema)
		assert.NotEmpty(t, task.OutputSchema)
	}
}

func TestValidate_RejectsDuplicates(t *testing.T) {
	reg := &TaskRegistry{
		Version: "1.0.0",
		Tasks: []Task{
			{ID: "a", TaskType: "match-and-dispatch"},
			{ID: "a", TaskType: "score-candidates"},
		},
	}
	assert.Error(t, reg.Validate())

	reg.Tasks[1].ID = "b"
	reg.Tasks[1].TaskType = "match-and-dispatch"
	assert.Error(t, reg.Validate())
}

func TestValidate_RejectsEmpty(t *testing.T) {
	reg := &TaskRegistry{Version: "1.0.0"}
	assert.Error(t, reg.Validate())
}

func TestValidate_RejectsBadSchema(t *testing.T) {
	reg := &TaskRegistry{
		Version: "1.0.0",
		Tasks: []Task{{
			ID:       "a",
			TaskType: "match-and-dispatch",
			InputSchema: map[string]interface{}{
				"type": 42,
			},
		}},
	}
	assert.Error(t, reg.Validate())
}

func TestFindByTaskType_Missing(t *testing.T) {
	reg := &TaskRegistry{Tasks: []Task{{ID: "a", TaskType: "match-and-dispatch"}}}
	_, ok := reg.FindByTaskType("unknown")
	assert.False(t, ok)
}
