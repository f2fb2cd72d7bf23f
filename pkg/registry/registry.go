// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/xeipuuv/gojsonschema"
)

func Load(path string) (*TaskRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg TaskRegistry
	err = json.Unmarshal(data, &reg)
	return &reg, err
}

func Save(reg *TaskRegistry, path string) error {
	reg.LastUpdated = time.Now().Format(time.RFC3339)
	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// FindByTaskType returns the task declaring the given Camunda task type.
func (r *TaskRegistry) FindByTaskType(taskType string) (*Task, bool) {
	for i := range r.Tasks {
		if r.Tasks[i].TaskType == taskType {
			return &r.Tasks[i], true
		}
	}
	return nil, false
}

// Validate checks structural invariants and compiles every declared schema,
// so a malformed registry fails in CI rather than at job time.
func (r *TaskRegistry) Validate() error {
	if len(r.Tasks) == 0 {
		return fmt.Errorf("registry contains no tasks")
	}

	ids := make(map[string]bool)
	taskTypes := make(map[string]bool)
	for _, task := range r.Tasks {
		if task.ID == "" {
			return fmt.Errorf("task missing id")
		}
		if ids[task.ID] {
			return fmt.Errorf("duplicate task id: %s", task.ID)
		}
		ids[task.ID] = true

		if task.TaskType == "" {
			return fmt.Errorf("task %s: missing taskType", task.ID)
		}
		if taskTypes[task.TaskType] {
			return fmt.Errorf("duplicate task type: %s", task.TaskType)
		}
		taskTypes[task.TaskType] = true

		if err := compileSchema(task.InputSchema); err != nil {
			return fmt.Errorf("task %s: input schema: %w", task.ID, err)
		}
		if err := compileSchema(task.OutputSchema); err != nil {
			return fmt.Errorf("task %s: output schema: %w", task.ID, err)
		}
	}
	return nil
}

func compileSchema(schema map[string]interface{}) error {
	if len(schema) == 0 {
		return nil
	}
	_, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(schema))
	return err
}
