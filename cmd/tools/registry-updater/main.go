// cmd/tools/registry-updater/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"medimatch-workers/pkg/registry"
)

// Maintains configs/task-registry.json, the catalog of Camunda task types
// the worker manager serves.

func main() {
	addCmd := flag.NewFlagSet("add", flag.ExitOnError)
	updateCmd := flag.NewFlagSet("update", flag.ExitOnError)
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)

	registryPath := "configs/task-registry.json"

	idAdd := addCmd.String("id", "", "Task ID (e.g., match-and-dispatch)")
	displayName := addCmd.String("displayName", "", "Display name")
	description := addCmd.String("description", "", "Description")
	category := addCmd.String("category", "", "Category (matching, response)")
	taskType := addCmd.String("taskType", "", "Camunda task type")
	version := addCmd.String("version", "1.0.0", "Version")
	addCmd.StringVar(&registryPath, "path", registryPath, "Path to registry file")

	idUpdate := updateCmd.String("id", "", "Task ID to update")
	field := updateCmd.String("field", "", "Field to update (version, displayName, description, category, taskType, timeout, retries)")
	value := updateCmd.String("value", "", "New value for the field")
	updateCmd.StringVar(&registryPath, "path", registryPath, "Path to registry file")

	validateCmd.StringVar(&registryPath, "path", registryPath, "Path to registry file")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "add":
		addCmd.Parse(os.Args[2:])
		if *idAdd == "" || *displayName == "" || *taskType == "" {
			fmt.Println("Error: id, displayName and taskType are required for add.")
			addCmd.Usage()
			os.Exit(1)
		}
		task := registry.Task{
			ID:           *idAdd,
			DisplayName:  *displayName,
			Description:  *description,
			Category:     *category,
			Version:      *version,
			TaskType:     *taskType,
			InputSchema:  map[string]interface{}{},
			OutputSchema: map[string]interface{}{},
			ErrorCodes:   []string{},
			Timeout:      "10s",
		}
		if err := addTask(registryPath, &task); err != nil {
			fmt.Printf("Error adding task: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Added task: %s\n", *idAdd)

	case "update":
		updateCmd.Parse(os.Args[2:])
		if *idUpdate == "" || *field == "" || *value == "" {
			fmt.Println("Error: id, field, and value are required for update.")
			updateCmd.Usage()
			os.Exit(1)
		}
		if err := updateTask(registryPath, *idUpdate, *field, *value); err != nil {
			fmt.Printf("Error updating task: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Updated task %s, field %s to %s\n", *idUpdate, *field, *value)

	case "validate":
		validateCmd.Parse(os.Args[2:])
		reg, err := registry.Load(registryPath)
		if err != nil {
			fmt.Printf("Failed to load registry: %v\n", err)
			os.Exit(1)
		}
		if err := reg.Validate(); err != nil {
			fmt.Printf("Registry validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Registry validation passed.")

	case "help":
		fallthrough
	default:
		help()
	}
}

func addTask(path string, task *registry.Task) error {
	reg, err := registry.Load(path)
	if err != nil {
		if os.IsNotExist(err) {
			reg = &registry.TaskRegistry{
				Version:     "1.0.0",
				LastUpdated: time.Now().Format(time.RFC3339),
			}
		} else {
			return fmt.Errorf("failed to load registry: %w", err)
		}
	}

	if _, exists := reg.FindByTaskType(task.TaskType); exists {
		return fmt.Errorf("task type %s already registered", task.TaskType)
	}
	for _, existing := range reg.Tasks {
		if existing.ID == task.ID {
			return fmt.Errorf("task with ID %s already exists", task.ID)
		}
	}

	reg.Tasks = append(reg.Tasks, *task)
	return registry.Save(reg, path)
}

func updateTask(path, id, field, value string) error {
	reg, err := registry.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	found := false
	for i := range reg.Tasks {
		if reg.Tasks[i].ID != id {
			continue
		}
		found = true
		switch field {
		case "version":
			reg.Tasks[i].Version = value
		case "displayName":
			reg.Tasks[i].DisplayName = value
		case "description":
			reg.Tasks[i].Description = value
		case "category":
			reg.Tasks[i].Category = value
		case "taskType":
			reg.Tasks[i].TaskType = value
		case "timeout":
			reg.Tasks[i].Timeout = value
		case "retries":
			retries, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("invalid retries value: %w", err)
			}
			reg.Tasks[i].Retries = retries
		default:
			return fmt.Errorf("unknown field: %s", field)
		}
		break
	}

	if !found {
		return fmt.Errorf("task with ID %s not found", id)
	}
	return registry.Save(reg, path)
}

func help() {
	fmt.Println(`Usage: registry-updater <command> [flags]

Commands:
  add       Add a task to the registry
  update    Update a field of an existing task
  validate  Validate the registry file
  help      Show this message`)
}
