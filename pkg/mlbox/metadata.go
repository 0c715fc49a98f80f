package mlbox

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Path type names for task parameters.
const (
	PathTypeFile      = "file"
	PathTypeDirectory = "directory"
)

// DefinitionFile is the box definition document inside a box directory.
const DefinitionFile = "mlbox.yaml"

var validate = validator.New()

// Definition is the box's own mlbox.yaml document.
type Definition struct {
	// Name is the box name.
	Name string `yaml:"name" validate:"required"`

	// Version is the box version.
	Version string `yaml:"version,omitempty"`

	// Description is a free-form description of the workload.
	Description string `yaml:"description,omitempty"`
}

// Invoke is a task invocation document: which task to run and how its
// declared parameters bind to host paths. Binding values may reference
// $WORKSPACE, resolved against the box's workspace directory.
type Invoke struct {
	// TaskName names the task definition this invocation targets.
	TaskName string `yaml:"task_name" validate:"required"`

	// InputBinding maps input parameter names to host paths.
	InputBinding map[string]string `yaml:"input_binding,omitempty"`

	// OutputBinding maps output parameter names to host paths.
	OutputBinding map[string]string `yaml:"output_binding,omitempty"`
}

// Task is a task definition document: the declared input and output
// parameters and their path types (file or directory).
type Task struct {
	// Inputs maps input parameter names to path types.
	Inputs map[string]string `yaml:"inputs,omitempty" validate:"dive,oneof=file directory"`

	// Outputs maps output parameter names to path types.
	Outputs map[string]string `yaml:"outputs,omitempty" validate:"dive,oneof=file directory"`
}

// Box is an opened box directory.
type Box struct {
	// Root is the box directory path.
	Root string

	// Def is the parsed box definition.
	Def Definition

	// Invoke is the loaded invocation document, when one has been loaded.
	Invoke *Invoke

	// Task is the loaded task definition, when one has been loaded.
	Task *Task
}

// Open verifies the box directory layout and loads its definition.
func Open(root string) (*Box, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("box directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("box path %s is not a directory", root)
	}

	b := &Box{Root: root}
	if err := decodeFile(filepath.Join(root, DefinitionFile), &b.Def); err != nil {
		return nil, err
	}
	return b, nil
}

// BuildPath is the image build context directory.
func (b *Box) BuildPath() string { return filepath.Join(b.Root, "build") }

// WorkspacePath is the directory input and output bindings resolve
// $WORKSPACE against.
func (b *Box) WorkspacePath() string { return filepath.Join(b.Root, "workspace") }

// TasksPath is the directory holding task definition documents.
func (b *Box) TasksPath() string { return filepath.Join(b.Root, "tasks") }

// PlatformsPath is the directory holding the box's own platform defaults.
func (b *Box) PlatformsPath() string { return filepath.Join(b.Root, "platforms") }

// LoadInvoke loads the invocation document at path and attaches it.
func (b *Box) LoadInvoke(path string) error {
	inv := &Invoke{}
	if err := decodeFile(path, inv); err != nil {
		return err
	}
	b.Invoke = inv
	return nil
}

// LoadTask loads the named task definition from the box's tasks directory
// and attaches it.
func (b *Box) LoadTask(name string) error {
	task := &Task{}
	if err := decodeFile(filepath.Join(b.TasksPath(), name+".yaml"), task); err != nil {
		return err
	}
	b.Task = task
	return nil
}

// decodeFile reads a YAML document into out and validates the result.
func decodeFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	if err := validate.Struct(out); err != nil {
		return fmt.Errorf("validate %s: %w", path, err)
	}
	return nil
}
