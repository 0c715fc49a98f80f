package mlbox

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func newBoxDir(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, DefinitionFile), "name: mnist\nversion: \"0.1\"\n")
	return root
}

func TestOpen(t *testing.T) {
	root := newBoxDir(t)

	b, err := Open(root)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if b.Def.Name != "mnist" {
		t.Errorf("name = %q, want mnist", b.Def.Name)
	}
	if got := b.BuildPath(); got != filepath.Join(root, "build") {
		t.Errorf("build path = %q", got)
	}
}

func TestOpenErrors(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		if _, err := Open(filepath.Join(t.TempDir(), "nope")); err == nil {
			t.Error("expected error for missing directory")
		}
	})

	t.Run("missing definition", func(t *testing.T) {
		if _, err := Open(t.TempDir()); err == nil {
			t.Error("expected error for missing mlbox.yaml")
		}
	})

	t.Run("unnamed box", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, DefinitionFile), "version: \"0.1\"\n")
		if _, err := Open(root); err == nil {
			t.Error("expected validation error for missing name")
		}
	})
}

func TestLoadInvoke(t *testing.T) {
	root := newBoxDir(t)
	invokePath := filepath.Join(root, "invoke.yaml")
	writeFile(t, invokePath, `task_name: train
input_binding:
  data_dir: $WORKSPACE/data
output_binding:
  model_dir: $WORKSPACE/model
`)

	b, err := Open(root)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := b.LoadInvoke(invokePath); err != nil {
		t.Fatalf("LoadInvoke failed: %v", err)
	}

	if b.Invoke.TaskName != "train" {
		t.Errorf("task_name = %q, want train", b.Invoke.TaskName)
	}
	if got := b.Invoke.InputBinding["data_dir"]; got != "$WORKSPACE/data" {
		t.Errorf("input binding = %q", got)
	}
}

func TestLoadInvokeRequiresTaskName(t *testing.T) {
	root := newBoxDir(t)
	invokePath := filepath.Join(root, "invoke.yaml")
	writeFile(t, invokePath, "input_binding: {}\n")

	b, err := Open(root)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := b.LoadInvoke(invokePath); err == nil {
		t.Error("expected validation error for missing task_name")
	}
}

func TestLoadTask(t *testing.T) {
	root := newBoxDir(t)
	writeFile(t, filepath.Join(root, "tasks", "train.yaml"), `inputs:
  data_dir: directory
  parameters_file: file
outputs:
  model_dir: directory
`)

	b, err := Open(root)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := b.LoadTask("train"); err != nil {
		t.Fatalf("LoadTask failed: %v", err)
	}

	if got := b.Task.Inputs["parameters_file"]; got != PathTypeFile {
		t.Errorf("parameters_file type = %q, want file", got)
	}
}

func TestLoadTaskRejectsUnknownPathType(t *testing.T) {
	root := newBoxDir(t)
	writeFile(t, filepath.Join(root, "tasks", "bad.yaml"), "inputs:\n  data_dir: socket\n")

	b, err := Open(root)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := b.LoadTask("bad"); err == nil {
		t.Error("expected validation error for unknown path type")
	}
}
