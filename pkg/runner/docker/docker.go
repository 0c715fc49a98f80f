package docker

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/xyhuang/mlbox/pkg/mlbox"
	"github.com/xyhuang/mlbox/pkg/platform"
	"github.com/xyhuang/mlbox/pkg/stores"
	"github.com/xyhuang/mlbox/pkg/telemetry"
)

// Executor runs an external command from a working directory. Tests
// substitute a recorder.
type Executor func(ctx context.Context, dir, name string, args ...string) error

// defaultExecutor runs the command with output attached to the process.
func defaultExecutor(ctx context.Context, dir, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Ledger is the subset of the run ledger the runner records to.
type Ledger interface {
	CreateRun(ctx context.Context, run *stores.Run) error
	FinishRun(ctx context.Context, id string, status stores.RunStatus, errMsg *string) error
}

// Options configures a Runner. Zero values select defaults: a live
// docker executor, the context logger, no ledger.
type Options struct {
	Ledger   Ledger
	Logger   *telemetry.Logger
	Executor Executor
}

// Runner executes a box against a Docker engine.
type Runner struct {
	box    *mlbox.Box
	cfg    *platform.Config
	ledger Ledger
	log    *telemetry.Logger
	exec   Executor
}

// New creates a runner for the box and its effective configuration.
// Only the container execution interface is supported.
func New(box *mlbox.Box, cfg *platform.Config, opts Options) (*Runner, error) {
	if got := cfg.Exec().Type(); got != platform.ExecTypeContainer {
		return nil, fmt.Errorf("exec type must be %q, got %q", platform.ExecTypeContainer, got)
	}

	r := &Runner{
		box:    box,
		cfg:    cfg,
		ledger: opts.Ledger,
		log:    opts.Logger,
		exec:   opts.Executor,
	}
	if r.log == nil {
		r.log = telemetry.FromContext(context.Background())
	}
	r.log = r.log.WithBox(box.Def.Name)
	if r.exec == nil {
		r.exec = defaultExecutor
	}
	return r, nil
}

// Configure builds the workload image from the box's build context.
func (r *Runner) Configure(ctx context.Context) error {
	container := r.cfg.Exec().Container()
	image := container.Image()
	if image == "" {
		return fmt.Errorf("no container image configured")
	}

	buildDir := r.box.BuildPath()
	dockerfile := filepath.Join(buildDir, "Dockerfile")
	if _, err := os.Stat(dockerfile); err != nil {
		return fmt.Errorf("docker file not found: %s", dockerfile)
	}

	args := []string{"build", "-t", image, "-f", "Dockerfile"}
	for _, env := range container.Env() {
		args = append(args, "--build-arg", env.Name+"="+env.Value)
	}
	args = append(args, ".")

	return r.record(ctx, stores.ActionConfigure, "", buildDir, args)
}

// Run launches the box's invoked task in a container. The box must carry
// a loaded invocation and task definition.
func (r *Runner) Run(ctx context.Context) error {
	if r.box.Invoke == nil || r.box.Task == nil {
		return fmt.Errorf("box has no loaded invocation")
	}
	container := r.cfg.Exec().Container()
	image := container.Image()
	if image == "" {
		return fmt.Errorf("no container image configured")
	}

	ms := NewMountSet()
	taskArgs := []string{r.box.Invoke.TaskName}

	inputArgs, err := TranslateBindings(ms, r.box.Invoke.InputBinding, r.box.Task.Inputs, r.box.WorkspacePath())
	if err != nil {
		return fmt.Errorf("input bindings: %w", err)
	}
	outputArgs, err := TranslateBindings(ms, r.box.Invoke.OutputBinding, r.box.Task.Outputs, r.box.WorkspacePath())
	if err != nil {
		return fmt.Errorf("output bindings: %w", err)
	}
	taskArgs = append(taskArgs, inputArgs...)
	taskArgs = append(taskArgs, outputArgs...)

	args := []string{"run", "--rm"}
	if runtime := container.Runtime(); runtime != "" {
		args = append(args, "--runtime="+runtime)
	}
	for _, m := range ms.Mounts() {
		args = append(args, "--volume", m.Host+":"+m.Container)
	}
	for _, env := range container.Env() {
		args = append(args, "-e", env.Name+"="+env.Value)
	}
	args = append(args, image)
	args = append(args, taskArgs...)

	return r.record(ctx, stores.ActionRun, r.box.Invoke.TaskName, r.box.Root, args)
}

// record runs one docker invocation and books it into the ledger.
func (r *Runner) record(ctx context.Context, action stores.RunAction, task, dir string, args []string) error {
	runID := uuid.NewString()
	command := "docker " + strings.Join(args, " ")

	logger := r.log.WithRunID(runID)
	if task != "" {
		logger = logger.WithTask(task)
	}
	logger.Infof("%s", command)

	if r.ledger != nil {
		entry := &stores.Run{
			ID:        runID,
			Box:       r.box.Def.Name,
			Platform:  r.cfg.Platform().Name(),
			Task:      task,
			Action:    action,
			Command:   command,
			Status:    stores.RunStatusRunning,
			StartedAt: time.Now().UTC(),
		}
		if err := r.ledger.CreateRun(ctx, entry); err != nil {
			logger.WithError(err).Warn("Failed to record run")
		}
	}

	err := r.exec(ctx, dir, "docker", args...)

	if r.ledger != nil {
		status := stores.RunStatusCompleted
		var errMsg *string
		if err != nil {
			status = stores.RunStatusFailed
			msg := err.Error()
			errMsg = &msg
		}
		if ferr := r.ledger.FinishRun(ctx, runID, status, errMsg); ferr != nil {
			logger.WithError(ferr).Warn("Failed to finish run record")
		}
	}

	if err != nil {
		return fmt.Errorf("command failed: %s: %w", command, err)
	}
	logger.Info("Command completed")
	return nil
}
