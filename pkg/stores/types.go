package stores

import "time"

// RunStatus represents the status of a ledger entry.
type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// RunAction is the runner operation a ledger entry records.
type RunAction string

const (
	ActionConfigure RunAction = "configure"
	ActionRun       RunAction = "run"
)

// Run is one recorded runner invocation.
type Run struct {
	// ID is the unique run identifier.
	ID string `json:"id"`

	// Box is the box name the invocation targeted.
	Box string `json:"box"`

	// Platform is the platform name from the effective configuration.
	Platform string `json:"platform"`

	// Task is the invoked task name; empty for configure.
	Task string `json:"task,omitempty"`

	// Action is the runner operation (configure, run).
	Action RunAction `json:"action"`

	// Command is the rendered external command.
	Command string `json:"command"`

	// Status is the current entry status.
	Status RunStatus `json:"status"`

	// StartedAt is when the invocation started.
	StartedAt time.Time `json:"started_at"`

	// CompletedAt is when the invocation finished, if it has.
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	// Error holds the failure message for failed invocations.
	Error *string `json:"error,omitempty"`
}
