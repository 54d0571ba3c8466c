package model

import "time"

// RunStatus tracks a recorded pipeline run through its lifecycle.
type RunStatus string

const (
	RunStatusQueued   RunStatus = "queued"
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// Run is a persisted record of one pipeline invocation: the input
// assumptions, lifecycle status, and (once finished) the full output.
type Run struct {
	ID          string      `json:"id"`
	Property    string      `json:"property"`
	Status      RunStatus   `json:"status"`
	Assumptions Assumptions `json:"assumptions"`
	Result      *RunOutput  `json:"result,omitempty"`
	Error       string      `json:"error,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
