package model

// TaskStatus represents the status of a conversion task
type TaskStatus string

const (
	// TaskStatusPending means the task is queued but not started
	TaskStatusPending TaskStatus = "Pending"

	// TaskStatusExtracting means PDF text extraction is in progress
	TaskStatusExtracting TaskStatus = "Extracting"

	// TaskStatusCleaning means the extracted text is being normalized
	TaskStatusCleaning TaskStatus = "Cleaning"

	// TaskStatusAwaitingEdit means cleaned text is held for user editing
	// before synthesis starts
	TaskStatusAwaitingEdit TaskStatus = "AwaitingEdit"

	// TaskStatusSynthesizing means text chunks are being sent to the TTS service
	TaskStatusSynthesizing TaskStatus = "Synthesizing"

	// TaskStatusPostProcessing means audio segments are being concatenated and encoded
	TaskStatusPostProcessing TaskStatus = "PostProcessing"

	// TaskStatusStopping means the task is in the process of stopping
	TaskStatusStopping TaskStatus = "Stopping"

	// TaskStatusStopped means the task was stopped by user
	TaskStatusStopped TaskStatus = "Stopped"

	// TaskStatusCompleted means the task finished successfully
	TaskStatusCompleted TaskStatus = "Completed"

	// TaskStatusError means the task failed with an error
	TaskStatusError TaskStatus = "Error"
)

// String returns the string representation of TaskStatus
func (ts TaskStatus) String() string {
	return string(ts)
}

// IsActive returns true if the task is in an active state
func (ts TaskStatus) IsActive() bool {
	switch ts {
	case TaskStatusExtracting, TaskStatusCleaning, TaskStatusSynthesizing,
		TaskStatusPostProcessing, TaskStatusStopping:
		return true
	}
	return false
}

// IsFinished returns true if the task is in a finished state (completed, stopped, or error)
func (ts TaskStatus) IsFinished() bool {
	return ts == TaskStatusCompleted || ts == TaskStatusStopped || ts == TaskStatusError
}
