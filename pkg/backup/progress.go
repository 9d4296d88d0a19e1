package backup

import "time"

// Stage represents a phase of a backup or restore run.
type Stage string

const (
	StagePreparing  Stage = "preparing"
	StageArchiving  Stage = "archiving"
	StageChunking   Stage = "chunking"
	StageMerging    Stage = "merging"
	StageExtracting Stage = "extracting"
	StageManifest   Stage = "manifest"
	StagePruning    Stage = "pruning"
	StageComplete   Stage = "complete"
	StageError      Stage = "error"
)

// String returns the string representation of the stage.
func (s Stage) String() string {
	return string(s)
}

// DisplayName returns a human-readable name for the stage.
func (s Stage) DisplayName() string {
	switch s {
	case StagePreparing:
		return "Preparing"
	case StageArchiving:
		return "Archiving"
	case StageChunking:
		return "Splitting"
	case StageMerging:
		return "Merging Parts"
	case StageExtracting:
		return "Extracting"
	case StageManifest:
		return "Writing Manifest"
	case StagePruning:
		return "Pruning Old Backups"
	case StageComplete:
		return "Complete"
	case StageError:
		return "Error"
	default:
		return string(s)
	}
}

// ProgressEvent represents a progress update during a backup or restore run.
type ProgressEvent struct {
	Stage     Stage     // Current stage
	Item      string    // Backup item being processed, if any
	Message   string    // Human-readable message
	Percent   int       // 0-100, -1 for indeterminate
	IsError   bool      // True if this is an error message
	Timestamp time.Time // When this event occurred
}

// NewProgressEvent creates a new progress event.
func NewProgressEvent(stage Stage, item, message string, percent int) ProgressEvent {
	return ProgressEvent{
		Stage:     stage,
		Item:      item,
		Message:   message,
		Percent:   percent,
		Timestamp: time.Now(),
	}
}

// NewErrorEvent creates a new error progress event.
func NewErrorEvent(item, message string) ProgressEvent {
	return ProgressEvent{
		Stage:     StageError,
		Item:      item,
		Message:   message,
		Percent:   -1,
		IsError:   true,
		Timestamp: time.Now(),
	}
}

// ProgressCallback is called with progress updates during a run.
type ProgressCallback func(ProgressEvent)

// NoOpProgress is a progress callback that does nothing.
func NoOpProgress(_ ProgressEvent) {}

// ProgressTracker collects progress events for later review.
type ProgressTracker struct {
	events []ProgressEvent
}

// NewProgressTracker creates a new progress tracker.
func NewProgressTracker() *ProgressTracker {
	return &ProgressTracker{events: make([]ProgressEvent, 0)}
}

// Callback returns a ProgressCallback that records events.
func (t *ProgressTracker) Callback() ProgressCallback {
	return func(e ProgressEvent) {
		t.events = append(t.events, e)
	}
}

// Events returns all recorded events.
func (t *ProgressTracker) Events() []ProgressEvent {
	return t.events
}

// HasErrors returns true if any error events were recorded.
func (t *ProgressTracker) HasErrors() bool {
	for _, e := range t.events {
		if e.IsError {
			return true
		}
	}
	return false
}

// Errors returns all error events.
func (t *ProgressTracker) Errors() []ProgressEvent {
	var errors []ProgressEvent
	for _, e := range t.events {
		if e.IsError {
			errors = append(errors, e)
		}
	}
	return errors
}
