package authoring

import (
	"fmt"
	"log/slog"
	"sync"
	"time"
)

const (
	EventReorderAccepted = "reorder_accepted"
	EventReorderRejected = "reorder_rejected"
	EventReorderIgnored  = "reorder_ignored"
	EventCourseEdited    = "course_edited"
)

// Event records one authoring action.
type Event struct {
	CourseID  string
	UnitID    int
	EventType string
	Data      map[string]any
	CreatedAt time.Time
}

// EventLogger defines event logging behavior.
type EventLogger interface {
	LogEvent(event Event) error
}

// NopEventLogger ignores all events.
type NopEventLogger struct{}

func (NopEventLogger) LogEvent(Event) error {
	return nil
}

// MemoryEventLogger stores events in memory for tests.
type MemoryEventLogger struct {
	mu     sync.Mutex
	events []Event
}

func NewMemoryEventLogger() *MemoryEventLogger {
	return &MemoryEventLogger{
		events: []Event{},
	}
}

func (l *MemoryEventLogger) LogEvent(event Event) error {
	if event.EventType == "" {
		return fmt.Errorf("event_type is required")
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	l.mu.Lock()
	l.events = append(l.events, event)
	l.mu.Unlock()

	return nil
}

func (l *MemoryEventLogger) Events() []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Event{}, l.events...)
}

// SlogEventLogger writes events to a structured logger.
type SlogEventLogger struct {
	logger *slog.Logger
}

// NewSlogEventLogger logs to logger, or to slog.Default() when logger is nil.
func NewSlogEventLogger(logger *slog.Logger) *SlogEventLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogEventLogger{logger: logger}
}

func (l *SlogEventLogger) LogEvent(event Event) error {
	if event.EventType == "" {
		return fmt.Errorf("event_type is required")
	}
	if event.CourseID == "" {
		return fmt.Errorf("course_id is required")
	}

	attrs := []any{
		"type", event.EventType,
		"course_id", event.CourseID,
		"unit_id", event.UnitID,
	}
	for k, v := range event.Data {
		attrs = append(attrs, k, v)
	}
	l.logger.Info("authoring event", attrs...)
	return nil
}
