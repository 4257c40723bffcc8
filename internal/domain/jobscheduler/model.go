package jobscheduler

import (
	"errors"
	"strings"
	"time"
)

type DispatchStatus string

const (
	StatusSent      DispatchStatus = "sent"
	StatusCompleted DispatchStatus = "completed"
	StatusSkipped   DispatchStatus = "skipped"
	StatusFailed    DispatchStatus = "failed"
)

// Finished reports whether the run reached an outcome. A sent dispatch is
// still waiting on its QStash delivery.
func (s DispatchStatus) Finished() bool {
	switch s {
	case StatusCompleted, StatusSkipped, StatusFailed:
		return true
	default:
		return false
	}
}

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

var ErrDispatchIDRequired = errors.New("dispatch id is required")

// DispatchEvent is the latest known state of one job dispatch. Events sharing
// a DispatchID overwrite each other.
type DispatchEvent struct {
	OccurredAt   time.Time
	Payload      map[string]any
	DispatchID   string
	JobName      string
	JobPath      string
	Status       DispatchStatus
	ErrorMessage string
	TraceID      string
	SpanID       string
	Records      int
}

// Normalize trims identifiers and fills the defaults every store applies.
// Only failed events keep an error message.
func (e DispatchEvent) Normalize(now time.Time) (DispatchEvent, error) {
	e.DispatchID = strings.TrimSpace(e.DispatchID)
	if e.DispatchID == "" {
		return DispatchEvent{}, ErrDispatchIDRequired
	}

	e.JobName = strings.TrimSpace(e.JobName)
	if e.JobName == "" {
		e.JobName = "unknown"
	}
	e.JobPath = strings.TrimSpace(e.JobPath)
	if e.JobPath == "" {
		e.JobPath = "/unknown"
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = now
	}
	e.OccurredAt = e.OccurredAt.UTC()
	if e.Status != StatusFailed {
		e.ErrorMessage = ""
	}
	return e, nil
}

// ClampListLimit maps a non-positive limit to the default and caps the rest.
func ClampListLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	default:
		return limit
	}
}
