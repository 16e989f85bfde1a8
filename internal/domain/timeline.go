package domain

import (
	"maps"
	"time"

	"github.com/google/uuid"
)

// Actor is a denormalized snapshot of whoever performed a step, so history
// survives the user being renamed or removed.
type Actor struct {
	ID    uuid.UUID
	Name  string
	Email string
}

// TimelineEntry is one recorded transition.
type TimelineEntry struct {
	Step        TimelineStep
	Role        Role
	Actor       Actor
	SignatureID *string
	Message     string
	Metadata    map[string]any
	At          time.Time
}

// TimelineLog is an append-only, insertion-ordered transition history.
type TimelineLog []TimelineEntry

// NewTimelineEntry builds an entry stamped with at.
func NewTimelineEntry(step TimelineStep, role Role, actor Actor, message string, at time.Time) TimelineEntry {
	return TimelineEntry{
		Step:    step,
		Role:    role,
		Actor:   actor,
		Message: message,
		At:      at.UTC(),
	}
}

// WithMetadata returns a copy of e carrying the given metadata.
func (e TimelineEntry) WithMetadata(md map[string]any) TimelineEntry {
	e.Metadata = maps.Clone(md)
	return e
}

// WithSignature returns a copy of e carrying the signature id.
func (e TimelineEntry) WithSignature(signatureID string) TimelineEntry {
	e.SignatureID = &signatureID
	return e
}

// Append returns a new log with entries added after the existing ones. The
// receiver is never modified.
func (l TimelineLog) Append(entries ...TimelineEntry) TimelineLog {
	out := make(TimelineLog, 0, len(l)+len(entries))
	out = append(out, l...)
	return append(out, entries...)
}

// Clone returns an independent copy of the log, used to fork a log onto a new entity.
func (l TimelineLog) Clone() TimelineLog {
	out := make(TimelineLog, len(l))
	for i, e := range l {
		e.Metadata = maps.Clone(e.Metadata)
		out[i] = e
	}
	return out
}

// Steps lists the step tags in order.
func (l TimelineLog) Steps() []TimelineStep {
	steps := make([]TimelineStep, len(l))
	for i, e := range l {
		steps[i] = e.Step
	}
	return steps
}

// Last returns the most recent entry.
func (l TimelineLog) Last() (TimelineEntry, bool) {
	if len(l) == 0 {
		return TimelineEntry{}, false
	}
	return l[len(l)-1], true
}
