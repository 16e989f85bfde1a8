package postgres

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/hrwallet-backend/internal/domain"
)

// Timeline logs are stored as JSONB arrays. Domain types carry no json tags,
// so rows go through these intermediate structs.

type actorJSON struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

type timelineEntryJSON struct {
	Step        string         `json:"step"`
	Role        string         `json:"role"`
	Actor       actorJSON      `json:"actor"`
	SignatureID *string        `json:"signatureId,omitempty"`
	Message     string         `json:"message,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	At          time.Time      `json:"at"`
}

// MarshalTimeline encodes entries as a JSON array. A nil log encodes as [].
func MarshalTimeline(log domain.TimelineLog) ([]byte, error) {
	out := make([]timelineEntryJSON, len(log))
	for i, e := range log {
		out[i] = timelineEntryJSON{
			Step:        string(e.Step),
			Role:        string(e.Role),
			Actor:       actorJSON{ID: e.Actor.ID, Name: e.Actor.Name, Email: e.Actor.Email},
			SignatureID: e.SignatureID,
			Message:     e.Message,
			Metadata:    e.Metadata,
			At:          e.At.UTC(),
		}
	}
	b, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("marshal timeline: %w", err)
	}
	return b, nil
}

// UnmarshalTimeline decodes a JSONB array written by MarshalTimeline.
func UnmarshalTimeline(data []byte) (domain.TimelineLog, error) {
	if len(data) == 0 {
		return domain.TimelineLog{}, nil
	}
	var raw []timelineEntryJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal timeline: %w", err)
	}
	log := make(domain.TimelineLog, len(raw))
	for i, e := range raw {
		log[i] = domain.TimelineEntry{
			Step:        domain.TimelineStep(e.Step),
			Role:        domain.Role(e.Role),
			Actor:       domain.Actor{ID: e.Actor.ID, Name: e.Actor.Name, Email: e.Actor.Email},
			SignatureID: e.SignatureID,
			Message:     e.Message,
			Metadata:    e.Metadata,
			At:          e.At,
		}
	}
	return log, nil
}
