package realtime

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventAnalysisCompleted = "analysis.completed"
	EventPatternMastered   = "pattern.mastered"
)

// Event is a domain notification fanned out to other processes.
type Event struct {
	Type       string     `json:"type"`
	SessionID  uuid.UUID  `json:"session_id"`
	DocumentID *uuid.UUID `json:"document_id,omitempty"`
	Data       any        `json:"data,omitempty"`
	At         time.Time  `json:"at"`
}
