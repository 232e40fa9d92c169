package feedback

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Persona is the writer profile used to tailor prompts.
type Persona struct {
	ID              uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID       uuid.UUID                   `gorm:"type:uuid;not null;uniqueIndex" json:"session_id"`
	Goals           datatypes.JSONSlice[string] `gorm:"column:goals;type:jsonb" json:"goals"`
	ExperienceLevel string                      `gorm:"column:experience_level;not null;default:'intermediate'" json:"experience_level"`
	FocusAreas      datatypes.JSONSlice[string] `gorm:"column:focus_areas;type:jsonb" json:"focus_areas"`
	PreferredTone   string                      `gorm:"column:preferred_tone;not null;default:'balanced'" json:"preferred_tone"`
	CreatedAt       time.Time                   `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time                   `gorm:"not null" json:"updated_at"`
}

func (Persona) TableName() string { return "user_persona" }

func (p *Persona) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
