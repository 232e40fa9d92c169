package feedback

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Pattern is a recurring writing tendency tracked per session. There is at most one row per
// (session_id, pattern_type); OccurrenceCount never decreases and IsMastered never reverts.
type Pattern struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID        uuid.UUID       `gorm:"type:uuid;not null;index:idx_pattern_session_type,unique,priority:1" json:"session_id"`
	Session          *WritingSession `gorm:"constraint:OnDelete:CASCADE;foreignKey:SessionID;references:ID" json:"-"`
	PatternType      string          `gorm:"column:pattern_type;not null;index:idx_pattern_session_type,unique,priority:2" json:"pattern_type"`
	Description      string          `gorm:"column:description;type:text;not null" json:"description"`
	OccurrenceCount  int             `gorm:"column:occurrence_count;not null;default:1" json:"occurrence_count"`
	LastOccurrenceAt time.Time       `gorm:"column:last_occurrence_at;not null" json:"last_occurrence_at"`
	IsMastered       bool            `gorm:"column:is_mastered;not null;default:false;index" json:"is_mastered"`
	MasteredAt       *time.Time      `gorm:"column:mastered_at" json:"mastered_at,omitempty"`
	CreatedAt        time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"not null" json:"updated_at"`
}

func (Pattern) TableName() string { return "writing_pattern" }

func (p *Pattern) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.OccurrenceCount < 1 {
		p.OccurrenceCount = 1
	}
	return nil
}
