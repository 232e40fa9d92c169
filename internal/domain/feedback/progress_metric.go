package feedback

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProgressMetric is the score snapshot of one analyzed document. Seq orders snapshots within a
// session by insertion, independent of clock resolution.
//
// VocabularyScore holds the provider's "voice" score; the column name is kept for compatibility
// with existing dashboards.
type ProgressMetric struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID       uuid.UUID `gorm:"type:uuid;not null;index:idx_progress_metric_session_seq,unique,priority:1" json:"session_id"`
	Seq             int64     `gorm:"column:seq;not null;index:idx_progress_metric_session_seq,unique,priority:2" json:"seq"`
	DocumentID      uuid.UUID `gorm:"type:uuid;not null;index" json:"document_id"`
	Document        *Document `gorm:"constraint:OnDelete:CASCADE;foreignKey:DocumentID;references:ID" json:"-"`
	GrammarScore    float64   `gorm:"column:grammar_score;not null" json:"grammar_score"`
	ClarityScore    float64   `gorm:"column:clarity_score;not null" json:"clarity_score"`
	VocabularyScore float64   `gorm:"column:vocabulary_score;not null" json:"vocabulary_score"`
	OverallScore    float64   `gorm:"column:overall_score;not null" json:"overall_score"`
	CreatedAt       time.Time `gorm:"not null;index" json:"created_at"`
}

func (ProgressMetric) TableName() string { return "progress_metric" }

func (m *ProgressMetric) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
