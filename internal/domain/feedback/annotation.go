package feedback

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CategoryStyle     = "style"
	CategoryStructure = "structure"
	CategoryVoice     = "voice"
	CategoryClarity   = "clarity"
	CategoryImpact    = "impact"
	CategoryGrammar   = "grammar"
)

const (
	SeverityInfo    = "info"
	SeverityWarning = "warning"
	SeverityError   = "error"
)

// Annotation is one localized feedback item on a document. Offsets are character positions
// into Document.Content and are stored exactly as the provider returned them.
type Annotation struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	DocumentID  uuid.UUID `gorm:"type:uuid;not null;index" json:"document_id"`
	Document    *Document `gorm:"constraint:OnDelete:CASCADE;foreignKey:DocumentID;references:ID" json:"-"`
	StartOffset int       `gorm:"column:start_offset;not null" json:"start_offset"`
	EndOffset   int       `gorm:"column:end_offset;not null" json:"end_offset"`
	Category    string    `gorm:"column:category;not null" json:"category"`
	Severity    string    `gorm:"column:severity;not null" json:"severity"`
	Message     string    `gorm:"column:message;type:text;not null" json:"message"`
	Suggestion  *string   `gorm:"column:suggestion;type:text" json:"suggestion,omitempty"`

	RewrittenVersion *string `gorm:"column:rewritten_version;type:text" json:"rewritten_version,omitempty"`
	Principle        *string `gorm:"column:principle;type:text" json:"principle,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Annotation) TableName() string { return "feedback_annotation" }

func (a *Annotation) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
