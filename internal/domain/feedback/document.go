package feedback

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DocumentStatus string

const (
	DocumentStatusPending  DocumentStatus = "pending"
	DocumentStatusAnalyzed DocumentStatus = "analyzed"
)

// Document is one submitted text. Status only ever moves pending -> analyzed.
type Document struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID uuid.UUID       `gorm:"type:uuid;not null;index:idx_document_session_created,priority:1" json:"session_id"`
	Session   *WritingSession `gorm:"constraint:OnDelete:CASCADE;foreignKey:SessionID;references:ID" json:"-"`
	Title     string          `gorm:"column:title;not null;default:''" json:"title"`
	Content   string          `gorm:"column:content;type:text;not null" json:"content"`
	Status    DocumentStatus  `gorm:"column:status;not null;default:'pending';index" json:"status"`
	CreatedAt time.Time       `gorm:"not null;index:idx_document_session_created,priority:2" json:"created_at"`
	UpdatedAt time.Time       `gorm:"not null" json:"updated_at"`

	Annotations []*Annotation `gorm:"foreignKey:DocumentID;references:ID" json:"annotations,omitempty"`
}

func (Document) TableName() string { return "document" }

func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	if d.Status == "" {
		d.Status = DocumentStatusPending
	}
	return nil
}
