package feedback

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WritingSession is one writer's ongoing body of work. It is created implicitly the first
// time a document is submitted for an unknown session id and is never deleted.
type WritingSession struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (WritingSession) TableName() string { return "writing_session" }

func (s *WritingSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
