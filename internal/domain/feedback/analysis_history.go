package feedback

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AnalysisHistory archives one raw provider result for audit and debugging.
type AnalysisHistory struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	DocumentID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"document_id"`
	Document    *Document      `gorm:"constraint:OnDelete:CASCADE;foreignKey:DocumentID;references:ID" json:"-"`
	RawResponse datatypes.JSON `gorm:"column:raw_response;type:jsonb" json:"raw_response"`
	ModelUsed   string         `gorm:"column:model_used;not null" json:"model_used"`
	TokensUsed  int            `gorm:"column:tokens_used;not null;default:0" json:"tokens_used"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
}

func (AnalysisHistory) TableName() string { return "analysis_history" }

func (h *AnalysisHistory) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}
