package feedback

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/writemate-backend/internal/domain"
	"github.com/yungbote/writemate-backend/internal/platform/dbctx"
	"github.com/yungbote/writemate-backend/internal/platform/logger"
)

type PersonaRepo interface {
	GetBySession(dbc dbctx.Context, sessionID uuid.UUID) (*types.Persona, error)
	Upsert(dbc dbctx.Context, row *types.Persona) (*types.Persona, error)
}

type personaRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPersonaRepo(db *gorm.DB, baseLog *logger.Logger) PersonaRepo {
	return &personaRepo{db: db, log: baseLog.With("repo", "PersonaRepo")}
}

func (r *personaRepo) GetBySession(dbc dbctx.Context, sessionID uuid.UUID) (*types.Persona, error) {
	if sessionID == uuid.Nil {
		return nil, nil
	}
	var row types.Persona
	if err := conn(dbc, r.db).Where("session_id = ?", sessionID).Limit(1).Find(&row).Error; err != nil {
		return nil, fmt.Errorf("get persona: %w", err)
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *personaRepo) Upsert(dbc dbctx.Context, row *types.Persona) (*types.Persona, error) {
	if row == nil || row.SessionID == uuid.Nil {
		return nil, fmt.Errorf("upsert persona: missing session id")
	}
	if row.ExperienceLevel == "" {
		row.ExperienceLevel = "intermediate"
	}
	if row.PreferredTone == "" {
		row.PreferredTone = "balanced"
	}
	row.UpdatedAt = time.Now().UTC()
	if err := conn(dbc, r.db).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "session_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"goals",
				"experience_level",
				"focus_areas",
				"preferred_tone",
				"updated_at",
			}),
		}).
		Create(row).Error; err != nil {
		return nil, fmt.Errorf("upsert persona: %w", err)
	}
	return r.GetBySession(dbc, row.SessionID)
}
