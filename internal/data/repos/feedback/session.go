package feedback

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/writemate-backend/internal/domain"
	"github.com/yungbote/writemate-backend/internal/platform/dbctx"
	"github.com/yungbote/writemate-backend/internal/platform/logger"
)

type SessionRepo interface {
	Ensure(dbc dbctx.Context, id uuid.UUID) (*types.WritingSession, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.WritingSession, error)
}

type sessionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSessionRepo(db *gorm.DB, baseLog *logger.Logger) SessionRepo {
	return &sessionRepo{db: db, log: baseLog.With("repo", "SessionRepo")}
}

// Ensure inserts the session if it does not exist yet and returns the stored row.
func (r *sessionRepo) Ensure(dbc dbctx.Context, id uuid.UUID) (*types.WritingSession, error) {
	if id == uuid.Nil {
		id = uuid.New()
	}
	row := &types.WritingSession{ID: id}
	if err := conn(dbc, r.db).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(row).Error; err != nil {
		return nil, fmt.Errorf("ensure session: %w", err)
	}
	return r.GetByID(dbc, id)
}

func (r *sessionRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.WritingSession, error) {
	var row types.WritingSession
	if err := conn(dbc, r.db).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, notFound("session", err)
	}
	return &row, nil
}
