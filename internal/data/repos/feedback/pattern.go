package feedback

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/writemate-backend/internal/domain"
	"github.com/yungbote/writemate-backend/internal/platform/dbctx"
	"github.com/yungbote/writemate-backend/internal/platform/logger"
)

type PatternRepo interface {
	// GetBySessionAndType returns nil, nil when the session has no such pattern.
	GetBySessionAndType(dbc dbctx.Context, sessionID uuid.UUID, patternType string) (*types.Pattern, error)
	Create(dbc dbctx.Context, row *types.Pattern) (*types.Pattern, error)
	IncrementOccurrence(dbc dbctx.Context, id uuid.UUID, at time.Time) error
	ListBySession(dbc dbctx.Context, sessionID uuid.UUID) ([]*types.Pattern, error)
	ListMasteryCandidates(dbc dbctx.Context, sessionID uuid.UUID, minOccurrences int) ([]*types.Pattern, error)
	// MarkMastered flips is_mastered once. It reports false when the row was already mastered.
	MarkMastered(dbc dbctx.Context, id uuid.UUID, at time.Time) (bool, error)
}

type patternRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPatternRepo(db *gorm.DB, baseLog *logger.Logger) PatternRepo {
	return &patternRepo{db: db, log: baseLog.With("repo", "PatternRepo")}
}

func (r *patternRepo) GetBySessionAndType(dbc dbctx.Context, sessionID uuid.UUID, patternType string) (*types.Pattern, error) {
	var row types.Pattern
	if err := conn(dbc, r.db).
		Where("session_id = ? AND pattern_type = ?", sessionID, patternType).
		Limit(1).
		Find(&row).Error; err != nil {
		return nil, fmt.Errorf("get pattern: %w", err)
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *patternRepo) Create(dbc dbctx.Context, row *types.Pattern) (*types.Pattern, error) {
	if row == nil {
		return nil, fmt.Errorf("create pattern: nil row")
	}
	if row.LastOccurrenceAt.IsZero() {
		row.LastOccurrenceAt = time.Now().UTC()
	}
	if err := conn(dbc, r.db).Create(row).Error; err != nil {
		return nil, fmt.Errorf("create pattern: %w", err)
	}
	return row, nil
}

// IncrementOccurrence bumps the counter in SQL so concurrent increments are not lost.
func (r *patternRepo) IncrementOccurrence(dbc dbctx.Context, id uuid.UUID, at time.Time) error {
	res := conn(dbc, r.db).
		Model(&types.Pattern{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"occurrence_count":   gorm.Expr("occurrence_count + 1"),
			"last_occurrence_at": at,
		})
	if res.Error != nil {
		return fmt.Errorf("increment pattern: %w", res.Error)
	}
	return nil
}

func (r *patternRepo) ListBySession(dbc dbctx.Context, sessionID uuid.UUID) ([]*types.Pattern, error) {
	var out []*types.Pattern
	if err := conn(dbc, r.db).
		Where("session_id = ?", sessionID).
		Order("occurrence_count DESC, created_at ASC").
		Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list patterns: %w", err)
	}
	return out, nil
}

func (r *patternRepo) ListMasteryCandidates(dbc dbctx.Context, sessionID uuid.UUID, minOccurrences int) ([]*types.Pattern, error) {
	var out []*types.Pattern
	if err := conn(dbc, r.db).
		Where("session_id = ? AND is_mastered = ? AND occurrence_count >= ?", sessionID, false, minOccurrences).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list mastery candidates: %w", err)
	}
	return out, nil
}

func (r *patternRepo) MarkMastered(dbc dbctx.Context, id uuid.UUID, at time.Time) (bool, error) {
	res := conn(dbc, r.db).
		Model(&types.Pattern{}).
		Where("id = ? AND is_mastered = ?", id, false).
		Updates(map[string]interface{}{
			"is_mastered": true,
			"mastered_at": at,
		})
	if res.Error != nil {
		return false, fmt.Errorf("mark pattern mastered: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}
