package feedback

import (
	"fmt"

	"gorm.io/gorm"

	types "github.com/yungbote/writemate-backend/internal/domain"
	"github.com/yungbote/writemate-backend/internal/platform/dbctx"
	"github.com/yungbote/writemate-backend/internal/platform/logger"
)

type AnalysisHistoryRepo interface {
	Create(dbc dbctx.Context, row *types.AnalysisHistory) (*types.AnalysisHistory, error)
}

type analysisHistoryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAnalysisHistoryRepo(db *gorm.DB, baseLog *logger.Logger) AnalysisHistoryRepo {
	return &analysisHistoryRepo{db: db, log: baseLog.With("repo", "AnalysisHistoryRepo")}
}

func (r *analysisHistoryRepo) Create(dbc dbctx.Context, row *types.AnalysisHistory) (*types.AnalysisHistory, error) {
	if row == nil {
		return nil, fmt.Errorf("create analysis history: nil row")
	}
	if err := conn(dbc, r.db).Create(row).Error; err != nil {
		return nil, fmt.Errorf("create analysis history: %w", err)
	}
	return row, nil
}
