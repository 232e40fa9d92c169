package feedback

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/writemate-backend/internal/data/db"
	types "github.com/yungbote/writemate-backend/internal/domain"
	"github.com/yungbote/writemate-backend/internal/platform/dbctx"
	"github.com/yungbote/writemate-backend/internal/platform/logger"
)

type ProgressMetricRepo interface {
	// Create assigns the next per-session Seq and inserts the row. A concurrent insert that takes
	// the same Seq first makes Create re-read the counter and try again.
	Create(dbc dbctx.Context, row *types.ProgressMetric) (*types.ProgressMetric, error)
	ListBySessionAsc(dbc dbctx.Context, sessionID uuid.UUID) ([]*types.ProgressMetric, error)
}

// seqAttempts bounds how many times Create re-reads the counter after losing a Seq to another writer.
const seqAttempts = 5

type progressMetricRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProgressMetricRepo(db *gorm.DB, baseLog *logger.Logger) ProgressMetricRepo {
	return &progressMetricRepo{db: db, log: baseLog.With("repo", "ProgressMetricRepo")}
}

func (r *progressMetricRepo) Create(dbc dbctx.Context, row *types.ProgressMetric) (*types.ProgressMetric, error) {
	if row == nil {
		return nil, fmt.Errorf("create progress metric: nil row")
	}
	t := conn(dbc, r.db)
	for attempt := 1; ; attempt++ {
		seq, err := r.nextSeq(t, row.SessionID)
		if err != nil {
			return nil, err
		}
		row.Seq = seq
		err = t.Create(row).Error
		if err == nil {
			return row, nil
		}
		if !db.IsUniqueViolation(err) || attempt == seqAttempts {
			return nil, fmt.Errorf("create progress metric: %w", err)
		}
		r.log.Debug("Progress seq taken by a concurrent insert, retrying", "session_id", row.SessionID, "seq", seq, "attempt", attempt)
	}
}

func (r *progressMetricRepo) nextSeq(t *gorm.DB, sessionID uuid.UUID) (int64, error) {
	var maxSeq int64
	if err := t.Model(&types.ProgressMetric{}).
		Where("session_id = ?", sessionID).
		Select("COALESCE(MAX(seq), 0)").
		Scan(&maxSeq).Error; err != nil {
		return 0, fmt.Errorf("next progress seq: %w", err)
	}
	return maxSeq + 1, nil
}

// ListBySessionAsc returns the session's metrics oldest first.
func (r *progressMetricRepo) ListBySessionAsc(dbc dbctx.Context, sessionID uuid.UUID) ([]*types.ProgressMetric, error) {
	var out []*types.ProgressMetric
	if err := conn(dbc, r.db).
		Where("session_id = ?", sessionID).
		Order("seq ASC").
		Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list progress metrics: %w", err)
	}
	return out, nil
}
