package feedback

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/writemate-backend/internal/domain"
	apperrors "github.com/yungbote/writemate-backend/internal/pkg/errors"
	"github.com/yungbote/writemate-backend/internal/platform/dbctx"
	"github.com/yungbote/writemate-backend/internal/platform/logger"
)

type DocumentRepo interface {
	Create(dbc dbctx.Context, doc *types.Document) (*types.Document, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Document, error)
	GetWithAnnotations(dbc dbctx.Context, id uuid.UUID) (*types.Document, error)
	ListRecentBySession(dbc dbctx.Context, sessionID uuid.UUID, limit int) ([]*types.Document, error)
	UpdateStatus(dbc dbctx.Context, id uuid.UUID, status types.DocumentStatus) error
}

type documentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDocumentRepo(db *gorm.DB, baseLog *logger.Logger) DocumentRepo {
	return &documentRepo{db: db, log: baseLog.With("repo", "DocumentRepo")}
}

func (r *documentRepo) Create(dbc dbctx.Context, doc *types.Document) (*types.Document, error) {
	if doc == nil {
		return nil, fmt.Errorf("create document: nil document")
	}
	if err := conn(dbc, r.db).Omit("Annotations").Create(doc).Error; err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}
	return doc, nil
}

func (r *documentRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Document, error) {
	var doc types.Document
	if err := conn(dbc, r.db).Where("id = ?", id).First(&doc).Error; err != nil {
		return nil, notFound("document", err)
	}
	return &doc, nil
}

func (r *documentRepo) GetWithAnnotations(dbc dbctx.Context, id uuid.UUID) (*types.Document, error) {
	var doc types.Document
	err := conn(dbc, r.db).
		Preload("Annotations", func(db *gorm.DB) *gorm.DB {
			return db.Order("start_offset ASC, created_at ASC")
		}).
		Where("id = ?", id).
		First(&doc).Error
	if err != nil {
		return nil, notFound("document", err)
	}
	return &doc, nil
}

// ListRecentBySession returns up to limit documents of the session, newest first.
func (r *documentRepo) ListRecentBySession(dbc dbctx.Context, sessionID uuid.UUID, limit int) ([]*types.Document, error) {
	var out []*types.Document
	if limit <= 0 {
		return out, nil
	}
	if err := conn(dbc, r.db).
		Where("session_id = ?", sessionID).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list recent documents: %w", err)
	}
	return out, nil
}

func (r *documentRepo) UpdateStatus(dbc dbctx.Context, id uuid.UUID, status types.DocumentStatus) error {
	res := conn(dbc, r.db).
		Model(&types.Document{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("update document status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("document: %w", apperrors.ErrNotFound)
	}
	return nil
}
