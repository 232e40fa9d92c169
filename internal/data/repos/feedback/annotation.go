package feedback

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/writemate-backend/internal/domain"
	"github.com/yungbote/writemate-backend/internal/platform/dbctx"
	"github.com/yungbote/writemate-backend/internal/platform/logger"
)

type AnnotationRepo interface {
	CreateBulk(dbc dbctx.Context, rows []*types.Annotation) ([]*types.Annotation, error)
	ListByDocumentIDs(dbc dbctx.Context, documentIDs []uuid.UUID) ([]*types.Annotation, error)
}

type annotationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAnnotationRepo(db *gorm.DB, baseLog *logger.Logger) AnnotationRepo {
	return &annotationRepo{db: db, log: baseLog.With("repo", "AnnotationRepo")}
}

// CreateBulk inserts rows as given. Offsets are not checked against the document.
func (r *annotationRepo) CreateBulk(dbc dbctx.Context, rows []*types.Annotation) ([]*types.Annotation, error) {
	if len(rows) == 0 {
		return []*types.Annotation{}, nil
	}
	if err := conn(dbc, r.db).Create(&rows).Error; err != nil {
		return nil, fmt.Errorf("create annotations: %w", err)
	}
	return rows, nil
}

func (r *annotationRepo) ListByDocumentIDs(dbc dbctx.Context, documentIDs []uuid.UUID) ([]*types.Annotation, error) {
	var out []*types.Annotation
	if len(documentIDs) == 0 {
		return out, nil
	}
	if err := conn(dbc, r.db).
		Where("document_id IN ?", documentIDs).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list annotations: %w", err)
	}
	return out, nil
}
