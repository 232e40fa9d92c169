package services

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/writemate-backend/internal/data/repos"
	types "github.com/yungbote/writemate-backend/internal/domain"
	apperrors "github.com/yungbote/writemate-backend/internal/pkg/errors"
	"github.com/yungbote/writemate-backend/internal/platform/dbctx"
	"github.com/yungbote/writemate-backend/internal/platform/logger"
)

type DocumentService interface {
	// CreateDocument stores a pending document, creating the session on first use.
	CreateDocument(dbc dbctx.Context, sessionID uuid.UUID, title, content string) (*types.Document, error)
	GetDocument(dbc dbctx.Context, id uuid.UUID) (*types.Document, error)
}

type documentService struct {
	log       *logger.Logger
	sessions  repos.SessionRepo
	documents repos.DocumentRepo
}

func NewDocumentService(baseLog *logger.Logger, sessions repos.SessionRepo, documents repos.DocumentRepo) DocumentService {
	return &documentService{
		log:       baseLog.With("service", "DocumentService"),
		sessions:  sessions,
		documents: documents,
	}
}

func (s *documentService) CreateDocument(dbc dbctx.Context, sessionID uuid.UUID, title, content string) (*types.Document, error) {
	if sessionID == uuid.Nil {
		return nil, fmt.Errorf("session id required: %w", apperrors.ErrInvalidArgument)
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("content required: %w", apperrors.ErrInvalidArgument)
	}
	if _, err := s.sessions.Ensure(dbc, sessionID); err != nil {
		return nil, err
	}
	doc, err := s.documents.Create(dbc, &types.Document{
		SessionID: sessionID,
		Title:     strings.TrimSpace(title),
		Content:   content,
		Status:    types.DocumentStatusPending,
	})
	if err != nil {
		return nil, err
	}
	s.log.Debug("Document created", "document_id", doc.ID, "session_id", sessionID, "content", content)
	return doc, nil
}

func (s *documentService) GetDocument(dbc dbctx.Context, id uuid.UUID) (*types.Document, error) {
	return s.documents.GetWithAnnotations(dbc, id)
}
