package services

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/yungbote/writemate-backend/internal/data/repos"
	types "github.com/yungbote/writemate-backend/internal/domain"
	apperrors "github.com/yungbote/writemate-backend/internal/pkg/errors"
	"github.com/yungbote/writemate-backend/internal/platform/dbctx"
	"github.com/yungbote/writemate-backend/internal/platform/logger"
)

type SessionService interface {
	ListPatterns(dbc dbctx.Context, sessionID uuid.UUID) ([]*types.Pattern, error)
	GetPersona(dbc dbctx.Context, sessionID uuid.UUID) (*types.Persona, error)
	UpsertPersona(dbc dbctx.Context, persona *types.Persona) (*types.Persona, error)
}

type sessionService struct {
	log      *logger.Logger
	sessions repos.SessionRepo
	patterns repos.PatternRepo
	personas repos.PersonaRepo
}

func NewSessionService(baseLog *logger.Logger, sessions repos.SessionRepo, patterns repos.PatternRepo, personas repos.PersonaRepo) SessionService {
	return &sessionService{
		log:      baseLog.With("service", "SessionService"),
		sessions: sessions,
		patterns: patterns,
		personas: personas,
	}
}

func (s *sessionService) ListPatterns(dbc dbctx.Context, sessionID uuid.UUID) ([]*types.Pattern, error) {
	return s.patterns.ListBySession(dbc, sessionID)
}

func (s *sessionService) GetPersona(dbc dbctx.Context, sessionID uuid.UUID) (*types.Persona, error) {
	p, err := s.personas.GetBySession(dbc, sessionID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("persona: %w", apperrors.ErrNotFound)
	}
	return p, nil
}

// UpsertPersona stores the persona, creating the session on first use.
func (s *sessionService) UpsertPersona(dbc dbctx.Context, persona *types.Persona) (*types.Persona, error) {
	if persona == nil || persona.SessionID == uuid.Nil {
		return nil, fmt.Errorf("session id required: %w", apperrors.ErrInvalidArgument)
	}
	if _, err := s.sessions.Ensure(dbc, persona.SessionID); err != nil {
		return nil, err
	}
	return s.personas.Upsert(dbc, persona)
}
