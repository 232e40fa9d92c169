package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/writemate-backend/internal/http/response"
	"github.com/yungbote/writemate-backend/internal/services"
)

type SessionHandler struct {
	sessions services.SessionService
	progress services.ProgressComparator
	mastery  services.PatternMastery
}

func NewSessionHandler(sessions services.SessionService, progress services.ProgressComparator, mastery services.PatternMastery) *SessionHandler {
	return &SessionHandler{sessions: sessions, progress: progress, mastery: mastery}
}

type compareProgressRequest struct {
	SessionID string `json:"session_id" binding:"required"`
}

// POST /api/v1/compare-progress
func (h *SessionHandler) CompareProgress(c *gin.Context) {
	var req compareProgressRequest
	if err := bindJSON(c, &req); err != nil {
		response.RespondAPIError(c, err, "invalid_request")
		return
	}
	sessionID, err := parseID(req.SessionID, "session id")
	if err != nil {
		response.RespondAPIError(c, err, "invalid_session_id")
		return
	}
	out, err := h.progress.CompareProgress(dbcFrom(c), sessionID)
	if err != nil {
		response.RespondAPIError(c, err, "compare_progress_failed")
		return
	}
	response.RespondOK(c, out)
}

// GET /api/v1/sessions/:id/progress
func (h *SessionHandler) ListProgress(c *gin.Context) {
	sessionID, err := pathID(c, "session id")
	if err != nil {
		response.RespondAPIError(c, err, "invalid_session_id")
		return
	}
	rows, err := h.progress.ListMetrics(dbcFrom(c), sessionID)
	if err != nil {
		response.RespondAPIError(c, err, "list_progress_failed")
		return
	}
	response.RespondOK(c, gin.H{"metrics": rows})
}

// POST /api/v1/sessions/:id/mastery/evaluate
func (h *SessionHandler) EvaluateMastery(c *gin.Context) {
	sessionID, err := pathID(c, "session id")
	if err != nil {
		response.RespondAPIError(c, err, "invalid_session_id")
		return
	}
	mastered, err := h.mastery.EvaluateMastery(dbcFrom(c), sessionID)
	if err != nil {
		response.RespondAPIError(c, err, "evaluate_mastery_failed")
		return
	}
	response.RespondOK(c, gin.H{"mastered": mastered})
}

// GET /api/v1/sessions/:id/patterns
func (h *SessionHandler) ListPatterns(c *gin.Context) {
	sessionID, err := pathID(c, "session id")
	if err != nil {
		response.RespondAPIError(c, err, "invalid_session_id")
		return
	}
	rows, err := h.sessions.ListPatterns(dbcFrom(c), sessionID)
	if err != nil {
		response.RespondAPIError(c, err, "list_patterns_failed")
		return
	}
	response.RespondOK(c, gin.H{"patterns": rows})
}

// GET /api/v1/sessions/:id/persona
func (h *SessionHandler) GetPersona(c *gin.Context) {
	sessionID, err := pathID(c, "session id")
	if err != nil {
		response.RespondAPIError(c, err, "invalid_session_id")
		return
	}
	p, err := h.sessions.GetPersona(dbcFrom(c), sessionID)
	if err != nil {
		response.RespondAPIError(c, err, "get_persona_failed")
		return
	}
	response.RespondOK(c, gin.H{"persona": p})
}

// PUT /api/v1/sessions/:id/persona
func (h *SessionHandler) UpsertPersona(c *gin.Context) {
	sessionID, err := pathID(c, "session id")
	if err != nil {
		response.RespondAPIError(c, err, "invalid_session_id")
		return
	}
	var req personaPayload
	if err := bindJSON(c, &req); err != nil {
		response.RespondAPIError(c, err, "invalid_request")
		return
	}
	p := req.toDomain()
	p.SessionID = sessionID
	saved, err := h.sessions.UpsertPersona(dbcFrom(c), p)
	if err != nil {
		response.RespondAPIError(c, err, "upsert_persona_failed")
		return
	}
	response.RespondOK(c, gin.H{"persona": saved})
}
