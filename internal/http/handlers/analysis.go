package handlers

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	types "github.com/yungbote/writemate-backend/internal/domain"
	"github.com/yungbote/writemate-backend/internal/http/response"
	apperrors "github.com/yungbote/writemate-backend/internal/pkg/errors"
	"github.com/yungbote/writemate-backend/internal/services"
)

type AnalysisHandler struct {
	analysis services.AnalysisService
}

func NewAnalysisHandler(analysis services.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{analysis: analysis}
}

type personaPayload struct {
	Goals           []string `json:"goals"`
	ExperienceLevel string   `json:"experience_level"`
	FocusAreas      []string `json:"focus_areas"`
	PreferredTone   string   `json:"preferred_tone"`
}

func (p *personaPayload) toDomain() *types.Persona {
	if p == nil {
		return nil
	}
	return &types.Persona{
		Goals:           p.Goals,
		ExperienceLevel: p.ExperienceLevel,
		FocusAreas:      p.FocusAreas,
		PreferredTone:   p.PreferredTone,
	}
}

type analyzeRequest struct {
	DocumentID         string          `json:"document_id" binding:"required"`
	Content            string          `json:"content"`
	Persona            *personaPayload `json:"persona"`
	HistoricalPatterns []string        `json:"historical_patterns"`
}

type contentRequest struct {
	Content string `json:"content"`
}

func (r contentRequest) validate() error {
	if strings.TrimSpace(r.Content) == "" {
		return fmt.Errorf("content required: %w", apperrors.ErrInvalidArgument)
	}
	return nil
}

// POST /api/v1/analyze
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	var req analyzeRequest
	if err := bindJSON(c, &req); err != nil {
		response.RespondAPIError(c, err, "invalid_request")
		return
	}
	docID, err := parseID(req.DocumentID, "document id")
	if err != nil {
		response.RespondAPIError(c, err, "invalid_document_id")
		return
	}
	res, err := h.analysis.Analyze(dbcFrom(c), services.AnalyzeInput{
		DocumentID:         docID,
		Content:            req.Content,
		Persona:            req.Persona.toDomain(),
		HistoricalPatterns: req.HistoricalPatterns,
	})
	if err != nil {
		response.RespondAPIError(c, err, "analysis_failed")
		return
	}
	response.RespondOK(c, res)
}

// POST /api/v1/analyze/quick
func (h *AnalysisHandler) QuickCheck(c *gin.Context) {
	var req contentRequest
	if err := bindJSON(c, &req); err != nil {
		response.RespondAPIError(c, err, "invalid_request")
		return
	}
	if err := req.validate(); err != nil {
		response.RespondAPIError(c, err, "invalid_request")
		return
	}
	res, err := h.analysis.QuickCheck(c.Request.Context(), req.Content)
	if err != nil {
		response.RespondAPIError(c, err, "quick_check_failed")
		return
	}
	response.RespondOK(c, res)
}

// POST /api/v1/vocabulary/extract
func (h *AnalysisHandler) ExtractVocabulary(c *gin.Context) {
	var req contentRequest
	if err := bindJSON(c, &req); err != nil {
		response.RespondAPIError(c, err, "invalid_request")
		return
	}
	if err := req.validate(); err != nil {
		response.RespondAPIError(c, err, "invalid_request")
		return
	}
	words, err := h.analysis.ExtractVocabulary(c.Request.Context(), req.Content)
	if err != nil {
		response.RespondAPIError(c, err, "vocabulary_failed")
		return
	}
	response.RespondOK(c, words)
}
