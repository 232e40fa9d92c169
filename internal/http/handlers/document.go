package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/writemate-backend/internal/http/response"
	"github.com/yungbote/writemate-backend/internal/services"
)

type DocumentHandler struct {
	documents services.DocumentService
}

func NewDocumentHandler(documents services.DocumentService) *DocumentHandler {
	return &DocumentHandler{documents: documents}
}

type createDocumentRequest struct {
	Title   string `json:"title"`
	Content string `json:"content" binding:"required"`
}

// POST /api/v1/sessions/:id/documents
func (h *DocumentHandler) CreateDocument(c *gin.Context) {
	sessionID, err := pathID(c, "session id")
	if err != nil {
		response.RespondAPIError(c, err, "invalid_session_id")
		return
	}
	var req createDocumentRequest
	if err := bindJSON(c, &req); err != nil {
		response.RespondAPIError(c, err, "invalid_request")
		return
	}
	doc, err := h.documents.CreateDocument(dbcFrom(c), sessionID, req.Title, req.Content)
	if err != nil {
		response.RespondAPIError(c, err, "create_document_failed")
		return
	}
	response.RespondCreated(c, gin.H{"document": doc})
}

// GET /api/v1/documents/:id
func (h *DocumentHandler) GetDocument(c *gin.Context) {
	docID, err := pathID(c, "document id")
	if err != nil {
		response.RespondAPIError(c, err, "invalid_document_id")
		return
	}
	doc, err := h.documents.GetDocument(dbcFrom(c), docID)
	if err != nil {
		response.RespondAPIError(c, err, "get_document_failed")
		return
	}
	response.RespondOK(c, gin.H{"document": doc})
}
