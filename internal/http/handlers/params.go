package handlers

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/yungbote/writemate-backend/internal/pkg/errors"
	"github.com/yungbote/writemate-backend/internal/platform/dbctx"
)

func parseID(raw, what string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, fmt.Errorf("invalid %s %q: %w", what, raw, apperrors.ErrInvalidArgument)
	}
	return id, nil
}

func pathID(c *gin.Context, what string) (uuid.UUID, error) {
	return parseID(c.Param("id"), what)
}

// bindJSON decodes the body and tags decode failures as invalid input.
func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return fmt.Errorf("invalid request body: %v: %w", err, apperrors.ErrInvalidArgument)
	}
	return nil
}

func dbcFrom(c *gin.Context) dbctx.Context {
	return dbctx.Context{Ctx: c.Request.Context()}
}
