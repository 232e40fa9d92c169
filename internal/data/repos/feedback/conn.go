package feedback

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "github.com/yungbote/writemate-backend/internal/pkg/errors"
	"github.com/yungbote/writemate-backend/internal/platform/dbctx"
)

// conn picks the caller's transaction when present and binds the request context.
func conn(dbc dbctx.Context, db *gorm.DB) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = db
	}
	return transaction.WithContext(dbc.Context())
}

// notFound translates gorm's missing-row error into the package sentinel.
func notFound(what string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, apperrors.ErrNotFound)
	}
	return fmt.Errorf("get %s: %w", what, err)
}
