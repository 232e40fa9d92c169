package apierr

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/yungbote/writemate-backend/internal/pkg/errors"
)

func TestFromClassifiesSentinels(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{fmt.Errorf("document x: %w", apperrors.ErrNotFound), http.StatusNotFound, "not_found"},
		{fmt.Errorf("bad body: %w", apperrors.ErrInvalidArgument), http.StatusBadRequest, "invalid_request"},
		{fmt.Errorf("openai: %w", apperrors.ErrUpstream), http.StatusBadGateway, "upstream_failure"},
		{fmt.Errorf("disk on fire"), http.StatusInternalServerError, "analyze_failed"},
	}
	for _, tc := range cases {
		got := From(tc.err, "analyze_failed")
		require.Equal(t, tc.status, got.Status, tc.err.Error())
		require.Equal(t, tc.code, got.Code, tc.err.Error())
		require.ErrorIs(t, got, tc.err)
	}
}

func TestFromKeepsExplicitError(t *testing.T) {
	explicit := New(http.StatusConflict, "conflict", fmt.Errorf("dup"))
	require.Same(t, explicit, From(fmt.Errorf("wrapped: %w", explicit), "x"))
}
