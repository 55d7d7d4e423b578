package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want int
	}{
		{"validation", Validation("bad"), http.StatusBadRequest},
		{"conflict", Conflict("taken"), http.StatusConflict},
		{"unauthorized", Unauthorized("nope"), http.StatusUnauthorized},
		{"forbidden", Forbidden("not yours"), http.StatusForbidden},
		{"not found", NotFound("gone"), http.StatusNotFound},
		{"upstream", Upstream("upload failed", errors.New("boom")), http.StatusInternalServerError},
		{"internal", Internal("oops", nil), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.HTTPStatus())
		})
	}
}

func TestAsThroughWrapping(t *testing.T) {
	cause := errors.New("socket closed")
	wrapped := fmt.Errorf("publish: %w", Upstream("failed to upload video", cause))

	ae, ok := As(wrapped)
	assert.True(t, ok)
	assert.Equal(t, KindUpstream, ae.Kind)
	assert.ErrorIs(t, wrapped, cause)
	assert.True(t, IsKind(wrapped, KindUpstream))
	assert.False(t, IsKind(errors.New("plain"), KindUpstream))
}

func TestErrorString(t *testing.T) {
	assert.Equal(t, "not_found: video not found", NotFound("video not found").Error())
	assert.Equal(t, "internal: x: y", Internal("x", errors.New("y")).Error())
}
