package apperror_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saulo-duarte/coursehub-lambda/internal/apperror"
)

var errSeatGone = apperror.Conflict("no seats available")

func TestKindOf(t *testing.T) {
	t.Run("wrapped sentinel keeps its kind", func(t *testing.T) {
		err := fmt.Errorf("enroll: %w", errSeatGone)
		assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
		assert.True(t, errors.Is(err, errSeatGone))
	})

	t.Run("foreign errors are internal", func(t *testing.T) {
		assert.Equal(t, apperror.KindInternal, apperror.KindOf(errors.New("boom")))
		assert.False(t, apperror.IsKind(nil, apperror.KindInternal))
	})
}

func TestWrite(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody map[string]interface{}
	}{
		{
			name:     "not found",
			err:      apperror.NotFound("quiz not found"),
			wantCode: http.StatusNotFound,
			wantBody: map[string]interface{}{"error": "quiz not found"},
		},
		{
			name:     "conflict",
			err:      errSeatGone,
			wantCode: http.StatusConflict,
			wantBody: map[string]interface{}{"error": "no seats available"},
		},
		{
			name:     "validation with fields",
			err:      apperror.Validation("invalid request", apperror.FieldError{Field: "amount", Error: "this field is required"}),
			wantCode: http.StatusBadRequest,
			wantBody: map[string]interface{}{
				"error":  "invalid request",
				"fields": map[string]interface{}{"amount": "this field is required"},
			},
		},
		{
			name:     "internal errors are hidden",
			err:      errors.New("pq: relation \"courses\" does not exist"),
			wantCode: http.StatusInternalServerError,
			wantBody: map[string]interface{}{"error": "internal server error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)

			apperror.Write(rec, req, tt.err)

			assert.Equal(t, tt.wantCode, rec.Code)
			var got map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, tt.wantBody, got)
		})
	}
}
