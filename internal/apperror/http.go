package apperror

import (
	"errors"
	"net/http"

	"github.com/saulo-duarte/coursehub-lambda/internal/config"
)

const internalMessage = "internal server error"

func StatusCode(kind Kind) int {
	switch kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Write renders err as a JSON error body. Errors outside the taxonomy never
// leak their text to the client.
func Write(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *Error
	if !errors.As(err, &appErr) || appErr.Kind == KindInternal {
		config.WithContext(r.Context()).WithError(err).Error("Unhandled error")
		config.JSON(w, http.StatusInternalServerError, map[string]string{"error": internalMessage})
		return
	}

	body := map[string]interface{}{"error": err.Error()}
	if len(appErr.Fields) > 0 {
		fields := make(map[string]string, len(appErr.Fields))
		for _, f := range appErr.Fields {
			fields[f.Field] = f.Error
		}
		body["fields"] = fields
	}
	config.JSON(w, StatusCode(appErr.Kind), body)
}
