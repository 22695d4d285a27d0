package server

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/bannerforge/bannerforge/pkg/errors"
)

// errorBody is the JSON error envelope.
type errorBody struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

// respondJSON writes v as JSON with the given status.
func respondJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

// respondError maps a pipeline error to an HTTP status and writes the
// error envelope.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	respondJSON(w, r, statusForCode(code), errorBody{
		Code:  string(code),
		Error: errors.UserMessage(err),
	})
}

// statusForCode maps error codes to HTTP statuses. Unknown codes are
// treated as internal errors.
func statusForCode(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput,
		errors.ErrCodeInvalidScale,
		errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidPreset,
		errors.ErrCodeInvalidColor:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound,
		errors.ErrCodeBannerNotFound,
		errors.ErrCodeFontNotFound:
		return http.StatusNotFound
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case errors.ErrCodeResourceFetch:
		return http.StatusBadGateway
	case errors.ErrCodeUnsupported:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
