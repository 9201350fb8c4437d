package utils

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/rohits-web03/lyricjournal/internal/errs"
)

const msgInternal = "Internal server error"

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error string `json:"error"`
}

// SuccessBody acknowledges an operation that has nothing else to return.
type SuccessBody struct {
	Success bool `json:"success"`
}

// JSONResponse sends v as JSON with the given status.
func JSONResponse(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// StatusFor maps a classified error to its HTTP status and client message.
// Unclassified and storage errors become a generic 500.
func StatusFor(err error) (int, string) {
	e, ok := errs.As(err)
	if !ok {
		return http.StatusInternalServerError, msgInternal
	}
	switch e.Kind {
	case errs.KindValidation, errs.KindConflict:
		return http.StatusBadRequest, e.Message
	case errs.KindAuth:
		switch e.Reason {
		case errs.AuthMissing:
			return http.StatusUnauthorized, e.Message
		case errs.AuthInvalid:
			return http.StatusForbidden, e.Message
		default:
			return http.StatusBadRequest, e.Message
		}
	case errs.KindNotFound:
		return http.StatusNotFound, e.Message
	default:
		return http.StatusInternalServerError, msgInternal
	}
}

// ErrorResponse writes err as {"error": msg}. Server-side failures are logged
// with their cause, which never reaches the client.
func ErrorResponse(w http.ResponseWriter, logger *zap.Logger, err error) {
	status, msg := StatusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", zap.Error(err))
	}
	JSONResponse(w, status, ErrorBody{Error: msg})
}
