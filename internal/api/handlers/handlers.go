// Package handlers implements the JSON endpoints of the lyric journal API.
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/rohits-web03/lyricjournal/internal/api/services"
	"github.com/rohits-web03/lyricjournal/internal/errs"
)

// MaxBodyBytes caps the size of a request body.
const MaxBodyBytes = 1 << 20

const (
	msgInvalidBody  = "Invalid request body"
	msgBodyTooLarge = "Request body too large"
)

// Handler carries the services the endpoints delegate to.
type Handler struct {
	auth     *services.AuthService
	lyrics   *services.LyricService
	logger   *zap.Logger
	validate *validator.Validate
}

func New(auth *services.AuthService, lyrics *services.LyricService, logger *zap.Logger) *Handler {
	return &Handler{
		auth:     auth,
		lyrics:   lyrics,
		logger:   logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// decodeJSON reads at most MaxBodyBytes of JSON into dst. An empty body
// leaves dst untouched; unknown fields are ignored.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return errs.Validation(msgBodyTooLarge)
	}
	return errs.Validation(msgInvalidBody)
}

// check runs struct validation and reports any failure as failure.
func (h *Handler) check(v any, failure error) error {
	if err := h.validate.Struct(v); err != nil {
		return failure
	}
	return nil
}
