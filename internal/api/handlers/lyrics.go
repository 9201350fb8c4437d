package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rohits-web03/lyricjournal/internal/api/middleware"
	"github.com/rohits-web03/lyricjournal/internal/api/services"
	"github.com/rohits-web03/lyricjournal/internal/models"
	"github.com/rohits-web03/lyricjournal/internal/utils"
)

type lyricRequest struct {
	Title     string          `json:"title" validate:"required"`
	Artist    string          `json:"artist" validate:"required"`
	LyricText string          `json:"lyricText" validate:"required"`
	Note      string          `json:"note"`
	Tags      json.RawMessage `json:"tags" swaggertype:"array,string"`
}

// input converts the request. tags that are not an array are treated as
// none, and non-string elements are dropped.
func (req lyricRequest) input() models.LyricInput {
	var raw []any
	_ = json.Unmarshal(req.Tags, &raw)
	tags := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			tags = append(tags, s)
		}
	}
	return models.LyricInput{
		Title:     req.Title,
		Artist:    req.Artist,
		LyricText: req.LyricText,
		Note:      req.Note,
		Tags:      tags,
	}
}

// GET /api/lyrics
// ListLyrics godoc
// @Summary List lyrics
// @Description Returns the caller's entries, newest first, optionally filtered
// @Tags Lyrics
// @Produce json
// @Security BearerAuth
// @Param q query string false "Case-insensitive text search"
// @Param tag query []string false "Keep entries carrying any of these tags" collectionFormat(multi)
// @Success 200 {array} models.LyricEntry
// @Failure 401 {object} utils.ErrorBody
// @Failure 403 {object} utils.ErrorBody
// @Router /api/lyrics [get]
func (h *Handler) ListLyrics(w http.ResponseWriter, r *http.Request) {
	username, _ := middleware.UsernameFromContext(r.Context())
	q := r.URL.Query()

	entries, err := h.lyrics.Search(r.Context(), username, q.Get("q"), q["tag"])
	if err != nil {
		utils.ErrorResponse(w, h.logger, err)
		return
	}
	utils.JSONResponse(w, http.StatusOK, entries)
}

// POST /api/lyrics
// CreateLyric godoc
// @Summary Add a lyric
// @Tags Lyrics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body lyricRequest true "Entry"
// @Success 200 {object} models.LyricEntry
// @Failure 400 {object} utils.ErrorBody
// @Router /api/lyrics [post]
func (h *Handler) CreateLyric(w http.ResponseWriter, r *http.Request) {
	username, _ := middleware.UsernameFromContext(r.Context())

	in, err := h.readLyric(w, r)
	if err != nil {
		utils.ErrorResponse(w, h.logger, err)
		return
	}
	entry, err := h.lyrics.Create(r.Context(), username, in)
	if err != nil {
		utils.ErrorResponse(w, h.logger, err)
		return
	}
	utils.JSONResponse(w, http.StatusOK, entry)
}

// PUT /api/lyrics/{id}
// UpdateLyric godoc
// @Summary Edit a lyric
// @Description Replaces title, artist, lyricText, note and tags; id and dateAdded are kept
// @Tags Lyrics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Entry id"
// @Param body body lyricRequest true "Entry"
// @Success 200 {object} models.LyricEntry
// @Failure 400 {object} utils.ErrorBody
// @Failure 404 {object} utils.ErrorBody
// @Router /api/lyrics/{id} [put]
func (h *Handler) UpdateLyric(w http.ResponseWriter, r *http.Request) {
	username, _ := middleware.UsernameFromContext(r.Context())

	id, err := lyricID(r)
	if err != nil {
		utils.ErrorResponse(w, h.logger, err)
		return
	}
	in, err := h.readLyric(w, r)
	if err != nil {
		utils.ErrorResponse(w, h.logger, err)
		return
	}
	entry, err := h.lyrics.Update(r.Context(), username, id, in)
	if err != nil {
		utils.ErrorResponse(w, h.logger, err)
		return
	}
	utils.JSONResponse(w, http.StatusOK, entry)
}

// DELETE /api/lyrics/{id}
// DeleteLyric godoc
// @Summary Delete a lyric
// @Tags Lyrics
// @Produce json
// @Security BearerAuth
// @Param id path int true "Entry id"
// @Success 200 {object} utils.SuccessBody
// @Failure 404 {object} utils.ErrorBody
// @Router /api/lyrics/{id} [delete]
func (h *Handler) DeleteLyric(w http.ResponseWriter, r *http.Request) {
	username, _ := middleware.UsernameFromContext(r.Context())

	id, err := lyricID(r)
	if err != nil {
		utils.ErrorResponse(w, h.logger, err)
		return
	}
	if err := h.lyrics.Delete(r.Context(), username, id); err != nil {
		utils.ErrorResponse(w, h.logger, err)
		return
	}
	utils.JSONResponse(w, http.StatusOK, utils.SuccessBody{Success: true})
}

// GET /api/tags
// ListTags godoc
// @Summary Tag usage
// @Description Counts tags across the caller's entries, most used first
// @Tags Lyrics
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.TagCount
// @Router /api/tags [get]
func (h *Handler) ListTags(w http.ResponseWriter, r *http.Request) {
	username, _ := middleware.UsernameFromContext(r.Context())

	counts, err := h.lyrics.TagSummary(r.Context(), username)
	if err != nil {
		utils.ErrorResponse(w, h.logger, err)
		return
	}
	utils.JSONResponse(w, http.StatusOK, counts)
}

func (h *Handler) readLyric(w http.ResponseWriter, r *http.Request) (models.LyricInput, error) {
	var req lyricRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return models.LyricInput{}, err
	}
	if err := h.check(req, services.ErrLyricFieldsRequired()); err != nil {
		return models.LyricInput{}, err
	}
	return req.input(), nil
}

// lyricID parses the {id} path segment. A malformed id cannot name an entry.
func lyricID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, services.ErrLyricNotFound()
	}
	return id, nil
}
