package handlers

import (
	"net/http"

	"github.com/rohits-web03/lyricjournal/internal/api/services"
	"github.com/rohits-web03/lyricjournal/internal/utils"
)

type credentialsRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Success  bool   `json:"success"`
	Token    string `json:"token"`
	Username string `json:"username"`
}

// POST /api/register
// Register godoc
// @Summary Create an account
// @Description Registers a username/password account and returns a bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body credentialsRequest true "Credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} utils.ErrorBody
// @Router /api/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var input credentialsRequest
	if err := h.readCredentials(w, r, &input); err != nil {
		utils.ErrorResponse(w, h.logger, err)
		return
	}

	res, err := h.auth.Register(r.Context(), input.Username, input.Password)
	if err != nil {
		utils.ErrorResponse(w, h.logger, err)
		return
	}
	utils.JSONResponse(w, http.StatusOK, AuthResponse{Success: true, Token: res.Token, Username: res.Username})
}

// POST /api/login
// Login godoc
// @Summary Log in
// @Description Checks credentials and returns a bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body credentialsRequest true "Credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} utils.ErrorBody
// @Router /api/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var input credentialsRequest
	if err := h.readCredentials(w, r, &input); err != nil {
		utils.ErrorResponse(w, h.logger, err)
		return
	}

	res, err := h.auth.Login(r.Context(), input.Username, input.Password)
	if err != nil {
		utils.ErrorResponse(w, h.logger, err)
		return
	}
	utils.JSONResponse(w, http.StatusOK, AuthResponse{Success: true, Token: res.Token, Username: res.Username})
}

func (h *Handler) readCredentials(w http.ResponseWriter, r *http.Request, input *credentialsRequest) error {
	if err := decodeJSON(w, r, input); err != nil {
		return err
	}
	return h.check(input, services.ErrCredentialsRequired())
}
