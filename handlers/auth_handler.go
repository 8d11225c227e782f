package handlers

import (
	"net/http"

	"github.com/Dosada05/movie-battle/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login godoc
// @Summary  Exchange the admin password for an admin token
// @Tags     admin
// @Accept   json
// @Produce  json
// @Param    credentials  body      services.LoginInput  true  "Admin password"
// @Success  200          {object}  services.AdminSession
// @Failure  401          {object}  map[string]string
// @Router   /admin/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input services.LoginInput

	err := readJSON(w, r, &input)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if input.Password == "" {
		failedValidationResponse(w, r, map[string]string{"password": "must be provided"})
		return
	}

	session, err := h.authService.Login(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"token":      session.Token,
		"expires_at": session.ExpiresAt,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
