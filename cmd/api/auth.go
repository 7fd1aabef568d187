package main

import (
	"net/http"
	"time"

	"github.com/farxc/carteira-devedores/internal/auth"
	"github.com/farxc/carteira-devedores/internal/response"
)

type loginResult struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	Session   auth.Session `json:"session"`
}

type LoginResponse = response.APIResponse[*loginResult]
type MeResponse = response.APIResponse[auth.Session]

// @Summary		Log in
// @Description	Exchanges email and password for a bearer token.
// @Tags			Auth
// @Accept			json
// @Produce		json
// @Param			credentials	body		object{email:string,password:string}	true	"Login credentials"
// @Success		200			{object}	LoginResponse
// @Failure		400			{object}	response.ErrorResponse	"Invalid request payload"
// @Failure		401			{object}	response.ErrorResponse	"Invalid email or password"
// @Router			/auth/login [post]
func (app *application) handleLogin(w http.ResponseWriter, r *http.Request) {
	const component = "Auth"

	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := readJSON(w, r, &input); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	s, err := app.credentials.Authenticate(input.Email, input.Password)
	if err != nil {
		app.logger.Warn(component, "Login rejected: email=%s", input.Email)
		app.writeServiceError(w, r, err)
		return
	}

	token, expiresAt, err := app.tokens.Issue(*s)
	if err != nil {
		app.writeServiceError(w, r, err)
		return
	}

	app.logger.Info(component, "Login: userId=%s role=%s", s.UserID, s.Role)
	writeData(w, http.StatusOK, "Login successful", &loginResult{Token: token, ExpiresAt: expiresAt, Session: *s})
}

// @Summary		Current session
// @Tags			Auth
// @Produce		json
// @Success		200	{object}	MeResponse
// @Failure		401	{object}	response.ErrorResponse
// @Router			/auth/me [get]
func (app *application) handleMe(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, "", session(r))
}
