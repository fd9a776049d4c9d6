package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"devtinder_server/helpers"
	"devtinder_server/middlewares"
	"devtinder_server/services"
	"devtinder_server/utils"
)

// AuthController handles signup, login and logout
type AuthController struct {
	Users *services.UserService
}

// NewAuthController initializes the controller
func NewAuthController(users *services.UserService) *AuthController {
	return &AuthController{Users: users}
}

// HandleSignup registers a local account and logs it in
func (c *AuthController) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var params services.SignupParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		helpers.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := c.Users.CreateUser(r.Context(), params)
	if err != nil {
		helpers.WriteDomainError(w, err)
		return
	}

	if err := setAuthCookie(w, user.UserID); err != nil {
		helpers.WriteError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	helpers.WriteJSONResponse(w, http.StatusCreated, user)
}

// HandleLogin verifies credentials and sets the token cookie
func (c *AuthController) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var params struct {
		EmailID  string `json:"emailId"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		helpers.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := c.Users.VerifyCredentials(r.Context(), params.EmailID, params.Password)
	if err != nil {
		helpers.WriteDomainError(w, err)
		return
	}

	if err := setAuthCookie(w, user.UserID); err != nil {
		helpers.WriteError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	helpers.WriteJSONResponse(w, http.StatusOK, user)
}

// HandleLogout expires the token cookie
func (c *AuthController) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middlewares.TokenCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	helpers.WriteJSONResponse(w, http.StatusOK, map[string]string{"message": "Logout successful"})
}

func setAuthCookie(w http.ResponseWriter, userID string) error {
	token, err := utils.GenerateToken(userID)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     middlewares.TokenCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(utils.TokenTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
