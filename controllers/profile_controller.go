package controllers

import (
	"encoding/json"
	"net/http"

	"devtinder_server/helpers"
	"devtinder_server/middlewares"
	"devtinder_server/services"
)

// ProfileController handles the caller's own profile
type ProfileController struct {
	Users *services.UserService
}

// NewProfileController initializes the controller
func NewProfileController(users *services.UserService) *ProfileController {
	return &ProfileController{Users: users}
}

// HandleView returns the authenticated user's full record
func (c *ProfileController) HandleView(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.UserFromContext(r.Context())
	if !ok {
		helpers.WriteError(w, http.StatusUnauthorized, "Please login")
		return
	}
	helpers.WriteJSONResponse(w, http.StatusOK, user)
}

// HandleEdit applies whitelisted profile edits
func (c *ProfileController) HandleEdit(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.UserFromContext(r.Context())
	if !ok {
		helpers.WriteError(w, http.StatusUnauthorized, "Please login")
		return
	}

	var params services.ProfileUpdateParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		helpers.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := c.Users.UpdateProfile(r.Context(), user.UserID, params)
	if err != nil {
		helpers.WriteDomainError(w, err)
		return
	}

	helpers.WriteJSONResponse(w, http.StatusOK, map[string]interface{}{
		"message": user.FirstName + ", your profile updated successfully",
		"data":    updated,
	})
}
