package controllers

import (
	"net/http"
	"strconv"

	"devtinder_server/helpers"
	"devtinder_server/middlewares"
	"devtinder_server/services"
)

// UserController handles request listings and the feed
type UserController struct {
	Requests *services.RequestService
}

// NewUserController initializes the controller
func NewUserController(requests *services.RequestService) *UserController {
	return &UserController{Requests: requests}
}

// HandleReceived returns the caller's actionable inbox
func (c *UserController) HandleReceived(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.UserFromContext(r.Context())
	if !ok {
		helpers.WriteError(w, http.StatusUnauthorized, "Please login")
		return
	}

	requests, err := c.Requests.ListReceived(r.Context(), user.UserID)
	if err != nil {
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONResponse(w, http.StatusOK, map[string]interface{}{"data": requests})
}

// HandleSent returns every request the caller has sent
func (c *UserController) HandleSent(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.UserFromContext(r.Context())
	if !ok {
		helpers.WriteError(w, http.StatusUnauthorized, "Please login")
		return
	}

	requests, err := c.Requests.ListSent(r.Context(), user.UserID)
	if err != nil {
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONResponse(w, http.StatusOK, map[string]interface{}{"data": requests})
}

// HandleConnections returns the caller's accepted connections
func (c *UserController) HandleConnections(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.UserFromContext(r.Context())
	if !ok {
		helpers.WriteError(w, http.StatusUnauthorized, "Please login")
		return
	}

	connections, err := c.Requests.Connections(r.Context(), user.UserID)
	if err != nil {
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONResponse(w, http.StatusOK, map[string]interface{}{"data": connections})
}

// HandleFeed returns candidate users: GET /feed?limit=N
func (c *UserController) HandleFeed(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.UserFromContext(r.Context())
	if !ok {
		helpers.WriteError(w, http.StatusUnauthorized, "Please login")
		return
	}

	limit := services.DefaultFeedLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}

	feed, err := c.Requests.GetFeed(r.Context(), user.UserID, limit)
	if err != nil {
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONResponse(w, http.StatusOK, map[string]interface{}{"data": feed})
}
