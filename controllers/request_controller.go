package controllers

import (
	"net/http"

	"devtinder_server/helpers"
	"devtinder_server/middlewares"
	"devtinder_server/services"

	"github.com/gorilla/mux"
)

// RequestController handles the connection-request workflow
type RequestController struct {
	Requests *services.RequestService
}

// NewRequestController initializes the controller
func NewRequestController(requests *services.RequestService) *RequestController {
	return &RequestController{Requests: requests}
}

// HandleSend creates a request: POST /request/send/{status}/{userId}
func (c *RequestController) HandleSend(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.UserFromContext(r.Context())
	if !ok {
		helpers.WriteError(w, http.StatusUnauthorized, "Please login")
		return
	}
	vars := mux.Vars(r)

	request, err := c.Requests.SendRequest(r.Context(), user.UserID, vars["userId"], vars["status"])
	if err != nil {
		helpers.WriteDomainError(w, err)
		return
	}

	helpers.WriteJSONResponse(w, http.StatusCreated, map[string]interface{}{
		"message": "Connection request sent",
		"data":    request,
	})
}

// HandleReview resolves a request: POST /request/review/{status}/{requestId}
func (c *RequestController) HandleReview(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.UserFromContext(r.Context())
	if !ok {
		helpers.WriteError(w, http.StatusUnauthorized, "Please login")
		return
	}
	vars := mux.Vars(r)

	request, err := c.Requests.ReviewRequest(r.Context(), user.UserID, vars["requestId"], vars["status"])
	if err != nil {
		helpers.WriteDomainError(w, err)
		return
	}

	helpers.WriteJSONResponse(w, http.StatusOK, map[string]interface{}{
		"message": "Connection request " + request.Status,
		"data":    request,
	})
}

// HandleCancel withdraws a pending request: DELETE /request/cancel/{requestId}
func (c *RequestController) HandleCancel(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.UserFromContext(r.Context())
	if !ok {
		helpers.WriteError(w, http.StatusUnauthorized, "Please login")
		return
	}

	if err := c.Requests.CancelRequest(r.Context(), user.UserID, mux.Vars(r)["requestId"]); err != nil {
		helpers.WriteDomainError(w, err)
		return
	}

	helpers.WriteJSONResponse(w, http.StatusOK, map[string]string{"message": "Connection request canceled"})
}
