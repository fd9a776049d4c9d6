package controllers

import (
	"encoding/json"
	"net/http"

	"devtinder_server/helpers"
	"devtinder_server/middlewares"
	"devtinder_server/services"

	"github.com/gorilla/mux"
)

// ChatController handles the chat endpoints
type ChatController struct {
	Chats *services.ChatService
}

// NewChatController initializes the controller
func NewChatController(chats *services.ChatService) *ChatController {
	return &ChatController{Chats: chats}
}

// HandleGetChat fetches (or lazily creates) the chat with the target
// user and marks it seen: GET /chat/{targetUserId}
func (c *ChatController) HandleGetChat(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.UserFromContext(r.Context())
	if !ok {
		helpers.WriteError(w, http.StatusUnauthorized, "Please login")
		return
	}

	chat, err := c.Chats.GetOrCreateChat(r.Context(), user.UserID, mux.Vars(r)["targetUserId"])
	if err != nil {
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONResponse(w, http.StatusOK, chat)
}

// HandleSendMessage appends a message: POST /chat/{targetUserId}
func (c *ChatController) HandleSendMessage(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.UserFromContext(r.Context())
	if !ok {
		helpers.WriteError(w, http.StatusUnauthorized, "Please login")
		return
	}

	var body struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		helpers.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	chat, message, err := c.Chats.AppendMessage(r.Context(), user.UserID, mux.Vars(r)["targetUserId"], body.Text)
	if err != nil {
		helpers.WriteDomainError(w, err)
		return
	}

	helpers.WriteJSONResponse(w, http.StatusOK, map[string]interface{}{
		"message":       "Message sent successfully",
		"chat":          chat,
		"latestMessage": message,
	})
}

// HandleListChats lists the caller's chats with unread counts: GET /chats
func (c *ChatController) HandleListChats(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.UserFromContext(r.Context())
	if !ok {
		helpers.WriteError(w, http.StatusUnauthorized, "Please login")
		return
	}

	summaries, err := c.Chats.ListChats(r.Context(), user.UserID)
	if err != nil {
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONResponse(w, http.StatusOK, summaries)
}
