package routes

import (
	"devtinder_server/controllers"
	"devtinder_server/services"

	"github.com/gorilla/mux"
)

// RegisterChatRoutes sets up the chat endpoints
func RegisterChatRoutes(r *mux.Router, chats *services.ChatService) {
	controller := controllers.NewChatController(chats)

	r.HandleFunc("/chats", controller.HandleListChats).Methods("GET")
	r.HandleFunc("/chat/{targetUserId}", controller.HandleGetChat).Methods("GET")
	r.HandleFunc("/chat/{targetUserId}", controller.HandleSendMessage).Methods("POST")
}
