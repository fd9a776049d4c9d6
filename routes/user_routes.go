package routes

import (
	"devtinder_server/controllers"
	"devtinder_server/services"

	"github.com/gorilla/mux"
)

// RegisterUserRoutes sets up request listings and the feed
func RegisterUserRoutes(r *mux.Router, requests *services.RequestService) {
	controller := controllers.NewUserController(requests)

	r.HandleFunc("/user/requests/received", controller.HandleReceived).Methods("GET")
	r.HandleFunc("/user/requests/sent", controller.HandleSent).Methods("GET")
	r.HandleFunc("/user/connections", controller.HandleConnections).Methods("GET")
	r.HandleFunc("/feed", controller.HandleFeed).Methods("GET")
}
