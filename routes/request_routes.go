package routes

import (
	"devtinder_server/controllers"
	"devtinder_server/services"

	"github.com/gorilla/mux"
)

// RegisterRequestRoutes sets up routes for the connection-request workflow
func RegisterRequestRoutes(r *mux.Router, requests *services.RequestService) {
	controller := controllers.NewRequestController(requests)

	r.HandleFunc("/request/send/{status}/{userId}", controller.HandleSend).Methods("POST")
	r.HandleFunc("/request/review/{status}/{requestId}", controller.HandleReview).Methods("POST")
	r.HandleFunc("/request/cancel/{requestId}", controller.HandleCancel).Methods("DELETE")
}
