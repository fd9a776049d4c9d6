package routes

import (
	"devtinder_server/controllers"
	"devtinder_server/services"

	"github.com/gorilla/mux"
)

// RegisterProfileRoutes sets up the authenticated profile routes
func RegisterProfileRoutes(r *mux.Router, users *services.UserService) {
	controller := controllers.NewProfileController(users)

	r.HandleFunc("/profile/view", controller.HandleView).Methods("GET")
	r.HandleFunc("/profile/edit", controller.HandleEdit).Methods("PATCH")
}
