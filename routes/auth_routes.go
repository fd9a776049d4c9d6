package routes

import (
	"devtinder_server/controllers"
	"devtinder_server/services"

	"github.com/gorilla/mux"
)

// RegisterAuthRoutes sets up the public signup/login/logout routes
func RegisterAuthRoutes(r *mux.Router, users *services.UserService) {
	controller := controllers.NewAuthController(users)

	r.HandleFunc("/signup", controller.HandleSignup).Methods("POST")
	r.HandleFunc("/login", controller.HandleLogin).Methods("POST")
	r.HandleFunc("/logout", controller.HandleLogout).Methods("POST")
}
