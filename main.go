package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"devtinder_server/config"
	"devtinder_server/middlewares"
	"devtinder_server/routes"
	"devtinder_server/services"
	"devtinder_server/socket"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	config.Load()

	// Initialize DynamoDB client and service
	log.Println("Initializing DynamoDB client...")
	dynamoClient := services.InitializeDynamoDBClient()
	dynamoService := &services.DynamoService{Client: dynamoClient}
	log.Println("DynamoDB client initialized.")

	presenceService := services.NewPresenceService()
	defer presenceService.Close()

	// Initialize Services
	userService := &services.UserService{Dynamo: dynamoService}
	requestService := &services.RequestService{Dynamo: dynamoService, Users: userService}
	chatService := &services.ChatService{Dynamo: dynamoService, Users: userService, Presence: presenceService}
	emailService := &services.EmailService{Client: services.InitializeSESClient()}

	// Seed mock users so a fresh deployment has a feed
	if config.SeedEnabled {
		if err := services.SeedMockUsers(context.Background(), userService, config.SeedCount); err != nil {
			log.Printf("❌ Seeding failed: %v", err)
		}
	}

	// Daily reminder for pending connection requests
	cronService := services.NewCronService(dynamoService, userService, emailService)
	cronService.StartReminderCron(24 * time.Hour)
	defer cronService.StopReminderCron()

	// Initialize the router
	r := mux.NewRouter()

	// Register a health check endpoint
	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		response := map[string]string{"status": "ok"}
		json.NewEncoder(w).Encode(response)
	}).Methods("GET")

	// Realtime chat
	socketServer := socket.NewSocketServer(chatService, presenceService)
	go func() {
		if err := socketServer.Serve(); err != nil {
			log.Printf("❌ Socket server error: %v", err)
		}
	}()
	defer socketServer.Close()
	r.Handle("/socket.io/", socketServer)

	// Register routes
	api := r.PathPrefix("/api").Subrouter()
	routes.RegisterAuthRoutes(api, userService)

	protected := api.NewRoute().Subrouter()
	protected.Use(middlewares.UserAuth(userService))
	routes.RegisterProfileRoutes(protected, userService)
	routes.RegisterRequestRoutes(protected, requestService)
	routes.RegisterUserRoutes(protected, requestService)
	routes.RegisterChatRoutes(protected, chatService)

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   config.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	// Start the HTTP server
	addr := fmt.Sprintf(":%s", config.ServerPort)
	log.Printf("Starting server on port %s...\n", config.ServerPort)
	log.Fatal(http.ListenAndServe(addr, corsHandler))
}
