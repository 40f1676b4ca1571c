package main

import (
	"log"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/toefl-prep/backend/internal/auth"
	"github.com/toefl-prep/backend/internal/database"
	"github.com/toefl-prep/backend/internal/generator"
	"github.com/toefl-prep/backend/internal/middleware"
	"github.com/toefl-prep/backend/internal/sentence"
	"github.com/toefl-prep/backend/internal/submissions"
	"github.com/toefl-prep/backend/internal/writing"
)

func main() {
	// Initialize database
	db, err := database.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	llm := generator.NewClient()

	// Initialize handlers
	authHandler := auth.NewHandler(db)
	subStore := submissions.NewStore(db)

	sentenceStore := sentence.NewStore()
	sentenceService := sentence.NewService(sentence.NewSource(llm), sentenceStore)
	sentenceHandler := sentence.NewHandler(sentenceService, sentence.NewCacheStore(db), subStore)

	promptStore := writing.NewPromptStore(llm, rand.New(rand.NewSource(time.Now().UnixNano())))
	writingHandler := writing.NewHandler(promptStore, writing.NewUsageStore(db), subStore)

	// Setup router
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	api.HandleFunc("/sentence/random", sentenceHandler.RandomSet).Methods("POST")
	api.HandleFunc("/sentence/submit", sentenceHandler.Submit).Methods("POST")

	api.HandleFunc("/prompts/random", writingHandler.RandomPrompt).Methods("POST")
	api.HandleFunc("/submit", writingHandler.Submit).Methods("POST")
	api.HandleFunc("/history", writingHandler.History).Methods("GET")

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware)
	protected.HandleFunc("/auth/me", authHandler.GetCurrentUser).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
