package main

import (
	"fmt"
	"log"
	"net/http"

	"quizgen/config"
	"quizgen/db"
	"quizgen/handlers"
	"quizgen/services"
	"quizgen/services/extract"
	"quizgen/services/generator"

	"github.com/gorilla/mux"
)

func main() {
	cfg := config.Load()

	if cfg.DatabaseURL == "" {
		log.Fatal("DB_URL environment variable is required")
	}

	if cfg.OpenRouterAPIKey == "" && cfg.AnthropicAPIKey == "" {
		log.Fatal("OPENROUTER_API_KEY or ANTHROPIC_API_KEY environment variable is required")
	}

	quizRepo, err := db.NewPostgresQuizRepository(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize quiz database: %v", err)
	}
	defer quizRepo.Close()

	var questionGenerator services.QuestionGenerator
	if cfg.AnthropicAPIKey != "" {
		questionGenerator = generator.NewAnthropicService(cfg.AnthropicAPIKey)
	} else {
		questionGenerator, err = generator.NewOpenRouterService(cfg.OpenRouterAPIKey, cfg.OpenRouterBaseURL, cfg.LLMModel)
		if err != nil {
			log.Fatalf("Failed to initialize question generator: %v", err)
		}
	}

	extractService := extract.NewService()

	quizService := services.NewQuizService(quizRepo, questionGenerator, extractService)
	quizStoreService := services.NewQuizStoreService(quizRepo)

	quizHandler := handlers.NewQuizHandler(quizService, quizStoreService, cfg.UploadDir, cfg.UploadMaxBytes)

	router := mux.NewRouter()

	router.Use(corsMiddleware)
	router.Use(jsonMiddleware)

	router.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("OPTIONS")

	quizHandler.RegisterRoutes(router)

	router.HandleFunc("/health", healthCheckHandler).Methods("GET")

	addr := ":" + cfg.Port
	fmt.Printf("Server starting on port %s\n", cfg.Port)

	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Expose-Headers", "*")
		w.Header().Set("Access-Control-Allow-Credentials", "true")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func jsonMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "healthy"}`))
}
