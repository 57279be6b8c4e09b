package main

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"distribuidora-backoffice/app"
)

func main() {
	// Load environment variables from .env file (optional in production)
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  No .env file found, using environment variables")
	}

	if err := app.Initialize(); err != nil {
		log.Fatalf("❌ Failed to initialize application: %v", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("🚀 Server starting on port %s", port)
	if err := http.ListenAndServe(":"+port, nil); err != nil {
		log.Fatalf("❌ Server failed: %v", err)
	}
}
