package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"distribuidora-backoffice/db"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  No .env file found, using environment variables")
	}

	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	if err := db.InitDB(); err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer db.CloseDB()

	if err := db.Migrate(command); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}
	log.Printf("✅ Migrations %s completed", command)
}
