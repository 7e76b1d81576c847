package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/balaio-dev/balaio/db"
	"github.com/balaio-dev/balaio/internal/auth"
	"github.com/balaio-dev/balaio/internal/router"
)

func main() {
	var err error

	err = godotenv.Load()

	if err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	if err = auth.InitJWTSecret(); err != nil {
		log.Fatalf("Failed to initialize JWT secret: %v", err)
	}

	dsn := os.Getenv("DATABASE_URL")

	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	if err = db.ConnectDatabase(dsn); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err = db.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	r := router.NewRouter()

	var port string

	if port = os.Getenv("PORT"); port == "" {
		port = "3000"
		log.Println("PORT not set, defaulting to 3000")
	}

	if err = r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
