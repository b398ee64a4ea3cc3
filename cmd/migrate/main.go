// Command migrate runs schema auto-migration against the configured database
// and exits. Useful in deploy pipelines where the server should not migrate
// on boot.
package main

import (
	"log"

	"waypost/internal/config"
	"waypost/internal/database"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migration complete")
}
