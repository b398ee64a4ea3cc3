// Command seed populates the database with demo users, geo-clustered posts,
// and interactions for local development.
package main

import (
	"flag"
	"log"

	"waypost/internal/config"
	"waypost/internal/database"
	"waypost/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 20, "number of demo users to create")
	postsPerUser := flag.Int("posts", 8, "posts per user")
	clean := flag.Bool("clean", false, "delete existing data before seeding")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Run(db, seed.Options{
		NumUsers:     *numUsers,
		PostsPerUser: *postsPerUser,
		ShouldClean:  *clean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seeding complete")
}
