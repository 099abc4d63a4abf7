// Command seed fills the database with demo users and watchlists.
package main

import (
	"flag"
	"log"

	"cinelist/internal/config"
	"cinelist/internal/database"
	"cinelist/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 5, "Number of users to create")
	listsPerUser := flag.Int("lists", 2, "Watchlists per user")
	itemsPerList := flag.Int("items", 6, "Items per watchlist")
	shouldClean := flag.Bool("clean", false, "Delete existing data before seeding")
	flag.Parse()

	log.Printf("Target: %d users, %d lists each, %d items each, clean=%v", *numUsers, *listsPerUser, *itemsPerList, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db)
	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	users, err := s.SeedUsers(*numUsers)
	if err != nil {
		log.Fatalf("User seeding failed: %v", err)
	}
	if err := s.SeedWatchlists(users, *listsPerUser, *itemsPerList); err != nil {
		log.Fatalf("Watchlist seeding failed: %v", err)
	}

	log.Printf("Seeded %d users. All demo users have the password: %s", len(users), seed.DefaultPassword)
}
