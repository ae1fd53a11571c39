// Command main seeds the database with demo users, messages, follows and likes.
package main

import (
	"flag"
	"log"

	"warbler/internal/config"
	"warbler/internal/database"
	"warbler/internal/seed"
)

func main() {
	opts := seed.DefaultOptions()
	flag.IntVar(&opts.Users, "users", opts.Users, "number of users to create")
	flag.IntVar(&opts.MessagesPerUser, "messages", opts.MessagesPerUser, "messages per user")
	flag.IntVar(&opts.FollowsPerUser, "follows", opts.FollowsPerUser, "follows per user")
	flag.IntVar(&opts.LikesPerUser, "likes", opts.LikesPerUser, "likes per user")
	flag.IntVar(&opts.MaxDays, "max-days", opts.MaxDays, "spread message timestamps over this many days")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	if err := seed.Demo(db, opts); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Seeded %d users (password for all: %q)", opts.Users, seed.DefaultPassword)
}
