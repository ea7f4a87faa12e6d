// Command main fills the database with demo doctors and feed activity.
package main

import (
	"context"
	"flag"
	"log"

	"medconnect/internal/config"
	"medconnect/internal/database"
	"medconnect/internal/seed"
)

func main() {
	doctors := flag.Int("doctors", 20, "Number of doctors to create")
	posts := flag.Int("posts", 100, "Number of posts to create")
	likes := flag.Int("likes", 8, "Maximum likes per post")
	comments := flag.Int("comments", 4, "Maximum comments per post")
	days := flag.Int("days", 30, "Spread post timestamps over this many days")
	randSeed := flag.Int64("seed", 0, "Random seed; 0 picks one from the clock")
	clean := flag.Bool("clean", true, "Clean feed tables before seeding")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.IsProduction() {
		log.Fatal("Refusing to seed a production database")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db, seed.Options{
		Doctors:            *doctors,
		Posts:              *posts,
		MaxLikesPerPost:    *likes,
		MaxCommentsPerPost: *comments,
		MaxDays:            *days,
		RandSeed:           *randSeed,
	})

	ctx := context.Background()
	if *clean {
		if err := s.ClearAll(ctx); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	res, err := s.Run(ctx)
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Seeded %d doctors, %d posts, %d likes, %d comments", res.Doctors, res.Posts, res.Likes, res.Comments)
	log.Printf("All seeded doctors have the password: %s", seed.DefaultPassword)
}
