// Command migrate applies or rolls back the SQL schema migrations.
package main

import (
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"

	"medconnect/internal/config"
	"medconnect/internal/database"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func usage() error {
	return fmt.Errorf("usage: go run ./cmd/migrate <up|down> [steps]")
}

func run() error {
	flag.Parse()
	if flag.NArg() < 1 {
		return usage()
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.Open(cfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("connection pool: %w", err)
	}
	defer func() { _ = sqlDB.Close() }()

	switch strings.ToLower(strings.TrimSpace(flag.Arg(0))) {
	case "up":
		if err := database.MigrateUp(sqlDB); err != nil {
			return err
		}
		log.Println("migrations applied")
	case "down":
		steps := 1
		if flag.NArg() > 1 {
			steps, err = strconv.Atoi(flag.Arg(1))
			if err != nil {
				return fmt.Errorf("invalid steps %q: %w", flag.Arg(1), err)
			}
		}
		if err := database.MigrateDown(sqlDB, steps); err != nil {
			return err
		}
		log.Printf("rolled back %d migration(s)", steps)
	default:
		return usage()
	}
	return nil
}
