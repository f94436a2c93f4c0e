package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/orgball2608/piazza/internal/db"
	"github.com/orgball2608/piazza/pkg/config"
	"github.com/pressly/goose/v3"
	flag "github.com/spf13/pflag"
)

func main() {
	dir := flag.String("dir", "internal/migrations", "directory new migrations are created in")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: migrate [--dir path] [up|down|status|reset|version|create <name>]")
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		flag.Usage()
		os.Exit(2)
	}

	command := args[0]

	// The create command only writes a file
	if command == "create" {
		if len(args) < 2 {
			log.Fatal("Usage: migrate create <name>")
		}
		if err := goose.Create(nil, *dir, args[1], "go"); err != nil {
			log.Fatalf("Failed to create migration: %v", err)
		}
		return
	}

	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	conn, err := db.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer conn.Close()

	ctx := context.Background()

	// Migrations are compiled in, so the directory argument is only a placeholder.
	switch command {
	case "up":
		if err := goose.UpContext(ctx, conn, "."); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		fmt.Println("Migrations applied successfully")
	case "down":
		if err := goose.DownContext(ctx, conn, "."); err != nil {
			log.Fatalf("Failed to rollback migration: %v", err)
		}
		fmt.Println("Migration rollback successful")
	case "status":
		if err := goose.StatusContext(ctx, conn, "."); err != nil {
			log.Fatalf("Failed to get migration status: %v", err)
		}
	case "version":
		if err := goose.VersionContext(ctx, conn, "."); err != nil {
			log.Fatalf("Failed to get migration version: %v", err)
		}
	case "reset":
		if err := goose.ResetContext(ctx, conn, "."); err != nil {
			log.Fatalf("Failed to reset migrations: %v", err)
		}
		fmt.Println("All migrations have been rolled back")
	default:
		log.Fatalf("Unknown command: %s", command)
	}
}
