package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	_ "github.com/jackc/pgx/v5/stdlib"

	"airfoil-lab-service/internal/adapters/repositories"
	"airfoil-lab-service/internal/config"
	"airfoil-lab-service/internal/platform/db"
)

func main() {
	cmd := flag.String("cmd", "init", "one of: init, seed, reset")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	sqlDB, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer sqlDB.Close()

	ctx := context.Background()
	seedPath := config.Get("SEED_PATH", "data/seeds/challenges.json")

	switch *cmd {
	case "init":
		initSchema(ctx, sqlDB)
	case "seed":
		initSchema(ctx, sqlDB)
		seedChallenges(ctx, sqlDB, seedPath)
	case "reset":
		log.Println("Dropping schema...")
		if err := repositories.DropSchema(ctx, sqlDB); err != nil {
			log.Fatalf("drop failed: %v", err)
		}
		initSchema(ctx, sqlDB)
		seedChallenges(ctx, sqlDB, seedPath)
	default:
		log.Fatalf("unknown -cmd %q (want init, seed, or reset)", *cmd)
	}
}

func initSchema(ctx context.Context, sqlDB *sql.DB) {
	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(ctx, sqlDB); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")
}

func seedChallenges(ctx context.Context, sqlDB *sql.DB, seedPath string) {
	log.Println("Seeding challenges...")
	n, err := repositories.SeedChallengesFromJSON(ctx, sqlDB, seedPath)
	if err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Printf("Seeding complete: %d challenges.", n)
}
