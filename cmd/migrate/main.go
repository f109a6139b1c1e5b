package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/lib/pq"

	"academy-backend/internal/config"
	userService "academy-backend/internal/domains/user/service"
	"academy-backend/internal/infrastructure/database"
	"academy-backend/internal/shared/authz"
)

// uniqueViolation is the Postgres SQLSTATE for a duplicate key
const uniqueViolation = "23505"

func main() {
	seed := flag.Bool("seed", false, "create the admin account from ADMIN_EMAIL / ADMIN_PASSWORD")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[Migrate] Failed to load config: %v", err)
	}

	// ========================================
	// 1. OPEN CONNECTION (database/sql + lib/pq)
	// ========================================
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatalf("[Migrate] Failed to open database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("[Migrate] Database unreachable: %v", err)
	}

	// ========================================
	// 2. APPLY MIGRATIONS
	// ========================================
	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("[Migrate] Failed: %v", err)
	}
	log.Println("[Migrate] Schema up to date")

	// ========================================
	// 3. SEED ADMIN (optional)
	// ========================================
	if *seed {
		if err := seedAdmin(ctx, db); err != nil {
			log.Fatalf("[Seed] Failed: %v", err)
		}
	}
}

func seedAdmin(ctx context.Context, db *sql.DB) error {
	email := strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL")))
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return errors.New("ADMIN_EMAIL and ADMIN_PASSWORD are required")
	}

	name := os.Getenv("ADMIN_NAME")
	if name == "" {
		name = "Administrator"
	}

	hash, err := userService.HashPassword(password, userService.BcryptCost)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO users (name, email, password_hash, role) VALUES ($1, $2, $3, $4)`,
		name, email, hash, string(authz.RoleAdmin),
	)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
		log.Printf("[Seed] Admin %s already exists", email)
		return nil
	}
	if err != nil {
		return err
	}

	log.Printf("[Seed] Admin %s created", email)
	return nil
}
