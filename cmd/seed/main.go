package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/oksasatya/go-user-accounts/config"
	"github.com/oksasatya/go-user-accounts/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "demo@example.com"
	password := "Dem0!pass"
	username := "Demo Account Holder"
	birthDate := time.Date(1990, time.June, 15, 0, 0, 0, 0, time.UTC)

	hasher := helpers.NewBcryptHasher()
	hash, err := hasher.Hash(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	id := helpers.NewULIDGenerator().NewID()
	var got string
	err = db.QueryRow(`
		INSERT INTO users (id, username, email, hashed_password, birth_date, color_theme, language, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, 'light', 'en_us', TRUE, now())
		ON CONFLICT (email) DO UPDATE SET username = EXCLUDED.username
		RETURNING id
	`, id, username, email, hash, birthDate).Scan(&got)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", got, email, password)
}
