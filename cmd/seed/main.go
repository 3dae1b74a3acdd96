package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/dforero/ecobarrio-api/config"
	"github.com/dforero/ecobarrio-api/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	dsn := cfg.PostgresDSN()
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "juliana.abeba@ecobarrio.dev"
	password := "password123"
	username := "julianaabeba"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (username, email, password_hash, neighborhood, phone, address, role_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (email) DO UPDATE SET username = EXCLUDED.username
		RETURNING id
	`, username, email, hash, "Centro", "3001234567", "Calle 10 # 5-23", 2).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s username=%s password=%s\n", id, email, username, password)

	// Sample collection schedules so lookups return data out of the box
	routines := []struct {
		neighborhood, startHour, endHour, weekdays string
	}{
		{"Centro", "06:00", "08:00", "monday,wednesday,friday"},
		{"La Floresta", "08:00", "10:00", "tuesday,thursday"},
		{"San Javier", "14:00", "16:00", "monday,thursday,saturday"},
	}
	for _, rt := range routines {
		if _, err := db.Exec(`
			INSERT INTO collection_routines (neighborhood, start_hour, end_hour, weekdays)
			SELECT $1, $2, $3, $4
			WHERE NOT EXISTS (
				SELECT 1 FROM collection_routines WHERE neighborhood = $1 AND start_hour = $2
			)
		`, rt.neighborhood, rt.startHour, rt.endHour, rt.weekdays); err != nil {
			log.Fatalf("failed to seed routine for %s: %v", rt.neighborhood, err)
		}
	}
	fmt.Println("seeded collection routines")
}
