package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/stayhub/rental-api/config"
	"github.com/stayhub/rental-api/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "host@stayhub.dev"
	password := "secret"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var hostID string
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash, name, avatar_url, role)
		VALUES ($1, $2, $3, $4, 'pro')
		ON CONFLICT (email) DO UPDATE SET name=EXCLUDED.name
		RETURNING id
	`, email, hash, "demoHost", "").Scan(&hostID)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded host: id=%s email=%s password=%s\n", hostID, email, password)

	offers := []struct {
		title     string
		desc      string
		city      string
		premium   bool
		housing   string
		rooms     int
		guests    int
		price     int
		lat, lon  float64
	}{
		{"Canal-side loft with skylights", "Bright loft above the canal with a full kitchen and workspace.", "Amsterdam", true, "apartment", 3, 4, 12000, 52.370216, 4.895168},
		{"Quiet room near the cathedral", "Small but comfortable room a short walk from the old town.", "Cologne", false, "room", 1, 2, 4500, 50.938361, 6.959974},
		{"Riverside house with a garden", "Family house by the river, six sleeping places and a garden.", "Hamburg", false, "house", 5, 6, 22000, 53.550341, 10.000654},
	}

	for _, o := range offers {
		var id string
		err := db.QueryRow(`
			INSERT INTO offers (title, description, city, preview_path, image_paths, is_premium,
			                    housing_type, rooms, guests, price, amenities, owner_id, latitude, longitude)
			VALUES ($1, $2, $3, '', '{}', $4, $5, $6, $7, $8, '{"Towels","Fridge"}', $9, $10, $11)
			ON CONFLICT DO NOTHING
			RETURNING id
		`, o.title, o.desc, o.city, o.premium, o.housing, o.rooms, o.guests, o.price, hostID, o.lat, o.lon).Scan(&id)
		if err != nil {
			log.Fatalf("failed to seed offer %q: %v", o.title, err)
		}
		fmt.Printf("seeded offer: id=%s title=%q city=%s\n", id, o.title, o.city)
	}
}
