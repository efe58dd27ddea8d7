package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping DB: %v", err)
	}

	seedMenu(db)
	seedPromoCodes(db)

	log.Println("Seeding completed successfully!")
}

func seedMenu(db *sql.DB) {
	pizzas := []struct {
		Name        string
		Description string
		Price       string
	}{
		{"Margherita", "Tomato sauce, mozzarella and fresh basil", "14.99"},
		{"Pepperoni", "Tomato sauce, mozzarella and pepperoni", "1.99"},
		{"Hawaiian", "Tomato sauce, mozzarella, ham and pineapple", "99.99"},
		{"Vegetarian", "Tomato sauce, mozzarella and grilled vegetables", "12.99"},
		{"Supreme", "Pepperoni, sausage, peppers, onions and olives", "14.99"},
		{"BBQ Chicken", "BBQ sauce, grilled chicken and red onion", "13.99"},
		{"Meat Lovers", "Pepperoni, sausage, bacon and ground beef", "15.99"},
		{"Buffalo", "Buffalo sauce, chicken and blue cheese", "16.99"},
	}

	fmt.Println("Seeding Menu Items...")
	for _, p := range pizzas {
		_, err := db.Exec(`
			INSERT INTO menu_items (name, description, price)
			SELECT $1, $2, $3::numeric
			WHERE NOT EXISTS (SELECT 1 FROM menu_items WHERE name = $1);
		`, p.Name, p.Description, p.Price)
		if err != nil {
			log.Printf("Failed to seed menu item %s: %v", p.Name, err)
		}
	}
}

func seedPromoCodes(db *sql.DB) {
	promos := []struct {
		Code            string
		DiscountPercent string
		UsageLimit      int
	}{
		{"WELCOME10", "10", -1},
		{"MIDWEEK15", "15", 200},
		{"FAMILY20", "20", 150},
	}

	fmt.Println("Seeding Promo Codes...")
	for _, p := range promos {
		_, err := db.Exec(`
			INSERT INTO promo_codes (code, discount_percent, valid_from, valid_until, usage_limit)
			SELECT $1, $2::numeric, now() - interval '1 day', now() + interval '90 days', $3
			WHERE NOT EXISTS (SELECT 1 FROM promo_codes WHERE upper(code) = upper($1));
		`, p.Code, p.DiscountPercent, p.UsageLimit)
		if err != nil {
			log.Printf("Failed to seed promo code %s: %v", p.Code, err)
		}
	}
}
