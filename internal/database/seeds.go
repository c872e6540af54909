package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

type menuSeed struct {
	Name        string
	Description string
	Category    string
	Price       float64
	ImageURL    string
}

var menuItems = []menuSeed{
	{"Masala Dosa", "Crispy rice crepe with spiced potato filling", "south-indian", 60, "/img/masala-dosa.jpg"},
	{"Idli Sambar", "Steamed rice cakes, two pieces, with sambar", "south-indian", 40, "/img/idli.jpg"},
	{"Filter Coffee", "Strong South Indian filter coffee", "beverages", 25, "/img/filter-coffee.jpg"},
	{"Veg Thali", "Rice, two curries, dal, roti, curd and pickle", "meals", 90, "/img/veg-thali.jpg"},
	{"Chicken Biryani", "Hyderabadi style dum biryani with raita", "meals", 140, "/img/biryani.jpg"},
	{"Paneer Butter Masala", "Cottage cheese in tomato butter gravy", "north-indian", 110, "/img/paneer.jpg"},
	{"Butter Naan", "Tandoor-baked leavened flatbread", "north-indian", 30, "/img/naan.jpg"},
	{"Veg Fried Rice", "Wok-tossed rice with vegetables", "chinese", 80, "/img/fried-rice.jpg"},
	{"Gobi Manchurian", "Crispy cauliflower in Indo-Chinese sauce", "chinese", 85, "/img/gobi.jpg"},
	{"Samosa", "Fried pastry with spiced potato, two pieces", "snacks", 20, "/img/samosa.jpg"},
	{"Vada Pav", "Mumbai style potato fritter bun", "snacks", 25, "/img/vada-pav.jpg"},
	{"Masala Chai", "Spiced milk tea", "beverages", 15, "/img/chai.jpg"},
	{"Fresh Lime Soda", "Sweet or salted lime soda", "beverages", 30, "/img/lime-soda.jpg"},
	{"Gulab Jamun", "Fried milk dumplings in sugar syrup, two pieces", "desserts", 35, "/img/gulab-jamun.jpg"},
	{"Ice Cream Cup", "Vanilla, chocolate or strawberry", "desserts", 40, "/img/ice-cream.jpg"},
}

// SeedData loads the menu catalog. Idempotent: skips when menu_items
// already has rows.
func SeedData(ctx context.Context, pool *pgxpool.Pool) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM menu_items").Scan(&count); err != nil {
		return fmt.Errorf("check existing data: %w", err)
	}
	if count > 0 {
		log.Info().Msg("seed data already exists, skipping")
		return nil
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, item := range menuItems {
		batch.Queue(
			`INSERT INTO menu_items (name, description, category, price, image_url, available)
			VALUES ($1, $2, $3, $4, $5, true)`,
			item.Name, item.Description, item.Category, item.Price, item.ImageURL,
		)
	}

	br := tx.SendBatch(ctx, batch)
	for range menuItems {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("insert menu item: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("close batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}

	log.Info().Int("menu_items", len(menuItems)).Msg("seed data loaded")
	return nil
}
