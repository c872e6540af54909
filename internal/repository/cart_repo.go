package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusbites/campusbites-api/internal/model"
)

type CartRepository struct {
	pool *pgxpool.Pool
}

func NewCartRepository(pool *pgxpool.Pool) *CartRepository {
	return &CartRepository{pool: pool}
}

// Upsert adds the menu item to the cart or bumps its quantity when the
// line already exists.
func (r *CartRepository) Upsert(ctx context.Context, userID, menuItemID string, quantity int) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO cart_items (user_id, menu_item_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, menu_item_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity`,
		userID, menuItemID, quantity)
	return err
}

func (r *CartRepository) SetQuantity(ctx context.Context, userID, itemID string, quantity int) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE cart_items SET quantity = $3 WHERE user_id = $1 AND id = $2`,
		userID, itemID, quantity)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *CartRepository) Delete(ctx context.Context, userID, itemID string) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM cart_items WHERE user_id = $1 AND id = $2`, userID, itemID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *CartRepository) Clear(ctx context.Context, userID string) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM cart_items WHERE user_id = $1`, userID)
	return err
}

// Lines returns the cart joined with menu data, priced at current menu
// prices.
func (r *CartRepository) Lines(ctx context.Context, userID string) ([]model.CartLine, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT c.id, c.menu_item_id, m.name, m.price, c.quantity, m.price * c.quantity
		FROM cart_items c
		JOIN menu_items m ON m.id = c.menu_item_id
		WHERE c.user_id = $1
		ORDER BY c.created_at`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []model.CartLine
	for rows.Next() {
		var l model.CartLine
		if err := rows.Scan(&l.ItemID, &l.MenuItemID, &l.Name, &l.Price, &l.Quantity, &l.LineTotal); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}
