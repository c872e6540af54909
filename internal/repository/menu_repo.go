package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusbites/campusbites-api/internal/model"
)

type MenuRepository struct {
	pool *pgxpool.Pool
}

func NewMenuRepository(pool *pgxpool.Pool) *MenuRepository {
	return &MenuRepository{pool: pool}
}

func (r *MenuRepository) List(ctx context.Context, category string, limit, offset int) ([]model.MenuItem, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, description, category, price, image_url, available, created_at
		FROM menu_items
		WHERE available AND ($1 = '' OR category = $1)
		ORDER BY category, name
		LIMIT $2 OFFSET $3`, category, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.MenuItem
	for rows.Next() {
		var m model.MenuItem
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.Category, &m.Price, &m.ImageURL, &m.Available, &m.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

func (r *MenuRepository) Count(ctx context.Context, category string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM menu_items WHERE available AND ($1 = '' OR category = $1)`,
		category).Scan(&count)
	return count, err
}

func (r *MenuRepository) FindByID(ctx context.Context, id string) (*model.MenuItem, error) {
	m := &model.MenuItem{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, description, category, price, image_url, available, created_at
		FROM menu_items WHERE id = $1`, id).
		Scan(&m.ID, &m.Name, &m.Description, &m.Category, &m.Price, &m.ImageURL, &m.Available, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}
