package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusbites/campusbites-api/internal/model"
)

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Insert writes the order header and its items in one transaction.
func (r *OrderRepository) Insert(ctx context.Context, order *model.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin order transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO orders (token, user_id, status, subtotal, tax, total, customer_name, customer_email, payment_method, payment_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at`,
		order.Token, order.UserID, order.Status, order.Subtotal, order.Tax, order.Total,
		order.CustomerName, order.CustomerEmail, order.PaymentMethod, order.PaymentID,
	).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	batch := &pgx.Batch{}
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
		batch.Queue(
			`INSERT INTO order_items (order_id, name, quantity, price)
			VALUES ($1, $2, $3, $4)
			RETURNING id`,
			order.ID, order.Items[i].Name, order.Items[i].Quantity, order.Items[i].Price,
		)
	}

	br := tx.SendBatch(ctx, batch)
	for i := range order.Items {
		if err := br.QueryRow().Scan(&order.Items[i].ID); err != nil {
			br.Close()
			return fmt.Errorf("insert order item %d: %w", i, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("close batch: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *OrderRepository) UpdatePaymentOutcome(ctx context.Context, orderID, status, paymentID string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE orders SET status = $2, payment_id = $3 WHERE id = $1`,
		orderID, status, paymentID)
	return err
}

func (r *OrderRepository) FindByID(ctx context.Context, userID, orderID string) (*model.Order, error) {
	o := &model.Order{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, token, user_id, status, subtotal, tax, total, customer_name, customer_email, payment_method, payment_id, created_at
		FROM orders WHERE id = $1 AND user_id = $2`, orderID, userID).
		Scan(&o.ID, &o.Token, &o.UserID, &o.Status, &o.Subtotal, &o.Tax, &o.Total,
			&o.CustomerName, &o.CustomerEmail, &o.PaymentMethod, &o.PaymentID, &o.CreatedAt)
	if err != nil {
		return nil, err
	}

	items, err := r.itemsFor(ctx, o.ID)
	if err != nil {
		return nil, fmt.Errorf("load order items: %w", err)
	}
	o.Items = items
	return o, nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]model.Order, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, token, user_id, status, subtotal, tax, total, customer_name, customer_email, payment_method, payment_id, created_at
		FROM orders WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.Token, &o.UserID, &o.Status, &o.Subtotal, &o.Tax, &o.Total,
			&o.CustomerName, &o.CustomerEmail, &o.PaymentMethod, &o.PaymentID, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *OrderRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM orders WHERE user_id = $1`, userID).Scan(&count)
	return count, err
}

func (r *OrderRepository) itemsFor(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, order_id, name, quantity, price
		FROM order_items WHERE order_id = $1
		ORDER BY name`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.OrderItem
	for rows.Next() {
		var it model.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.Name, &it.Quantity, &it.Price); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
