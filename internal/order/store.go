package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when no order exists for the given id.
var ErrNotFound = errors.New("order not found")

// Order is a persisted, fully priced order.
type Order struct {
	ID             uuid.UUID       `json:"id"`
	MenuItemID     int64           `json:"menuItemId"`
	ItemName       string          `json:"itemName"`
	Quantity       int32           `json:"quantity"`
	CustomerName   string          `json:"customerName"`
	PromoCodeID    *int64          `json:"promoCodeId,omitempty"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	FinalTotal     decimal.Decimal `json:"finalTotal"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// InsertParams carries the computed fields persisted for a new order.
type InsertParams struct {
	MenuItemID     int64
	Quantity       int32
	CustomerName   string
	PromoCodeID    *int64
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	FinalTotal     decimal.Decimal
}

// Repo persists orders in Postgres.
type Repo struct {
	DB *pgxpool.Pool
}

// Insert stores a new order and returns it with generated fields populated.
func (r *Repo) Insert(ctx context.Context, p InsertParams) (Order, error) {
	row := r.DB.QueryRow(ctx,
		`INSERT INTO orders (menu_item_id, quantity, customer_name, promo_code_id, subtotal, discount_amount, final_total)
		 VALUES ($1, $2, $3, $4, $5::numeric, $6::numeric, $7::numeric)
		 RETURNING id, created_at`,
		p.MenuItemID, p.Quantity, p.CustomerName, p.PromoCodeID,
		p.Subtotal.String(), p.DiscountAmount.String(), p.FinalTotal.String())

	o := Order{
		MenuItemID:     p.MenuItemID,
		Quantity:       p.Quantity,
		CustomerName:   p.CustomerName,
		PromoCodeID:    p.PromoCodeID,
		Subtotal:       p.Subtotal,
		DiscountAmount: p.DiscountAmount,
		FinalTotal:     p.FinalTotal,
	}
	if err := row.Scan(&o.ID, &o.CreatedAt); err != nil {
		return Order{}, fmt.Errorf("insert order: %w", err)
	}
	return o, nil
}

const orderColumns = `o.id, o.menu_item_id, m.name, o.quantity, o.customer_name, o.promo_code_id,
	o.subtotal::text, o.discount_amount::text, o.final_total::text, o.created_at`

// Get fetches one order joined with its menu item name.
func (r *Repo) Get(ctx context.Context, id uuid.UUID) (Order, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+orderColumns+`
		 FROM orders o JOIN menu_items m ON m.id = o.menu_item_id
		 WHERE o.id = $1`, id)
	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Order{}, ErrNotFound
		}
		return Order{}, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

// List returns orders newest first.
func (r *Repo) List(ctx context.Context, limit, offset int32) ([]Order, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+orderColumns+`
		 FROM orders o JOIN menu_items m ON m.id = o.menu_item_id
		 ORDER BY o.created_at DESC
		 LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	out := []Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the total number of persisted orders.
func (r *Repo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.DB.QueryRow(ctx, `SELECT count(*) FROM orders`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return n, nil
}

func scanOrder(row pgx.Row) (Order, error) {
	var (
		o                         Order
		subtotal, discount, total string
	)
	if err := row.Scan(&o.ID, &o.MenuItemID, &o.ItemName, &o.Quantity, &o.CustomerName, &o.PromoCodeID,
		&subtotal, &discount, &total, &o.CreatedAt); err != nil {
		return Order{}, err
	}
	var err error
	if o.Subtotal, err = decimal.NewFromString(subtotal); err != nil {
		return Order{}, fmt.Errorf("parse subtotal %q: %w", subtotal, err)
	}
	if o.DiscountAmount, err = decimal.NewFromString(discount); err != nil {
		return Order{}, fmt.Errorf("parse discount %q: %w", discount, err)
	}
	if o.FinalTotal, err = decimal.NewFromString(total); err != nil {
		return Order{}, fmt.Errorf("parse total %q: %w", total, err)
	}
	return o, nil
}
