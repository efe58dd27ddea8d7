package menu

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when no menu item exists for the given id.
var ErrNotFound = errors.New("menu item not found")

// Item is a purchasable menu entry.
type Item struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

// Repo persists menu items in Postgres.
type Repo struct {
	DB *pgxpool.Pool
}

// ListItems returns the full menu ordered by id.
func (r *Repo) ListItems(ctx context.Context) ([]Item, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, description, price::text FROM menu_items ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	defer rows.Close()

	out := []Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan menu item: %w", err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetItem fetches one menu item by id.
func (r *Repo) GetItem(ctx context.Context, id int64) (Item, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, name, description, price::text FROM menu_items WHERE id = $1`, id)
	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Item{}, ErrNotFound
		}
		return Item{}, fmt.Errorf("get menu item: %w", err)
	}
	return item, nil
}

func scanItem(row pgx.Row) (Item, error) {
	var (
		item  Item
		price string
	)
	if err := row.Scan(&item.ID, &item.Name, &item.Description, &price); err != nil {
		return Item{}, err
	}
	d, err := decimal.NewFromString(price)
	if err != nil {
		return Item{}, fmt.Errorf("parse price %q: %w", price, err)
	}
	item.Price = d
	return item, nil
}
