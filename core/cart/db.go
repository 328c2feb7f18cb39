package cart

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Upsert inserts the item or, when the (cart, course) pair already exists,
// overwrites the prior row in place. The unique constraint serializes
// concurrent adds of the same course, so a repeat add never duplicates the
// row. The returned flag reports whether a new row was created.
func Upsert(ctx context.Context, db sqlx.ExtContext, it Item) (Item, bool, error) {
	const q = `
	INSERT INTO cart_items
		(item_id, cart_id, course_id, user_id, price, tax_fee, total, country, created_at, updated_at)
	VALUES
		(:item_id, :cart_id, :course_id, :user_id, :price, :tax_fee, :total, :country, :created_at, :updated_at)
	ON CONFLICT (cart_id, course_id) DO UPDATE SET
		user_id    = EXCLUDED.user_id,
		price      = EXCLUDED.price,
		tax_fee    = EXCLUDED.tax_fee,
		total      = EXCLUDED.total,
		country    = EXCLUDED.country,
		updated_at = EXCLUDED.updated_at
	RETURNING item_id, created_at, (xmax = 0) AS created`

	nq, args, err := sqlx.Named(q, it)
	if err != nil {
		return Item{}, false, fmt.Errorf("binding cart item: %w", err)
	}
	nq = db.Rebind(nq)

	var row struct {
		ItemID    string       `db:"item_id"`
		CreatedAt sql.NullTime `db:"created_at"`
		Created   bool         `db:"created"`
	}
	if err := sqlx.GetContext(ctx, db, &row, nq, args...); err != nil {
		return Item{}, false, fmt.Errorf("upserting cart item: %w", err)
	}

	it.ID = row.ItemID
	if row.CreatedAt.Valid {
		it.CreatedAt = row.CreatedAt.Time
	}
	return it, row.Created, nil
}

func FetchItems(ctx context.Context, db sqlx.ExtContext, cartID string) ([]Item, error) {
	const q = `
	SELECT item_id, cart_id, course_id, user_id, price, tax_fee, total, country, created_at, updated_at
	FROM cart_items WHERE cart_id = $1 ORDER BY created_at`

	items := []Item{}
	if err := sqlx.SelectContext(ctx, db, &items, q, cartID); err != nil {
		return nil, fmt.Errorf("fetching cart[%s] items: %w", cartID, err)
	}

	return items, nil
}

// DeleteItem removes one row. sql.ErrNoRows reports an absent item.
func DeleteItem(ctx context.Context, db sqlx.ExtContext, cartID string, itemID string) error {
	const q = `DELETE FROM cart_items WHERE cart_id = $1 AND item_id = $2`

	res, err := db.ExecContext(ctx, q, cartID, itemID)
	if err != nil {
		return fmt.Errorf("deleting cart item[%s]: %w", itemID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting cart item[%s]: %w", itemID, err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func Summarize(ctx context.Context, db sqlx.ExtContext, cartID string) (Summary, error) {
	const q = `
	SELECT
		COALESCE(SUM(price), 0)   AS total_price,
		COALESCE(SUM(tax_fee), 0) AS total_tax_fee,
		COALESCE(SUM(total), 0)   AS total
	FROM cart_items WHERE cart_id = $1`

	var s Summary
	if err := sqlx.GetContext(ctx, db, &s, q, cartID); err != nil {
		return Summary{}, fmt.Errorf("summarizing cart[%s]: %w", cartID, err)
	}

	return s, nil
}
