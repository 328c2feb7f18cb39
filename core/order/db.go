package order

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

func Create(ctx context.Context, db sqlx.ExtContext, ord Order) error {
	const q = `
	INSERT INTO orders
		(oid, user_id, full_name, email, country, sub_total, tax_fee, total,
		 initial_total, saved, payment_status, stripe_session_id, paypal_order_id,
		 created_at, updated_at)
	VALUES
		(:oid, :user_id, :full_name, :email, :country, :sub_total, :tax_fee, :total,
		 :initial_total, :saved, :payment_status, :stripe_session_id, :paypal_order_id,
		 :created_at, :updated_at)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, ord); err != nil {
		return fmt.Errorf("inserting order: %w", err)
	}

	return nil
}

func CreateItem(ctx context.Context, db sqlx.ExtContext, it Item) error {
	const q = `
	INSERT INTO order_items
		(oid, order_oid, course_id, teacher_id, price, tax_fee, total,
		 initial_total, saved, applied_coupon, created_at)
	VALUES
		(:oid, :order_oid, :course_id, :teacher_id, :price, :tax_fee, :total,
		 :initial_total, :saved, :applied_coupon, :created_at)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, it); err != nil {
		return fmt.Errorf("inserting order item: %w", err)
	}

	return nil
}

const orderColumns = `
	oid, user_id, full_name, email, country, sub_total, tax_fee, total,
	initial_total, saved, payment_status, stripe_session_id, paypal_order_id,
	created_at, updated_at`

func Fetch(ctx context.Context, db sqlx.ExtContext, oid string) (Order, error) {
	q := `SELECT` + orderColumns + ` FROM orders WHERE oid = $1`

	var ord Order
	if err := sqlx.GetContext(ctx, db, &ord, q, oid); err != nil {
		return Order{}, fmt.Errorf("fetching order[%s]: %w", oid, err)
	}

	return ord, nil
}

// FetchForUpdate locks the order row for the rest of the transaction so
// concurrent coupon applications cannot both read the same totals.
func FetchForUpdate(ctx context.Context, tx sqlx.ExtContext, oid string) (Order, error) {
	q := `SELECT` + orderColumns + ` FROM orders WHERE oid = $1 FOR UPDATE`

	var ord Order
	if err := sqlx.GetContext(ctx, tx, &ord, q, oid); err != nil {
		return Order{}, fmt.Errorf("fetching order[%s] for update: %w", oid, err)
	}

	return ord, nil
}

func FetchByStripeSession(ctx context.Context, db sqlx.ExtContext, sessionID string) (Order, error) {
	q := `SELECT` + orderColumns + ` FROM orders WHERE stripe_session_id = $1`

	var ord Order
	if err := sqlx.GetContext(ctx, db, &ord, q, sessionID); err != nil {
		return Order{}, fmt.Errorf("fetching order bound to stripe session[%s]: %w", sessionID, err)
	}

	return ord, nil
}

func FetchByPaypalOrder(ctx context.Context, db sqlx.ExtContext, paypalID string) (Order, error) {
	q := `SELECT` + orderColumns + ` FROM orders WHERE paypal_order_id = $1`

	var ord Order
	if err := sqlx.GetContext(ctx, db, &ord, q, paypalID); err != nil {
		return Order{}, fmt.Errorf("fetching order bound to paypal order[%s]: %w", paypalID, err)
	}

	return ord, nil
}

func FetchItems(ctx context.Context, db sqlx.ExtContext, orderOID string) ([]Item, error) {
	const q = `
	SELECT oid, order_oid, course_id, teacher_id, price, tax_fee, total,
	       initial_total, saved, applied_coupon, created_at
	FROM order_items WHERE order_oid = $1 ORDER BY created_at, oid`

	items := []Item{}
	if err := sqlx.SelectContext(ctx, db, &items, q, orderOID); err != nil {
		return nil, fmt.Errorf("fetching order[%s] items: %w", orderOID, err)
	}

	return items, nil
}

// UpdateTotals writes the aggregated totals back onto the order after the
// items are materialized.
func UpdateTotals(ctx context.Context, db sqlx.ExtContext, ord Order) error {
	const q = `
	UPDATE orders SET
		sub_total     = :sub_total,
		tax_fee       = :tax_fee,
		total         = :total,
		initial_total = :initial_total,
		saved         = :saved,
		updated_at    = :updated_at
	WHERE oid = :oid`

	if _, err := sqlx.NamedExecContext(ctx, db, q, ord); err != nil {
		return fmt.Errorf("updating order[%s] totals: %w", ord.OID, err)
	}

	return nil
}

// UpdateStatus transitions the payment status. Paid is terminal, so a paid
// order never transitions again.
func UpdateStatus(ctx context.Context, db sqlx.ExtContext, oid string, status Status) error {
	const q = `
	UPDATE orders SET payment_status = $2, updated_at = $3
	WHERE oid = $1 AND payment_status <> 'paid'`

	if _, err := db.ExecContext(ctx, q, oid, status, time.Now().UTC()); err != nil {
		return fmt.Errorf("updating order[%s] status: %w", oid, err)
	}

	return nil
}

func SetStripeSession(ctx context.Context, db sqlx.ExtContext, oid string, sessionID string) error {
	const q = `UPDATE orders SET stripe_session_id = $2, updated_at = $3 WHERE oid = $1`

	if _, err := db.ExecContext(ctx, q, oid, sessionID, time.Now().UTC()); err != nil {
		return fmt.Errorf("recording stripe session on order[%s]: %w", oid, err)
	}

	return nil
}

func SetPaypalOrder(ctx context.Context, db sqlx.ExtContext, oid string, paypalID string) error {
	const q = `UPDATE orders SET paypal_order_id = $2, updated_at = $3 WHERE oid = $1`

	if _, err := db.ExecContext(ctx, q, oid, paypalID, time.Now().UTC()); err != nil {
		return fmt.Errorf("recording paypal order on order[%s]: %w", oid, err)
	}

	return nil
}

// ApplyItemDiscount mutates the only mutable fields of an order item: the
// coupon adjustments.
func ApplyItemDiscount(ctx context.Context, db sqlx.ExtContext, itemOID string, discount decimal.Decimal) error {
	const q = `
	UPDATE order_items SET
		total          = total - $2,
		price          = price - $2,
		saved          = saved + $2,
		applied_coupon = TRUE
	WHERE oid = $1`

	if _, err := db.ExecContext(ctx, q, itemOID, discount); err != nil {
		return fmt.Errorf("discounting order item[%s]: %w", itemOID, err)
	}

	return nil
}

// ApplyOrderDiscount mirrors an item discount on the order totals.
func ApplyOrderDiscount(ctx context.Context, db sqlx.ExtContext, oid string, discount decimal.Decimal) error {
	const q = `
	UPDATE orders SET
		total      = total - $2,
		sub_total  = sub_total - $2,
		saved      = saved + $2,
		updated_at = $3
	WHERE oid = $1`

	if _, err := db.ExecContext(ctx, q, oid, discount, time.Now().UTC()); err != nil {
		return fmt.Errorf("discounting order[%s]: %w", oid, err)
	}

	return nil
}
