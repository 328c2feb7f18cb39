package coupon

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

func Create(ctx context.Context, db sqlx.ExtContext, c Coupon) error {
	const q = `
	INSERT INTO coupons (code, teacher_id, discount, active, created_at)
	VALUES (:code, :teacher_id, :discount, :active, :created_at)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, c); err != nil {
		return fmt.Errorf("inserting coupon: %w", err)
	}

	return nil
}

func Fetch(ctx context.Context, db sqlx.ExtContext, code string) (Coupon, error) {
	const q = `
	SELECT code, teacher_id, discount, active, created_at
	FROM coupons WHERE code = $1`

	var c Coupon
	if err := sqlx.GetContext(ctx, db, &c, q, code); err != nil {
		return Coupon{}, fmt.Errorf("fetching coupon[%s]: %w", code, err)
	}

	return c, nil
}

// FetchItemMemberships reports which items of an order already carry the
// code. The membership rows are the guard against double discounting.
func FetchItemMemberships(ctx context.Context, db sqlx.ExtContext, orderOID string, code string) (map[string]bool, error) {
	const q = `
	SELECT oic.order_item_oid
	FROM order_item_coupons oic
	JOIN order_items oi ON oi.oid = oic.order_item_oid
	WHERE oi.order_oid = $1 AND oic.code = $2`

	var oids []string
	if err := sqlx.SelectContext(ctx, db, &oids, q, orderOID, code); err != nil {
		return nil, fmt.Errorf("fetching coupon[%s] memberships on order[%s]: %w", code, orderOID, err)
	}

	applied := make(map[string]bool, len(oids))
	for _, oid := range oids {
		applied[oid] = true
	}
	return applied, nil
}

func RecordItemMembership(ctx context.Context, db sqlx.ExtContext, itemOID string, code string) error {
	const q = `INSERT INTO order_item_coupons (order_item_oid, code) VALUES ($1, $2)`

	if _, err := db.ExecContext(ctx, q, itemOID, code); err != nil {
		return fmt.Errorf("recording coupon[%s] on order item[%s]: %w", code, itemOID, err)
	}

	return nil
}

func RecordOrderMembership(ctx context.Context, db sqlx.ExtContext, orderOID string, code string) error {
	const q = `
	INSERT INTO order_coupons (order_oid, code) VALUES ($1, $2)
	ON CONFLICT DO NOTHING`

	if _, err := db.ExecContext(ctx, q, orderOID, code); err != nil {
		return fmt.Errorf("recording coupon[%s] on order[%s]: %w", code, orderOID, err)
	}

	return nil
}

func RecordUsedBy(ctx context.Context, db sqlx.ExtContext, code string, userID string) error {
	const q = `
	INSERT INTO coupon_used_by (code, user_id) VALUES ($1, $2)
	ON CONFLICT DO NOTHING`

	if _, err := db.ExecContext(ctx, q, code, userID); err != nil {
		return fmt.Errorf("recording coupon[%s] user[%s]: %w", code, userID, err)
	}

	return nil
}
