package coupon

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/irsalhamdi/course-market/core/order"
	"github.com/irsalhamdi/course-market/database"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// Outcome reports what applying a code to an order did.
type Outcome int

const (
	// Applied means at least one item was discounted.
	Applied Outcome = iota
	// AlreadyApplied means every eligible item already carried the code;
	// nothing was mutated.
	AlreadyApplied
	// NotApplicable means no item on the order belongs to the coupon's
	// teacher.
	NotApplicable
)

// ErrNotFound reports that the order or the coupon does not resolve to an
// existing row. Inactive codes are treated the same as unknown ones.
var ErrNotFound = errors.New("order or coupon not found")

var hundred = decimal.NewFromInt(100)

// discount is one planned item adjustment.
type discount struct {
	ItemOID string
	Amount  decimal.Decimal
}

// plan decides, without touching the database, which items the code
// discounts. Items of other teachers are never touched; items already
// carrying the code are skipped so a second application is a no-op.
func plan(c Coupon, items []order.Item, applied map[string]bool) ([]discount, Outcome) {
	var ds []discount
	eligible := 0

	for _, it := range items {
		if it.TeacherID != c.TeacherID {
			continue
		}
		eligible++

		if applied[it.OID] {
			continue
		}

		ds = append(ds, discount{
			ItemOID: it.OID,
			Amount:  it.Total.Mul(c.Discount).Div(hundred),
		})
	}

	switch {
	case eligible == 0:
		return nil, NotApplicable
	case len(ds) == 0:
		return nil, AlreadyApplied
	}
	return ds, Applied
}

// Apply discounts every eligible item of the order by the coupon's
// percentage, mirroring the sum on the order totals. The whole operation
// runs inside one transaction with the order row locked, so two concurrent
// applications of the same code cannot both discount.
func Apply(ctx context.Context, db *sqlx.DB, orderOID string, code string) (Outcome, error) {
	var outcome Outcome

	err := database.Transaction(db, func(tx sqlx.ExtContext) error {
		ord, err := order.FetchForUpdate(ctx, tx, orderOID)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		c, err := Fetch(ctx, tx, code)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if !c.Active {
			return ErrNotFound
		}

		items, err := order.FetchItems(ctx, tx, ord.OID)
		if err != nil {
			return err
		}

		applied, err := FetchItemMemberships(ctx, tx, ord.OID, c.Code)
		if err != nil {
			return err
		}

		var ds []discount
		ds, outcome = plan(c, items, applied)
		if outcome != Applied {
			return nil
		}

		total := decimal.Zero
		for _, d := range ds {
			if err := order.ApplyItemDiscount(ctx, tx, d.ItemOID, d.Amount); err != nil {
				return err
			}
			if err := RecordItemMembership(ctx, tx, d.ItemOID, c.Code); err != nil {
				return err
			}
			total = total.Add(d.Amount)
		}

		if err := order.ApplyOrderDiscount(ctx, tx, ord.OID, total); err != nil {
			return err
		}
		if err := RecordOrderMembership(ctx, tx, ord.OID, c.Code); err != nil {
			return err
		}

		if ord.UserID != "" {
			if err := RecordUsedBy(ctx, tx, c.Code, ord.UserID); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("applying coupon[%s] to order[%s]: %w", code, orderOID, err)
	}

	return outcome, nil
}
