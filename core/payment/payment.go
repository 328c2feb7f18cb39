// Package payment hands finalized orders to the external gateways and
// fulfills them when the gateway confirms payment.
package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/irsalhamdi/course-market/core/enrollment"
	"github.com/irsalhamdi/course-market/core/order"
	"github.com/irsalhamdi/course-market/database"
	"github.com/irsalhamdi/course-market/validate"
	"github.com/jmoiron/sqlx"
)

// fulfill marks the order paid and enrolls the buyer in every purchased
// course, all in one transaction. Anonymous orders are only marked paid;
// there is no student account to enroll.
func fulfill(ctx context.Context, db *sqlx.DB, ord order.Order) error {
	items, err := order.FetchItems(ctx, db, ord.OID)
	if err != nil {
		return err
	}

	err = database.Transaction(db, func(tx sqlx.ExtContext) error {
		if err := order.UpdateStatus(ctx, tx, ord.OID, order.Paid); err != nil {
			return err
		}

		if ord.UserID == "" {
			return nil
		}

		now := time.Now().UTC()
		for _, it := range items {
			e := enrollment.Enrollment{
				ID:           validate.GenerateID(),
				UserID:       ord.UserID,
				CourseID:     it.CourseID,
				TeacherID:    it.TeacherID,
				OrderItemOID: it.OID,
				CreatedAt:    now,
			}

			if err := enrollment.Create(ctx, tx, e); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("fulfilling order[%s]: %w", ord.OID, err)
	}

	return nil
}
