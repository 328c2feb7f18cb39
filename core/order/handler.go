package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/irsalhamdi/course-market/api/web"
	"github.com/irsalhamdi/course-market/api/weberr"
	"github.com/irsalhamdi/course-market/core/cart"
	"github.com/irsalhamdi/course-market/core/course"
	"github.com/irsalhamdi/course-market/database"
	"github.com/irsalhamdi/course-market/validate"
	"github.com/jmoiron/sqlx"
)

// HandleCreate materializes a cart into a durable order: one immutable item
// per cart line, totals accumulated across them. Everything happens in one
// transaction so a failure partway leaves no orphan order behind.
//
// Cart rows are intentionally retained afterwards; the storefront clears its
// cart id on successful payment.
func HandleCreate(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var on OrderNew
		if err := web.Decode(w, r, &on); err != nil {
			return weberr.BadRequest(err)
		}

		if err := validate.Check(on); err != nil {
			return weberr.BadRequest(err)
		}

		items, err := cart.FetchItems(ctx, db, on.CartID)
		if err != nil {
			return fmt.Errorf("fetching cart[%s] items: %w", on.CartID, err)
		}

		if len(items) == 0 {
			err := errors.New("No cart items found.")
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		oid := validate.GenerateID()

		err = database.Transaction(db, func(tx sqlx.ExtContext) error {
			now := time.Now().UTC()
			ord := Order{
				OID:           oid,
				UserID:        on.UserID,
				FullName:      on.FullName,
				Email:         on.Email,
				Country:       on.Country,
				PaymentStatus: Pending,
				CreatedAt:     now,
				UpdatedAt:     now,
			}

			if err := Create(ctx, tx, ord); err != nil {
				return err
			}

			for _, ci := range items {
				c, err := course.Fetch(ctx, tx, ci.CourseID)
				if err != nil {
					return err
				}

				it := Item{
					OID:          validate.GenerateID(),
					OrderOID:     oid,
					CourseID:     ci.CourseID,
					TeacherID:    c.TeacherID,
					Price:        ci.Price,
					TaxFee:       ci.TaxFee,
					Total:        ci.Total,
					InitialTotal: ci.Total,
					CreatedAt:    now,
				}

				if err := CreateItem(ctx, tx, it); err != nil {
					return err
				}

				ord.SubTotal = ord.SubTotal.Add(ci.Price)
				ord.TaxFee = ord.TaxFee.Add(ci.TaxFee)
				ord.Total = ord.Total.Add(ci.Total)
			}

			ord.InitialTotal = ord.Total
			return UpdateTotals(ctx, tx, ord)
		})
		if err != nil {
			return fmt.Errorf("materializing order from cart[%s]: %w", on.CartID, err)
		}

		body := struct {
			OrderOID string `json:"order_oid"`
		}{oid}
		return web.Respond(ctx, w, body, http.StatusCreated)
	}
}

func HandleShow(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		oid := web.Param(r, "oid")
		if err := validate.CheckID(oid); err != nil {
			return weberr.BadRequest(err)
		}

		ord, err := Fetch(ctx, db, oid)
		if errors.Is(err, sql.ErrNoRows) {
			return weberr.NotFound(err)
		}
		if err != nil {
			return err
		}

		items, err := FetchItems(ctx, db, oid)
		if err != nil {
			return err
		}
		ord.Items = items

		seen := make(map[string]bool)
		for _, it := range items {
			if !seen[it.TeacherID] {
				seen[it.TeacherID] = true
				ord.Teachers = append(ord.Teachers, it.TeacherID)
			}
		}

		return web.Respond(ctx, w, ord, http.StatusOK)
	}
}
