package cart

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/irsalhamdi/course-market/api/web"
	"github.com/irsalhamdi/course-market/api/weberr"
	"github.com/irsalhamdi/course-market/core/country"
	"github.com/irsalhamdi/course-market/core/course"
	"github.com/irsalhamdi/course-market/core/price"
	"github.com/irsalhamdi/course-market/validate"
	"github.com/jmoiron/sqlx"
)

type upsertResponse struct {
	Message string `json:"message"`
	Item    Item   `json:"item"`
}

// HandleUpsertItem adds a course to a cart, overwriting the prior line when
// the course is already there. 201 signals a new line, 200 an overwrite.
func HandleUpsertItem(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var in ItemNew
		if err := web.Decode(w, r, &in); err != nil {
			return weberr.BadRequest(err)
		}

		if err := validate.Check(in); err != nil {
			return weberr.BadRequest(err)
		}

		if in.Price.IsNegative() {
			return weberr.BadRequest(errors.New("price must not be negative"))
		}

		if _, err := course.Fetch(ctx, db, in.CourseID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NotFound(err)
			}
			return err
		}

		label, rate, err := country.Resolve(ctx, db, in.Country)
		if err != nil {
			return fmt.Errorf("resolving tax rate for country[%s]: %w", in.Country, err)
		}

		taxFee, total := price.Quote(in.Price, rate)

		now := time.Now().UTC()
		it := Item{
			ID:        validate.GenerateID(),
			CartID:    in.CartID,
			CourseID:  in.CourseID,
			UserID:    in.UserID,
			Price:     in.Price,
			TaxFee:    taxFee,
			Total:     total,
			Country:   label,
			CreatedAt: now,
			UpdatedAt: now,
		}

		it, created, err := Upsert(ctx, db, it)
		if err != nil {
			return err
		}

		if created {
			body := upsertResponse{Message: "Cart Created Successfully", Item: it}
			return web.Respond(ctx, w, body, http.StatusCreated)
		}

		body := upsertResponse{Message: "Cart Updated Successfully", Item: it}
		return web.Respond(ctx, w, body, http.StatusOK)
	}
}

func HandleListItems(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		cartID := web.Param(r, "cart_id")

		items, err := FetchItems(ctx, db, cartID)
		if err != nil {
			return err
		}

		return web.Respond(ctx, w, items, http.StatusOK)
	}
}

func HandleDeleteItem(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		cartID := web.Param(r, "cart_id")
		itemID := web.Param(r, "item_id")
		if err := validate.CheckID(itemID); err != nil {
			return weberr.BadRequest(err)
		}

		if err := DeleteItem(ctx, db, cartID, itemID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NotFound(err)
			}
			return err
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}

func HandleStatistics(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		cartID := web.Param(r, "cart_id")

		s, err := Summarize(ctx, db, cartID)
		if err != nil {
			return err
		}

		return web.Respond(ctx, w, s, http.StatusOK)
	}
}
