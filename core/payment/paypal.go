package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/irsalhamdi/course-market/api/web"
	"github.com/irsalhamdi/course-market/api/weberr"
	"github.com/irsalhamdi/course-market/core/order"
	"github.com/irsalhamdi/course-market/validate"
	"github.com/jmoiron/sqlx"
	"github.com/plutov/paypal/v4"
)

// HandlePaypalCheckout creates a PayPal order for the final total and binds
// it to ours. The client drives the buyer through PayPal approval and then
// calls the capture endpoint.
func HandlePaypalCheckout(db *sqlx.DB, pp *paypal.Client, timeout time.Duration) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		oid := web.Param(r, "order_oid")
		if err := validate.CheckID(oid); err != nil {
			return weberr.BadRequest(err)
		}

		ord, err := order.Fetch(ctx, db, oid)
		if errors.Is(err, sql.ErrNoRows) {
			return weberr.NotFound(err)
		}
		if err != nil {
			return err
		}

		if ord.PaymentStatus == order.Paid {
			err := errors.New("order is already paid")
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		units := []paypal.PurchaseUnitRequest{{
			Amount: &paypal.PurchaseUnitAmount{
				Currency: "USD",
				Value:    ord.Total.StringFixed(2),
			},
		}}

		gwctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		ppOrd, err := pp.CreateOrder(gwctx, paypal.OrderIntentCapture, units, nil, nil)
		if err != nil {
			return weberr.Upstream(fmt.Errorf("creating paypal order: %w", err))
		}

		if err := order.SetPaypalOrder(ctx, db, ord.OID, ppOrd.ID); err != nil {
			return err
		}

		return web.Respond(ctx, w, ppOrd, http.StatusOK)
	}
}

// HandlePaypalCapture captures an approved PayPal order and fulfills ours.
func HandlePaypalCapture(db *sqlx.DB, pp *paypal.Client, timeout time.Duration) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		paypalID := web.Param(r, "id")

		gwctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		resp, err := pp.CaptureOrder(gwctx, paypalID, paypal.CaptureOrderRequest{})
		if err != nil {
			return weberr.Upstream(fmt.Errorf("capturing paypal order[%s]: %w", paypalID, err))
		}

		if resp.Status != "COMPLETED" {
			return fmt.Errorf("captured order[%s] with status[%s] different from 'COMPLETED'", paypalID, resp.Status)
		}

		ord, err := order.FetchByPaypalOrder(ctx, db, paypalID)
		if errors.Is(err, sql.ErrNoRows) {
			return weberr.NotFound(err)
		}
		if err != nil {
			return err
		}

		if err := fulfill(ctx, db, ord); err != nil {
			return fmt.Errorf("the order was payed but its fulfillment failed: %w", err)
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}
