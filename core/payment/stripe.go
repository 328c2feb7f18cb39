package payment

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/irsalhamdi/course-market/api/web"
	"github.com/irsalhamdi/course-market/api/weberr"
	"github.com/irsalhamdi/course-market/config"
	"github.com/irsalhamdi/course-market/core/order"
	"github.com/irsalhamdi/course-market/core/price"
	"github.com/irsalhamdi/course-market/validate"
	"github.com/jmoiron/sqlx"
	"github.com/stripe/stripe-go/v74"
	stripecl "github.com/stripe/stripe-go/v74/client"
	"github.com/stripe/stripe-go/v74/webhook"
)

// HandleStripeCheckout asks Stripe for a hosted checkout session covering
// the order's final total and records the session handle on the order before
// answering with the gateway URL.
func HandleStripeCheckout(db *sqlx.DB, strp *stripecl.API, cfg config.Stripe, timeout time.Duration) web.Handler {
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

		gwctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		params := &stripe.CheckoutSessionParams{
			SuccessURL:    stripe.String(fmt.Sprintf("%s?order_oid=%s", cfg.SuccessURL, ord.OID)),
			CancelURL:     stripe.String(fmt.Sprintf("%s?order_oid=%s", cfg.CancelURL, ord.OID)),
			Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
			CustomerEmail: stripe.String(ord.Email),

			LineItems: []*stripe.CheckoutSessionLineItemParams{{
				Quantity: stripe.Int64(1),

				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String("usd"),
					UnitAmount: stripe.Int64(price.MinorUnits(ord.Total)),

					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String("Course order " + ord.OID),
					},
				},
			}},
		}
		params.Context = gwctx

		s, err := strp.CheckoutSessions.New(params)
		if err != nil {
			var serr *stripe.Error
			if errors.As(err, &serr) && serr.Msg != "" {
				return weberr.Upstream(errors.New(serr.Msg))
			}
			return weberr.Upstream(fmt.Errorf("creating stripe session: %w", err))
		}

		if err := order.SetStripeSession(ctx, db, ord.OID, s.ID); err != nil {
			return err
		}

		return web.Respond(ctx, w, s.URL, http.StatusOK)
	}
}

// HandleStripeCapture is the signed webhook Stripe calls once the hosted
// checkout completes. It is the only place an order becomes paid via Stripe.
func HandleStripeCapture(db *sqlx.DB, cfg config.Stripe) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		b, err := io.ReadAll(r.Body)
		if err != nil {
			return weberr.BadRequest(fmt.Errorf("cannot read the request body: %w", err))
		}

		sig := r.Header.Get("Stripe-Signature")
		if sig == "" {
			return weberr.BadRequest(errors.New("received stripe event is not signed"))
		}

		event, err := webhook.ConstructEvent(b, sig, cfg.WebhookSecret)
		if err != nil {
			return weberr.BadRequest(fmt.Errorf("cannot construct stripe event: %w", err))
		}

		if event.Type != "checkout.session.completed" {
			return web.Respond(ctx, w, nil, http.StatusNoContent)
		}

		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode stripe event: %w", err))
		}

		if session.Mode != stripe.CheckoutSessionModePayment {
			return web.Respond(ctx, w, nil, http.StatusNoContent)
		}

		ord, err := order.FetchByStripeSession(ctx, db, session.ID)
		if err != nil {
			return fmt.Errorf("the session was payed but no order matches it: %w", err)
		}

		if err := fulfill(ctx, db, ord); err != nil {
			return fmt.Errorf("the order was payed but its fulfillment failed: %w", err)
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}
