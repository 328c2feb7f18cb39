package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/irsalhamdi/course-market/api/middleware"
	"github.com/irsalhamdi/course-market/api/web"
	"github.com/irsalhamdi/course-market/config"
	"github.com/irsalhamdi/course-market/core/cart"
	"github.com/irsalhamdi/course-market/core/coupon"
	"github.com/irsalhamdi/course-market/core/course"
	"github.com/irsalhamdi/course-market/core/enrollment"
	"github.com/irsalhamdi/course-market/core/order"
	"github.com/irsalhamdi/course-market/core/payment"
	"github.com/irsalhamdi/course-market/core/teacher"
	"github.com/irsalhamdi/course-market/rate"
	"github.com/jmoiron/sqlx"
	"github.com/plutov/paypal/v4"
	"github.com/sirupsen/logrus"
	stripecl "github.com/stripe/stripe-go/v74/client"
)

type APIConfig struct {
	CorsOrigin     string
	Log            logrus.FieldLogger
	DB             *sqlx.DB
	Paypal         *paypal.Client
	Stripe         *stripecl.API
	StripeCfg      config.Stripe
	GatewayTimeout time.Duration
	CheckoutLimit  *rate.Limiter
}

type api struct {
	*mux.Router
	mw  []web.Middleware
	log logrus.FieldLogger
}

func APIMux(cfg APIConfig) http.Handler {
	a := &api{
		Router: mux.NewRouter(),
		log:    cfg.Log,
	}

	a.mw = append(a.mw, middleware.RequestID())
	a.mw = append(a.mw, middleware.Logger(cfg.Log))
	a.mw = append(a.mw, middleware.Errors(cfg.Log))
	a.mw = append(a.mw, middleware.Panics())

	if cfg.CorsOrigin != "" {
		a.mw = append(a.mw, middleware.Cors(cfg.CorsOrigin))

		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			w.WriteHeader(http.StatusNoContent)
			return nil
		}

		a.Handle(http.MethodOptions, "/{path:.*}", h)
	}

	limited := middleware.RateLimit(cfg.CheckoutLimit)

	a.Handle(http.MethodPost, "/teachers", teacher.HandleCreate(cfg.DB))
	a.Handle(http.MethodGet, "/teachers/{id}", teacher.HandleShow(cfg.DB))

	a.Handle(http.MethodGet, "/courses", course.HandleList(cfg.DB))
	a.Handle(http.MethodGet, "/courses/{id}", course.HandleShow(cfg.DB))
	a.Handle(http.MethodPost, "/courses", course.HandleCreate(cfg.DB))

	a.Handle(http.MethodPost, "/cart", cart.HandleUpsertItem(cfg.DB))
	a.Handle(http.MethodGet, "/cart/{cart_id}", cart.HandleListItems(cfg.DB))
	a.Handle(http.MethodGet, "/cart/{cart_id}/statistics", cart.HandleStatistics(cfg.DB))
	a.Handle(http.MethodDelete, "/cart/{cart_id}/{item_id}", cart.HandleDeleteItem(cfg.DB))

	a.Handle(http.MethodPost, "/orders", order.HandleCreate(cfg.DB))
	a.Handle(http.MethodGet, "/orders/{oid}", order.HandleShow(cfg.DB))

	a.Handle(http.MethodPost, "/coupons", coupon.HandleCreate(cfg.DB))
	a.Handle(http.MethodPost, "/coupons/apply", coupon.HandleApply(cfg.DB))

	a.Handle(http.MethodGet, "/enrollments/{user_id}", enrollment.HandleListByUser(cfg.DB))

	a.Handle(http.MethodPost, "/payments/stripe/checkout/{order_oid}",
		payment.HandleStripeCheckout(cfg.DB, cfg.Stripe, cfg.StripeCfg, cfg.GatewayTimeout), limited)
	a.Handle(http.MethodPost, "/payments/stripe/capture",
		payment.HandleStripeCapture(cfg.DB, cfg.StripeCfg))
	a.Handle(http.MethodPost, "/payments/paypal/checkout/{order_oid}",
		payment.HandlePaypalCheckout(cfg.DB, cfg.Paypal, cfg.GatewayTimeout), limited)
	a.Handle(http.MethodPost, "/payments/paypal/{id}/capture",
		payment.HandlePaypalCapture(cfg.DB, cfg.Paypal, cfg.GatewayTimeout))

	return a.Router
}

func (a *api) Handle(method string, path string, handler web.Handler, mw ...web.Middleware) {
	handler = web.WrapMiddleware(mw, handler)
	handler = web.WrapMiddleware(a.mw, handler)

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if err := handler(ctx, w, r); err != nil {
			a.log.WithFields(logrus.Fields{
				"req_id":  middleware.ContextRequestID(ctx),
				"message": err,
			}).Error("ERROR")
		}
	})

	a.Router.Handle(path, h).Methods(method)
}
