// Package test hosts the end-to-end environment: a throwaway postgres
// container, the migrated schema, the real API mux and fake payment
// gateways listening on local test servers.
package test

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/irsalhamdi/course-market/api"
	"github.com/irsalhamdi/course-market/config"
	"github.com/irsalhamdi/course-market/database"
	"github.com/irsalhamdi/course-market/rate"
	"github.com/jmoiron/sqlx"
	"github.com/ory/dockertest/v3"
	"github.com/plutov/paypal/v4"
	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v74"
	stripecl "github.com/stripe/stripe-go/v74/client"
)

const webhookSecret = "whsec_testsecret"

type TestEnv struct {
	URL           string
	DB            *sqlx.DB
	WebhookSecret string
	Stripe        *mockStripe
	Paypal        *mockPaypal

	client *http.Client
}

func (e *TestEnv) Client() *http.Client { return e.client }

func NewTestEnv(t *testing.T, name string) (*TestEnv, error) {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		return nil, fmt.Errorf("connecting to docker: %w", err)
	}

	res, err := pool.Run("postgres", "15-alpine", []string{
		"POSTGRES_USER=postgres",
		"POSTGRES_PASSWORD=postgres",
		"POSTGRES_DB=" + name,
	})
	if err != nil {
		return nil, fmt.Errorf("starting postgres container: %w", err)
	}
	t.Cleanup(func() { pool.Purge(res) })

	var db *sqlx.DB
	err = pool.Retry(func() error {
		db, err = database.Open(config.DB{
			User:       "postgres",
			Password:   "postgres",
			Host:       net.JoinHostPort("localhost", res.GetPort("5432/tcp")),
			Name:       name,
			DisableTLS: true,
		})
		if err != nil {
			return err
		}
		return db.Ping()
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to test database: %w", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("migrating test database: %w", err)
	}

	ms := &mockStripe{sessionID: "cs_test_" + name}
	stripeSrv := httptest.NewServer(ms.handle())
	t.Cleanup(stripeSrv.Close)

	mp := &mockPaypal{orderID: "pp-" + name}
	paypalSrv := httptest.NewServer(mp.handle())
	t.Cleanup(paypalSrv.Close)

	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL: stripe.String(stripeSrv.URL + "/v1"),
	})
	strp := &stripecl.API{}
	strp.Init("sk_test_123", &stripe.Backends{API: backend, Connect: backend, Uploads: backend})

	pp, err := paypal.NewClient("test-client", "test-secret", paypalSrv.URL)
	if err != nil {
		return nil, fmt.Errorf("building paypal client: %w", err)
	}
	if _, err := pp.GetAccessToken(context.Background()); err != nil {
		return nil, fmt.Errorf("fetching paypal token from mock: %w", err)
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	mux := api.APIMux(api.APIConfig{
		Log:    logger,
		DB:     db,
		Stripe: strp,
		StripeCfg: config.Stripe{
			APISecret:     "sk_test_123",
			WebhookSecret: webhookSecret,
			SuccessURL:    "http://localhost/success",
			CancelURL:     "http://localhost/cancel",
		},
		Paypal:         pp,
		GatewayTimeout: 5 * time.Second,
		CheckoutLimit:  rate.NewLimiter(1000, 100, rate.Every(time.Millisecond)),
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return &TestEnv{
		URL:           srv.URL,
		DB:            db,
		WebhookSecret: webhookSecret,
		Stripe:        ms,
		Paypal:        mp,
		client:        srv.Client(),
	}, nil
}
