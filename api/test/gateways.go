package test

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/mux"
	"github.com/irsalhamdi/course-market/api/web"
	mock "github.com/stripe/stripe-mock/param"
)

// mockStripe fakes the only Stripe call the service makes, hosted checkout
// session creation, validating it against the expected amount. Webhook
// delivery is driven by the tests themselves with a signed payload.
type mockStripe struct {
	mu sync.Mutex

	sessionID string

	// expectedAmount is the minor-unit total the next session must carry.
	expectedAmount int64
}

func (m *mockStripe) Expect(amount int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expectedAmount = amount
}

func (m *mockStripe) handle() http.Handler {
	sessions := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.mu.Lock()
		defer m.mu.Unlock()

		params, err := mock.ParseParams(r)
		if err != nil {
			web.Respond(context.Background(), w, nil, http.StatusBadRequest)
			return
		}

		lines, ok := params["line_items"].(map[string]any)
		if !ok || len(lines) != 1 {
			web.Respond(context.Background(), w, nil, http.StatusBadRequest)
			return
		}

		for _, li := range lines {
			item := li.(map[string]any)
			priceData := item["price_data"].(map[string]any)
			amount, err := strconv.ParseInt(priceData["unit_amount"].(string), 10, 64)
			if err != nil || amount != m.expectedAmount {
				web.Respond(context.Background(), w, nil, http.StatusBadRequest)
				return
			}
		}

		session := map[string]any{
			"id":     m.sessionID,
			"object": "checkout.session",
			"mode":   "payment",
			"url":    "https://checkout.stripe.test/" + m.sessionID,
		}
		web.Respond(context.Background(), w, session, http.StatusOK)
	})

	r := mux.NewRouter()
	r.Handle("/v1/checkout/sessions", sessions).Methods(http.MethodPost)
	return r
}

// mockPaypal fakes token issuance, order creation and capture.
type mockPaypal struct {
	mu sync.Mutex

	orderID string

	// expectedValue is the decimal string total the next order must carry.
	expectedValue string
}

func (m *mockPaypal) Expect(value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expectedValue = value
}

func (m *mockPaypal) handle() http.Handler {
	token := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := map[string]any{
			"access_token": "test-token",
			"token_type":   "Bearer",
			"expires_in":   3600,
		}
		web.Respond(context.Background(), w, body, http.StatusOK)
	})

	checkout := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.mu.Lock()
		defer m.mu.Unlock()

		var pu struct {
			Units []struct {
				Amount struct {
					Value string `json:"value"`
				} `json:"amount"`
			} `json:"purchase_units"`
		}
		if err := json.NewDecoder(r.Body).Decode(&pu); err != nil {
			web.Respond(context.Background(), w, nil, http.StatusBadRequest)
			return
		}

		if len(pu.Units) != 1 || pu.Units[0].Amount.Value != m.expectedValue {
			web.Respond(context.Background(), w, nil, http.StatusBadRequest)
			return
		}

		body := map[string]any{"id": m.orderID, "status": "CREATED"}
		web.Respond(context.Background(), w, body, http.StatusCreated)
	})

	capture := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.mu.Lock()
		defer m.mu.Unlock()

		body := map[string]any{"id": m.orderID, "status": "COMPLETED"}
		web.Respond(context.Background(), w, body, http.StatusCreated)
	})

	r := mux.NewRouter()
	r.Handle("/v1/oauth2/token", token).Methods(http.MethodPost)
	r.Handle("/v2/checkout/orders", checkout).Methods(http.MethodPost)
	r.Handle("/v2/checkout/orders/{id}/capture", capture).Methods(http.MethodPost)
	return r
}
