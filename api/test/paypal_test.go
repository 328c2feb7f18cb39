package test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/irsalhamdi/course-market/core/cart"
	"github.com/irsalhamdi/course-market/core/order"
	"github.com/shopspring/decimal"
)

func TestPaypalFlow(t *testing.T) {
	env, err := NewTestEnv(t, "paypal_test")
	if err != nil {
		t.Fatalf("initializing test env: %v", err)
	}

	env.seedCountry(t, "Testland", "10")

	tc := env.createTeacher(t, "Ada Lovelace")
	c := env.createCourse(t, tc.ID, "Analytical Engines", "100.00")

	cartID := "cart-" + uuid.NewString()
	in := cart.ItemNew{
		CartID:   cartID,
		CourseID: c.ID,
		Price:    decimal.RequireFromString("100.00"),
		Country:  "Testland",
	}
	if status := env.do(t, http.MethodPost, "/cart", in, nil); status != http.StatusCreated {
		t.Fatalf("adding course to cart: status %d", status)
	}

	on := order.OrderNew{
		FullName: "Anonymous Buyer",
		Email:    "buyer@example.com",
		Country:  "Testland",
		CartID:   cartID,
	}
	var created struct {
		OrderOID string `json:"order_oid"`
	}
	if status := env.do(t, http.MethodPost, "/orders", on, &created); status != http.StatusCreated {
		t.Fatalf("creating order: status %d", status)
	}

	env.Paypal.Expect("110.00")

	var ppOrder struct {
		ID string `json:"id"`
	}
	if status := env.do(t, http.MethodPost, "/payments/paypal/checkout/"+created.OrderOID, nil, &ppOrder); status != http.StatusOK {
		t.Fatalf("starting paypal checkout: status %d", status)
	}
	if ppOrder.ID == "" {
		t.Fatal("paypal checkout answered without a gateway order id")
	}

	if status := env.do(t, http.MethodPost, "/payments/paypal/"+ppOrder.ID+"/capture", nil, nil); status != http.StatusNoContent {
		t.Fatalf("capturing paypal order: status %d", status)
	}

	var ord order.Order
	if status := env.do(t, http.MethodGet, "/orders/"+created.OrderOID, nil, &ord); status != http.StatusOK {
		t.Fatalf("fetching order: status %d", status)
	}
	if ord.PaymentStatus != order.Paid {
		t.Fatalf("payment status %q, expected paid", ord.PaymentStatus)
	}
}
