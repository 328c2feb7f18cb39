package test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/irsalhamdi/course-market/core/cart"
	"github.com/irsalhamdi/course-market/core/coupon"
	"github.com/irsalhamdi/course-market/core/enrollment"
	"github.com/irsalhamdi/course-market/core/order"
	"github.com/irsalhamdi/course-market/core/price"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/webhook"
)

// TestCheckoutFlow drives the whole pipeline: cart, order materialization,
// coupon application, Stripe checkout and the signed webhook that fulfills
// the order.
func TestCheckoutFlow(t *testing.T) {
	env, err := NewTestEnv(t, "checkout_test")
	if err != nil {
		t.Fatalf("initializing test env: %v", err)
	}

	env.seedCountry(t, "Testland", "10")

	t1 := env.createTeacher(t, "Ada Lovelace")
	t2 := env.createTeacher(t, "Charles Babbage")
	c1 := env.createCourse(t, t1.ID, "Analytical Engines", "100.00")
	c2 := env.createCourse(t, t2.ID, "Difference Engines", "50.00")

	userID := uuid.NewString()
	cartID := "cart-" + uuid.NewString()

	for _, c := range []struct {
		id    string
		price string
	}{
		{c1.ID, "100.00"},
		{c2.ID, "50.00"},
	} {
		in := cart.ItemNew{
			CartID:   cartID,
			CourseID: c.id,
			UserID:   userID,
			Price:    decimal.RequireFromString(c.price),
			Country:  "Testland",
		}
		if status := env.do(t, http.MethodPost, "/cart", in, nil); status != http.StatusCreated {
			t.Fatalf("adding course to cart: status %d", status)
		}
	}

	// An order from a cart id with no items is a validation failure.
	bad := order.OrderNew{
		FullName: "Student One",
		Email:    "student@example.com",
		Country:  "Testland",
		CartID:   "cart-" + uuid.NewString(),
		UserID:   userID,
	}
	var msg struct {
		Message string `json:"message"`
	}
	if status := env.do(t, http.MethodPost, "/orders", bad, &msg); status != http.StatusBadRequest {
		t.Fatalf("order from empty cart: status %d, expected 400", status)
	}
	if msg.Message != "No cart items found." {
		t.Fatalf("empty cart message %q", msg.Message)
	}

	on := bad
	on.CartID = cartID

	var createdOrder struct {
		OrderOID string `json:"order_oid"`
	}
	if status := env.do(t, http.MethodPost, "/orders", on, &createdOrder); status != http.StatusCreated {
		t.Fatalf("creating order: status %d", status)
	}

	var ord order.Order
	if status := env.do(t, http.MethodGet, "/orders/"+createdOrder.OrderOID, nil, &ord); status != http.StatusOK {
		t.Fatalf("fetching order: status %d", status)
	}

	// 100 + 50 priced, 10% tax each.
	requireEqualDec(t, "order sub total", ord.SubTotal, "150.00")
	requireEqualDec(t, "order tax fee", ord.TaxFee, "15.00")
	requireEqualDec(t, "order total", ord.Total, "165.00")
	requireEqualDec(t, "order initial total", ord.InitialTotal, "165.00")
	requireEqualDec(t, "order saved", ord.Saved, "0")
	if len(ord.Items) != 2 {
		t.Fatalf("order has %d items, expected 2", len(ord.Items))
	}
	if len(ord.Teachers) != 2 {
		t.Fatalf("order has %d teachers, expected 2", len(ord.Teachers))
	}

	// The sum of the items must equal the order total before any coupon.
	itemSum := decimal.Zero
	for _, it := range ord.Items {
		itemSum = itemSum.Add(it.Total)
	}
	if !itemSum.Equal(ord.Total) {
		t.Fatalf("item totals sum to %s, order total is %s", itemSum, ord.Total)
	}

	// A 20% code owned by teacher 1 touches only teacher 1's item:
	// 20% of 110.00 = 22.00 off.
	cn := coupon.CouponNew{
		TeacherID: t1.ID,
		Code:      "SAVE20",
		Discount:  decimal.RequireFromString("20"),
	}
	if status := env.do(t, http.MethodPost, "/coupons", cn, nil); status != http.StatusCreated {
		t.Fatalf("creating coupon: status %d", status)
	}

	apply := map[string]string{"order_oid": ord.OID, "coupon_code": "SAVE20"}
	if status := env.do(t, http.MethodPost, "/coupons/apply", apply, &msg); status != http.StatusCreated {
		t.Fatalf("applying coupon: status %d (%s)", status, msg.Message)
	}

	if status := env.do(t, http.MethodGet, "/orders/"+ord.OID, nil, &ord); status != http.StatusOK {
		t.Fatalf("fetching discounted order: status %d", status)
	}
	requireEqualDec(t, "discounted order total", ord.Total, "143.00")
	requireEqualDec(t, "order saved", ord.Saved, "22.00")
	requireEqualDec(t, "order initial total", ord.InitialTotal, "165.00")

	for _, it := range ord.Items {
		switch it.TeacherID {
		case t1.ID:
			requireEqualDec(t, "discounted item total", it.Total, "88.00")
			requireEqualDec(t, "discounted item saved", it.Saved, "22.00")
			if !it.AppliedCoupon {
				t.Error("discounted item must be flagged applied_coupon")
			}
		case t2.ID:
			requireEqualDec(t, "other teacher item total", it.Total, "55.00")
			if it.AppliedCoupon {
				t.Error("the other teacher's item must be untouched")
			}
		}
	}

	// Applying the same code again changes nothing.
	if status := env.do(t, http.MethodPost, "/coupons/apply", apply, &msg); status != http.StatusOK {
		t.Fatalf("re-applying coupon: status %d", status)
	}
	if msg.Message != "Coupon Already Applied" {
		t.Fatalf("re-apply message %q", msg.Message)
	}

	var after order.Order
	if status := env.do(t, http.MethodGet, "/orders/"+ord.OID, nil, &after); status != http.StatusOK {
		t.Fatalf("fetching order after re-apply: status %d", status)
	}
	requireEqualDec(t, "total after re-apply", after.Total, "143.00")
	requireEqualDec(t, "saved after re-apply", after.Saved, "22.00")

	// Checkout hands the final total to the gateway in minor units.
	env.Stripe.Expect(price.MinorUnits(after.Total))

	var gatewayURL string
	if status := env.do(t, http.MethodPost, "/payments/stripe/checkout/"+ord.OID, nil, &gatewayURL); status != http.StatusOK {
		t.Fatalf("starting stripe checkout: status %d", status)
	}
	if gatewayURL == "" {
		t.Fatal("checkout answered with an empty gateway URL")
	}

	env.sendStripeWebhook(t, env.Stripe.sessionID)

	if status := env.do(t, http.MethodGet, "/orders/"+ord.OID, nil, &after); status != http.StatusOK {
		t.Fatalf("fetching paid order: status %d", status)
	}
	if after.PaymentStatus != order.Paid {
		t.Fatalf("payment status %q, expected paid", after.PaymentStatus)
	}

	var es []enrollment.Enrollment
	if status := env.do(t, http.MethodGet, "/enrollments/"+userID, nil, &es); status != http.StatusOK {
		t.Fatalf("listing enrollments: status %d", status)
	}
	if len(es) != 2 {
		t.Fatalf("student has %d enrollments after payment, expected 2", len(es))
	}

	// Webhook redelivery must not enroll twice.
	env.sendStripeWebhook(t, env.Stripe.sessionID)
	if status := env.do(t, http.MethodGet, "/enrollments/"+userID, nil, &es); status != http.StatusOK {
		t.Fatalf("listing enrollments: status %d", status)
	}
	if len(es) != 2 {
		t.Fatalf("student has %d enrollments after webhook redelivery, expected 2", len(es))
	}
}

func (e *TestEnv) sendStripeWebhook(t *testing.T, sessionID string) {
	t.Helper()

	obj := map[string]any{
		"id":   sessionID,
		"mode": stripe.CheckoutSessionModePayment,
	}
	raw, err := json.Marshal(obj)
	if err != nil {
		t.Fatal(err)
	}

	evt := stripe.Event{
		APIVersion: "2022-11-15",
		Type:       "checkout.session.completed",
		Data: &stripe.EventData{
			Raw: json.RawMessage(raw),
		},
	}

	b, err := json.Marshal(evt)
	if err != nil {
		t.Fatal(err)
	}

	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   b,
		Secret:    e.WebhookSecret,
		Timestamp: time.Now(),
	})

	r, err := http.NewRequest(http.MethodPost, e.URL+"/payments/stripe/capture", bytes.NewBuffer(b))
	if err != nil {
		t.Fatal(err)
	}
	r.Header.Set("Stripe-Signature", signed.Header)

	w, err := e.Client().Do(r)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Body.Close()

	if w.StatusCode != http.StatusNoContent {
		t.Fatalf("delivering stripe webhook: status %d", w.StatusCode)
	}
}

func TestCheckoutUnknownOrder(t *testing.T) {
	env, err := NewTestEnv(t, "checkout_unknown_test")
	if err != nil {
		t.Fatalf("initializing test env: %v", err)
	}

	oid := uuid.NewString()
	if status := env.do(t, http.MethodPost, "/payments/stripe/checkout/"+oid, nil, nil); status != http.StatusNotFound {
		t.Fatalf("checkout of unknown order: status %d, expected 404", status)
	}
}
