package test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/irsalhamdi/course-market/core/cart"
	"github.com/shopspring/decimal"
)

func TestCart(t *testing.T) {
	env, err := NewTestEnv(t, "cart_test")
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

	var created struct {
		Message string    `json:"message"`
		Item    cart.Item `json:"item"`
	}
	if status := env.do(t, http.MethodPost, "/cart", in, &created); status != http.StatusCreated {
		t.Fatalf("first add to cart: status %d", status)
	}
	if created.Message != "Cart Created Successfully" {
		t.Fatalf("first add message %q", created.Message)
	}
	requireEqualDec(t, "item tax fee", created.Item.TaxFee, "10.00")
	requireEqualDec(t, "item total", created.Item.Total, "110.00")

	// A repeat add of the same course must overwrite, not duplicate.
	var updated struct {
		Message string    `json:"message"`
		Item    cart.Item `json:"item"`
	}
	if status := env.do(t, http.MethodPost, "/cart", in, &updated); status != http.StatusOK {
		t.Fatalf("second add to cart: status %d", status)
	}
	if updated.Message != "Cart Updated Successfully" {
		t.Fatalf("second add message %q", updated.Message)
	}

	var items []cart.Item
	if status := env.do(t, http.MethodGet, "/cart/"+cartID, nil, &items); status != http.StatusOK {
		t.Fatalf("listing cart: status %d", status)
	}
	if len(items) != 1 {
		t.Fatalf("cart has %d items after a repeat add, expected 1", len(items))
	}

	var sum cart.Summary
	if status := env.do(t, http.MethodGet, "/cart/"+cartID+"/statistics", nil, &sum); status != http.StatusOK {
		t.Fatalf("cart statistics: status %d", status)
	}
	requireEqualDec(t, "summary price", sum.TotalPrice, "100.00")
	requireEqualDec(t, "summary tax", sum.TotalTax, "10.00")
	requireEqualDec(t, "summary total", sum.Total, "110.00")

	if status := env.do(t, http.MethodDelete, "/cart/"+cartID+"/"+items[0].ID, nil, nil); status != http.StatusNoContent {
		t.Fatalf("deleting cart item: status %d", status)
	}

	// Deleting again reports the missing resource.
	if status := env.do(t, http.MethodDelete, "/cart/"+cartID+"/"+items[0].ID, nil, nil); status != http.StatusNotFound {
		t.Fatalf("deleting absent cart item: status %d, expected 404", status)
	}

	// An empty cart summarizes to zeros, not an error.
	if status := env.do(t, http.MethodGet, "/cart/"+cartID+"/statistics", nil, &sum); status != http.StatusOK {
		t.Fatalf("empty cart statistics: status %d", status)
	}
	requireEqualDec(t, "empty summary total", sum.Total, "0")
}

func TestCartUnknownCountryFallsBack(t *testing.T) {
	env, err := NewTestEnv(t, "cart_country_test")
	if err != nil {
		t.Fatalf("initializing test env: %v", err)
	}

	tc := env.createTeacher(t, "Grace Hopper")
	c := env.createCourse(t, tc.ID, "Compilers", "200.00")

	in := cart.ItemNew{
		CartID:   "cart-" + uuid.NewString(),
		CourseID: c.ID,
		Price:    decimal.RequireFromString("200.00"),
		Country:  "Atlantis",
	}

	var created struct {
		Message string    `json:"message"`
		Item    cart.Item `json:"item"`
	}
	if status := env.do(t, http.MethodPost, "/cart", in, &created); status != http.StatusCreated {
		t.Fatalf("add to cart: status %d", status)
	}

	// Unknown countries degrade to the default label and 5% rate.
	if created.Item.Country != "Bangladesh" {
		t.Fatalf("country label %q, expected the default", created.Item.Country)
	}
	requireEqualDec(t, "item tax fee", created.Item.TaxFee, "10.00")
	requireEqualDec(t, "item total", created.Item.Total, "210.00")
}
