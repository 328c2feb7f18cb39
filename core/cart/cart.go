// Package cart holds pre-checkout line items grouped by an opaque,
// client-supplied cart id, independent of login state.
package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

type Item struct {
	ID        string          `json:"id" db:"item_id"`
	CartID    string          `json:"cartId" db:"cart_id"`
	CourseID  string          `json:"courseId" db:"course_id"`
	UserID    string          `json:"userId,omitempty" db:"user_id"`
	Price     decimal.Decimal `json:"price" db:"price"`
	TaxFee    decimal.Decimal `json:"taxFee" db:"tax_fee"`
	Total     decimal.Decimal `json:"total" db:"total"`
	Country   string          `json:"country" db:"country"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time       `json:"updatedAt" db:"updated_at"`
}

type ItemNew struct {
	CartID   string          `json:"cartId" validate:"required"`
	CourseID string          `json:"courseId" validate:"required,uuid4"`
	UserID   string          `json:"userId" validate:"omitempty,uuid4"`
	Price    decimal.Decimal `json:"price"`
	Country  string          `json:"countryName"`
}

// Summary aggregates a cart. An empty cart summarizes to zeros.
type Summary struct {
	TotalPrice decimal.Decimal `json:"total_price" db:"total_price"`
	TotalTax   decimal.Decimal `json:"total_tax_fee" db:"total_tax_fee"`
	Total      decimal.Decimal `json:"total" db:"total"`
}
