package order

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Status is the closed set of payment states an order moves through.
// Paid is terminal.
type Status string

const (
	Pending Status = "pending"
	Paid    Status = "paid"
	Failed  Status = "failed"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case Pending, Paid, Failed:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown payment status %q", s)
}

type Order struct {
	OID             string          `json:"oid" db:"oid"`
	UserID          string          `json:"userId,omitempty" db:"user_id"`
	FullName        string          `json:"fullName" db:"full_name"`
	Email           string          `json:"email" db:"email"`
	Country         string          `json:"country" db:"country"`
	SubTotal        decimal.Decimal `json:"subTotal" db:"sub_total"`
	TaxFee          decimal.Decimal `json:"taxFee" db:"tax_fee"`
	Total           decimal.Decimal `json:"total" db:"total"`
	InitialTotal    decimal.Decimal `json:"initialTotal" db:"initial_total"`
	Saved           decimal.Decimal `json:"saved" db:"saved"`
	PaymentStatus   Status          `json:"paymentStatus" db:"payment_status"`
	StripeSessionID string          `json:"-" db:"stripe_session_id"`
	PaypalOrderID   string          `json:"-" db:"paypal_order_id"`
	CreatedAt       time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time       `json:"updatedAt" db:"updated_at"`

	Items    []Item   `json:"items,omitempty" db:"-"`
	Teachers []string `json:"teachers,omitempty" db:"-"`
}

// Item is an immutable snapshot of a cart line at materialization time. Only
// the coupon-adjustment fields ever change afterwards.
type Item struct {
	OID           string          `json:"oid" db:"oid"`
	OrderOID      string          `json:"orderOid" db:"order_oid"`
	CourseID      string          `json:"courseId" db:"course_id"`
	TeacherID     string          `json:"teacherId" db:"teacher_id"`
	Price         decimal.Decimal `json:"price" db:"price"`
	TaxFee        decimal.Decimal `json:"taxFee" db:"tax_fee"`
	Total         decimal.Decimal `json:"total" db:"total"`
	InitialTotal  decimal.Decimal `json:"initialTotal" db:"initial_total"`
	Saved         decimal.Decimal `json:"saved" db:"saved"`
	AppliedCoupon bool            `json:"appliedCoupon" db:"applied_coupon"`
	CreatedAt     time.Time       `json:"createdAt" db:"created_at"`
}

type OrderNew struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Country  string `json:"country" validate:"required"`
	CartID   string `json:"cartId" validate:"required"`
	UserID   string `json:"userId" validate:"omitempty,uuid4"`
}
