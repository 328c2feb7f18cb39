// Package coupon applies teacher-scoped percentage discounts to orders. A
// code only ever discounts items sold by its owning teacher, and at most
// once per item.
package coupon

import (
	"time"

	"github.com/shopspring/decimal"
)

type Coupon struct {
	Code      string          `json:"code" db:"code"`
	TeacherID string          `json:"teacherId" db:"teacher_id"`
	Discount  decimal.Decimal `json:"discount" db:"discount"`
	Active    bool            `json:"active" db:"active"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
}

// CouponNew creates a code for a teacher. Code is optional; a random one is
// generated when absent.
type CouponNew struct {
	TeacherID string          `json:"teacherId" validate:"required,uuid4"`
	Code      string          `json:"code"`
	Discount  decimal.Decimal `json:"discount"`
}
