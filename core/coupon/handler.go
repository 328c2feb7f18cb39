package coupon

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/irsalhamdi/course-market/api/web"
	"github.com/irsalhamdi/course-market/api/weberr"
	"github.com/irsalhamdi/course-market/random"
	"github.com/irsalhamdi/course-market/validate"
	"github.com/jmoiron/sqlx"
)

func HandleCreate(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var cn CouponNew
		if err := web.Decode(w, r, &cn); err != nil {
			return weberr.BadRequest(err)
		}

		if err := validate.Check(cn); err != nil {
			return weberr.BadRequest(err)
		}

		if cn.Discount.IsNegative() || cn.Discount.GreaterThan(hundred) {
			return weberr.BadRequest(errors.New("discount must be between 0 and 100"))
		}

		code := cn.Code
		if code == "" {
			code = random.String(10)
		}

		c := Coupon{
			Code:      code,
			TeacherID: cn.TeacherID,
			Discount:  cn.Discount,
			Active:    true,
			CreatedAt: time.Now().UTC(),
		}

		if err := Create(ctx, db, c); err != nil {
			return err
		}

		return web.Respond(ctx, w, c, http.StatusCreated)
	}
}

type applyRequest struct {
	OrderOID string `json:"order_oid" validate:"required,uuid4"`
	Code     string `json:"coupon_code" validate:"required"`
}

// HandleApply applies a code to an order. 201 when items were discounted,
// 200 when the code was already applied (nothing changed), 404 when the
// order or the code is unknown.
func HandleApply(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var req applyRequest
		if err := web.Decode(w, r, &req); err != nil {
			return weberr.BadRequest(err)
		}

		if err := validate.Check(req); err != nil {
			return weberr.BadRequest(err)
		}

		outcome, err := Apply(ctx, db, req.OrderOID, req.Code)
		if errors.Is(err, ErrNotFound) {
			return weberr.NotFound(err)
		}
		if err != nil {
			return err
		}

		switch outcome {
		case Applied:
			return web.Respond(ctx, w, web.Message{Message: "Coupon Applied Successfully"}, http.StatusCreated)
		case AlreadyApplied:
			return web.Respond(ctx, w, web.Message{Message: "Coupon Already Applied"}, http.StatusOK)
		default:
			return web.Respond(ctx, w, web.Message{Message: "Coupon does not apply to any item in this order"}, http.StatusOK)
		}
	}
}
