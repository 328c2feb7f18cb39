package enrollment

import (
	"context"
	"net/http"

	"github.com/irsalhamdi/course-market/api/web"
	"github.com/irsalhamdi/course-market/api/weberr"
	"github.com/irsalhamdi/course-market/validate"
	"github.com/jmoiron/sqlx"
)

func HandleListByUser(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		userID := web.Param(r, "user_id")
		if err := validate.CheckID(userID); err != nil {
			return weberr.BadRequest(err)
		}

		es, err := FetchByUser(ctx, db, userID)
		if err != nil {
			return err
		}

		return web.Respond(ctx, w, es, http.StatusOK)
	}
}
