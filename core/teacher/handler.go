package teacher

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/irsalhamdi/course-market/api/web"
	"github.com/irsalhamdi/course-market/api/weberr"
	"github.com/irsalhamdi/course-market/validate"
	"github.com/jmoiron/sqlx"
)

func HandleCreate(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var tn TeacherNew
		if err := web.Decode(w, r, &tn); err != nil {
			return weberr.BadRequest(err)
		}

		if err := validate.Check(tn); err != nil {
			return weberr.BadRequest(err)
		}

		now := time.Now().UTC()
		t := Teacher{
			ID:        validate.GenerateID(),
			FullName:  tn.FullName,
			Country:   tn.Country,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if err := Create(ctx, db, t); err != nil {
			return err
		}

		return web.Respond(ctx, w, t, http.StatusCreated)
	}
}

func HandleShow(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.BadRequest(err)
		}

		t, err := Fetch(ctx, db, id)
		if errors.Is(err, sql.ErrNoRows) {
			return weberr.NotFound(err)
		}
		if err != nil {
			return err
		}

		return web.Respond(ctx, w, t, http.StatusOK)
	}
}
