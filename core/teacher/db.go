package teacher

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

func Create(ctx context.Context, db sqlx.ExtContext, t Teacher) error {
	const q = `
	INSERT INTO teachers (teacher_id, full_name, country, created_at, updated_at)
	VALUES (:teacher_id, :full_name, :country, :created_at, :updated_at)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, t); err != nil {
		return fmt.Errorf("inserting teacher: %w", err)
	}

	return nil
}

func Fetch(ctx context.Context, db sqlx.ExtContext, id string) (Teacher, error) {
	const q = `
	SELECT teacher_id, full_name, country, created_at, updated_at
	FROM teachers WHERE teacher_id = $1`

	var t Teacher
	if err := sqlx.GetContext(ctx, db, &t, q, id); err != nil {
		return Teacher{}, fmt.Errorf("fetching teacher[%s]: %w", id, err)
	}

	return t, nil
}
