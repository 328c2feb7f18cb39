package course

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

func Create(ctx context.Context, db sqlx.ExtContext, c Course) error {
	const q = `
	INSERT INTO courses
		(course_id, teacher_id, title, description, image_url, price, published, created_at, updated_at)
	VALUES
		(:course_id, :teacher_id, :title, :description, :image_url, :price, :published, :created_at, :updated_at)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, c); err != nil {
		return fmt.Errorf("inserting course: %w", err)
	}

	return nil
}

func Fetch(ctx context.Context, db sqlx.ExtContext, id string) (Course, error) {
	const q = `
	SELECT course_id, teacher_id, title, description, image_url, price, published, created_at, updated_at
	FROM courses WHERE course_id = $1`

	var c Course
	if err := sqlx.GetContext(ctx, db, &c, q, id); err != nil {
		return Course{}, fmt.Errorf("fetching course[%s]: %w", id, err)
	}

	return c, nil
}

func FetchAll(ctx context.Context, db sqlx.ExtContext) ([]Course, error) {
	const q = `
	SELECT course_id, teacher_id, title, description, image_url, price, published, created_at, updated_at
	FROM courses WHERE published ORDER BY created_at`

	cs := []Course{}
	if err := sqlx.SelectContext(ctx, db, &cs, q); err != nil {
		return nil, fmt.Errorf("fetching courses: %w", err)
	}

	return cs, nil
}
