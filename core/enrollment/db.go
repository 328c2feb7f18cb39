package enrollment

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Create records an enrollment, silently keeping the existing row when the
// student already owns the course (a webhook can be delivered twice).
func Create(ctx context.Context, db sqlx.ExtContext, e Enrollment) error {
	const q = `
	INSERT INTO enrollments (enrollment_id, user_id, course_id, teacher_id, order_item_oid, created_at)
	VALUES (:enrollment_id, :user_id, :course_id, :teacher_id, :order_item_oid, :created_at)
	ON CONFLICT (user_id, course_id) DO NOTHING`

	if _, err := sqlx.NamedExecContext(ctx, db, q, e); err != nil {
		return fmt.Errorf("inserting enrollment: %w", err)
	}

	return nil
}

func FetchByUser(ctx context.Context, db sqlx.ExtContext, userID string) ([]Enrollment, error) {
	const q = `
	SELECT enrollment_id, user_id, course_id, teacher_id, order_item_oid, created_at
	FROM enrollments WHERE user_id = $1 ORDER BY created_at`

	es := []Enrollment{}
	if err := sqlx.SelectContext(ctx, db, &es, q, userID); err != nil {
		return nil, fmt.Errorf("fetching enrollments of user[%s]: %w", userID, err)
	}

	return es, nil
}
