// Package enrollment grants a student access to a course once its order is
// paid. Rows are written by payment fulfillment, never by clients directly.
package enrollment

import "time"

type Enrollment struct {
	ID           string    `json:"id" db:"enrollment_id"`
	UserID       string    `json:"userId" db:"user_id"`
	CourseID     string    `json:"courseId" db:"course_id"`
	TeacherID    string    `json:"teacherId" db:"teacher_id"`
	OrderItemOID string    `json:"orderItemOid" db:"order_item_oid"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
