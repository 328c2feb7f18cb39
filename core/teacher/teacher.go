// Package teacher holds the instructors whose courses are sold on the
// marketplace. Coupons are scoped to a teacher and order items remember the
// teacher they were bought from.
package teacher

import "time"

type Teacher struct {
	ID        string    `json:"id" db:"teacher_id"`
	FullName  string    `json:"fullName" db:"full_name"`
	Country   string    `json:"country" db:"country"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

type TeacherNew struct {
	FullName string `json:"fullName" validate:"required"`
	Country  string `json:"country"`
}
