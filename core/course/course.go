package course

import (
	"time"

	"github.com/shopspring/decimal"
)

type Course struct {
	ID          string          `json:"id" db:"course_id"`
	TeacherID   string          `json:"teacherId" db:"teacher_id"`
	Title       string          `json:"title" db:"title"`
	Description string          `json:"description" db:"description"`
	ImageURL    string          `json:"imageUrl" db:"image_url"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Published   bool            `json:"published" db:"published"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time       `json:"updatedAt" db:"updated_at"`
}

type CourseNew struct {
	TeacherID   string          `json:"teacherId" validate:"required,uuid4"`
	Title       string          `json:"title" validate:"required"`
	Description string          `json:"description"`
	ImageURL    string          `json:"imageUrl" validate:"omitempty,url"`
	Price       decimal.Decimal `json:"price"`
}
