package models

import "time"

// SelectedClass is a cart entry: a class a student picked but has not paid
// for yet. It is deleted on explicit removal or at payment time.
type SelectedClass struct {
	ID           string    `db:"id" json:"id"`
	StudentEmail string    `db:"student_email" json:"studentEmail"`
	ClassID      string    `db:"class_id" json:"classId"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// SelectedClassDetail joins in the class fields the cart page renders.
type SelectedClassDetail struct {
	SelectedClass
	ClassTitle     string  `db:"class_title" json:"classTitle"`
	ImageURL       string  `db:"image_url" json:"image,omitempty"`
	InstructorName string  `db:"instructor_name" json:"instructorName"`
	Price          float64 `db:"price" json:"price"`
	AvailableSeats int     `db:"available_seats" json:"availableSeats"`
}
