package models

import "time"

// ClassStatus is the review state of a submitted class.
type ClassStatus string

const (
	ClassStatusPending  ClassStatus = "Pending"
	ClassStatusApproved ClassStatus = "Approved"
	ClassStatusDenied   ClassStatus = "Denied"
)

// Valid reports whether the status is a known value.
func (s ClassStatus) Valid() bool {
	switch s {
	case ClassStatusPending, ClassStatusApproved, ClassStatusDenied:
		return true
	}
	return false
}

// CanTransitionTo reports whether the review state machine permits moving
// to next. Only Pending classes may be reviewed; Approved and Denied are
// terminal.
func (s ClassStatus) CanTransitionTo(next ClassStatus) bool {
	if s != ClassStatusPending {
		return false
	}
	return next == ClassStatusApproved || next == ClassStatusDenied
}

// Class is an instructor-submitted class offering.
type Class struct {
	ID              string      `db:"id" json:"id"`
	Title           string      `db:"title" json:"title"`
	ImageURL        string      `db:"image_url" json:"image,omitempty"`
	InstructorName  string      `db:"instructor_name" json:"instructorName"`
	InstructorEmail string      `db:"instructor_email" json:"instructorEmail"`
	AvailableSeats  int         `db:"available_seats" json:"availableSeats"`
	Price           float64     `db:"price" json:"price"`
	Status          ClassStatus `db:"status" json:"status"`
	Feedback        *string     `db:"feedback" json:"feedback,omitempty"`
	CreatedAt       time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time   `db:"updated_at" json:"updated_at"`
}
