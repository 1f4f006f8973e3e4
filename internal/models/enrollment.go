package models

import "time"

// EnrolledClass is a paid enrollment. Rows are created exactly once per
// (student, class) pair at payment time and never updated or deleted; the
// unique key makes payment retries converge instead of duplicating.
type EnrolledClass struct {
	ID            string    `db:"id" json:"id"`
	StudentEmail  string    `db:"student_email" json:"studentEmail"`
	ClassID       string    `db:"class_id" json:"classId"`
	ClassTitle    string    `db:"class_title" json:"classTitle"`
	TransactionID string    `db:"transaction_id" json:"transactionId"`
	AmountMinor   int64     `db:"amount_minor" json:"amountMinor"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}
