package models

import "time"

// Student represents a learner account in the students table.
type Student struct {
	ID           string    `db:"student_id" json:"student_id"`
	FullName     string    `db:"full_name" json:"full_name"`
	Email        string    `db:"email" json:"email"`
	Phone        string    `db:"phone" json:"phone,omitempty"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Gender       string    `db:"gender" json:"gender,omitempty"`
	Department   string    `db:"department" json:"department,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
