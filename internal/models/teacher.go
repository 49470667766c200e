package models

import "time"

// Teacher represents a staff account in the teachers table.
type Teacher struct {
	ID           string    `db:"teacher_id" json:"teacher_id"`
	FullName     string    `db:"full_name" json:"full_name"`
	Email        string    `db:"email" json:"email"`
	Phone        string    `db:"phone" json:"phone,omitempty"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Gender       string    `db:"gender" json:"gender,omitempty"`
	Department   string    `db:"department" json:"department,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
