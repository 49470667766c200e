package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/campushub/ams-api/internal/models"
)

const studentColumns = `student_id, full_name, email, phone, password_hash, gender, department, created_at`

// StudentRepository manages persistence for student accounts.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// FindByID returns a student by their role-scoped identifier.
func (r *StudentRepository) FindByID(ctx context.Context, id string) (*models.Student, error) {
	query := fmt.Sprintf(`SELECT %s FROM students WHERE student_id = $1 LIMIT 1`, studentColumns)
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find student by id: %w", err)
	}
	return &student, nil
}

// FindByEmail returns a student by email address. Federated login resolves
// accounts this way.
func (r *StudentRepository) FindByEmail(ctx context.Context, email string) (*models.Student, error) {
	query := fmt.Sprintf(`SELECT %s FROM students WHERE email = $1 LIMIT 1`, studentColumns)
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, email); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find student by email: %w", err)
	}
	return &student, nil
}

// Create inserts a new student account. The password hash is supplied by
// the caller; this layer never sees plaintext. Constraint and contention
// errors stay classifiable through the wrap.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	const query = `
INSERT INTO students (student_id, full_name, email, phone, password_hash, gender, department)
VALUES (:student_id, :full_name, :email, :phone, :password_hash, :gender, :department)`
	if _, err := r.db.NamedExecContext(ctx, query, student); err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

// Exists reports whether a student id is registered.
func (r *StudentRepository) Exists(ctx context.Context, id string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM students WHERE student_id = $1)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, id); err != nil {
		return false, fmt.Errorf("check student exists: %w", err)
	}
	return exists, nil
}
