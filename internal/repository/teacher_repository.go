package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/campushub/ams-api/internal/models"
)

const teacherColumns = `teacher_id, full_name, email, phone, password_hash, gender, department, created_at`

// TeacherRepository manages persistence for teacher accounts. There is no
// email lookup: teachers sign in with their id only.
type TeacherRepository struct {
	db *sqlx.DB
}

// NewTeacherRepository constructs a TeacherRepository.
func NewTeacherRepository(db *sqlx.DB) *TeacherRepository {
	return &TeacherRepository{db: db}
}

// FindByID returns a teacher by their role-scoped identifier.
func (r *TeacherRepository) FindByID(ctx context.Context, id string) (*models.Teacher, error) {
	query := fmt.Sprintf(`SELECT %s FROM teachers WHERE teacher_id = $1 LIMIT 1`, teacherColumns)
	var teacher models.Teacher
	if err := r.db.GetContext(ctx, &teacher, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find teacher by id: %w", err)
	}
	return &teacher, nil
}

// Create inserts a new teacher account. The registration code gate has
// already been checked by the caller.
func (r *TeacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	const query = `
INSERT INTO teachers (teacher_id, full_name, email, phone, password_hash, gender, department)
VALUES (:teacher_id, :full_name, :email, :phone, :password_hash, :gender, :department)`
	if _, err := r.db.NamedExecContext(ctx, query, teacher); err != nil {
		return fmt.Errorf("create teacher: %w", err)
	}
	return nil
}
