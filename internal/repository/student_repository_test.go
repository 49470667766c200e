package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/ams-api/internal/models"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	sqlxdb := sqlx.NewDb(db, "sqlmock")
	return sqlxdb, mock, func() {
		db.Close()
	}
}

func studentRows(now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"student_id", "full_name", "email", "phone", "password_hash", "gender", "department", "created_at"}).
		AddRow("S001", "Asha Rao", "asha@example.com", "555-0100", "hash", "F", "CSE", now)
}

func TestStudentFindByID(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT student_id, full_name, email, phone, password_hash, gender, department, created_at FROM students WHERE student_id = $1 LIMIT 1")).
		WithArgs("S001").
		WillReturnRows(studentRows(time.Now()))

	student, err := repo.FindByID(context.Background(), "S001")
	require.NoError(t, err)
	assert.Equal(t, "S001", student.ID)
	assert.Equal(t, "Asha Rao", student.FullName)
	assert.Equal(t, "hash", student.PasswordHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentFindByIDNotFound(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery("SELECT .* FROM students WHERE student_id").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentFindByEmail(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery("SELECT .* FROM students WHERE email").
		WithArgs("asha@example.com").
		WillReturnRows(studentRows(time.Now()))

	student, err := repo.FindByEmail(context.Background(), "asha@example.com")
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", student.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentCreate(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectExec("INSERT INTO students").
		WithArgs("S001", "Asha Rao", "asha@example.com", "555-0100", "hash", "F", "CSE").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Create(context.Background(), &models.Student{
		ID:           "S001",
		FullName:     "Asha Rao",
		Email:        "asha@example.com",
		Phone:        "555-0100",
		PasswordHash: "hash",
		Gender:       "F",
		Department:   "CSE",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentCreateDuplicate(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectExec("INSERT INTO students").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "students_email_key"})

	err := repo.Create(context.Background(), &models.Student{ID: "S001", Email: "asha@example.com"})
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))
	assert.False(t, IsBusy(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentExists(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS (SELECT 1 FROM students WHERE student_id = $1)")).
		WithArgs("S001").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.Exists(context.Background(), "S001")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
