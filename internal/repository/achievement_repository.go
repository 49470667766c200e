package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/campushub/ams-api/internal/models"
)

const summaryColumns = `a.id, a.student_id, s.full_name AS student_name, a.achievement_type,
	a.event_name, a.achievement_date, a.organizer, a.position, a.certificate_path, a.created_at`

// AchievementRepository manages the append-only achievements table. Rows
// are never updated or deleted.
type AchievementRepository struct {
	db *sqlx.DB
}

// NewAchievementRepository constructs an AchievementRepository.
func NewAchievementRepository(db *sqlx.DB) *AchievementRepository {
	return &AchievementRepository{db: db}
}

// Insert records one achievement and returns the generated id. created_at
// is set by the database.
func (r *AchievementRepository) Insert(ctx context.Context, a *models.Achievement) (int64, error) {
	const query = `
INSERT INTO achievements (
	teacher_id, student_id, achievement_type, event_name, achievement_date,
	organizer, position, achievement_description, certificate_path,
	symposium_theme, programming_language, coding_platform, paper_title,
	journal_name, conference_level, conference_role, team_size,
	project_title, database_type, difficulty_level, other_description
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
RETURNING id`
	var id int64
	if err := r.db.GetContext(ctx, &id, query,
		a.TeacherID, a.StudentID, a.Type, a.EventName, a.Date,
		a.Organizer, a.Position, a.Description, a.CertificatePath,
		a.SymposiumTheme, a.ProgrammingLanguage, a.CodingPlatform, a.PaperTitle,
		a.JournalName, a.ConferenceLevel, a.ConferenceRole, a.TeamSize,
		a.ProjectTitle, a.DatabaseType, a.DifficultyLevel, a.OtherDescription,
	); err != nil {
		return 0, fmt.Errorf("insert achievement: %w", err)
	}
	return id, nil
}

// Stats returns the dashboard aggregates for one teacher: total rows,
// distinct students, and rows whose achievement_date falls in the last
// seven days. Three independent reads; the numbers are advisory, so no
// transaction.
func (r *AchievementRepository) Stats(ctx context.Context, teacherID string) (*models.TeacherStats, error) {
	var stats models.TeacherStats

	if err := r.db.GetContext(ctx, &stats.Total,
		`SELECT COUNT(*) FROM achievements WHERE teacher_id = $1`, teacherID); err != nil {
		return nil, fmt.Errorf("count achievements: %w", err)
	}
	if err := r.db.GetContext(ctx, &stats.UniqueStudents,
		`SELECT COUNT(DISTINCT student_id) FROM achievements WHERE teacher_id = $1`, teacherID); err != nil {
		return nil, fmt.Errorf("count students managed: %w", err)
	}
	if err := r.db.GetContext(ctx, &stats.ThisWeek,
		`SELECT COUNT(*) FROM achievements WHERE teacher_id = $1 AND achievement_date >= CURRENT_DATE - 7`, teacherID); err != nil {
		return nil, fmt.Errorf("count this week: %w", err)
	}

	return &stats, nil
}

// Recent returns the teacher's latest entries by recording time.
func (r *AchievementRepository) Recent(ctx context.Context, teacherID string, limit int) ([]models.AchievementSummary, error) {
	query := fmt.Sprintf(`
SELECT %s
FROM achievements a
JOIN students s ON s.student_id = a.student_id
WHERE a.teacher_id = $1
ORDER BY a.created_at DESC
LIMIT $2`, summaryColumns)

	var rows []models.AchievementSummary
	if err := r.db.SelectContext(ctx, &rows, query, teacherID, limit); err != nil {
		return nil, fmt.Errorf("list recent achievements: %w", err)
	}
	return rows, nil
}

// AllByTeacher returns every achievement the teacher recorded, newest
// event first.
func (r *AchievementRepository) AllByTeacher(ctx context.Context, teacherID string) ([]models.AchievementSummary, error) {
	query := fmt.Sprintf(`
SELECT %s
FROM achievements a
JOIN students s ON s.student_id = a.student_id
WHERE a.teacher_id = $1
ORDER BY a.achievement_date DESC`, summaryColumns)

	var rows []models.AchievementSummary
	if err := r.db.SelectContext(ctx, &rows, query, teacherID); err != nil {
		return nil, fmt.Errorf("list achievements: %w", err)
	}
	return rows, nil
}
