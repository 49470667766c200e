package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const createStudentsTable = `
CREATE TABLE IF NOT EXISTS students (
	student_id    TEXT PRIMARY KEY,
	full_name     TEXT NOT NULL,
	email         TEXT UNIQUE NOT NULL,
	phone         TEXT NOT NULL DEFAULT '',
	password_hash TEXT NOT NULL,
	gender        TEXT NOT NULL DEFAULT '',
	department    TEXT NOT NULL DEFAULT '',
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const createTeachersTable = `
CREATE TABLE IF NOT EXISTS teachers (
	teacher_id    TEXT PRIMARY KEY,
	full_name     TEXT NOT NULL,
	email         TEXT UNIQUE NOT NULL,
	phone         TEXT NOT NULL DEFAULT '',
	password_hash TEXT NOT NULL,
	gender        TEXT NOT NULL DEFAULT '',
	department    TEXT NOT NULL DEFAULT '',
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Referential integrity for achievements is enforced by the application
// (student existence is checked before insert), not by foreign keys.
const createAchievementsTable = `
CREATE TABLE IF NOT EXISTS achievements (
	id                      BIGSERIAL PRIMARY KEY,
	teacher_id              TEXT NOT NULL,
	student_id              TEXT NOT NULL,
	achievement_type        TEXT NOT NULL,
	event_name              TEXT NOT NULL,
	achievement_date        DATE NOT NULL,
	organizer               TEXT NOT NULL,
	position                TEXT NOT NULL,
	achievement_description TEXT,
	certificate_path        TEXT,
	symposium_theme         TEXT,
	programming_language    TEXT,
	coding_platform         TEXT,
	paper_title             TEXT,
	journal_name            TEXT,
	conference_level        TEXT,
	conference_role         TEXT,
	team_size               INTEGER,
	project_title           TEXT,
	database_type           TEXT,
	difficulty_level        TEXT,
	other_description       TEXT,
	created_at              TIMESTAMPTZ NOT NULL DEFAULT now()
)`

var createIndexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_achievements_teacher_created ON achievements (teacher_id, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_achievements_teacher_date ON achievements (teacher_id, achievement_date DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_achievements_student ON achievements (student_id)`,
}

// Migrate creates the schema if it does not exist. It runs on every
// startup and is idempotent.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	statements := []struct {
		name string
		sql  string
	}{
		{"students", createStudentsTable},
		{"teachers", createTeachersTable},
		{"achievements", createAchievementsTable},
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt.sql); err != nil {
			return fmt.Errorf("create %s table: %w", stmt.name, err)
		}
	}

	for _, idx := range createIndexes {
		if _, err := db.ExecContext(ctx, idx); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}

	return nil
}
