package models

import "time"

// Recognised achievement categories. Each category unlocks its own group
// of optional detail fields on the submission form.
const (
	AchievementTechnical   = "technical"
	AchievementSymposium   = "symposium"
	AchievementPublication = "publication"
	AchievementProject     = "project"
	AchievementOther       = "other"
)

// AchievementTypes lists the accepted achievement_type values.
var AchievementTypes = []string{
	AchievementTechnical,
	AchievementSymposium,
	AchievementPublication,
	AchievementProject,
	AchievementOther,
}

// Achievement is one recorded student accomplishment. Rows are append-only:
// there are no update or delete paths.
type Achievement struct {
	ID                  int64     `db:"id" json:"id"`
	TeacherID           string    `db:"teacher_id" json:"teacher_id"`
	StudentID           string    `db:"student_id" json:"student_id"`
	Type                string    `db:"achievement_type" json:"achievement_type"`
	EventName           string    `db:"event_name" json:"event_name"`
	Date                time.Time `db:"achievement_date" json:"achievement_date"`
	Organizer           string    `db:"organizer" json:"organizer"`
	Position            string    `db:"position" json:"position"`
	Description         *string   `db:"achievement_description" json:"achievement_description,omitempty"`
	CertificatePath     *string   `db:"certificate_path" json:"certificate_path,omitempty"`
	SymposiumTheme      *string   `db:"symposium_theme" json:"symposium_theme,omitempty"`
	ProgrammingLanguage *string   `db:"programming_language" json:"programming_language,omitempty"`
	CodingPlatform      *string   `db:"coding_platform" json:"coding_platform,omitempty"`
	PaperTitle          *string   `db:"paper_title" json:"paper_title,omitempty"`
	JournalName         *string   `db:"journal_name" json:"journal_name,omitempty"`
	ConferenceLevel     *string   `db:"conference_level" json:"conference_level,omitempty"`
	ConferenceRole      *string   `db:"conference_role" json:"conference_role,omitempty"`
	TeamSize            *int      `db:"team_size" json:"team_size,omitempty"`
	ProjectTitle        *string   `db:"project_title" json:"project_title,omitempty"`
	DatabaseType        *string   `db:"database_type" json:"database_type,omitempty"`
	DifficultyLevel     *string   `db:"difficulty_level" json:"difficulty_level,omitempty"`
	OtherDescription    *string   `db:"other_description" json:"other_description,omitempty"`
	CreatedAt           time.Time `db:"created_at" json:"created_at"`
}

// AchievementSummary is the joined row shown on dashboard listings: the
// achievement plus the student's display name.
type AchievementSummary struct {
	ID              int64     `db:"id" json:"id"`
	StudentID       string    `db:"student_id" json:"student_id"`
	StudentName     string    `db:"student_name" json:"student_name"`
	Type            string    `db:"achievement_type" json:"achievement_type"`
	EventName       string    `db:"event_name" json:"event_name"`
	Date            time.Time `db:"achievement_date" json:"achievement_date"`
	Organizer       string    `db:"organizer" json:"organizer"`
	Position        string    `db:"position" json:"position"`
	CertificatePath *string   `db:"certificate_path" json:"certificate_path,omitempty"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// TeacherStats carries the dashboard aggregates for one teacher. The
// numbers are advisory and read without a transaction.
type TeacherStats struct {
	Total          int `db:"total" json:"total_achievements"`
	UniqueStudents int `db:"unique_students" json:"students_managed"`
	ThisWeek       int `db:"this_week" json:"this_week"`
}
