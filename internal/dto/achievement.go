package dto

// SubmitAchievementRequest captures the multipart achievement form. The
// certificate file part travels separately. TeamSize stays a string here:
// the form may send it blank, and malformed numeric input must surface as
// a validation error rather than a binding crash.
type SubmitAchievementRequest struct {
	StudentID   string `form:"student_id" json:"student_id" validate:"required"`
	Type        string `form:"achievement_type" json:"achievement_type" validate:"required,oneof=technical symposium publication project other"`
	EventName   string `form:"event_name" json:"event_name" validate:"required"`
	Date        string `form:"achievement_date" json:"achievement_date" validate:"required,datetime=2006-01-02"`
	Organizer   string `form:"organizer" json:"organizer" validate:"required"`
	Position    string `form:"position" json:"position" validate:"required"`
	Description string `form:"achievement_description" json:"achievement_description"`

	SymposiumTheme      string `form:"symposium_theme" json:"symposium_theme"`
	ProgrammingLanguage string `form:"programming_language" json:"programming_language"`
	CodingPlatform      string `form:"coding_platform" json:"coding_platform"`
	PaperTitle          string `form:"paper_title" json:"paper_title"`
	JournalName         string `form:"journal_name" json:"journal_name"`
	ConferenceLevel     string `form:"conference_level" json:"conference_level"`
	ConferenceRole      string `form:"conference_role" json:"conference_role"`
	TeamSize            string `form:"team_size" json:"team_size"`
	ProjectTitle        string `form:"project_title" json:"project_title"`
	DatabaseType        string `form:"database_type" json:"database_type"`
	DifficultyLevel     string `form:"difficulty_level" json:"difficulty_level"`
	OtherDescription    string `form:"other_description" json:"other_description"`
}

// AchievementCreatedResponse acknowledges a stored achievement.
type AchievementCreatedResponse struct {
	ID              int64   `json:"id"`
	CertificatePath *string `json:"certificate_path,omitempty"`
}
