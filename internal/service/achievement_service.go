package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campushub/ams-api/internal/dto"
	"github.com/campushub/ams-api/internal/models"
	appErrors "github.com/campushub/ams-api/pkg/errors"
	"github.com/campushub/ams-api/pkg/export"
	"github.com/campushub/ams-api/pkg/storage"
)

const achievementDateLayout = "2006-01-02"

// Recent listing bounds. The dashboard shows five entries; the limit query
// parameter can widen that up to the cap.
const (
	defaultRecentLimit = 5
	maxRecentLimit     = 50
)

// AchievementRepository describes the persistence layer required by AchievementService.
type AchievementRepository interface {
	Insert(ctx context.Context, a *models.Achievement) (int64, error)
	Stats(ctx context.Context, teacherID string) (*models.TeacherStats, error)
	Recent(ctx context.Context, teacherID string, limit int) ([]models.AchievementSummary, error)
	AllByTeacher(ctx context.Context, teacherID string) ([]models.AchievementSummary, error)
}

type achievementStudentRepository interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// CertificateStore persists uploaded certificate files.
type CertificateStore interface {
	Save(fh *multipart.FileHeader) (string, error)
	Open(name string) (*os.File, error)
	Delete(name string) error
}

// AchievementService records student accomplishments on behalf of teachers
// and serves the dashboard reads built on them.
type AchievementService struct {
	repo         AchievementRepository
	students     achievementStudentRepository
	certificates CertificateStore
	cache        *CacheService
	metrics      *MetricsService
	validator    *validator.Validate
	logger       *zap.Logger
	csv          csvRenderer
	pdf          pdfRenderer
}

// NewAchievementService constructs an achievement service.
func NewAchievementService(repo AchievementRepository, students achievementStudentRepository, certificates CertificateStore, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *AchievementService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AchievementService{
		repo:         repo,
		students:     students,
		certificates: certificates,
		cache:        cache,
		metrics:      metrics,
		validator:    validate,
		logger:       logger,
		csv:          export.NewCSVExporter(),
		pdf:          export.NewPDFExporter(),
	}
}

// Record validates and stores one achievement for the teacher. A certificate
// upload, when present, is persisted before the row; the stored file is
// removed again if the insert fails so no orphan remains.
func (s *AchievementService) Record(ctx context.Context, teacherID string, req dto.SubmitAchievementRequest, certificate *multipart.FileHeader) (*dto.AchievementCreatedResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid achievement payload")
	}

	teamSize, err := parseTeamSize(req.TeamSize)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "team_size must be a whole number")
	}

	date, err := time.Parse(achievementDateLayout, req.Date)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "achievement_date must use YYYY-MM-DD")
	}

	exists, err := s.students.Exists(ctx, req.StudentID)
	if err != nil {
		return nil, mapStorageError(err, "")
	}
	if !exists {
		return nil, appErrors.Clone(appErrors.ErrUnknownStudent, "Student ID does not exist in the system.")
	}

	var certificatePath *string
	if certificate != nil {
		stored, err := s.certificates.Save(certificate)
		switch {
		case err == nil:
			certificatePath = &stored
			if s.metrics != nil {
				s.metrics.RecordUpload("stored")
			}
		case errors.Is(err, storage.ErrExtensionNotAllowed):
			if s.metrics != nil {
				s.metrics.RecordUpload("rejected")
			}
			return nil, appErrors.Clone(appErrors.ErrValidation, "Invalid file type. Please upload PDF, PNG, JPG, or JPEG files.")
		case errors.Is(err, storage.ErrFileTooLarge):
			if s.metrics != nil {
				s.metrics.RecordUpload("rejected")
			}
			return nil, appErrors.Clone(appErrors.ErrValidation, "Certificate file is too large.")
		default:
			if s.metrics != nil {
				s.metrics.RecordUpload("failed")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to store certificate")
		}
	}

	achievement := &models.Achievement{
		TeacherID:           teacherID,
		StudentID:           req.StudentID,
		Type:                req.Type,
		EventName:           req.EventName,
		Date:                date,
		Organizer:           req.Organizer,
		Position:            req.Position,
		Description:         optionalString(req.Description),
		CertificatePath:     certificatePath,
		SymposiumTheme:      optionalString(req.SymposiumTheme),
		ProgrammingLanguage: optionalString(req.ProgrammingLanguage),
		CodingPlatform:      optionalString(req.CodingPlatform),
		PaperTitle:          optionalString(req.PaperTitle),
		JournalName:         optionalString(req.JournalName),
		ConferenceLevel:     optionalString(req.ConferenceLevel),
		ConferenceRole:      optionalString(req.ConferenceRole),
		TeamSize:            teamSize,
		ProjectTitle:        optionalString(req.ProjectTitle),
		DatabaseType:        optionalString(req.DatabaseType),
		DifficultyLevel:     optionalString(req.DifficultyLevel),
		OtherDescription:    optionalString(req.OtherDescription),
	}

	start := time.Now()
	id, err := s.repo.Insert(ctx, achievement)
	if err != nil {
		if certificatePath != nil {
			if delErr := s.certificates.Delete(*certificatePath); delErr != nil {
				s.logger.Warn("orphaned certificate left behind", zap.String("path", *certificatePath), zap.Error(delErr))
			}
		}
		return nil, mapStorageError(err, "")
	}
	if s.metrics != nil {
		s.metrics.ObserveDBQuery("achievement_insert", time.Since(start))
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, dashboardCachePattern(teacherID))
	}

	s.logger.Info("achievement recorded",
		zap.Int64("achievement_id", id),
		zap.String("teacher_id", teacherID),
		zap.String("student_id", req.StudentID),
		zap.String("achievement_type", req.Type))

	return &dto.AchievementCreatedResponse{ID: id, CertificatePath: certificatePath}, nil
}

// Stats returns the teacher's dashboard aggregates. The boolean indicates
// whether data originated from cache.
func (s *AchievementService) Stats(ctx context.Context, teacherID string) (*models.TeacherStats, bool, error) {
	cacheKey := makeDashboardCacheKey("stats", teacherID)
	if s.cache != nil {
		var cached models.TeacherStats
		if s.cache.Get(ctx, cacheKey, &cached) {
			return &cached, true, nil
		}
	}

	start := time.Now()
	stats, err := s.repo.Stats(ctx, teacherID)
	if err != nil {
		return nil, false, mapStorageError(err, "")
	}
	if s.metrics != nil {
		s.metrics.ObserveDBQuery("dashboard_stats", time.Since(start))
	}
	if s.cache != nil {
		s.cache.Set(ctx, cacheKey, stats, 0)
	}
	return stats, false, nil
}

// Recent returns the teacher's latest recorded achievements. A non-positive
// limit applies the dashboard default.
func (s *AchievementService) Recent(ctx context.Context, teacherID string, limit int) ([]models.AchievementSummary, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}

	start := time.Now()
	summaries, err := s.repo.Recent(ctx, teacherID, limit)
	if err != nil {
		return nil, mapStorageError(err, "")
	}
	if s.metrics != nil {
		s.metrics.ObserveDBQuery("achievements_recent", time.Since(start))
	}
	if summaries == nil {
		summaries = []models.AchievementSummary{}
	}
	return summaries, nil
}

// All returns every achievement the teacher recorded, newest event first.
func (s *AchievementService) All(ctx context.Context, teacherID string) ([]models.AchievementSummary, error) {
	start := time.Now()
	summaries, err := s.repo.AllByTeacher(ctx, teacherID)
	if err != nil {
		return nil, mapStorageError(err, "")
	}
	if s.metrics != nil {
		s.metrics.ObserveDBQuery("achievements_all", time.Since(start))
	}
	if summaries == nil {
		summaries = []models.AchievementSummary{}
	}
	return summaries, nil
}

// OpenCertificate resolves a stored certificate file for download. Only the
// basename of the recorded path is honoured.
func (s *AchievementService) OpenCertificate(name string) (*os.File, error) {
	if s.certificates == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "Certificate not found")
	}
	f, err := s.certificates.Open(name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Certificate not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to open certificate")
	}
	return f, nil
}

// parseTeamSize interprets the optional team_size form value. Blank means
// not provided; anything else must parse as an integer.
func parseTeamSize(raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("parse team_size %q: %w", raw, err)
	}
	return &n, nil
}

func optionalString(v string) *string {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	return &v
}

func makeDashboardCacheKey(parts ...string) string {
	var builder strings.Builder
	builder.Grow(len(parts) * 16)
	builder.WriteString("dashboard")
	for _, part := range parts {
		if part == "" {
			continue
		}
		builder.WriteByte(':')
		builder.WriteString(strings.ReplaceAll(part, ":", "|"))
	}
	return builder.String()
}

// dashboardCachePattern matches every dashboard key cached for the teacher.
func dashboardCachePattern(teacherID string) string {
	return fmt.Sprintf("dashboard:*:%s", strings.ReplaceAll(teacherID, ":", "|"))
}
