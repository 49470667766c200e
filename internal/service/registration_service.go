package service

import (
	"context"
	"crypto/subtle"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/campushub/ams-api/internal/dto"
	"github.com/campushub/ams-api/internal/models"
	"github.com/campushub/ams-api/internal/repository"
	appErrors "github.com/campushub/ams-api/pkg/errors"
)

type registrationStudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
}

type registrationTeacherRepository interface {
	Create(ctx context.Context, teacher *models.Teacher) error
}

// RegistrationConfig carries the teacher sign-up gate.
type RegistrationConfig struct {
	TeacherCode string
}

// RegistrationService creates accounts for both populations. Teacher
// sign-up is additionally gated by a shared registration code.
type RegistrationService struct {
	students  registrationStudentRepository
	teachers  registrationTeacherRepository
	validator *validator.Validate
	logger    *zap.Logger
	config    RegistrationConfig
}

// NewRegistrationService constructs a RegistrationService.
func NewRegistrationService(students registrationStudentRepository, teachers registrationTeacherRepository, validate *validator.Validate, logger *zap.Logger, config RegistrationConfig) *RegistrationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &RegistrationService{
		students:  students,
		teachers:  teachers,
		validator: validate,
		logger:    logger,
		config:    config,
	}
}

// RegisterStudent validates and stores a new student account.
func (s *RegistrationService) RegisterStudent(ctx context.Context, req dto.RegisterStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid registration payload")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	student := &models.Student{
		ID:           req.ID,
		FullName:     req.FullName,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hash),
		Gender:       req.Gender,
		Department:   req.Department,
	}

	if err := s.students.Create(ctx, student); err != nil {
		return nil, mapStorageError(err, "This email or ID already exists")
	}

	s.logger.Info("student registered", zap.String("student_id", student.ID))
	return student, nil
}

// RegisterTeacher checks the registration code before storing the
// account. The comparison is constant-time; a mismatch is reported before
// any storage access.
func (s *RegistrationService) RegisterTeacher(ctx context.Context, req dto.RegisterTeacherRequest) (*models.Teacher, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid registration payload")
	}

	if subtle.ConstantTimeCompare([]byte(req.Code), []byte(s.config.TeacherCode)) != 1 {
		s.logger.Warn("invalid teacher registration code", zap.String("teacher_id", req.ID))
		return nil, appErrors.Clone(appErrors.ErrAuthCode, "Invalid Teacher Code. Registration denied.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	teacher := &models.Teacher{
		ID:           req.ID,
		FullName:     req.FullName,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hash),
		Gender:       req.Gender,
		Department:   req.Department,
	}

	if err := s.teachers.Create(ctx, teacher); err != nil {
		return nil, mapStorageError(err, "This email or ID already exists")
	}

	s.logger.Info("teacher registered", zap.String("teacher_id", teacher.ID))
	return teacher, nil
}

// mapStorageError converts engine faults into the error taxonomy:
// unique violations become duplicates naming the colliding field when the
// constraint reveals it, contention becomes a retryable busy signal,
// anything else is a storage fault.
func mapStorageError(err error, duplicateMessage string) error {
	switch {
	case repository.IsUniqueViolation(err):
		if field := repository.UniqueViolationField(err); field != "" {
			duplicateMessage = fmt.Sprintf("This %s already exists", field)
		}
		return appErrors.Clone(appErrors.ErrDuplicate, duplicateMessage)
	case repository.IsBusy(err):
		return appErrors.Wrap(err, appErrors.ErrStorageBusy.Code, appErrors.ErrStorageBusy.Status, appErrors.ErrStorageBusy.Message)
	}
	return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "Database error occurred")
}
