package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/campushub/ams-api/internal/identity"
	"github.com/campushub/ams-api/internal/models"
	appErrors "github.com/campushub/ams-api/pkg/errors"
)

type authStudentRepository interface {
	FindByID(ctx context.Context, id string) (*models.Student, error)
	FindByEmail(ctx context.Context, email string) (*models.Student, error)
}

type authTeacherRepository interface {
	FindByID(ctx context.Context, id string) (*models.Teacher, error)
}

type tokenVerifier interface {
	Verify(ctx context.Context, idToken string) (*identity.VerifiedClaim, error)
}

// AuthConfig defines configuration for session token issuance.
type AuthConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

// AuthService provides the login flows for both account populations and
// session token handling. Local login is deliberately undifferentiated:
// an unknown id and a wrong password produce the same error.
type AuthService struct {
	students  authStudentRepository
	teachers  authTeacherRepository
	verifier  tokenVerifier
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(students authStudentRepository, teachers authTeacherRepository, verifier tokenVerifier, validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AuthService{
		students:  students,
		teachers:  teachers,
		verifier:  verifier,
		validator: validate,
		logger:    logger,
		config:    config,
	}
}

// LoginStudent authenticates a student by id and password.
func (s *AuthService) LoginStudent(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}

	student, err := s.students.FindByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "Invalid credentials. Please try again.")
		}
		return nil, mapStorageError(err, "")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(student.PasswordHash), []byte(req.Password)); err != nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "Invalid credentials. Please try again.")
	}

	return s.issueSession(models.Identity{
		Role:       models.RoleStudent,
		ID:         student.ID,
		FullName:   student.FullName,
		Department: student.Department,
	})
}

// LoginTeacher authenticates a teacher by id and password.
func (s *AuthService) LoginTeacher(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}

	teacher, err := s.teachers.FindByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "Invalid credentials. Please try again.")
		}
		return nil, mapStorageError(err, "")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(teacher.PasswordHash), []byte(req.Password)); err != nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "Invalid credentials. Please try again.")
	}

	return s.issueSession(models.Identity{
		Role:       models.RoleTeacher,
		ID:         teacher.ID,
		FullName:   teacher.FullName,
		Department: teacher.Department,
	})
}

// LoginFederated signs a student in with a Google-issued identity token.
// Teachers have no federated path; accounts are matched by verified email.
func (s *AuthService) LoginFederated(ctx context.Context, req models.FederatedLoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Email is required")
	}

	claim, err := s.verifier.Verify(ctx, req.IDToken)
	if err != nil {
		s.logger.Warn("identity token verification failed", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidToken.Code, appErrors.ErrInvalidToken.Status, "Invalid token")
	}
	if !claim.Skipped && claim.Email != req.Email {
		s.logger.Warn("identity email mismatch",
			zap.String("verified", claim.Email),
			zap.String("claimed", req.Email))
		return nil, appErrors.Clone(appErrors.ErrEmailMismatch, "Identity verification failed")
	}

	student, err := s.students.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNoAccount,
				fmt.Sprintf("No student account found for %s. Please register first.", req.Email))
		}
		return nil, mapStorageError(err, "")
	}

	return s.issueSession(models.Identity{
		Role:       models.RoleStudent,
		ID:         student.ID,
		FullName:   student.FullName,
		Department: student.Department,
		Federated:  true,
	})
}

// ValidateToken parses and validates a session token returning the claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid session token")
	}

	claims, ok := token.Claims.(*models.SessionClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid session claims")
	}

	return claims, nil
}

func (s *AuthService) issueSession(id models.Identity) (*models.LoginResponse, error) {
	issuedAt := time.Now().UTC()
	expiresAt := issuedAt.Add(s.config.Expiration)
	claims := &models.SessionClaims{
		Role:       id.Role,
		FullName:   id.FullName,
		Department: id.Department,
		Federated:  id.Federated,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   id.ID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create session token")
	}

	return &models.LoginResponse{
		Token:     signed,
		ExpiresIn: int64(s.config.Expiration.Seconds()),
		IssuedAt:  issuedAt,
		User:      id,
	}, nil
}
