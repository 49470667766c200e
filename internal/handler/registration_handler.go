package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushub/ams-api/internal/dto"
	"github.com/campushub/ams-api/internal/models"
	appErrors "github.com/campushub/ams-api/pkg/errors"
	"github.com/campushub/ams-api/pkg/response"
)

type registrationService interface {
	RegisterStudent(ctx context.Context, req dto.RegisterStudentRequest) (*models.Student, error)
	RegisterTeacher(ctx context.Context, req dto.RegisterTeacherRequest) (*models.Teacher, error)
}

// RegistrationHandler wires the sign-up endpoints to the registration
// service.
type RegistrationHandler struct {
	service  registrationService
	firebase dto.FirebaseClientConfig
}

// NewRegistrationHandler creates a new handler.
func NewRegistrationHandler(svc registrationService, firebase dto.FirebaseClientConfig) *RegistrationHandler {
	return &RegistrationHandler{service: svc, firebase: firebase}
}

// RegisterStudent godoc
// @Summary Register student account
// @Tags Registration
// @Accept json
// @Produce json
// @Param payload body dto.RegisterStudentRequest true "Student sign-up payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /register/student [post]
func (h *RegistrationHandler) RegisterStudent(c *gin.Context) {
	var req dto.RegisterStudentRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid registration payload"))
		return
	}

	student, err := h.service.RegisterStudent(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, student)
}

// RegisterTeacher godoc
// @Summary Register teacher account
// @Description Teacher sign-up requires the shared registration code
// @Tags Registration
// @Accept json
// @Produce json
// @Param payload body dto.RegisterTeacherRequest true "Teacher sign-up payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /register/teacher [post]
func (h *RegistrationHandler) RegisterTeacher(c *gin.Context) {
	var req dto.RegisterTeacherRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid registration payload"))
		return
	}

	teacher, err := h.service.RegisterTeacher(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, teacher)
}

// StudentForm godoc
// @Summary Student sign-up form intent
// @Description Field listing plus the Firebase client config the form needs
// @Tags Registration
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /register/student [get]
func (h *RegistrationHandler) StudentForm(c *gin.Context) {
	response.JSON(c, http.StatusOK, dto.RegistrationFormIntent{
		Role:           string(models.RoleStudent),
		RequiredFields: []string{"student_id", "student_name", "email", "password"},
		OptionalFields: []string{"phone_number", "student_gender", "student_dept"},
		Firebase:       h.firebase,
	})
}

// TeacherForm godoc
// @Summary Teacher sign-up form intent
// @Tags Registration
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /register/teacher [get]
func (h *RegistrationHandler) TeacherForm(c *gin.Context) {
	response.JSON(c, http.StatusOK, dto.RegistrationFormIntent{
		Role:           string(models.RoleTeacher),
		RequiredFields: []string{"teacher_id", "teacher_name", "email", "password", "teacher_code"},
		OptionalFields: []string{"phone_number", "teacher_gender", "teacher_dept"},
		Firebase:       h.firebase,
	})
}
