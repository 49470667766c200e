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

const studentDashboardRedirect = "/student-dashboard"

type authService interface {
	LoginStudent(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
	LoginTeacher(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
	LoginFederated(ctx context.Context, req models.FederatedLoginRequest) (*models.LoginResponse, error)
}

// AuthHandler wires the login endpoints to the auth service.
type AuthHandler struct {
	service  authService
	firebase dto.FirebaseClientConfig
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc authService, firebase dto.FirebaseClientConfig) *AuthHandler {
	return &AuthHandler{service: svc, firebase: firebase}
}

// StudentLogin godoc
// @Summary Authenticate student
// @Description Authenticate a student by id and password
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Login payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/student/login [post]
func (h *AuthHandler) StudentLogin(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid login payload"))
		return
	}

	res, err := h.service.LoginStudent(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res)
}

// TeacherLogin godoc
// @Summary Authenticate teacher
// @Description Authenticate a teacher by id and password
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Login payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/teacher/login [post]
func (h *AuthHandler) TeacherLogin(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid login payload"))
		return
	}

	res, err := h.service.LoginTeacher(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res)
}

// GoogleLogin godoc
// @Summary Google sign-in for students
// @Description Exchange a Firebase-verified Google identity for a session. Responses keep the flat {success, message, redirectUrl} contract.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.FederatedLoginRequest true "Federated login payload"
// @Success 200 {object} dto.FederatedLoginResponse
// @Failure 400 {object} dto.FederatedLoginResponse
// @Failure 401 {object} dto.FederatedLoginResponse
// @Failure 404 {object} dto.FederatedLoginResponse
// @Router /auth/google-login [post]
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	var req models.FederatedLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.FederatedLoginResponse{Success: false, Message: "invalid request payload"})
		return
	}

	res, err := h.service.LoginFederated(c.Request.Context(), req)
	if err != nil {
		appErr := appErrors.FromError(err)
		c.JSON(appErr.Status, dto.FederatedLoginResponse{Success: false, Message: appErr.Message})
		return
	}

	c.JSON(http.StatusOK, dto.FederatedLoginResponse{
		Success:     true,
		Message:     "Student logged in successfully",
		RedirectURL: studentDashboardRedirect,
		Token:       res.Token,
	})
}

// Logout godoc
// @Summary Sign out
// @Description Acknowledge sign-out. Sessions are stateless bearer tokens, clients simply drop theirs.
// @Tags Authentication
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out successfully"})
}

// FirebaseConfig godoc
// @Summary Public Firebase client configuration
// @Description Serve the config blob browsers need to initialise the Firebase SDK
// @Tags Authentication
// @Produce json
// @Success 200 {object} dto.FirebaseClientConfig
// @Router /auth/firebase-config [get]
func (h *AuthHandler) FirebaseConfig(c *gin.Context) {
	c.JSON(http.StatusOK, h.firebase)
}

// Me godoc
// @Summary Current session identity
// @Tags Authentication
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	response.JSON(c, http.StatusOK, claims.Identity())
}
