package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"github.com/campushub/ams-api/internal/dto"
	"github.com/campushub/ams-api/internal/middleware"
	"github.com/campushub/ams-api/internal/models"
	appErrors "github.com/campushub/ams-api/pkg/errors"
)

type fakeAuthSrv struct {
	studentResp   *models.LoginResponse
	studentErr    error
	teacherResp   *models.LoginResponse
	teacherErr    error
	federatedResp *models.LoginResponse
	federatedErr  error
	lastLocal     models.LoginRequest
	lastFederated models.FederatedLoginRequest
}

func (f *fakeAuthSrv) LoginStudent(_ context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	f.lastLocal = req
	return f.studentResp, f.studentErr
}

func (f *fakeAuthSrv) LoginTeacher(_ context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	f.lastLocal = req
	return f.teacherResp, f.teacherErr
}

func (f *fakeAuthSrv) LoginFederated(_ context.Context, req models.FederatedLoginRequest) (*models.LoginResponse, error) {
	f.lastFederated = req
	return f.federatedResp, f.federatedErr
}

func jsonRequest(method, target, payload string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestAuthHandlerStudentLoginSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service := &fakeAuthSrv{
		studentResp: &models.LoginResponse{
			Token: "signed-token",
			User:  models.Identity{Role: models.RoleStudent, ID: "S001", FullName: "Asha Rao"},
		},
	}
	handler := NewAuthHandler(service, dto.FirebaseClientConfig{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = jsonRequest(http.MethodPost, "/auth/student/login", `{"id":"S001","password":"pw"}`)

	handler.StudentLogin(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "S001", service.lastLocal.ID)

	var envelope responseEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &envelope)
	data := envelope.Data.(map[string]interface{})
	assert.Equal(t, "signed-token", data["token"])
}

func TestAuthHandlerStudentLoginMalformedBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewAuthHandler(&fakeAuthSrv{}, dto.FirebaseClientConfig{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = jsonRequest(http.MethodPost, "/auth/student/login", `{"id":`)

	handler.StudentLogin(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var envelope responseEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &envelope)
	assert.Equal(t, "VALIDATION_ERROR", envelope.Error.Code)
}

func TestAuthHandlerTeacherLoginRejected(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service := &fakeAuthSrv{
		teacherErr: appErrors.Clone(appErrors.ErrInvalidCredentials, "Invalid credentials. Please try again."),
	}
	handler := NewAuthHandler(service, dto.FirebaseClientConfig{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = jsonRequest(http.MethodPost, "/auth/teacher/login", `{"id":"T042","password":"wrong"}`)

	handler.TeacherLogin(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	var envelope responseEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &envelope)
	assert.Equal(t, "INVALID_CREDENTIALS", envelope.Error.Code)
	assert.Equal(t, "Invalid credentials. Please try again.", envelope.Error.Message)
}

func TestAuthHandlerGoogleLoginSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service := &fakeAuthSrv{
		federatedResp: &models.LoginResponse{
			Token: "signed-token",
			User:  models.Identity{Role: models.RoleStudent, ID: "S001", Federated: true},
		},
	}
	handler := NewAuthHandler(service, dto.FirebaseClientConfig{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = jsonRequest(http.MethodPost, "/auth/google-login",
		`{"email":"asha@example.edu","uid":"uid-1","idToken":"token"}`)

	handler.GoogleLogin(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "asha@example.edu", service.lastFederated.Email)

	var body dto.FederatedLoginResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	assert.True(t, body.Success)
	assert.Equal(t, "Student logged in successfully", body.Message)
	assert.Equal(t, "/student-dashboard", body.RedirectURL)
	assert.Equal(t, "signed-token", body.Token)
}

func TestAuthHandlerGoogleLoginNoAccount(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service := &fakeAuthSrv{
		federatedErr: appErrors.Clone(appErrors.ErrNoAccount,
			"No student account found for ghost@example.edu. Please register first."),
	}
	handler := NewAuthHandler(service, dto.FirebaseClientConfig{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = jsonRequest(http.MethodPost, "/auth/google-login", `{"email":"ghost@example.edu"}`)

	handler.GoogleLogin(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var body dto.FederatedLoginResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	assert.False(t, body.Success)
	assert.Equal(t, "No student account found for ghost@example.edu. Please register first.", body.Message)
	assert.Empty(t, body.RedirectURL)
}

func TestAuthHandlerGoogleLoginMalformedBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewAuthHandler(&fakeAuthSrv{}, dto.FirebaseClientConfig{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = jsonRequest(http.MethodPost, "/auth/google-login", `{"email":`)

	handler.GoogleLogin(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body dto.FederatedLoginResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	assert.False(t, body.Success)
	assert.Equal(t, "invalid request payload", body.Message)
}

func TestAuthHandlerLogoutAlwaysSucceeds(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewAuthHandler(&fakeAuthSrv{}, dto.FirebaseClientConfig{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth/logout", nil)

	handler.Logout(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Logged out successfully", body["message"])
}

func TestAuthHandlerFirebaseConfig(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewAuthHandler(&fakeAuthSrv{}, dto.FirebaseClientConfig{
		APIKey:    "public-key",
		ProjectID: "ams-project",
	})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/auth/firebase-config", nil)

	handler.FirebaseConfig(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	assert.Equal(t, "public-key", body["apiKey"])
	assert.Equal(t, "ams-project", body["projectId"])
}

func TestAuthHandlerMe(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewAuthHandler(&fakeAuthSrv{}, dto.FirebaseClientConfig{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	c.Set(middleware.ContextUserKey, &models.SessionClaims{
		Role:             models.RoleTeacher,
		FullName:         "Priya Menon",
		RegisteredClaims: jwt.RegisteredClaims{Subject: "T042"},
	})

	handler.Me(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &envelope)
	data := envelope.Data.(map[string]interface{})
	assert.Equal(t, "T042", data["id"])
	assert.Equal(t, "TEACHER", data["role"])
}

func TestAuthHandlerMeRequiresSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewAuthHandler(&fakeAuthSrv{}, dto.FirebaseClientConfig{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/auth/me", nil)

	handler.Me(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
