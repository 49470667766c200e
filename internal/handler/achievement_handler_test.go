package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/ams-api/internal/dto"
	"github.com/campushub/ams-api/internal/middleware"
	"github.com/campushub/ams-api/internal/models"
	"github.com/campushub/ams-api/internal/service"
	appErrors "github.com/campushub/ams-api/pkg/errors"
)

type fakeAchievementSrv struct {
	created       *dto.AchievementCreatedResponse
	recordErr     error
	lastTeacherID string
	lastReq       dto.SubmitAchievementRequest
	lastCert      *multipart.FileHeader

	stats    *models.TeacherStats
	statsHit bool
	statsErr error

	summaries []models.AchievementSummary
	listErr   error
	lastLimit int

	export     *service.ExportFile
	exportErr  error
	lastFormat string

	certFile     *os.File
	certErr      error
	lastCertName string
}

func (f *fakeAchievementSrv) Record(_ context.Context, teacherID string, req dto.SubmitAchievementRequest, certificate *multipart.FileHeader) (*dto.AchievementCreatedResponse, error) {
	f.lastTeacherID = teacherID
	f.lastReq = req
	f.lastCert = certificate
	return f.created, f.recordErr
}

func (f *fakeAchievementSrv) Stats(_ context.Context, teacherID string) (*models.TeacherStats, bool, error) {
	f.lastTeacherID = teacherID
	return f.stats, f.statsHit, f.statsErr
}

func (f *fakeAchievementSrv) Recent(_ context.Context, teacherID string, limit int) ([]models.AchievementSummary, error) {
	f.lastTeacherID = teacherID
	f.lastLimit = limit
	return f.summaries, f.listErr
}

func (f *fakeAchievementSrv) All(_ context.Context, teacherID string) ([]models.AchievementSummary, error) {
	f.lastTeacherID = teacherID
	return f.summaries, f.listErr
}

func (f *fakeAchievementSrv) Export(_ context.Context, teacherID, format string) (*service.ExportFile, error) {
	f.lastTeacherID = teacherID
	f.lastFormat = format
	return f.export, f.exportErr
}

func (f *fakeAchievementSrv) OpenCertificate(name string) (*os.File, error) {
	f.lastCertName = name
	return f.certFile, f.certErr
}

func teacherSession() *models.SessionClaims {
	return &models.SessionClaims{
		Role:             models.RoleTeacher,
		FullName:         "Priya Menon",
		RegisteredClaims: jwt.RegisteredClaims{Subject: "T042"},
	}
}

func TestAchievementHandlerSubmitRequiresSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewAchievementHandler(&fakeAchievementSrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/achievements", nil)

	handler.Submit(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAchievementHandlerSubmitMultipart(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &fakeAchievementSrv{created: &dto.AchievementCreatedResponse{ID: 7}}
	handler := NewAchievementHandler(svc)

	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)
	_ = form.WriteField("student_id", "S001")
	_ = form.WriteField("achievement_type", "technical")
	_ = form.WriteField("event_name", "CodeSprint 2026")
	_ = form.WriteField("achievement_date", "2026-03-14")
	_ = form.WriteField("organizer", "IEEE Student Branch")
	_ = form.WriteField("position", "Winner")
	part, err := form.CreateFormFile("certificate", "cert.pdf")
	require.NoError(t, err)
	_, _ = part.Write([]byte("%PDF-1.4 fake"))
	require.NoError(t, form.Close())

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/achievements", body)
	c.Request.Header.Set("Content-Type", form.FormDataContentType())
	c.Set(middleware.ContextUserKey, teacherSession())

	handler.Submit(c)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "T042", svc.lastTeacherID)
	assert.Equal(t, "S001", svc.lastReq.StudentID)
	if assert.NotNil(t, svc.lastCert) {
		assert.Equal(t, "cert.pdf", svc.lastCert.Filename)
	}

	var envelope responseEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &envelope)
	data := envelope.Data.(map[string]interface{})
	assert.Equal(t, float64(7), data["id"])
}

func TestAchievementHandlerSubmitWithoutCertificate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &fakeAchievementSrv{created: &dto.AchievementCreatedResponse{ID: 8}}
	handler := NewAchievementHandler(svc)

	form := "student_id=S001&achievement_type=project&event_name=Expo&achievement_date=2026-02-01&organizer=Dept&position=Finalist"
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/achievements", strings.NewReader(form))
	c.Request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c.Set(middleware.ContextUserKey, teacherSession())

	handler.Submit(c)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Nil(t, svc.lastCert)
}

func TestAchievementHandlerSubmitUnknownStudent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &fakeAchievementSrv{
		recordErr: appErrors.Clone(appErrors.ErrUnknownStudent, "Student ID does not exist in the system."),
	}
	handler := NewAchievementHandler(svc)

	form := "student_id=GHOST&achievement_type=technical&event_name=CodeSprint&achievement_date=2026-03-14&organizer=IEEE&position=Winner"
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/achievements", strings.NewReader(form))
	c.Request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c.Set(middleware.ContextUserKey, teacherSession())

	handler.Submit(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var envelope responseEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &envelope)
	assert.Equal(t, "UNKNOWN_STUDENT", envelope.Error.Code)
}

func TestAchievementHandlerRecentRejectsBadLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewAchievementHandler(&fakeAchievementSrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/achievements/recent?limit=abc", nil)
	c.Set(middleware.ContextUserKey, teacherSession())

	handler.Recent(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var envelope responseEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &envelope)
	assert.Equal(t, "limit must be a number", envelope.Error.Message)
}

func TestAchievementHandlerRecentPassesLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &fakeAchievementSrv{
		summaries: []models.AchievementSummary{{ID: 1, StudentID: "S001", StudentName: "Asha Rao"}},
	}
	handler := NewAchievementHandler(svc)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/achievements/recent?limit=7", nil)
	c.Set(middleware.ContextUserKey, teacherSession())

	handler.Recent(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 7, svc.lastLimit)
	assert.Equal(t, "T042", svc.lastTeacherID)

	var envelope responseEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &envelope)
	rows := envelope.Data.([]interface{})
	assert.Len(t, rows, 1)
}

func TestAchievementHandlerStatsMeta(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &fakeAchievementSrv{
		stats:    &models.TeacherStats{Total: 12, UniqueStudents: 4, ThisWeek: 2},
		statsHit: true,
	}
	handler := NewAchievementHandler(svc)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/achievements/stats", nil)
	c.Set(middleware.ContextUserKey, teacherSession())

	handler.Stats(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &envelope)
	assert.Equal(t, true, envelope.Meta["cache_hit"])
	assert.Contains(t, envelope.Meta, "processing_time_ms")
	data := envelope.Data.(map[string]interface{})
	assert.Equal(t, float64(12), data["total_achievements"])
}

func TestAchievementHandlerExportAttachment(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &fakeAchievementSrv{
		export: &service.ExportFile{
			Name:        "achievements_T042_20260826.csv",
			ContentType: "text/csv",
			Payload:     []byte("Student ID,Student Name\nS001,Asha Rao\n"),
		},
	}
	handler := NewAchievementHandler(svc)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/achievements/export", nil)
	c.Set(middleware.ContextUserKey, teacherSession())

	handler.Export(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "csv", svc.lastFormat)
	assert.Equal(t, `attachment; filename="achievements_T042_20260826.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "S001,Asha Rao")
}

func TestAchievementHandlerExportUnknownFormat(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &fakeAchievementSrv{
		exportErr: appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf"),
	}
	handler := NewAchievementHandler(svc)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/achievements/export?format=xlsx", nil)
	c.Set(middleware.ContextUserKey, teacherSession())

	handler.Export(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "xlsx", svc.lastFormat)
}

func TestAchievementHandlerCertificateMissing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &fakeAchievementSrv{
		certErr: appErrors.Clone(appErrors.ErrNotFound, "Certificate not found"),
	}
	handler := NewAchievementHandler(svc)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/certificates/ghost.pdf", nil)
	c.Params = gin.Params{{Key: "name", Value: "ghost.pdf"}}

	handler.Certificate(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "ghost.pdf", svc.lastCertName)
}

func TestAchievementHandlerCertificateStreams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	path := filepath.Join(t.TempDir(), "20260314_cert.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4 payload"), 0o644))
	file, err := os.Open(path)
	require.NoError(t, err)

	svc := &fakeAchievementSrv{certFile: file}
	handler := NewAchievementHandler(svc)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/certificates/20260314_cert.pdf", nil)
	c.Params = gin.Params{{Key: "name", Value: "20260314_cert.pdf"}}

	handler.Certificate(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "%PDF-1.4 payload", rec.Body.String())
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
}

type responseEnvelope struct {
	Data  interface{}            `json:"data"`
	Meta  map[string]interface{} `json:"meta"`
	Error *envelopeError         `json:"error"`
}

type envelopeError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}
