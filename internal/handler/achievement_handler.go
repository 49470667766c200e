package handler

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campushub/ams-api/internal/dto"
	"github.com/campushub/ams-api/internal/models"
	"github.com/campushub/ams-api/internal/service"
	appErrors "github.com/campushub/ams-api/pkg/errors"
	"github.com/campushub/ams-api/pkg/response"
)

type achievementService interface {
	Record(ctx context.Context, teacherID string, req dto.SubmitAchievementRequest, certificate *multipart.FileHeader) (*dto.AchievementCreatedResponse, error)
	Stats(ctx context.Context, teacherID string) (*models.TeacherStats, bool, error)
	Recent(ctx context.Context, teacherID string, limit int) ([]models.AchievementSummary, error)
	All(ctx context.Context, teacherID string) ([]models.AchievementSummary, error)
	Export(ctx context.Context, teacherID, format string) (*service.ExportFile, error)
	OpenCertificate(name string) (*os.File, error)
}

// AchievementHandler exposes the achievement endpoints. Every route is
// scoped to the teacher carried by the session claims.
type AchievementHandler struct {
	service achievementService
}

// NewAchievementHandler constructs the handler.
func NewAchievementHandler(svc achievementService) *AchievementHandler {
	return &AchievementHandler{service: svc}
}

// Submit godoc
// @Summary Record an achievement
// @Description Store one student accomplishment with an optional certificate file part named "certificate"
// @Tags Achievements
// @Accept mpfd
// @Produce json
// @Param student_id formData string true "Student ID"
// @Param achievement_type formData string true "technical, symposium, publication, project or other"
// @Param event_name formData string true "Event name"
// @Param achievement_date formData string true "Date (YYYY-MM-DD)"
// @Param organizer formData string true "Organizer"
// @Param position formData string true "Position or award"
// @Param certificate formData file false "Certificate (pdf, png, jpg, jpeg)"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /achievements [post]
func (h *AchievementHandler) Submit(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.SubmitAchievementRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid achievement payload"))
		return
	}

	certificate, err := c.FormFile("certificate")
	if err != nil {
		if !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart) {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid certificate upload"))
			return
		}
		certificate = nil
	}

	res, err := h.service.Record(c.Request.Context(), claims.Subject, req, certificate)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, res)
}

// All godoc
// @Summary List the teacher's achievements
// @Tags Achievements
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /achievements [get]
func (h *AchievementHandler) All(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	summaries, err := h.service.All(c.Request.Context(), claims.Subject)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, summaries)
}

// Recent godoc
// @Summary Recently recorded achievements
// @Tags Achievements
// @Produce json
// @Param limit query int false "Number of entries (default 5, max 50)"
// @Success 200 {object} response.Envelope
// @Router /achievements/recent [get]
func (h *AchievementHandler) Recent(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "limit must be a number"))
			return
		}
		limit = parsed
	}

	summaries, err := h.service.Recent(c.Request.Context(), claims.Subject, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, summaries)
}

// Stats godoc
// @Summary Dashboard aggregates
// @Description Total achievements, distinct students and entries dated in the last seven days
// @Tags Achievements
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /achievements/stats [get]
func (h *AchievementHandler) Stats(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	start := time.Now()
	stats, cacheHit, err := h.service.Stats(c.Request.Context(), claims.Subject)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, stats, map[string]interface{}{
		"cache_hit":          cacheHit,
		"processing_time_ms": time.Since(start).Milliseconds(),
	})
}

// Export godoc
// @Summary Download the achievement list
// @Tags Achievements
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv or pdf (default csv)"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /achievements/export [get]
func (h *AchievementHandler) Export(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	format := c.DefaultQuery("format", service.ExportFormatCSV)
	file, err := h.service.Export(c.Request.Context(), claims.Subject, format)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	c.Data(http.StatusOK, file.ContentType, file.Payload)
}

// Certificate godoc
// @Summary Stream a stored certificate
// @Description Serve the uploaded certificate file; only the basename of the recorded path is honoured
// @Tags Achievements
// @Produce octet-stream
// @Param name path string true "Stored certificate name"
// @Success 200 {file} file
// @Failure 404 {object} response.Envelope
// @Router /certificates/{name} [get]
func (h *AchievementHandler) Certificate(c *gin.Context) {
	file, err := h.service.OpenCertificate(c.Param("name"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to read certificate"))
		return
	}

	http.ServeContent(c.Writer, c.Request, info.Name(), info.ModTime(), file)
}
