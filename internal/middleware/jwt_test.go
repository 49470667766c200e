package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campushub/ams-api/internal/models"
	"github.com/campushub/ams-api/internal/service"
)

const testSecret = "test-secret"

func newSessionService() *service.AuthService {
	return service.NewAuthService(nil, nil, nil, nil, zap.NewNop(), service.AuthConfig{
		Secret:     testSecret,
		Expiration: time.Hour,
		Issuer:     "ams-api",
	})
}

func signSession(t *testing.T, role models.Role, subject, secret string, ttl time.Duration) string {
	t.Helper()
	now := time.Now()
	claims := &models.SessionClaims{
		Role:     role,
		FullName: "Test User",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "ams-api",
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func protectedRouter(extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append([]gin.HandlerFunc{JWT(newSessionService())}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		claims := c.MustGet(ContextUserKey).(*models.SessionClaims)
		c.String(http.StatusOK, "%s:%s", claims.Role, claims.Subject)
	})
	r.GET("/protected", handlers...)
	return r
}

func TestJWTMissingHeader(t *testing.T) {
	r := protectedRouter()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/protected", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTMalformedHeader(t *testing.T) {
	r := protectedRouter()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid authorization header")
}

func TestJWTValidToken(t *testing.T) {
	r := protectedRouter()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signSession(t, models.RoleTeacher, "T042", testSecret, time.Hour))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "TEACHER:T042", rec.Body.String())
}

func TestJWTExpiredToken(t *testing.T) {
	r := protectedRouter()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signSession(t, models.RoleTeacher, "T042", testSecret, -time.Minute))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTForeignSecret(t *testing.T) {
	r := protectedRouter()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signSession(t, models.RoleTeacher, "T042", "other-secret", time.Hour))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRolesBlocksStudents(t *testing.T) {
	r := protectedRouter(RequireRoles(models.RoleTeacher))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signSession(t, models.RoleStudent, "S001", testSecret, time.Hour))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "FORBIDDEN")
}

func TestRequireRolesAllowsTeachers(t *testing.T) {
	r := protectedRouter(RequireRoles(models.RoleTeacher))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signSession(t, models.RoleTeacher, "T042", testSecret, time.Hour))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRolesWithoutSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/teacher-only", RequireRoles(models.RoleTeacher), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/teacher-only", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOptionalJWTNeverBlocks(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/logout", OptionalJWT(newSessionService()), func(c *gin.Context) {
		_, authenticated := c.Get(ContextUserKey)
		c.JSON(http.StatusOK, gin.H{"authenticated": authenticated})
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/logout", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"authenticated":false`)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.Header.Set("Authorization", "Bearer "+signSession(t, models.RoleStudent, "S001", testSecret, time.Hour))
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"authenticated":true`)
}
