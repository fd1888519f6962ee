package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/surveyportal/surveyportal/internal/auth"
)

const testSecret = "test-secret"

func signTestToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	assert.NoError(t, err)
	return token
}

func protectedRouter(extra ...gin.HandlerFunc) (*gin.Engine, *auth.Identity) {
	gin.SetMode(gin.TestMode)
	captured := &auth.Identity{}

	r := gin.New()
	handlers := append([]gin.HandlerFunc{Authenticate(testSecret)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		*captured = CurrentIdentity(c)
		c.Status(http.StatusOK)
	})
	r.GET("/protected", handlers...)
	return r, captured
}

func TestAuthenticate_ValidToken(t *testing.T) {
	router, captured := protectedRouter()
	token := signTestToken(t, jwt.MapClaims{
		"sub":   float64(7),
		"name":  "Someone",
		"roles": []string{"survey_reporting"},
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(7), captured.ID)
	assert.Equal(t, "Someone", captured.Name)
	assert.Equal(t, []string{"survey_reporting"}, captured.Roles)
}

func TestAuthenticate_MissingOrInvalidToken(t *testing.T) {
	router, _ := protectedRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	router, _ := protectedRouter()
	token := signTestToken(t, jwt.MapClaims{
		"sub": float64(7),
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireManage(t *testing.T) {
	router, _ := protectedRouter(RequireManage())

	baseline := signTestToken(t, jwt.MapClaims{
		"sub":   float64(7),
		"roles": []string{"survey_reporting"},
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+baseline)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	manager := signTestToken(t, jwt.MapClaims{
		"sub":   float64(8),
		"roles": []string{"survey_management"},
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+manager)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
