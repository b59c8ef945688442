package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/mentorhub/mentorhub-api/pkg/jwt"
	"github.com/mentorhub/mentorhub-api/pkg/logger"

	"github.com/mentorhub/mentorhub-api/internal/models"
)

func init() {
	// Set Gin to test mode
	gin.SetMode(gin.TestMode)

	// Initialize logger for tests
	if err := logger.Initialize(logger.Config{Level: "debug", Environment: "development"}); err != nil {
		panic(err)
	}
}

func newSessionRouter(tokenManager *jwt.TokenManager, captured **models.UserSession) (*gin.Engine, *bool) {
	router := gin.New()
	handlerCalled := new(bool)
	router.Use(UserSessionMiddleware(tokenManager))
	router.GET("/test", func(c *gin.Context) {
		*handlerCalled = true
		session, err := GetUserSession(c)
		if err == nil && captured != nil {
			*captured = session
		}
		c.Status(http.StatusOK)
	})
	return router, handlerCalled
}

func TestUserSessionMiddleware_ValidToken(t *testing.T) {
	tokenManager := jwt.NewTokenManager("test-secret", "mentorhub-test", 48)
	token, err := tokenManager.GenerateToken(7, "alice@example.com", "Alice", "MENTEE")
	assert.NoError(t, err)

	var session *models.UserSession
	router, handlerCalled := newSessionRouter(tokenManager, &session)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	router.ServeHTTP(w, req)

	assert.True(t, *handlerCalled, "Handler should be called for a valid token")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotNil(t, session)
	assert.Equal(t, int64(7), session.UserID)
	assert.Equal(t, "alice@example.com", session.Email)
	assert.Equal(t, models.RoleMentee, session.Role)
}

func TestUserSessionMiddleware_MissingHeader(t *testing.T) {
	tokenManager := jwt.NewTokenManager("test-secret", "mentorhub-test", 48)
	router, handlerCalled := newSessionRouter(tokenManager, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/test", nil)

	router.ServeHTTP(w, req)

	assert.False(t, *handlerCalled, "Handler should not be called without a token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
}

func TestUserSessionMiddleware_MalformedHeader(t *testing.T) {
	tokenManager := jwt.NewTokenManager("test-secret", "mentorhub-test", 48)
	router, handlerCalled := newSessionRouter(tokenManager, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

	router.ServeHTTP(w, req)

	assert.False(t, *handlerCalled, "Handler should not be called for a non-bearer header")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUserSessionMiddleware_InvalidToken(t *testing.T) {
	tokenManager := jwt.NewTokenManager("test-secret", "mentorhub-test", 48)
	router, handlerCalled := newSessionRouter(tokenManager, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")

	router.ServeHTTP(w, req)

	assert.False(t, *handlerCalled, "Handler should not be called for a garbage token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
}

func TestUserSessionMiddleware_ExpiredToken(t *testing.T) {
	expired := jwt.NewTokenManager("test-secret", "mentorhub-test", -1)
	token, err := expired.GenerateToken(7, "alice@example.com", "Alice", "MENTEE")
	assert.NoError(t, err)

	router, handlerCalled := newSessionRouter(expired, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	router.ServeHTTP(w, req)

	assert.False(t, *handlerCalled, "Handler should not be called for an expired token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Session expired"}`, w.Body.String())
}

func TestUserSessionMiddleware_WrongSigningKey(t *testing.T) {
	signer := jwt.NewTokenManager("other-secret", "mentorhub-test", 48)
	token, err := signer.GenerateToken(7, "alice@example.com", "Alice", "MENTEE")
	assert.NoError(t, err)

	verifier := jwt.NewTokenManager("test-secret", "mentorhub-test", 48)
	router, handlerCalled := newSessionRouter(verifier, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	router.ServeHTTP(w, req)

	assert.False(t, *handlerCalled, "Handler should not be called for a token signed with another key")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetUserSession_NotSet(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	session, err := GetUserSession(c)
	assert.Nil(t, session)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestGetUserSession_WrongType(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Set(UserSessionContextKey, "not-a-session")

	session, err := GetUserSession(c)
	assert.Nil(t, session)
	assert.ErrorIs(t, err, ErrInvalidSession)
}