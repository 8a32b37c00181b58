package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/task-manager/internal/models"
	"github.com/yukikurage/task-manager/internal/repository"
	"github.com/yukikurage/task-manager/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type gateTestEnv struct {
	router *gin.Engine
	tokens *services.TokenService
	user   *models.User
}

// setupGateTestEnv builds a router with the authentication gate, one open
// probe endpoint reporting the resolved principal, and one protected
// endpoint behind RequireAuth.
func setupGateTestEnv(t *testing.T) gateTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.TaskStatus{}, &models.Label{}, &models.Task{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	user := &models.User{
		Email:        "gate@example.com",
		PasswordHash: "irrelevant",
	}
	require.NoError(t, db.Create(user).Error)

	tokens := services.NewTokenService("gate-secret", time.Hour)
	userRepo := repository.NewUserRepository(db)

	r := gin.New()
	r.Use(Authenticate(tokens, userRepo))
	r.GET("/probe", func(c *gin.Context) {
		if principal, ok := CurrentUser(c); ok {
			c.JSON(http.StatusOK, gin.H{"email": principal.Email})
			return
		}
		c.JSON(http.StatusOK, gin.H{"email": nil})
	})
	r.GET("/protected", RequireAuth(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/api/login", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	return gateTestEnv{router: r, tokens: tokens, user: user}
}

func (env gateTestEnv) probe(t *testing.T, authorization string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func TestAuthenticate_ValidToken(t *testing.T) {
	env := setupGateTestEnv(t)

	token, err := env.tokens.Issue(env.user.Email)
	require.NoError(t, err)

	w := env.probe(t, "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"email":"gate@example.com"}`, w.Body.String())
}

func TestAuthenticate_AnonymousPassThrough(t *testing.T) {
	env := setupGateTestEnv(t)

	expired := services.NewTokenService("gate-secret", -time.Minute)
	expiredToken, err := expired.Issue(env.user.Email)
	require.NoError(t, err)

	forged := services.NewTokenService("wrong-secret", time.Hour)
	forgedToken, err := forged.Issue(env.user.Email)
	require.NoError(t, err)

	unknownSubject, err := env.tokens.Issue("nobody@example.com")
	require.NoError(t, err)

	cases := map[string]string{
		"no header":         "",
		"not bearer":        "Basic dXNlcjpwYXNz",
		"empty token":       "Bearer ",
		"literal null":      "Bearer null",
		"two segments":      "Bearer a.b",
		"four segments":     "Bearer a.b.c.d",
		"empty segment":     "Bearer a..c",
		"expired token":     "Bearer " + expiredToken,
		"invalid signature": "Bearer " + forgedToken,
		"unknown subject":   "Bearer " + unknownSubject,
	}

	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			w := env.probe(t, header)
			require.Equal(t, http.StatusOK, w.Code, "the gate must never abort")
			require.JSONEq(t, `{"email":null}`, w.Body.String())
		})
	}
}

func TestRequireAuth_RejectsAnonymous(t *testing.T) {
	env := setupGateTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.JSONEq(t, `{"error":"Unauthorized: authentication required"}`, w.Body.String())
}

func TestRequireAuth_AllowsPrincipal(t *testing.T) {
	env := setupGateTestEnv(t)

	token, err := env.tokens.Issue(env.user.Email)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestAuthenticate_ExemptPathSkipsTokenProcessing(t *testing.T) {
	env := setupGateTestEnv(t)

	// A garbage token on an exempt path must not get in the way.
	req := httptest.NewRequest(http.MethodGet, "/api/login", nil)
	req.Header.Set("Authorization", "Bearer not-even-close")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestIsExempt(t *testing.T) {
	exempt := []string{"/api/login", "/", "/health", "/index.html", "/favicon.ico", "/assets/app.js"}
	for _, path := range exempt {
		require.True(t, isExempt(path), "path %q", path)
	}

	protected := []string{"/api/tasks", "/api/users", "/api/login/extra"}
	for _, path := range protected {
		require.False(t, isExempt(path), "path %q", path)
	}
}
