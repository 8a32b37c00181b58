package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/task-manager/internal/config"
	"github.com/yukikurage/task-manager/internal/models"
	"github.com/yukikurage/task-manager/internal/router"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// testServer runs the full routing and middleware chain against an
// in-memory database, so handler tests exercise the same paths production
// requests take.
type testServer struct {
	t      *testing.T
	db     *gorm.DB
	router *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.TaskStatus{},
		&models.Label{},
		&models.Task{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	cfg := &config.Config{
		JWTSecret: "handler-test-secret",
		JWTTTL:    time.Hour,
	}

	return &testServer{
		t:      t,
		db:     db,
		router: router.New(cfg, db),
	}
}

// do performs a request against the test server. A non-empty token is sent
// as a bearer credential; a non-nil body is marshalled to JSON.
func (s *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) createUser(email, password string) *models.User {
	s.t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(s.t, err)

	user := &models.User{
		Email:        email,
		PasswordHash: string(hashed),
	}
	require.NoError(s.t, s.db.Create(user).Error)
	return user
}

// login obtains a bearer token through the real login endpoint.
func (s *testServer) login(email, password string) string {
	s.t.Helper()

	w := s.do(http.MethodPost, "/api/login", "", map[string]string{
		"username": email,
		"password": password,
	})
	require.Equal(s.t, http.StatusOK, w.Code)
	return w.Body.String()
}

func (s *testServer) createStatus(name, slug string) *models.TaskStatus {
	s.t.Helper()

	status := &models.TaskStatus{Name: name, Slug: slug}
	require.NoError(s.t, s.db.Create(status).Error)
	return status
}

func (s *testServer) createLabel(name string) *models.Label {
	s.t.Helper()

	label := &models.Label{Name: name}
	require.NoError(s.t, s.db.Create(label).Error)
	return label
}

func (s *testServer) createTask(name string, statusID uint64, assigneeID *uint64, labels ...models.Label) *models.Task {
	s.t.Helper()

	task := &models.Task{
		Name:        name,
		Description: "Test Description",
		StatusID:    statusID,
		AssigneeID:  assigneeID,
		Labels:      labels,
	}
	require.NoError(s.t, s.db.Create(task).Error)
	return task
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), target))
}

func formatID(id uint64) string   { return fmt.Sprintf("%d", id) }
func userPath(id uint64) string   { return fmt.Sprintf("/api/users/%d", id) }
func statusPath(id uint64) string { return fmt.Sprintf("/api/task_statuses/%d", id) }
func labelPath(id uint64) string  { return fmt.Sprintf("/api/labels/%d", id) }
func taskPath(id uint64) string   { return fmt.Sprintf("/api/tasks/%d", id) }
