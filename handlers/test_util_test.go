package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/attendly/attendance-api/config"
	"github.com/attendly/attendance-api/database"
	"github.com/attendly/attendance-api/handlers"
	"github.com/attendly/attendance-api/models"
	"github.com/attendly/attendance-api/routes"
)

type testAPI struct {
	e     *echo.Echo
	db    *gorm.DB
	token string
}

// newTestAPI wires the full route table against a per-test in-memory
// database and logs in a seeded admin.
func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		AppEnv:    "test",
		JWTSecret: "test-secret",
		JWTTTL:    time.Hour,
	}

	e := echo.New()
	e.Validator = handlers.NewValidator()
	routes.Register(e, db, cfg)

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.Admin{Username: "admin", Password: string(hash)}).Error)

	api := &testAPI{e: e, db: db}
	api.token = api.login(t, "admin", "admin123")
	return api
}

func (a *testAPI) request(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func (a *testAPI) login(t *testing.T, username, password string) string {
	t.Helper()
	rec := a.request(t, "POST", "/api/login", map[string]string{
		"username": username,
		"password": password,
	}, "")
	require.Equal(t, 200, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func (a *testAPI) seedStudents(t *testing.T) {
	t.Helper()
	students := []models.Student{
		{StudentID: "S1", Name: "Alice", Class: "10A"},
		{StudentID: "S2", Name: "Bob", Class: "10A"},
	}
	require.NoError(t, a.db.Create(&students).Error)
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}
