package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"codeclub/backend/config"
	"codeclub/backend/models"
	"codeclub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:       "testsecret",
		JWTIssuer:       "codeclub",
		JWTAudience:     "codeclub-web",
		AccessTokenTTL:  5 * time.Minute,
		RefreshTokenTTL: time.Hour,
		BcryptCost:      13,
	}
}

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB, *config.Config) {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, utils.Migrate(db))

	cfg := testConfig()
	app := fiber.New()
	SetupRoutes(app, db, cfg)
	return app, db, cfg
}

// seedUser inserts a user directly, bypassing the registration endpoint.
func seedUser(t *testing.T, db *gorm.DB, username string, roles ...string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		Username:           username,
		FirstName:          "Test",
		LastName:           "User",
		Email:              username + "@example.com",
		PasswordHash:       string(hash),
		RefreshTokenExpiry: time.Now().Add(time.Hour),
		IsActive:           true,
	}
	for _, name := range roles {
		var role models.Role
		require.NoError(t, db.Where(models.Role{Name: name}).FirstOrCreate(&role).Error)
		user.Roles = append(user.Roles, role)
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}, token string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeData(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var payload struct {
		Success bool                   `json:"success"`
		Data    map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	return payload.Data
}

func login(t *testing.T, app *fiber.App, username string) (string, string) {
	t.Helper()
	resp := doJSON(t, app, "POST", "/api/auth/login", fiber.Map{
		"username": username,
		"password": "password123",
	}, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := decodeData(t, resp)
	return data["token"].(string), data["refreshToken"].(string)
}

func TestRegisterLoginRefreshFlow(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp := doJSON(t, app, "POST", "/api/auth/register", fiber.Map{
		"username":  "newuser",
		"firstName": "New",
		"lastName":  "User",
		"email":     "newuser@example.com",
		"password":  "password123",
	}, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := decodeData(t, resp)
	assert.Equal(t, "newuser", data["username"])

	token, refresh := login(t, app, "newuser")
	assert.NotEmpty(t, token)

	resp = doJSON(t, app, "POST", "/api/auth/refresh-token", fiber.Map{"refreshToken": refresh}, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	rotated := decodeData(t, resp)
	assert.NotEqual(t, refresh, rotated["refreshToken"])

	// the consumed refresh token is dead
	resp = doJSON(t, app, "POST", "/api/auth/refresh-token", fiber.Map{"refreshToken": refresh}, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRegisterValidationErrors(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp := doJSON(t, app, "POST", "/api/auth/register", fiber.Map{
		"username":  "x",
		"firstName": "New",
		"lastName":  "User",
		"email":     "bad",
		"password":  "short",
	}, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestExistenceChecks(t *testing.T) {
	app, db, _ := newTestApp(t)
	seedUser(t, db, "alice", "User")

	resp := doJSON(t, app, "GET", "/api/auth/username/alice", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload struct {
		Data bool `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.True(t, payload.Data)

	resp = doJSON(t, app, "GET", "/api/auth/username/nobody", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.False(t, payload.Data)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp := doJSON(t, app, "GET", "/api/courses", nil, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, app, "GET", "/api/user/profile", nil, "garbage-token")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	app, db, _ := newTestApp(t)
	seedUser(t, db, "regular", "User")
	seedUser(t, db, "boss", "Admin", "User")

	userToken, _ := login(t, app, "regular")
	adminToken, _ := login(t, app, "boss")

	body := fiber.Map{"title": "Go Basics", "level": "beginner"}

	resp := doJSON(t, app, "POST", "/api/courses", body, userToken)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, app, "POST", "/api/courses", body, adminToken)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestReorderEndpoint(t *testing.T) {
	app, db, _ := newTestApp(t)
	seedUser(t, db, "boss", "Admin", "User")
	adminToken, _ := login(t, app, "boss")

	resp := doJSON(t, app, "POST", "/api/courses", fiber.Map{"title": "Go"}, adminToken)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var course models.Course
	require.NoError(t, db.Where("title = ?", "Go").First(&course).Error)

	var lessons []models.Lesson
	for _, title := range []string{"A", "B"} {
		resp = doJSON(t, app, "POST", "/api/courses/1/lessons", fiber.Map{"title": title}, adminToken)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}
	require.NoError(t, db.Where("course_id = ?", course.ID).Find(&lessons).Error)
	require.Len(t, lessons, 2)

	pairs := []fiber.Map{
		{"id": lessons[0].ID, "index": 1},
		{"id": lessons[1].ID, "index": 0},
	}
	resp = doJSON(t, app, "PUT", "/api/courses/1/lessons/reorder", pairs, adminToken)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	var reordered models.Lesson
	require.NoError(t, db.First(&reordered, lessons[0].ID).Error)
	assert.Equal(t, 1, reordered.Index)
	reordered = models.Lesson{}
	require.NoError(t, db.First(&reordered, lessons[1].ID).Error)
	assert.Equal(t, 0, reordered.Index)
}

func TestQuizSubmitEndpoint(t *testing.T) {
	app, db, _ := newTestApp(t)
	seedUser(t, db, "boss", "Admin", "User")
	seedUser(t, db, "student", "User")
	adminToken, _ := login(t, app, "boss")
	studentToken, _ := login(t, app, "student")

	quiz := fiber.Map{
		"title": "Go quiz",
		"questions": []fiber.Map{
			{"question": "q1", "options": []string{"a", "b", "c", "d"}, "correctAnswer": 0},
			{"question": "q2", "options": []string{"a", "b", "c", "d"}, "correctAnswer": 2},
			{"question": "q3", "options": []string{"a", "b", "c", "d"}, "correctAnswer": 1},
		},
	}
	resp := doJSON(t, app, "POST", "/api/quizzes", quiz, adminToken)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, "POST", "/api/quizzes/1/submit", fiber.Map{"answers": []int{0, 2, 1}}, studentToken)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := decodeData(t, resp)
	assert.EqualValues(t, 3, data["score"])
	assert.EqualValues(t, 3, data["total"])

	// the answer key is hidden from non-admin readers
	resp = doJSON(t, app, "GET", "/api/quizzes/1", nil, studentToken)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	quizData := decodeData(t, resp)
	questions := quizData["questions"].([]interface{})
	first := questions[0].(map[string]interface{})
	_, hasKey := first["correctAnswer"]
	assert.False(t, hasKey)
}
