package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"attendfy-backend/config"
	"attendfy-backend/internal/auth"
	"attendfy-backend/internal/model"
	"attendfy-backend/internal/routes"
)

const testSecret = "test-secret"

func setupTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	// Unique in-memory database per test to avoid cross-test collisions.
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := config.Config{JWTSecret: testSecret}
	app := fiber.New()
	routes.SetupAuthRoutes(app, db, cfg)
	routes.SetupUserRoutes(app, db, cfg)
	routes.SetupAttendanceRoutes(app, db, cfg)
	routes.SetupDeviceRoutes(app, db, cfg)
	routes.SetupDashboardRoutes(app, db, cfg)
	return app, db
}

// createUser inserts a user with password "password123".
func createUser(t *testing.T, db *gorm.DB, role model.Role, email, employeeID string, assignedAdmin *uint) *model.User {
	t.Helper()
	// MinCost keeps the test suite fast; Compare accepts any cost.
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user := &model.User{
		FirstName:       "Test",
		LastName:        "User",
		Email:           email,
		Password:        string(hashed),
		Role:            role,
		Department:      "Engineering",
		EmployeeID:      employeeID,
		AssignedAdminID: assignedAdmin,
		JoinDate:        time.Now(),
		IsActive:        true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return user
}

func tokenFor(t *testing.T, user *model.User) string {
	t.Helper()
	token, err := auth.CreateAccessToken(user, testSecret)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	return token
}

// doJSON performs a request against the app and returns the response.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode body: %v", err)
	}
}

func messageOf(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	decodeBody(t, resp, &body)
	return body.Message
}
