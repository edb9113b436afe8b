package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/minerepair/repairhub/internal/infrastructure/auth"
	"github.com/minerepair/repairhub/internal/infrastructure/config"
	"github.com/minerepair/repairhub/internal/infrastructure/migration"
	"github.com/minerepair/repairhub/internal/infrastructure/persistence/models"
	"github.com/minerepair/repairhub/internal/shared/authorization"
	"github.com/minerepair/repairhub/internal/shared/logger"
	"github.com/minerepair/repairhub/internal/shared/utils"
)

const testSecret = "container-test-secret"

func testConfig() *config.Config {
	return &config.Config{
		Server:       config.ServerConfig{Mode: gin.TestMode},
		Database:     config.DatabaseConfig{Driver: config.DriverSQLite},
		Auth:         config.AuthConfig{JWT: config.JWTConfig{Secret: testSecret, AccessExpMinutes: 15}},
		Notification: config.NotificationConfig{BufferSize: 16, DedupTTLMinutes: 30, DefaultLocale: "ru"},
		Workflow:     config.WorkflowConfig{StaleRequestAfterHours: 4, ReminderIntervalMinutes: 30},
		RBAC:         config.RBACConfig{PolicyFile: "../../../configs/rbac_policy.yaml"},
	}
}

func newTestContainer(t *testing.T) *Container {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, migration.NewManager(config.DriverSQLite).Migrate(db))
	require.NoError(t, db.Create([]*models.UserModel{
		{ID: 1, Email: "customer@example.com", Name: "Customer", Role: string(authorization.RoleCustomer), IsActive: true},
		{ID: 2, Email: "contractor@example.com", Name: "Contractor", Role: string(authorization.RoleContractor), IsActive: true},
		{ID: 3, Email: "admin@example.com", Name: "Admin", Role: string(authorization.RoleAdmin), IsActive: true},
	}).Error)

	c, err := NewContainer(db, testConfig(), logger.NewNopLogger())
	require.NoError(t, err)
	c.SetupRoutes()
	require.NoError(t, c.Start())
	t.Cleanup(c.Shutdown)
	return c
}

func bearer(t *testing.T, userID uint, role authorization.UserRole) string {
	t.Helper()
	token, _, err := auth.NewJWTService(testSecret, 15).Generate(userID, role)
	require.NoError(t, err)
	return "Bearer " + token
}

func serve(c *Container, method, path, authHeader string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	c.Engine().ServeHTTP(w, req)
	return w
}

func TestContainer_Routes(t *testing.T) {
	c := newTestContainer(t)

	createBody := map[string]any{
		"title":       "Crusher bearing failure",
		"description": "Primary jaw crusher stops under load",
		"urgency":     "high",
		"equipment":   map[string]any{"type": "crusher", "brand": "Metso", "model": "C160"},
		"city":        "Magnitogorsk",
	}

	t.Run("health", func(t *testing.T) {
		w := serve(c, http.MethodGet, "/health", "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})

	t.Run("missing token", func(t *testing.T) {
		w := serve(c, http.MethodGet, "/requests", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("contractor cannot create requests", func(t *testing.T) {
		w := serve(c, http.MethodPost, "/requests", bearer(t, 2, authorization.RoleContractor), createBody)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("customer creates and lists", func(t *testing.T) {
		token := bearer(t, 1, authorization.RoleCustomer)

		w := serve(c, http.MethodPost, "/requests", token, createBody)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = serve(c, http.MethodGet, "/requests?mine=true", token, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp struct {
			Success bool               `json:"success"`
			Data    utils.ListResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, int64(1), resp.Data.Total)
	})

	t.Run("admin passes route policy but cannot cancel", func(t *testing.T) {
		w := serve(c, http.MethodPost, "/requests/1/cancel", bearer(t, 3, authorization.RoleAdmin), map[string]any{"reason": "duplicate"})
		assert.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), "assigned contractor can cancel")
	})

	t.Run("contractor without approved verification cannot respond", func(t *testing.T) {
		w := serve(c, http.MethodGet, "/verifications/2/can-respond", bearer(t, 2, authorization.RoleContractor), nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), `"can_respond":false`)
	})
}
