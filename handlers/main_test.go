package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"munui/database"
	"munui/models"
	"munui/utils"
)

const testAdminKey = "test-admin-key"

// MockApplication holds dependencies for handler tests.
type MockApplication struct {
	db          *database.DatabaseService
	rateLimiter *models.RateLimiter
	logger      *slog.Logger
	publicDir   string
}

func (a *MockApplication) DB() *database.DatabaseService    { return a.db }
func (a *MockApplication) RateLimiter() *models.RateLimiter { return a.rateLimiter }
func (a *MockApplication) Logger() *slog.Logger             { return a.logger }
func (a *MockApplication) PublicDir() string                { return a.publicDir }

// setupTestApp creates a full application stack with a test database. The
// rate limiter is effectively disabled; tests that exercise limiting swap in
// their own.
func setupTestApp(t *testing.T) *MockApplication {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	dbDir, err := os.MkdirTemp("", "munui_test_db_*")
	if err != nil {
		t.Fatalf("Failed to create temp dir for test DB: %v", err)
	}
	dbPath := filepath.Join(dbDir, "test.db?_journal_mode=WAL&_foreign_keys=on")
	dbService, err := database.InitDB(dbPath, utils.NewAdminKey(testAdminKey, ""), logger)
	if err != nil {
		t.Fatalf("Failed to initialize test database: %v", err)
	}

	publicDir, err := os.MkdirTemp("", "munui_test_public_*")
	if err != nil {
		t.Fatalf("Failed to create temp public dir: %v", err)
	}

	app := &MockApplication{
		db:          dbService,
		rateLimiter: models.NewRateLimiter(time.Millisecond, 1000, time.Hour, 24*time.Hour),
		logger:      logger,
		publicDir:   publicDir,
	}

	t.Cleanup(func() {
		app.db.DB.Close()
		os.RemoveAll(dbDir)
		os.RemoveAll(publicDir)
	})

	return app
}

// newJSONRequest builds a request with a JSON body.
func newJSONRequest(t *testing.T, method, path string, payload interface{}) *http.Request {
	t.Helper()
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("Failed to marshal request payload: %v", err)
		}
		body = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// doRequest runs a request through the full router.
func doRequest(app *MockApplication, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	SetupRouter(app).ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), dst); err != nil {
		t.Fatalf("Failed to decode response body %q: %v", rr.Body.String(), err)
	}
}
