package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/courtlog/internal/config"
	"github.com/terraincognita07/courtlog/internal/db"
	"github.com/terraincognita07/courtlog/internal/storage"
)

func newTestServerApp(t *testing.T) (*fiber.App, string) {
	t.Helper()

	cfg := config.Default()
	cfg.Server.SecretKey = "0123456789abcdef0123456789abcdef"
	cfg.Database.Path = filepath.Join(t.TempDir(), "courtlog.db")
	cfg.Upload.Dir = t.TempDir()

	database, err := db.OpenSQLite(cfg.Database.Path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	store, err := storage.NewLocalStore(cfg.Upload.Dir, cfg.Upload.PublicPrefix)
	if err != nil {
		t.Fatalf("init local store: %v", err)
	}

	app, err := newApp(cfg, database, store, time.UTC, io.Discard)
	if err != nil {
		t.Fatalf("newApp returned error: %v", err)
	}
	return app, cfg.Upload.Dir
}

func TestCSRFMiddlewareConfigUsesCookieSecureFlag(t *testing.T) {
	secureConfig := csrfMiddlewareConfig(true, nil, nil)
	if !secureConfig.CookieSecure {
		t.Fatal("expected csrf cookie secure flag to be enabled")
	}
	if !secureConfig.CookieHTTPOnly {
		t.Fatal("expected csrf cookie to be httpOnly")
	}
	if secureConfig.CookieName != "courtlog_csrf" {
		t.Fatalf("expected csrf cookie name courtlog_csrf, got %q", secureConfig.CookieName)
	}
	if secureConfig.KeyLookup != "header:X-CSRF-Token" {
		t.Fatalf("expected csrf key lookup header:X-CSRF-Token, got %q", secureConfig.KeyLookup)
	}

	if insecureConfig := csrfMiddlewareConfig(false, nil, nil); insecureConfig.CookieSecure {
		t.Fatal("expected csrf cookie secure flag to be disabled")
	}
}

func TestLoadLocationFallsBackToUTC(t *testing.T) {
	if location := loadLocation("Not/AZone"); location != time.UTC {
		t.Fatalf("expected UTC fallback, got %s", location)
	}
	if location := loadLocation("UTC"); location.String() != "UTC" {
		t.Fatalf("expected UTC, got %s", location)
	}
}

func TestVersionCommandPrintsVersion(t *testing.T) {
	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	if err := root.Execute(); err != nil {
		t.Fatalf("version command failed: %v", err)
	}
	if !strings.Contains(out.String(), "courtlog "+version) {
		t.Fatalf("unexpected version output %q", out.String())
	}
}

func TestResetPasswordCommandRequiresEmail(t *testing.T) {
	root := newRootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"reset-password"})

	if err := root.Execute(); err == nil {
		t.Fatal("expected missing --email to fail")
	}
}

func sendJSON(t *testing.T, app *fiber.App, method string, path string, body string, headers map[string]string) *http.Response {
	t.Helper()

	request := httptest.NewRequest(method, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")
	for name, value := range headers {
		request.Header.Set(name, value)
	}
	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	t.Cleanup(func() {
		_ = response.Body.Close()
	})
	return response
}

func cookieValue(response *http.Response, name string) string {
	for _, cookie := range response.Cookies() {
		if cookie.Name == name {
			return cookie.Value
		}
	}
	return ""
}

// registerAndLogin signs up a player without any prior cookies and returns
// the session cookie value.
func registerAndLogin(t *testing.T, app *fiber.App) string {
	t.Helper()

	credentials := `{"email":"rookie@example.com","password":"crossover88","name":"Rookie"}`
	if response := sendJSON(t, app, http.MethodPost, "/api/auth/register", credentials, nil); response.StatusCode != http.StatusCreated {
		t.Fatalf("expected register status 201, got %d", response.StatusCode)
	}
	response := sendJSON(t, app, http.MethodPost, "/api/auth/login", credentials, nil)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected login status 200, got %d", response.StatusCode)
	}
	session := cookieValue(response, "courtlog_session")
	if session == "" {
		t.Fatal("expected session cookie after login")
	}
	return session
}

func TestAppUnauthenticatedWritesAnswerUnauthorized(t *testing.T) {
	app, _ := newTestServerApp(t)

	for _, request := range []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/actions"},
		{http.MethodPut, "/api/actions/some-id"},
		{http.MethodDelete, "/api/actions/some-id"},
		{http.MethodPost, "/api/diary"},
		{http.MethodPost, "/api/upload"},
		{http.MethodPost, "/api/auth/change-password"},
	} {
		response := sendJSON(t, app, request.method, request.path, `{"name":"Layup","description":"Step"}`, nil)
		if response.StatusCode != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected status 401, got %d", request.method, request.path, response.StatusCode)
		}
	}
}

func TestAppRegistersFreshClientWithoutCookies(t *testing.T) {
	app, _ := newTestServerApp(t)

	response := sendJSON(t, app, http.MethodPost, "/api/auth/register", `{"email":"fresh@example.com","password":"crossover88","name":"Fresh"}`, nil)
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", response.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(response.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["userId"] == "" {
		t.Fatalf("expected userId in response, got %v", body)
	}
}

func TestAppRejectsSessionWriteWithoutCSRFToken(t *testing.T) {
	app, _ := newTestServerApp(t)
	session := registerAndLogin(t, app)

	response := sendJSON(t, app, http.MethodPost, "/api/actions", `{"name":"Layup","description":"Step"}`, map[string]string{
		"Cookie": "courtlog_session=" + session,
	})
	if response.StatusCode != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", response.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(response.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["error"] == "" {
		t.Fatal("expected a csrf error message")
	}
}

func TestAppAcceptsCSRFTokenFromHeader(t *testing.T) {
	app, _ := newTestServerApp(t)
	session := registerAndLogin(t, app)

	pageResponse, err := app.Test(httptest.NewRequest(http.MethodGet, "/login", nil), -1)
	if err != nil {
		t.Fatalf("login page request failed: %v", err)
	}
	defer pageResponse.Body.Close()

	token := cookieValue(pageResponse, "courtlog_csrf")
	if token == "" {
		t.Fatal("expected csrf cookie on login page")
	}

	response := sendJSON(t, app, http.MethodPost, "/api/actions", `{"name":"Layup","description":"Step"}`, map[string]string{
		"Cookie":       "courtlog_session=" + session + "; courtlog_csrf=" + token,
		"X-CSRF-Token": token,
	})
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", response.StatusCode)
	}
}

func TestAppServesLocalUploads(t *testing.T) {
	app, uploadDir := newTestServerApp(t)
	if err := os.WriteFile(filepath.Join(uploadDir, "1700000000000-court.png"), []byte("png-bytes"), 0o644); err != nil {
		t.Fatalf("write upload: %v", err)
	}

	response, err := app.Test(httptest.NewRequest(http.MethodGet, "/uploads/1700000000000-court.png", nil), -1)
	if err != nil {
		t.Fatalf("upload request failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	payload, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if string(payload) != "png-bytes" {
		t.Fatalf("unexpected upload body %q", payload)
	}
}

func TestAppServesHealthz(t *testing.T) {
	app, _ := newTestServerApp(t)

	response, err := app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil), -1)
	if err != nil {
		t.Fatalf("healthz request failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
}
