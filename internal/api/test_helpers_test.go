package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cyclejournal/internal/db"
	"gorm.io/gorm"
)

const testSecretKey = "test-secret-key-with-at-least-32-chars"

func newTestSettings() Settings {
	return Settings{
		SecretKey:   testSecretKey,
		DefaultUser: "default",
		CycleLength: 28,
		Location:    time.UTC,
	}
}

func newTestApp(t *testing.T, settings Settings) (*fiber.App, *Handler, *gorm.DB) {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "cyclejournal-api-test.db"), nil)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close(database)
	})

	handler, err := NewHandler(database, settings, nil)
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}
	return NewApp(handler, AppOptions{}), handler, database
}

func doRequest(t *testing.T, app *fiber.App, method string, path string, body string, headers map[string]string) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	request := httptest.NewRequest(method, path, reader)
	if body != "" {
		request.Header.Set("Content-Type", "application/json")
	}
	for key, value := range headers {
		request.Header.Set(key, value)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer response.Body.Close()

	payload, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("%s %s read body failed: %v", method, path, err)
	}
	return response, payload
}

func expectStatus(t *testing.T, response *http.Response, body []byte, expected int) {
	t.Helper()
	if response.StatusCode != expected {
		t.Fatalf("%s %s expected status %d, got %d: %s", response.Request.Method, response.Request.URL.Path, expected, response.StatusCode, string(body))
	}
}

func decodeJSON(t *testing.T, body []byte, target any) {
	t.Helper()
	if err := json.Unmarshal(body, target); err != nil {
		t.Fatalf("decode json %q: %v", string(body), err)
	}
}

func errorMessage(t *testing.T, body []byte) string {
	t.Helper()
	payload := map[string]any{}
	decodeJSON(t, body, &payload)
	message, _ := payload["error"].(string)
	return message
}
