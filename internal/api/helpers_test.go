package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/satriadp/eightify/internal/db"
)

func newTestApp(t *testing.T) (*fiber.App, *Handler) {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	handler := NewHandler(database, "test-secret", time.UTC, false)
	app := fiber.New()
	RegisterRoutes(app, handler)
	return app, handler
}

func doJSON(t *testing.T, app *fiber.App, method string, path string, body any, cookies ...*http.Cookie) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	request := httptest.NewRequest(method, path, reader)
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	for _, cookie := range cookies {
		request.AddCookie(cookie)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return response
}

func decodeBody(t *testing.T, response *http.Response) map[string]any {
	t.Helper()

	defer response.Body.Close()
	decoded := map[string]any{}
	if err := json.NewDecoder(response.Body).Decode(&decoded); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return decoded
}

func cookieByName(response *http.Response, name string) *http.Cookie {
	for _, cookie := range response.Cookies() {
		if cookie.Name == name && cookie.Value != "" {
			return cookie
		}
	}
	return nil
}

// registerUser creates an account and returns its auth cookie and user id.
func registerUser(t *testing.T, app *fiber.App, email string, displayName string) (*http.Cookie, uint) {
	t.Helper()

	response := doJSON(t, app, http.MethodPost, "/api/auth/register", map[string]any{
		"email":        email,
		"password":     "secret-password",
		"display_name": displayName,
	})
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("register %s: status %d", email, response.StatusCode)
	}

	cookie := cookieByName(response, authCookieName)
	if cookie == nil {
		t.Fatalf("register %s: no auth cookie", email)
	}

	body := decodeBody(t, response)
	id, ok := body["id"].(float64)
	if !ok {
		t.Fatalf("register %s: missing id in %v", email, body)
	}
	return cookie, uint(id)
}
