package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"closetloop/internal/http/handlers"
	"closetloop/internal/repos"
)

func newTestApp(t *testing.T) (*fiber.App, *handlers.Deps) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	deps := handlers.NewDeps(db, "test-secret")

	app := fiber.New()
	api := app.Group("/api")
	api.Post("/users/login", deps.AuthHandler.Login)
	api.Get("/cart", handlers.RequireUser(deps.Auth), deps.CartHandler.View)
	api.Get("/admin/banned-users", handlers.RequireAdmin(deps.Auth), deps.AdminHandler.BannedUsers)
	return app, deps
}

func postJSON(t *testing.T, app *fiber.App, path string, body any, token string) *http.Response {
	t.Helper()
	b, _ := json.Marshal(body)
	req := httptest.NewRequest("POST", path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func decodeEnvelope(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	return out
}

func login(t *testing.T, app *fiber.App, email, password string) string {
	t.Helper()
	resp := postJSON(t, app, "/api/users/login", map[string]string{"email": email, "password": password}, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status %d", resp.StatusCode)
	}
	env := decodeEnvelope(t, resp)
	data, _ := env["data"].(map[string]any)
	tok, _ := data["token"].(string)
	if tok == "" {
		t.Fatal("no token in login response")
	}
	return tok
}

func TestLogin_EnvelopeAndToken(t *testing.T) {
	app, _ := newTestApp(t)

	resp := postJSON(t, app, "/api/users/login", map[string]string{"email": "mira@closetloop.test", "password": "Passw0rd!"}, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	env := decodeEnvelope(t, resp)
	if env["success"] != true {
		t.Fatalf("want success=true, got %+v", env)
	}

	resp = postJSON(t, app, "/api/users/login", map[string]string{"email": "mira@closetloop.test", "password": "wrong-password"}, "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("want 401, got %d", resp.StatusCode)
	}
	env = decodeEnvelope(t, resp)
	if env["success"] != false || env["message"] == "" {
		t.Fatalf("failure envelope should carry a message: %+v", env)
	}
}

func TestProtectedRoute_RequiresToken(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest("GET", "/api/cart", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("want 401 without token, got %d", resp.StatusCode)
	}

	tok := login(t, app, "mira@closetloop.test", "Passw0rd!")
	req = httptest.NewRequest("GET", "/api/cart", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200 with token, got %d", resp.StatusCode)
	}
}

func TestAdminRoute_RejectsRegularUser(t *testing.T) {
	app, _ := newTestApp(t)

	tok := login(t, app, "mira@closetloop.test", "Passw0rd!")
	req := httptest.NewRequest("GET", "/api/admin/banned-users", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("want 403 for non-admin, got %d", resp.StatusCode)
	}

	admin := login(t, app, "admin@closetloop.test", "Passw0rd!")
	req = httptest.NewRequest("GET", "/api/admin/banned-users", nil)
	req.Header.Set("Authorization", "Bearer "+admin)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200 for admin, got %d", resp.StatusCode)
	}
}
