package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"notes-manager/app"
	"notes-manager/auth"
	"notes-manager/config/setup"
	"notes-manager/database"
	"notes-manager/session"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func setupTestServer(t *testing.T) *fiber.App {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "notes-handlers-test-*")
	require.NoError(t, err)

	db, err := database.New(filepath.Join(tmpDir, "test.db"))
	require.NoError(t, err)
	require.NoError(t, db.Migrate(context.Background()))

	t.Cleanup(func() {
		db.Close()
		os.RemoveAll(tmpDir)
	})

	tokens, err := auth.NewTokenService("handlers-test-secret-key", time.Hour)
	require.NoError(t, err)

	application := app.New(
		database.NewRepository(db),
		session.NewStore(db.DB, time.Hour),
		auth.NewPasswordHasherWithCost(bcrypt.MinCost),
		tokens,
		slog.Default(),
	)

	server := fiber.New()
	setup.RegisterRoutes(server, application)
	return server
}

type response struct {
	status  int
	body    map[string]any
	raw     string
	header  http.Header
	cookies []*http.Cookie
}

func doRequest(t *testing.T, server *fiber.App, method, path string, body any, token string) response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := server.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	r := response{status: resp.StatusCode, raw: string(raw), header: resp.Header, cookies: resp.Cookies()}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &r.body))
	}
	return r
}

// registerAndLogin creates an account and returns its bearer token
func registerAndLogin(t *testing.T, server *fiber.App, username string) string {
	t.Helper()

	resp := doRequest(t, server, http.MethodPost, "/api/auth/register", fiber.Map{
		"username": username, "password": "secret1", "confirm_password": "secret1",
	}, "")
	require.Equal(t, http.StatusCreated, resp.status, resp.raw)

	resp = doRequest(t, server, http.MethodPost, "/api/auth/login", fiber.Map{
		"username": username, "password": "secret1",
	}, "")
	require.Equal(t, http.StatusOK, resp.status, resp.raw)

	token, ok := resp.body["token"].(string)
	require.True(t, ok)
	return token
}

func noteID(t *testing.T, resp response) int64 {
	t.Helper()
	note, ok := resp.body["note"].(map[string]any)
	require.True(t, ok, resp.raw)
	return int64(note["id"].(float64))
}

func TestRegister(t *testing.T) {
	server := setupTestServer(t)

	tests := []struct {
		name           string
		body           fiber.Map
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "Success",
			body:           fiber.Map{"username": "alice", "password": "secret1", "confirm_password": "secret1"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Duplicate username",
			body:           fiber.Map{"username": "alice", "password": "secret1", "confirm_password": "secret1"},
			expectedStatus: http.StatusConflict,
			expectedError:  "Username already exists. Choose another.",
		},
		{
			name:           "Passwords differ",
			body:           fiber.Map{"username": "bob", "password": "secret1", "confirm_password": "secret2"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Username too short",
			body:           fiber.Map{"username": "al", "password": "secret1", "confirm_password": "secret1"},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Validation failed",
		},
		{
			name:           "Missing password",
			body:           fiber.Map{"username": "carol"},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Validation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doRequest(t, server, http.MethodPost, "/api/auth/register", tt.body, "")

			assert.Equal(t, tt.expectedStatus, resp.status, resp.raw)
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, resp.body["error"])
			}
		})
	}
}

func TestLoginAndSession(t *testing.T) {
	server := setupTestServer(t)
	registerAndLogin(t, server, "alice")

	resp := doRequest(t, server, http.MethodPost, "/api/auth/login", fiber.Map{"username": "alice", "password": "wrong-pass"}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.status)
	assert.Equal(t, "invalid username or password", resp.body["error"])

	resp = doRequest(t, server, http.MethodPost, "/api/auth/login", fiber.Map{"username": "nobody", "password": "secret1"}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.status)
	assert.Equal(t, "invalid username or password", resp.body["error"])

	resp = doRequest(t, server, http.MethodPost, "/api/auth/login", fiber.Map{"username": "alice", "password": "secret1"}, "")
	require.Equal(t, http.StatusOK, resp.status)

	var sessionCookie *http.Cookie
	for _, cookie := range resp.cookies {
		if cookie.Name == "session_id" {
			sessionCookie = cookie
		}
	}
	require.NotNil(t, sessionCookie)
	assert.True(t, sessionCookie.HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: sessionCookie.Value})
	meResp, err := server.Test(req, -1)
	require.NoError(t, err)
	defer meResp.Body.Close()
	assert.Equal(t, http.StatusOK, meResp.StatusCode)

	var me map[string]any
	require.NoError(t, json.NewDecoder(meResp.Body).Decode(&me))
	assert.Equal(t, true, me["authenticated"])
	assert.Equal(t, "alice", me["user"].(map[string]any)["username"])

	req = httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: sessionCookie.Value})
	logoutResp, err := server.Test(req, -1)
	require.NoError(t, err)
	logoutResp.Body.Close()
	assert.Equal(t, http.StatusOK, logoutResp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: sessionCookie.Value})
	afterResp, err := server.Test(req, -1)
	require.NoError(t, err)
	afterResp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, afterResp.StatusCode)
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	server := setupTestServer(t)

	for _, path := range []string{"/api/notes", "/api/categories", "/api/notes/1"} {
		resp := doRequest(t, server, http.MethodGet, path, nil, "")
		assert.Equal(t, http.StatusUnauthorized, resp.status, path)
	}

	resp := doRequest(t, server, http.MethodGet, "/api/notes", nil, "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, resp.status)
	assert.Equal(t, "Invalid or expired token", resp.body["error"])
}

func TestCategoryEndpoints(t *testing.T) {
	server := setupTestServer(t)
	token := registerAndLogin(t, server, "alice")

	resp := doRequest(t, server, http.MethodPost, "/api/categories", fiber.Map{"name": "Work"}, token)
	require.Equal(t, http.StatusCreated, resp.status, resp.raw)
	category := resp.body["category"].(map[string]any)
	id := int64(category["id"].(float64))

	resp = doRequest(t, server, http.MethodPost, "/api/categories", fiber.Map{"name": "   "}, token)
	assert.Equal(t, http.StatusBadRequest, resp.status)

	resp = doRequest(t, server, http.MethodPut, "/api/categories/"+itoa(id), fiber.Map{"name": "Office"}, token)
	require.Equal(t, http.StatusOK, resp.status, resp.raw)
	assert.Equal(t, "Office", resp.body["category"].(map[string]any)["name"])

	resp = doRequest(t, server, http.MethodGet, "/api/categories", nil, token)
	require.Equal(t, http.StatusOK, resp.status)
	assert.Len(t, resp.body["categories"], 1)

	other := registerAndLogin(t, server, "bob")
	resp = doRequest(t, server, http.MethodDelete, "/api/categories/"+itoa(id), nil, other)
	assert.Equal(t, http.StatusNotFound, resp.status)

	resp = doRequest(t, server, http.MethodDelete, "/api/categories/"+itoa(id), nil, token)
	assert.Equal(t, http.StatusOK, resp.status)

	resp = doRequest(t, server, http.MethodDelete, "/api/categories/abc", nil, token)
	assert.Equal(t, http.StatusBadRequest, resp.status)
}

func TestNoteEndpoints(t *testing.T) {
	server := setupTestServer(t)
	token := registerAndLogin(t, server, "alice")

	resp := doRequest(t, server, http.MethodPost, "/api/categories", fiber.Map{"name": "Home"}, token)
	require.Equal(t, http.StatusCreated, resp.status)
	categoryID := resp.body["category"].(map[string]any)["id"]

	resp = doRequest(t, server, http.MethodPost, "/api/notes", fiber.Map{
		"title": " Groceries list ", "content": "milk", "category_id": categoryID, "reminder": "2025-03-01T09:00:00Z",
	}, token)
	require.Equal(t, http.StatusCreated, resp.status, resp.raw)
	groceries := noteID(t, resp)
	note := resp.body["note"].(map[string]any)
	assert.Equal(t, "Groceries list", note["title"])
	assert.Equal(t, "Home", note["category_name"])
	assert.Equal(t, "2025-03-01T09:00:00.000000+00:00", note["reminder"])

	resp = doRequest(t, server, http.MethodPost, "/api/notes", fiber.Map{"title": "Ideas", "content": "ship it"}, token)
	require.Equal(t, http.StatusCreated, resp.status)
	ideas := noteID(t, resp)

	t.Run("Empty note is rejected", func(t *testing.T) {
		resp := doRequest(t, server, http.MethodPost, "/api/notes", fiber.Map{"title": " ", "content": ""}, token)
		assert.Equal(t, http.StatusBadRequest, resp.status)
	})

	t.Run("Unknown category is rejected", func(t *testing.T) {
		resp := doRequest(t, server, http.MethodPost, "/api/notes", fiber.Map{"title": "x", "category_id": 999}, token)
		assert.Equal(t, http.StatusBadRequest, resp.status)
		assert.Equal(t, "Unknown category", resp.body["error"])
	})

	t.Run("Invalid reminder is rejected", func(t *testing.T) {
		resp := doRequest(t, server, http.MethodPost, "/api/notes", fiber.Map{"title": "x", "reminder": "tomorrow"}, token)
		assert.Equal(t, http.StatusBadRequest, resp.status)
	})

	t.Run("Pin moves a note first", func(t *testing.T) {
		resp := doRequest(t, server, http.MethodPost, "/api/notes/"+itoa(groceries)+"/pin", nil, token)
		require.Equal(t, http.StatusOK, resp.status, resp.raw)
		assert.Equal(t, true, resp.body["pinned"])

		resp = doRequest(t, server, http.MethodGet, "/api/notes", nil, token)
		require.Equal(t, http.StatusOK, resp.status)
		notes := resp.body["notes"].([]any)
		require.Len(t, notes, 2)
		assert.Equal(t, float64(groceries), notes[0].(map[string]any)["id"])
	})

	t.Run("Search", func(t *testing.T) {
		resp := doRequest(t, server, http.MethodGet, "/api/notes?q=ship", nil, token)
		require.Equal(t, http.StatusOK, resp.status)
		assert.Equal(t, "ship", resp.body["query"])
		notes := resp.body["notes"].([]any)
		require.Len(t, notes, 1)
		assert.Equal(t, float64(ideas), notes[0].(map[string]any)["id"])
	})

	t.Run("Update", func(t *testing.T) {
		resp := doRequest(t, server, http.MethodPut, "/api/notes/"+itoa(ideas), fiber.Map{"title": "Ideas", "content": "ship it today"}, token)
		require.Equal(t, http.StatusOK, resp.status, resp.raw)
		assert.Equal(t, "ship it today", resp.body["note"].(map[string]any)["content"])
	})

	t.Run("Download", func(t *testing.T) {
		resp := doRequest(t, server, http.MethodGet, "/api/notes/"+itoa(groceries)+"/download", nil, token)
		require.Equal(t, http.StatusOK, resp.status)
		assert.Contains(t, resp.header.Get("Content-Disposition"), `filename="groceries-list.txt"`)
		assert.Equal(t, "Groceries list\n\nmilk", resp.raw)
	})

	t.Run("Other users cannot see the note", func(t *testing.T) {
		other := registerAndLogin(t, server, "bob")

		resp := doRequest(t, server, http.MethodGet, "/api/notes/"+itoa(groceries), nil, other)
		assert.Equal(t, http.StatusNotFound, resp.status)

		resp = doRequest(t, server, http.MethodDelete, "/api/notes/"+itoa(groceries), nil, other)
		assert.Equal(t, http.StatusNotFound, resp.status)

		resp = doRequest(t, server, http.MethodGet, "/api/notes", nil, other)
		assert.Empty(t, resp.body["notes"])
	})

	t.Run("Delete", func(t *testing.T) {
		resp := doRequest(t, server, http.MethodDelete, "/api/notes/"+itoa(ideas), nil, token)
		assert.Equal(t, http.StatusOK, resp.status)

		resp = doRequest(t, server, http.MethodGet, "/api/notes/"+itoa(ideas), nil, token)
		assert.Equal(t, http.StatusNotFound, resp.status)
	})
}

func TestSyncEndpoint(t *testing.T) {
	server := setupTestServer(t)
	token := registerAndLogin(t, server, "alice")

	batch := fiber.Map{"notes": []fiber.Map{
		{"title": "Offline", "content": "written on the train", "created_at": "2025-01-14T06:20:51.123Z"},
		{"title": "Broken"},
		{"title": "Second", "content": "also offline", "created_at": "2025-01-14T07:00:00Z"},
	}}

	for i := 0; i < 2; i++ {
		resp := doRequest(t, server, http.MethodPost, "/api/notes/sync", batch, token)
		require.Equal(t, http.StatusOK, resp.status, resp.raw)
		assert.Equal(t, "success", resp.body["status"])
	}

	resp := doRequest(t, server, http.MethodGet, "/api/notes", nil, token)
	require.Equal(t, http.StatusOK, resp.status)
	assert.Len(t, resp.body["notes"], 2)

	resp = doRequest(t, server, http.MethodPost, "/api/notes/sync", fiber.Map{"notes": "not a list"}, token)
	assert.Equal(t, http.StatusOK, resp.status)

	resp = doRequest(t, server, http.MethodPost, "/api/notes/sync", nil, token)
	assert.Equal(t, http.StatusOK, resp.status)
}

func TestUpdateNoteConflictsWithSyncedNote(t *testing.T) {
	server := setupTestServer(t)
	token := registerAndLogin(t, server, "alice")

	batch := fiber.Map{"notes": []fiber.Map{
		{"title": "A", "content": "x", "created_at": "2025-01-14T06:20:51Z"},
		{"title": "B", "content": "x", "created_at": "2025-01-14T06:20:51Z"},
	}}
	resp := doRequest(t, server, http.MethodPost, "/api/notes/sync", batch, token)
	require.Equal(t, http.StatusOK, resp.status, resp.raw)

	resp = doRequest(t, server, http.MethodGet, "/api/notes?q=B", nil, token)
	require.Equal(t, http.StatusOK, resp.status)
	notes := resp.body["notes"].([]any)
	require.Len(t, notes, 1)
	id := int64(notes[0].(map[string]any)["id"].(float64))

	resp = doRequest(t, server, http.MethodPut, "/api/notes/"+itoa(id), fiber.Map{"title": "A", "content": "x"}, token)
	assert.Equal(t, http.StatusConflict, resp.status, resp.raw)
	assert.Equal(t, "Another note already has this title and content", resp.body["error"])

	resp = doRequest(t, server, http.MethodGet, "/api/notes/"+itoa(id), nil, token)
	require.Equal(t, http.StatusOK, resp.status)
	assert.Equal(t, "B", resp.body["note"].(map[string]any)["title"])
}

func TestServerTime(t *testing.T) {
	server := setupTestServer(t)

	resp := doRequest(t, server, http.MethodGet, "/api/time?timezone=Not/AZone", nil, "")
	require.Equal(t, http.StatusOK, resp.status)
	assert.Equal(t, "UTC", resp.body["timezone"])
	assert.NotEmpty(t, resp.body["iso"])
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
