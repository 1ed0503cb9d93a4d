package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/BuzzLyutic/task-tracker-api/internal/auth"
	"github.com/BuzzLyutic/task-tracker-api/internal/model"
	"github.com/BuzzLyutic/task-tracker-api/internal/repo"
	"github.com/BuzzLyutic/task-tracker-api/internal/service"
	"github.com/BuzzLyutic/task-tracker-api/internal/testutil"
)

func setupE2EServer(t *testing.T) (*httptest.Server, func()) {
	pool, cleanup := testutil.SetupTestDB(t)
	testutil.TruncateTables(t, pool)

	logger := zap.NewNop()
	authService := service.NewAuthService(
		repo.NewUserRepo(pool),
		auth.NewTokenManager("e2e-secret", 24*time.Hour),
		auth.NewPasswordHasher(bcrypt.MinCost),
		logger,
	)
	taskService := service.NewTaskService(repo.NewTaskRepo(pool))

	server := httptest.NewServer(NewRouter(
		NewAuthHandler(authService, logger),
		NewTaskHandler(taskService, logger),
		NewHealthHandler("test", "1.0.0"),
		logger,
	))

	return server, func() {
		server.Close()
		cleanup()
	}
}

func call(t *testing.T, server *httptest.Server, method, path, token string, body interface{}, out interface{}) int {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, server.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func register(t *testing.T, server *httptest.Server, name string) authResponse {
	t.Helper()

	var resp authResponse
	code := call(t, server, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": name, "email": name + "@example.com", "password": "password123",
	}, &resp)
	require.Equal(t, http.StatusCreated, code)
	return resp
}

func TestE2E_FullWorkflow(t *testing.T) {
	server, cleanup := setupE2EServer(t)
	defer cleanup()

	alice := register(t, server, "alice")

	// Повторная регистрация
	var dup map[string]string
	code := call(t, server, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "alice", "email": "new@example.com", "password": "x",
	}, &dup)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Username or email already exists", dup["error"])

	// Логин по email
	var login authResponse
	code = call(t, server, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "alice@example.com", "password": "password123",
	}, &login)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, alice.User, login.User)
	token := login.Token

	// 1. Create
	var created taskCreatedResponse
	code = call(t, server, http.MethodPost, "/api/tasks", token, map[string]string{
		"title": "Write report", "priority": "high",
	}, &created)
	require.Equal(t, http.StatusCreated, code)
	taskPath := fmt.Sprintf("/api/tasks/%d", created.Task.ID)

	// 2. Get shows defaults
	var fetched model.Task
	require.Equal(t, http.StatusOK, call(t, server, http.MethodGet, taskPath, token, nil, &fetched))
	assert.Equal(t, model.StatusPending, fetched.Status)
	assert.Equal(t, model.PriorityHigh, fetched.Priority)

	// 3. Partial update
	require.Equal(t, http.StatusOK, call(t, server, http.MethodPut, taskPath, token,
		map[string]string{"status": "completed"}, nil))

	var afterUpdate model.Task
	require.Equal(t, http.StatusOK, call(t, server, http.MethodGet, taskPath, token, nil, &afterUpdate))
	assert.Equal(t, model.StatusCompleted, afterUpdate.Status)
	assert.Equal(t, "Write report", afterUpdate.Title)
	assert.True(t, afterUpdate.UpdatedAt.After(fetched.UpdatedAt))

	// 4. List with filters
	var list taskListResponse
	require.Equal(t, http.StatusOK, call(t, server, http.MethodGet,
		"/api/tasks?status=completed&priority=high", token, nil, &list))
	require.Equal(t, 1, list.Total)
	assert.Equal(t, created.Task.ID, list.Tasks[0].ID)

	// 5. Stats
	var stats model.TaskStats
	require.Equal(t, http.StatusOK, call(t, server, http.MethodGet, "/api/stats", token, nil, &stats))
	assert.Equal(t, model.TaskStats{Total: 1, Completed: 1, HighPriority: 1}, stats)

	// 6. Delete, then gone
	require.Equal(t, http.StatusOK, call(t, server, http.MethodDelete, taskPath, token, nil, nil))
	assert.Equal(t, http.StatusNotFound, call(t, server, http.MethodGet, taskPath, token, nil, nil))
}

func TestE2E_OwnerIsolation(t *testing.T) {
	server, cleanup := setupE2EServer(t)
	defer cleanup()

	alice := register(t, server, "alice")
	bob := register(t, server, "bob")

	var created taskCreatedResponse
	require.Equal(t, http.StatusCreated, call(t, server, http.MethodPost, "/api/tasks", alice.Token,
		map[string]string{"title": "Alice only"}, &created))
	taskPath := fmt.Sprintf("/api/tasks/%d", created.Task.ID)

	assert.Equal(t, http.StatusNotFound, call(t, server, http.MethodGet, taskPath, bob.Token, nil, nil))
	assert.Equal(t, http.StatusNotFound, call(t, server, http.MethodPut, taskPath, bob.Token,
		map[string]string{"title": "Bob was here"}, nil))
	assert.Equal(t, http.StatusNotFound, call(t, server, http.MethodDelete, taskPath, bob.Token, nil, nil))

	var bobList taskListResponse
	require.Equal(t, http.StatusOK, call(t, server, http.MethodGet, "/api/tasks", bob.Token, nil, &bobList))
	assert.Zero(t, bobList.Total)

	var bobStats model.TaskStats
	require.Equal(t, http.StatusOK, call(t, server, http.MethodGet, "/api/stats", bob.Token, nil, &bobStats))
	assert.Equal(t, model.TaskStats{}, bobStats)

	var still model.Task
	require.Equal(t, http.StatusOK, call(t, server, http.MethodGet, taskPath, alice.Token, nil, &still))
	assert.Equal(t, "Alice only", still.Title)
}

func TestE2E_IdempotencyAcrossRequests(t *testing.T) {
	server, cleanup := setupE2EServer(t)
	defer cleanup()

	alice := register(t, server, "alice")

	post := func() taskCreatedResponse {
		body, _ := json.Marshal(map[string]string{"title": "Idempotent Task"})
		req, _ := http.NewRequest(http.MethodPost, server.URL+"/api/tasks", bytes.NewReader(body))
		req.Header.Set("Authorization", "Bearer "+alice.Token)
		req.Header.Set("Idempotency-Key", "e2e-idem-test")

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var out taskCreatedResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		return out
	}

	first, second := post(), post()
	assert.Equal(t, first.Task.ID, second.Task.ID)

	var list taskListResponse
	require.Equal(t, http.StatusOK, call(t, server, http.MethodGet, "/api/tasks", alice.Token, nil, &list))
	assert.Equal(t, 1, list.Total)
}
