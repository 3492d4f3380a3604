package api_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/maren/taskhive/internal/api"
	"github.com/maren/taskhive/internal/api/dto"
	"github.com/maren/taskhive/internal/auth"
	"github.com/maren/taskhive/internal/database/models"
	"github.com/maren/taskhive/internal/members"
	"github.com/maren/taskhive/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupFullRouter(t *testing.T) (*api.Router, *testutil.TestSetup) {
	tc := testutil.NewTestContext(t)

	router := api.NewRouter(api.RouterConfig{
		DB:          tc.DB,
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		JWTService:  tc.JWTService,
		AuthService: auth.NewService(tc.DB, tc.JWTService),
		Passwords:   members.NewPasswordGenerator(rand.NewSource(1)),
	})

	return router, tc
}

func TestRouter_HealthEndpoints(t *testing.T) {
	router, tc := setupFullRouter(t)
	defer tc.Cleanup()

	t.Run("health", func(t *testing.T) {
		req := testutil.UnauthenticatedRequest(t, "GET", "/health", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("ready", func(t *testing.T) {
		req := testutil.UnauthenticatedRequest(t, "GET", "/ready", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "ok", rr.Body.String())
	})
}

func TestRouter_ProtectedRoutesRequireAuth(t *testing.T) {
	router, tc := setupFullRouter(t)
	defer tc.Cleanup()

	paths := []struct {
		method string
		path   string
	}{
		{"GET", "/api/v1/dashboard/summary"},
		{"GET", "/api/v1/members/"},
		{"GET", "/api/v1/projects/"},
		{"POST", "/api/v1/work-items/"},
	}

	for _, p := range paths {
		t.Run(p.method+" "+p.path, func(t *testing.T) {
			req := testutil.UnauthenticatedRequest(t, p.method, p.path, nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusUnauthorized, rr.Code)
		})
	}
}

// TestRouter_FullLifecycle drives the whole surface through the mounted
// router: register, create a project with an item, finish the item, complete
// the project and check the dashboard numbers.
func TestRouter_FullLifecycle(t *testing.T) {
	router, tc := setupFullRouter(t)
	defer tc.Cleanup()

	do := func(t *testing.T, method, path string, body interface{}, token string, wantStatus int) *httptest.ResponseRecorder {
		t.Helper()
		req := testutil.AuthenticatedRequest(t, method, path, body, token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		require.Equal(t, wantStatus, rr.Code, "body: %s", rr.Body.String())
		return rr
	}

	// Register a fresh organization
	rr := do(t, "POST", "/api/v1/auth/register", map[string]string{
		"organization_name": "Lifecycle Org",
		"full_name":         "Flow Owner",
		"email":             "flow@example.com",
		"password":          "securepassword123",
	}, "", http.StatusCreated)

	var authResp dto.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &authResp))
	token := authResp.Token

	// Create a project
	rr = do(t, "POST", "/api/v1/projects/", map[string]string{
		"name": "Launch",
	}, token, http.StatusCreated)

	var project dto.ProjectResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &project))

	// Add a work item
	rr = do(t, "POST", "/api/v1/work-items/", map[string]interface{}{
		"project_id": project.ID,
		"title":      "Ship it",
	}, token, http.StatusCreated)

	var item dto.WorkItemResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &item))
	assert.Equal(t, int(models.StatusBacklog), item.Status)

	// Completing the project fails while the item is unfinished
	rr = do(t, "PATCH", "/api/v1/projects/"+project.ID+"/complete", nil, token, http.StatusBadRequest)

	var errResp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &errResp))
	assert.Equal(t,
		"Cannot complete project. Not all tasks are finished. Incomplete statuses: Backlog",
		errResp.Error)

	// Finish the item, then complete the project
	do(t, "PATCH", "/api/v1/work-items/"+item.ID+"/status", map[string]int{
		"status": int(models.StatusDone),
	}, token, http.StatusOK)

	rr = do(t, "PATCH", "/api/v1/projects/"+project.ID+"/complete", nil, token, http.StatusOK)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &project))
	assert.True(t, project.IsCompleted)

	// The completed project shows up in the completed listing
	rr = do(t, "GET", "/api/v1/projects/completed", nil, token, http.StatusOK)
	var completed []dto.CompletedProjectResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &completed))
	require.Len(t, completed, 1)
	assert.Equal(t, "Launch", completed[0].Name)

	// Dashboard reflects the finished work
	rr = do(t, "GET", "/api/v1/dashboard/summary", nil, token, http.StatusOK)
	var summary dto.DashboardSummaryResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &summary))
	assert.Equal(t, int64(1), summary.TotalProjects)
	assert.Equal(t, int64(1), summary.TotalTasks)
	assert.Equal(t, int64(1), summary.CompletedTasks)
}
