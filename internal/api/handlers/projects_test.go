package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/maren/taskhive/internal/api/dto"
	"github.com/maren/taskhive/internal/api/handlers"
	"github.com/maren/taskhive/internal/api/middleware"
	"github.com/maren/taskhive/internal/database/models"
	"github.com/maren/taskhive/internal/projects"
	"github.com/maren/taskhive/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupProjectTestRouter(t *testing.T) (*chi.Mux, *testutil.TestSetup) {
	tc := testutil.NewTestContext(t)

	service := projects.NewService(tc.DB)
	handler := handlers.NewProjectHandler(service)

	r := chi.NewRouter()
	r.Use(middleware.AccessContext(tc.JWTService))
	r.Use(middleware.RequireAuth)
	r.Route("/api/v1/projects", func(r chi.Router) {
		r.Get("/", handler.List)
		r.Get("/completed", handler.ListCompleted)
		r.Post("/", handler.Create)
		r.Delete("/{id}", handler.Delete)
		r.Patch("/{id}/complete", handler.Complete)
	})

	return r, tc
}

func TestProjectHandler_Create(t *testing.T) {
	router, tc := setupProjectTestRouter(t)
	defer tc.Cleanup()

	t.Run("creates project and binds caller as manager", func(t *testing.T) {
		body := map[string]interface{}{
			"name":        "Website Redesign",
			"description": "Refresh the marketing site",
		}

		req := testutil.AuthenticatedRequest(t, "POST", "/api/v1/projects", body, tc.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)

		var resp dto.ProjectResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.ID)
		assert.Equal(t, "Website Redesign", resp.Name)
		assert.False(t, resp.IsCompleted)

		var membership models.ProjectMember
		err := tc.DB.Where("project_id = ? AND user_id = ?", resp.ID, tc.User.ID).First(&membership).Error
		require.NoError(t, err)
		assert.Equal(t, models.ProjectRoleManager, membership.Role)
	})

	t.Run("blank name", func(t *testing.T) {
		body := map[string]interface{}{"name": "   "}

		req := testutil.AuthenticatedRequest(t, "POST", "/api/v1/projects", body, tc.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("requires authentication", func(t *testing.T) {
		body := map[string]interface{}{"name": "Unauthorized Project"}

		req := testutil.UnauthenticatedRequest(t, "POST", "/api/v1/projects", body)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestProjectHandler_List(t *testing.T) {
	router, tc := setupProjectTestRouter(t)
	defer tc.Cleanup()

	alpha := testutil.CreateTestProject(t, tc.DB, tc.Org.ID, "Alpha")
	testutil.CreateTestProject(t, tc.DB, tc.Org.ID, "Zulu")

	// Completed project stays out of the active listing
	done := testutil.CreateTestProject(t, tc.DB, tc.Org.ID, "Finished")
	require.NoError(t, tc.DB.Model(done).Update("is_completed", true).Error)

	// Another organization's project stays invisible
	otherOrg := testutil.CreateTestOrg(t, tc.DB)
	testutil.CreateTestProject(t, tc.DB, otherOrg.ID, "Foreign")

	testutil.CreateTestWorkItem(t, tc.DB, tc.Org.ID, alpha.ID, "Item 1", models.StatusDone)
	testutil.CreateTestWorkItem(t, tc.DB, tc.Org.ID, alpha.ID, "Item 2", models.StatusTodo)

	t.Run("active projects sorted by name with counts", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "GET", "/api/v1/projects", nil, tc.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp []dto.ProjectResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		require.Len(t, resp, 2)
		assert.Equal(t, "Alpha", resp[0].Name)
		assert.Equal(t, "Zulu", resp[1].Name)
		assert.Equal(t, 2, resp[0].TotalTasks)
		assert.Equal(t, 1, resp[0].CompletedTasks)
		assert.Equal(t, 0, resp[1].TotalTasks)
	})

	t.Run("completed listing", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "GET", "/api/v1/projects/completed", nil, tc.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp []dto.CompletedProjectResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		require.Len(t, resp, 1)
		assert.Equal(t, "Finished", resp[0].Name)
		assert.True(t, resp[0].IsCompleted)
		assert.False(t, resp[0].CompletedAt.IsZero())
	})
}

func TestProjectHandler_Complete(t *testing.T) {
	router, tc := setupProjectTestRouter(t)
	defer tc.Cleanup()

	t.Run("fails while items are unfinished, naming statuses", func(t *testing.T) {
		project := testutil.CreateTestProject(t, tc.DB, tc.Org.ID, "Busy Project")
		testutil.CreateTestWorkItem(t, tc.DB, tc.Org.ID, project.ID, "A", models.StatusInProgress)
		testutil.CreateTestWorkItem(t, tc.DB, tc.Org.ID, project.ID, "B", models.StatusTodo)
		testutil.CreateTestWorkItem(t, tc.DB, tc.Org.ID, project.ID, "C", models.StatusDone)

		req := testutil.AuthenticatedRequest(t, "PATCH", "/api/v1/projects/"+project.ID.String()+"/complete", nil, tc.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)

		var resp dto.ErrorResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t,
			"Cannot complete project. Not all tasks are finished. Incomplete statuses: Todo, InProgress",
			resp.Error)
	})

	t.Run("succeeds when every item is done", func(t *testing.T) {
		project := testutil.CreateTestProject(t, tc.DB, tc.Org.ID, "Done Project")
		testutil.CreateTestWorkItem(t, tc.DB, tc.Org.ID, project.ID, "A", models.StatusDone)
		testutil.CreateTestWorkItem(t, tc.DB, tc.Org.ID, project.ID, "B", models.StatusDone)

		req := testutil.AuthenticatedRequest(t, "PATCH", "/api/v1/projects/"+project.ID.String()+"/complete", nil, tc.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp dto.ProjectResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.True(t, resp.IsCompleted)
		assert.Equal(t, 2, resp.TotalTasks)
		assert.Equal(t, 2, resp.CompletedTasks)
	})

	t.Run("empty project completes", func(t *testing.T) {
		project := testutil.CreateTestProject(t, tc.DB, tc.Org.ID, "Empty Project")

		req := testutil.AuthenticatedRequest(t, "PATCH", "/api/v1/projects/"+project.ID.String()+"/complete", nil, tc.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("project in another organization", func(t *testing.T) {
		otherOrg := testutil.CreateTestOrg(t, tc.DB)
		foreign := testutil.CreateTestProject(t, tc.DB, otherOrg.ID, "Foreign Project")

		req := testutil.AuthenticatedRequest(t, "PATCH", "/api/v1/projects/"+foreign.ID.String()+"/complete", nil, tc.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("unknown project", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "PATCH", "/api/v1/projects/"+uuid.NewString()+"/complete", nil, tc.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)

		var resp dto.ErrorResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "Project not found.", resp.Error)
	})
}

func TestProjectHandler_Delete(t *testing.T) {
	router, tc := setupProjectTestRouter(t)
	defer tc.Cleanup()

	t.Run("cascades to items, comments and memberships", func(t *testing.T) {
		project := testutil.CreateTestProject(t, tc.DB, tc.Org.ID, "Doomed Project")
		item := testutil.CreateTestWorkItem(t, tc.DB, tc.Org.ID, project.ID, "Item", models.StatusTodo)

		require.NoError(t, tc.DB.Create(&models.ProjectMember{
			ProjectID: project.ID,
			UserID:    tc.User.ID,
			Role:      models.ProjectRoleManager,
		}).Error)
		require.NoError(t, tc.DB.Create(&models.WorkItemComment{
			WorkItemID: item.ID,
			AuthorID:   tc.User.ID,
			Body:       "a comment",
		}).Error)

		req := testutil.AuthenticatedRequest(t, "DELETE", "/api/v1/projects/"+project.ID.String(), nil, tc.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)

		var count int64
		tc.DB.Model(&models.WorkItem{}).Where("project_id = ?", project.ID).Count(&count)
		assert.Equal(t, int64(0), count)
		tc.DB.Model(&models.WorkItemComment{}).Where("work_item_id = ?", item.ID).Count(&count)
		assert.Equal(t, int64(0), count)
		tc.DB.Model(&models.ProjectMember{}).Where("project_id = ?", project.ID).Count(&count)
		assert.Equal(t, int64(0), count)
	})

	t.Run("project in another organization", func(t *testing.T) {
		otherOrg := testutil.CreateTestOrg(t, tc.DB)
		foreign := testutil.CreateTestProject(t, tc.DB, otherOrg.ID, "Foreign Project")

		req := testutil.AuthenticatedRequest(t, "DELETE", "/api/v1/projects/"+foreign.ID.String(), nil, tc.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)

		// Foreign project survives
		var count int64
		tc.DB.Model(&models.Project{}).Where("id = ?", foreign.ID).Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("invalid id", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "DELETE", "/api/v1/projects/not-a-uuid", nil, tc.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
