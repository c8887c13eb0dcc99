package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"famtask/internal/extract"
	"famtask/internal/model"
	"famtask/internal/pipeline"
	"famtask/internal/stt"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	InitPipeline(pipeline.New(&stt.MockProvider{Text: "x"}, extract.NewRuleExtractor()))
	taskRepo = nil

	r := gin.New()
	RegisterRoutes(r)
	return r
}

func addPendingPreview(id string) {
	pipe.Previews.Add(model.TaskPreview{
		ID:       id,
		Title:    "Médecin pour Lucas",
		Category: model.CategoryMedical,
		Priority: model.PriorityHigh,
		Status:   model.PreviewStatusPending,
	})
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUpdatePreviewRejectsEmptyBody(t *testing.T) {
	r := setupRouter()
	addPendingPreview("p1")

	w := do(r, http.MethodPatch, "/api/previews/p1", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code, "an update with no fields changes nothing and is a caller error")

	w = do(r, http.MethodPatch, "/api/previews/p1", `{"title":"Nouveau titre"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	p, ok := pipe.Previews.Get("p1")
	require.True(t, ok)
	assert.Equal(t, "Nouveau titre", p.Title)
}

func TestGetPreviewTask(t *testing.T) {
	r := setupRouter()
	addPendingPreview("p1")

	w := do(r, http.MethodGet, "/api/previews/p1/task", "")
	assert.Equal(t, http.StatusNotFound, w.Code, "no task before confirmation")

	w = do(r, http.MethodPost, "/api/previews/p1/confirm", `{"household_id":"h1","user_id":"u1"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/api/previews/p1/task", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Task model.ConfirmedTask `json:"task"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "p1", resp.Data.Task.PreviewID)
	assert.Equal(t, "h1", resp.Data.Task.HouseholdID)
}

func TestListTasksServesConfirmed(t *testing.T) {
	r := setupRouter()
	addPendingPreview("p1")

	w := do(r, http.MethodPost, "/api/previews/p1/confirm", `{"household_id":"h1","user_id":"u1"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/api/tasks?household_id=h1", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Count int `json:"count"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Data.Count)

	w = do(r, http.MethodGet, "/api/tasks?household_id=other", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Data.Count)
}
