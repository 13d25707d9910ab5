package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opaline-labs/taskdeck/internal/client"
	"github.com/opaline-labs/taskdeck/internal/handler/dto"
)

func TestClient_GetBoard(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "/api/v1/projects/p1/board", r.URL.Path)
		assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))

		json.NewEncoder(w).Encode(dto.BoardResponse{
			ProjectID:   "p1",
			ProjectName: "Launch",
			Todo:        []dto.BoardCard{{TaskResponse: dto.TaskResponse{ID: "t1"}}},
		})
	}))
	defer srv.Close()

	c := client.New(srv.URL, "token-1")
	board, err := c.GetBoard(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Launch", board.ProjectName)
	require.Len(t, board.Todo, 1)
	assert.Equal(t, "t1", board.Todo[0].ID)
}

func TestClient_ListTasks_QueryParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "p1", r.URL.Query().Get("project_id"))
		assert.Equal(t, "u1", r.URL.Query().Get("assignee_id"))
		json.NewEncoder(w).Encode(dto.TasksListResponse{Tasks: []dto.TaskResponse{{ID: "t1"}}, Total: 1})
	}))
	defer srv.Close()

	projectID, assigneeID := "p1", "u1"
	c := client.New(srv.URL, "token-1")
	tasks, err := c.ListTasks(context.Background(), dto.ListTasksFilters{
		ProjectID:  &projectID,
		AssigneeID: &assigneeID,
	})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
}

func TestClient_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(dto.NewErrorResponse("TASK_NOT_FOUND", "task not found"))
	}))
	defer srv.Close()

	c := client.New(srv.URL, "token-1")
	_, err := c.ListHistory(context.Background(), "missing")
	require.Error(t, err)

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "TASK_NOT_FOUND", apiErr.Code)
}

// The two-step protocol issues the history append and the progress
// write as independent calls, in that order.
func TestClient_AddProgressUpdate_TwoSteps(t *testing.T) {
	var historyCalls, progressCalls atomic.Int32
	var order []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == "POST" && r.URL.Path == "/api/v1/tasks/t1/history":
			historyCalls.Add(1)
			order = append(order, "history")

			var req dto.CreateHistoryRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "halfway there", req.Comment)
			assert.Equal(t, 50, req.CompletionPercentage)

			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(dto.HistoryEntryResponse{ID: "h1", TaskID: "t1", CompletionPercentage: 50})
		case r.Method == "PUT" && r.URL.Path == "/api/v1/tasks/t1/progress":
			progressCalls.Add(1)
			order = append(order, "progress")
			json.NewEncoder(w).Encode(dto.TaskResponse{ID: "t1", ProgressPercent: 50})
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	c := client.New(srv.URL, "token-1")
	entry, err := c.AddProgressUpdate(context.Background(), "t1", "halfway there", 50)
	require.NoError(t, err)
	assert.Equal(t, "h1", entry.ID)
	assert.Equal(t, int32(1), historyCalls.Load())
	assert.Equal(t, int32(1), progressCalls.Load())
	assert.Equal(t, []string{"history", "progress"}, order)
}

// A failed propagation still returns the recorded ledger entry: the
// append is durable even when the second write does not land.
func TestClient_AddProgressUpdate_PropagationFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == "POST" {
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(dto.HistoryEntryResponse{ID: "h1"})
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(dto.NewErrorResponse("INTERNAL_ERROR", "boom"))
	}))
	defer srv.Close()

	c := client.New(srv.URL, "token-1")
	entry, err := c.AddProgressUpdate(context.Background(), "t1", "note", 30)
	require.Error(t, err)
	require.NotNil(t, entry, "ledger entry survives a failed propagation")
	assert.Equal(t, "h1", entry.ID)
}
