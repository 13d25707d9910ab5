// Package client is the HTTP consumer of the taskdeck API. It backs
// the watch command's refresh loop and is the reference caller for the
// two-step progress propagation protocol.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/opaline-labs/taskdeck/internal/handler/dto"
)

// Client talks to a taskdeck server over HTTP JSON.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New creates a Client for the given server base URL and bearer token.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read error body: %w", err)
		}

		var errResp dto.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err != nil || errResp.Error.Code == "" {
			return fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
		}
		return &APIError{
			StatusCode: resp.StatusCode,
			Code:       errResp.Error.Code,
			Message:    errResp.Error.Message,
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

// APIError is a structured error response from the server.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d (%s): %s", e.StatusCode, e.Code, e.Message)
}

// GetBoard fetches a project's board snapshot.
func (c *Client) GetBoard(ctx context.Context, projectID string) (*dto.BoardResponse, error) {
	var board dto.BoardResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/projects/"+projectID+"/board", nil, &board); err != nil {
		return nil, err
	}
	return &board, nil
}

// ListTasks fetches tasks matching the given filters.
func (c *Client) ListTasks(ctx context.Context, filters dto.ListTasksFilters) ([]dto.TaskResponse, error) {
	q := url.Values{}
	if filters.ProjectID != nil {
		q.Set("project_id", *filters.ProjectID)
	}
	if filters.AssigneeID != nil {
		q.Set("assignee_id", *filters.AssigneeID)
	}
	if filters.ParentTaskID != nil {
		q.Set("parent_task_id", *filters.ParentTaskID)
	}
	if filters.Status != nil {
		q.Set("status", *filters.Status)
	}

	var list dto.TasksListResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/tasks?"+q.Encode(), nil, &list); err != nil {
		return nil, err
	}
	return list.Tasks, nil
}

// CreateTask creates a task.
func (c *Client) CreateTask(ctx context.Context, req dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	var task dto.TaskResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/tasks", req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask applies a partial update to a task.
func (c *Client) UpdateTask(ctx context.Context, taskID string, req dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	var task dto.TaskResponse
	if err := c.do(ctx, http.MethodPut, "/api/v1/tasks/"+taskID, req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// ListHistory fetches a task's activity timeline, oldest first.
func (c *Client) ListHistory(ctx context.Context, taskID string) ([]dto.HistoryEntryResponse, error) {
	var list dto.HistoryListResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/tasks/"+taskID+"/history", nil, &list); err != nil {
		return nil, err
	}
	return list.Entries, nil
}

// AddProgressUpdate appends a history entry and then propagates the
// completion percentage into the task row. The two writes are
// independent server calls: a concurrent status update can land
// between them, leaving the task and the ledger briefly out of sync
// until the next refetch. If the append succeeds and the propagation
// fails, the ledger entry stands and the task keeps its old progress.
func (c *Client) AddProgressUpdate(ctx context.Context, taskID, comment string, completionPercentage int) (*dto.HistoryEntryResponse, error) {
	var entry dto.HistoryEntryResponse
	err := c.do(ctx, http.MethodPost, "/api/v1/tasks/"+taskID+"/history", dto.CreateHistoryRequest{
		Comment:              comment,
		CompletionPercentage: completionPercentage,
	}, &entry)
	if err != nil {
		return nil, err
	}

	err = c.do(ctx, http.MethodPut, "/api/v1/tasks/"+taskID+"/progress", dto.UpdateProgressRequest{
		ProgressPercent: completionPercentage,
	}, nil)
	if err != nil {
		return &entry, fmt.Errorf("history recorded but progress propagation failed: %w", err)
	}

	return &entry, nil
}
