package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/taskloop/taskloop/internal/domain"
	"github.com/taskloop/taskloop/internal/repository"
	"github.com/taskloop/taskloop/internal/transport/http/handler"
	"github.com/taskloop/taskloop/internal/usecase"
)

type fakeTaskUsecase struct {
	createTask func(ctx context.Context, input usecase.CreateTaskInput) (*domain.Task, error)
	listTasks  func(ctx context.Context, input usecase.ListTasksInput) ([]*domain.Task, error)
	getTask    func(ctx context.Context, taskID, userID string) (*domain.Task, error)
	updateTask func(ctx context.Context, taskID, userID string, input repository.UpdateTaskInput) (*domain.Task, error)
	deleteTask func(ctx context.Context, taskID, userID string) error
}

func (f *fakeTaskUsecase) CreateTask(ctx context.Context, input usecase.CreateTaskInput) (*domain.Task, error) {
	return f.createTask(ctx, input)
}

func (f *fakeTaskUsecase) ListTasks(ctx context.Context, input usecase.ListTasksInput) ([]*domain.Task, error) {
	return f.listTasks(ctx, input)
}

func (f *fakeTaskUsecase) GetTask(ctx context.Context, taskID, userID string) (*domain.Task, error) {
	return f.getTask(ctx, taskID, userID)
}

func (f *fakeTaskUsecase) UpdateTask(ctx context.Context, taskID, userID string, input repository.UpdateTaskInput) (*domain.Task, error) {
	return f.updateTask(ctx, taskID, userID, input)
}

func (f *fakeTaskUsecase) DeleteTask(ctx context.Context, taskID, userID string) error {
	return f.deleteTask(ctx, taskID, userID)
}

// newTaskEngine routes like the real router but stamps a fixed identity,
// standing in for the auth middleware.
func newTaskEngine(uc *fakeTaskUsecase) *gin.Engine {
	h := handler.NewTaskHandler(uc, testLogger())

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("userID", "user-1") })
	r.POST("/api/v1/tasks", h.Create)
	r.GET("/api/v1/tasks", h.List)
	r.GET("/api/v1/tasks/:id", h.GetByID)
	r.PUT("/api/v1/tasks/:id", h.Update)
	r.DELETE("/api/v1/tasks/:id", h.Delete)
	return r
}

func sampleTask(id, title string) *domain.Task {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return &domain.Task{
		ID:        id,
		UserID:    "user-1",
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestCreateTask_Returns201(t *testing.T) {
	var captured usecase.CreateTaskInput
	uc := &fakeTaskUsecase{
		createTask: func(_ context.Context, input usecase.CreateTaskInput) (*domain.Task, error) {
			captured = input
			return sampleTask("t1", input.Title), nil
		},
	}

	w, env := doJSON(t, newTaskEngine(uc), http.MethodPost, "/api/v1/tasks",
		`{"title":"Buy milk","description":"2 liters"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}
	if env.Message != "Task created successfully" {
		t.Errorf("message = %q", env.Message)
	}
	if captured.UserID != "user-1" {
		t.Errorf("owner = %q, want the authenticated user", captured.UserID)
	}
	if captured.Description != "2 liters" {
		t.Errorf("description = %q", captured.Description)
	}
}

func TestCreateTask_MissingTitle_Returns400(t *testing.T) {
	uc := &fakeTaskUsecase{}
	w, env := doJSON(t, newTaskEngine(uc), http.MethodPost, "/api/v1/tasks",
		`{"description":"no title"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if env.Success {
		t.Error("success = true on error")
	}
}

func TestListTasks_ReturnsCountAndForwardsFilters(t *testing.T) {
	var captured usecase.ListTasksInput
	uc := &fakeTaskUsecase{
		listTasks: func(_ context.Context, input usecase.ListTasksInput) ([]*domain.Task, error) {
			captured = input
			return []*domain.Task{sampleTask("t1", "a"), sampleTask("t2", "b")}, nil
		},
	}

	w, env := doJSON(t, newTaskEngine(uc), http.MethodGet, "/api/v1/tasks?search=milk&status=pending", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if env.Count == nil || *env.Count != 2 {
		t.Errorf("count = %v, want 2", env.Count)
	}
	if captured.Search != "milk" || captured.Status != "pending" {
		t.Errorf("filters = %+v", captured)
	}
	if captured.UserID != "user-1" {
		t.Errorf("userID = %q", captured.UserID)
	}
}

func TestListTasks_EmptyIsZeroCountNotNull(t *testing.T) {
	uc := &fakeTaskUsecase{
		listTasks: func(_ context.Context, _ usecase.ListTasksInput) ([]*domain.Task, error) {
			return nil, nil
		},
	}

	w, env := doJSON(t, newTaskEngine(uc), http.MethodGet, "/api/v1/tasks", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if env.Count == nil || *env.Count != 0 {
		t.Errorf("count = %v, want 0", env.Count)
	}

	var tasks []json.RawMessage
	if err := json.Unmarshal(env.Data, &tasks); err != nil {
		t.Fatalf("data is not an array: %v (body %q)", err, w.Body.String())
	}
	if tasks == nil {
		t.Error("data = null, want []")
	}
}

func TestGetTask_NotFound_Returns404(t *testing.T) {
	uc := &fakeTaskUsecase{
		getTask: func(_ context.Context, _, _ string) (*domain.Task, error) {
			return nil, domain.ErrTaskNotFound
		},
	}

	w, env := doJSON(t, newTaskEngine(uc), http.MethodGet, "/api/v1/tasks/nope", "")

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if env.Message != "Task not found" {
		t.Errorf("message = %q", env.Message)
	}
}

func TestUpdateTask_PartialBodyForwardsOnlyPresentFields(t *testing.T) {
	var captured repository.UpdateTaskInput
	uc := &fakeTaskUsecase{
		updateTask: func(_ context.Context, taskID, userID string, input repository.UpdateTaskInput) (*domain.Task, error) {
			if taskID != "t1" || userID != "user-1" {
				t.Errorf("scope = (%q, %q)", taskID, userID)
			}
			captured = input
			return sampleTask("t1", "done"), nil
		},
	}

	w, env := doJSON(t, newTaskEngine(uc), http.MethodPut, "/api/v1/tasks/t1",
		`{"completed":true}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if env.Message != "Task updated successfully" {
		t.Errorf("message = %q", env.Message)
	}
	if captured.Title != nil || captured.Description != nil {
		t.Error("absent fields must stay nil")
	}
	if captured.Completed == nil || !*captured.Completed {
		t.Error("completed=true not forwarded")
	}
}

func TestDeleteTask_Returns200(t *testing.T) {
	deleted := false
	uc := &fakeTaskUsecase{
		deleteTask: func(_ context.Context, taskID, userID string) error {
			deleted = taskID == "t1" && userID == "user-1"
			return nil
		},
	}

	w, env := doJSON(t, newTaskEngine(uc), http.MethodDelete, "/api/v1/tasks/t1", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if env.Message != "Task deleted successfully" {
		t.Errorf("message = %q", env.Message)
	}
	if !deleted {
		t.Error("delete not forwarded with owner scope")
	}
}
