package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/taskloop/taskloop/internal/domain"
	"github.com/taskloop/taskloop/internal/repository"
	"github.com/taskloop/taskloop/internal/usecase"
)

type taskUsecaser interface {
	CreateTask(ctx context.Context, input usecase.CreateTaskInput) (*domain.Task, error)
	ListTasks(ctx context.Context, input usecase.ListTasksInput) ([]*domain.Task, error)
	GetTask(ctx context.Context, taskID, userID string) (*domain.Task, error)
	UpdateTask(ctx context.Context, taskID, userID string, input repository.UpdateTaskInput) (*domain.Task, error)
	DeleteTask(ctx context.Context, taskID, userID string) error
}

type TaskHandler struct {
	uc     taskUsecaser
	logger *slog.Logger
}

func NewTaskHandler(uc taskUsecaser, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{uc: uc, logger: logger.With("component", "task_handler")}
}

type createTaskRequest struct {
	Title       string `json:"title"       binding:"required,max=256"`
	Description string `json:"description" binding:"omitempty,max=2048"`
	Completed   bool   `json:"completed"`
}

// updateTaskRequest uses pointers so that only fields present in the body are
// applied; absent and zero-valued are different things here.
type updateTaskRequest struct {
	Title       *string `json:"title"       binding:"omitempty,max=256"`
	Description *string `json:"description" binding:"omitempty,max=2048"`
	Completed   *bool   `json:"completed"`
}

type taskResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toTaskResponse(t *domain.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// POST /api/v1/tasks
func (h *TaskHandler) Create(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, bindError(err))
		return
	}

	task, err := h.uc.CreateTask(c.Request.Context(), usecase.CreateTaskInput{
		UserID:      c.GetString("userID"),
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusCreated, "Task created successfully", toTaskResponse(task))
}

// GET /api/v1/tasks?search=&status=
func (h *TaskHandler) List(c *gin.Context) {
	tasks, err := h.uc.ListTasks(c.Request.Context(), usecase.ListTasksInput{
		UserID: c.GetString("userID"),
		Search: c.Query("search"),
		Status: c.Query("status"),
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	out := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskResponse(t))
	}
	respondList(c, len(out), out)
}

// GET /api/v1/tasks/:id
func (h *TaskHandler) GetByID(c *gin.Context) {
	task, err := h.uc.GetTask(c.Request.Context(), c.Param("id"), c.GetString("userID"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, "", toTaskResponse(task))
}

// PUT /api/v1/tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, bindError(err))
		return
	}

	task, err := h.uc.UpdateTask(c.Request.Context(), c.Param("id"), c.GetString("userID"), repository.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, "Task updated successfully", toTaskResponse(task))
}

// DELETE /api/v1/tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	if err := h.uc.DeleteTask(c.Request.Context(), c.Param("id"), c.GetString("userID")); err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, "Task deleted successfully", nil)
}
