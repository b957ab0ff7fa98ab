package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/taskloop/taskloop/internal/domain"
	"github.com/taskloop/taskloop/internal/metrics"
	"github.com/taskloop/taskloop/internal/repository"
)

type TaskUsecase struct {
	repo repository.TaskRepository
}

func NewTaskUsecase(repo repository.TaskRepository) *TaskUsecase {
	return &TaskUsecase{repo: repo}
}

type CreateTaskInput struct {
	UserID      string
	Title       string
	Description string
	Completed   bool
}

func (u *TaskUsecase) CreateTask(ctx context.Context, input CreateTaskInput) (*domain.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, domain.Validation("Task title is required")
	}

	task := &domain.Task{
		UserID:      input.UserID,
		Title:       title,
		Description: input.Description,
		Completed:   input.Completed,
	}

	created, err := u.repo.Create(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	metrics.TasksCreatedTotal.Inc()
	return created, nil
}

type ListTasksInput struct {
	UserID string
	Search string
	Status string // raw ?status= value; parsed here
}

// ListTasks returns the caller's tasks, newest first. Search and status
// filters compose with AND.
func (u *TaskUsecase) ListTasks(ctx context.Context, input ListTasksInput) ([]*domain.Task, error) {
	tasks, err := u.repo.List(ctx, repository.ListTasksInput{
		UserID: input.UserID,
		Search: strings.TrimSpace(input.Search),
		Status: domain.ParseStatusFilter(input.Status),
	})
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (u *TaskUsecase) GetTask(ctx context.Context, taskID, userID string) (*domain.Task, error) {
	task, err := u.repo.GetByID(ctx, taskID, userID)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	return task, nil
}

// UpdateTask applies only the fields present in the input.
func (u *TaskUsecase) UpdateTask(ctx context.Context, taskID, userID string, input repository.UpdateTaskInput) (*domain.Task, error) {
	if input.Title != nil {
		trimmed := strings.TrimSpace(*input.Title)
		if trimmed == "" {
			return nil, domain.Validation("Task title is required")
		}
		input.Title = &trimmed
	}

	task, err := u.repo.Update(ctx, taskID, userID, input)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return task, nil
}

func (u *TaskUsecase) DeleteTask(ctx context.Context, taskID, userID string) error {
	if err := u.repo.Delete(ctx, taskID, userID); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}
