package repository

import (
	"context"

	"github.com/taskloop/taskloop/internal/domain"
)

type ListTasksInput struct {
	UserID string
	Search string              // case-insensitive substring match on title; empty = no filter
	Status domain.StatusFilter // StatusAll = no filter
}

// UpdateTaskInput applies only the fields that are non-nil. Absent fields are
// left untouched; there is no implicit merging of request bodies.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Completed   *bool
}

// UseCase depends on the interface, not the pgx implementation, so tests can
// pass a fake and the store can be swapped without touching business logic.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	// GetByID is scoped to the owner: a task owned by someone else is
	// indistinguishable from a task that does not exist.
	GetByID(ctx context.Context, taskID, userID string) (*domain.Task, error)
	List(ctx context.Context, input ListTasksInput) ([]*domain.Task, error)
	Update(ctx context.Context, taskID, userID string, input UpdateTaskInput) (*domain.Task, error)
	Delete(ctx context.Context, taskID, userID string) error

	// PendingByUser powers the daily digest: every user with at least one
	// open task, with the open count.
	PendingByUser(ctx context.Context) ([]*domain.PendingSummary, error)
}
