package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/taskloop/taskloop/internal/domain"
	"github.com/taskloop/taskloop/internal/repository"
)

const taskColumns = "id, user_id, title, description, completed, created_at, updated_at"

type TaskRepository struct {
	pool *pgxpool.Pool
}

func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	query := `
		INSERT INTO tasks (user_id, title, description, completed)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + taskColumns

	row := r.pool.QueryRow(ctx, query, task.UserID, task.Title, task.Description, task.Completed)
	return scanTask(row)
}

func (r *TaskRepository) GetByID(ctx context.Context, taskID, userID string) (*domain.Task, error) {
	// Owner scoping in the WHERE clause: someone else's task and a missing
	// task both come back as ErrTaskNotFound.
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1 AND user_id = $2`
	return scanTask(r.pool.QueryRow(ctx, query, taskID, userID))
}

func (r *TaskRepository) List(ctx context.Context, input repository.ListTasksInput) ([]*domain.Task, error) {
	args := []any{input.UserID}
	where := []string{"user_id = $1"}

	if input.Search != "" {
		args = append(args, "%"+escapeLike(input.Search)+"%")
		where = append(where, fmt.Sprintf("title ILIKE $%d", len(args)))
	}
	switch input.Status {
	case domain.StatusCompleted:
		where = append(where, "completed")
	case domain.StatusPending:
		where = append(where, "NOT completed")
	}

	query := fmt.Sprintf(`
		SELECT `+taskColumns+`
		FROM tasks
		WHERE %s
		ORDER BY created_at DESC, id DESC`,
		strings.Join(where, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *TaskRepository) Update(ctx context.Context, taskID, userID string, input repository.UpdateTaskInput) (*domain.Task, error) {
	args := []any{taskID, userID}
	set := []string{"updated_at = NOW()"}

	if input.Title != nil {
		args = append(args, *input.Title)
		set = append(set, fmt.Sprintf("title = $%d", len(args)))
	}
	if input.Description != nil {
		args = append(args, *input.Description)
		set = append(set, fmt.Sprintf("description = $%d", len(args)))
	}
	if input.Completed != nil {
		args = append(args, *input.Completed)
		set = append(set, fmt.Sprintf("completed = $%d", len(args)))
	}

	query := fmt.Sprintf(`
		UPDATE tasks
		SET    %s
		WHERE  id = $1 AND user_id = $2
		RETURNING `+taskColumns,
		strings.Join(set, ", "))

	return scanTask(r.pool.QueryRow(ctx, query, args...))
}

func (r *TaskRepository) Delete(ctx context.Context, taskID, userID string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM tasks WHERE id = $1 AND user_id = $2`, taskID, userID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) PendingByUser(ctx context.Context) ([]*domain.PendingSummary, error) {
	query := `
		SELECT u.id, u.name, u.email, COUNT(*)
		FROM   tasks t
		JOIN   users u ON u.id = t.user_id
		WHERE  NOT t.completed
		GROUP BY u.id, u.name, u.email
		ORDER BY u.id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pending by user: %w", err)
	}
	defer rows.Close()

	var out []*domain.PendingSummary
	for rows.Next() {
		var s domain.PendingSummary
		if err := rows.Scan(&s.UserID, &s.Name, &s.Email, &s.Pending); err != nil {
			return nil, fmt.Errorf("scan pending summary: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

// pgx.Row and pgx.Rows both implement this.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var t domain.Task
	err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Completed, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("scan task: %w", err)
	}
	return &t, nil
}

// escapeLike neutralizes LIKE metacharacters so a search for "50%" matches
// literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}
