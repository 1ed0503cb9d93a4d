package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BuzzLyutic/task-tracker-api/internal/model"
)

type TaskRepo struct { // Репозиторий для работы непосредственно с БД
	pool *pgxpool.Pool
}

func NewTaskRepo(pool *pgxpool.Pool) *TaskRepo { // Конструктор
	return &TaskRepo{
		pool: pool,
	}
}

func scanTask(row pgx.Row) (model.Task, error) {
	var t model.Task
	err := row.Scan(
		&t.ID, &t.Title, &t.Description, (*string)(&t.Status), (*string)(&t.Priority),
		&t.UserID, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

func (r *TaskRepo) Create(ctx context.Context, t model.Task) (model.Task, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO tasks (title, description, status, priority, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+taskColumns,
		t.Title, t.Description, string(t.Status), string(t.Priority), t.UserID,
	)
	created, err := scanTask(row)
	return created, mapError(err)
}

func (r *TaskRepo) Get(ctx context.Context, ownerID, id int64) (model.Task, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE id = $1 AND user_id = $2
	`, id, ownerID)

	t, err := scanTask(row)
	return t, mapError(err)
}

func (r *TaskRepo) List(ctx context.Context, ownerID int64, filter model.TaskFilter, page model.Page) ([]model.Task, error) {
	query, args := listQuery(ownerID, filter, page)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]model.Task, 0, page.Limit)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// Update changes only the fields set in patch and always refreshes updated_at.
// Concurrent updates are last-write-wins.
func (r *TaskRepo) Update(ctx context.Context, ownerID, id int64, patch model.TaskPatch) (model.Task, error) {
	query, args, err := updateQuery(ownerID, id, patch)
	if err != nil {
		return model.Task{}, err
	}

	t, err := scanTask(r.pool.QueryRow(ctx, query, args...))
	return t, mapError(err)
}

func (r *TaskRepo) Delete(ctx context.Context, ownerID, id int64) error {
	cmd, err := r.pool.Exec(ctx, "DELETE FROM tasks WHERE id = $1 AND user_id = $2", id, ownerID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrorNotFound
	}
	return nil
}

func (r *TaskRepo) SaveIdempotencyKey(ctx context.Context, ownerID int64, key string, taskID int64) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO idempotency_keys (user_id, key, task_id) VALUES ($1, $2, $3)
		ON CONFLICT (user_id, key) DO NOTHING
	`, ownerID, key, taskID)
	return err
}

func (r *TaskRepo) GetIdempotencyKey(ctx context.Context, ownerID int64, key string) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		SELECT task_id FROM idempotency_keys WHERE user_id = $1 AND key = $2
	`, ownerID, key).Scan(&id)

	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrorNotFound
	}
	return id, err
}

// GetStats counts the owner's tasks in a single pass. COUNT never yields NULL,
// so an owner without tasks gets all zeros.
func (r *TaskRepo) GetStats(ctx context.Context, ownerID int64) (model.TaskStats, error) {
	var s model.TaskStats
	err := r.pool.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = $2),
			COUNT(*) FILTER (WHERE status = $3),
			COUNT(*) FILTER (WHERE status = $4),
			COUNT(*) FILTER (WHERE priority = $5)
		FROM tasks
		WHERE user_id = $1
	`, ownerID,
		string(model.StatusCompleted), string(model.StatusInProgress), string(model.StatusPending),
		string(model.PriorityHigh),
	).Scan(&s.Total, &s.Completed, &s.InProgress, &s.Pending, &s.HighPriority)
	return s, err
}
