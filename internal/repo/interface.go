package repo

import (
	"context"

	"github.com/BuzzLyutic/task-tracker-api/internal/model"
)

// TaskRepository определяет интерфейс для работы с задачами.
// Every method is scoped by owner: a task of another user behaves as missing.
type TaskRepository interface {
	Create(ctx context.Context, t model.Task) (model.Task, error)
	Get(ctx context.Context, ownerID, id int64) (model.Task, error)
	List(ctx context.Context, ownerID int64, filter model.TaskFilter, page model.Page) ([]model.Task, error)
	Update(ctx context.Context, ownerID, id int64, patch model.TaskPatch) (model.Task, error)
	Delete(ctx context.Context, ownerID, id int64) error
	SaveIdempotencyKey(ctx context.Context, ownerID int64, key string, taskID int64) error
	GetIdempotencyKey(ctx context.Context, ownerID int64, key string) (int64, error)
	GetStats(ctx context.Context, ownerID int64) (model.TaskStats, error)
}

// UserRepository persists user identities and their password hashes.
type UserRepository interface {
	Create(ctx context.Context, u model.User) (model.User, error)
	GetByLogin(ctx context.Context, login string) (model.User, error)
}
