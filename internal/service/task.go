package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/BuzzLyutic/task-tracker-api/internal/model"
	"github.com/BuzzLyutic/task-tracker-api/internal/repo"
)

const (
	DefaultLimit = 50
	MaxLimit     = 100
)

type TaskService struct {
	repo repo.TaskRepository
}

func NewTaskService(repo repo.TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

// Create stores a task owned by ownerID, filling in the default status and
// priority. A non-empty idempKey makes repeated calls return the first task.
func (s *TaskService) Create(ctx context.Context, ownerID int64, t model.Task, idempKey string) (model.Task, error) {
	t.UserID = ownerID
	if t.Status == "" {
		t.Status = model.StatusPending
	}
	if t.Priority == "" {
		t.Priority = model.PriorityMedium
	}
	if err := s.validate(t); err != nil { // Валидация модели на корректность введенных данных
		return t, err
	}

	if idempKey != "" { // если ключ с ресурсом уже существует, мы не создаем его еще раз
		existingID, err := s.repo.GetIdempotencyKey(ctx, ownerID, idempKey)
		if err == nil {
			return s.repo.Get(ctx, ownerID, existingID)
		}
		if !errors.Is(err, repo.ErrorNotFound) {
			return t, fmt.Errorf("lookup idempotency key: %w", err)
		}
	}

	created, err := s.repo.Create(ctx, t)
	if err != nil {
		return created, err
	}

	if idempKey == "" {
		return created, nil
	}

	// Сохранение нового ключа; при гонке побеждает первый сохранивший
	if err := s.repo.SaveIdempotencyKey(ctx, ownerID, idempKey, created.ID); err != nil {
		return created, err
	}
	winnerID, err := s.repo.GetIdempotencyKey(ctx, ownerID, idempKey)
	if err != nil || winnerID == created.ID {
		return created, err
	}
	if err := s.repo.Delete(ctx, ownerID, created.ID); err != nil {
		return created, err
	}
	return s.repo.Get(ctx, ownerID, winnerID)
}

func (s *TaskService) Get(ctx context.Context, ownerID, id int64) (model.Task, error) {
	return s.repo.Get(ctx, ownerID, id)
}

func (s *TaskService) List(ctx context.Context, ownerID int64, filter model.TaskFilter, page model.Page) ([]model.Task, error) {
	return s.repo.List(ctx, ownerID, filter, NormalizePage(page))
}

// NormalizePage clamps a page to sane bounds instead of rejecting it.
func NormalizePage(p model.Page) model.Page {
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

func (s *TaskService) Update(ctx context.Context, ownerID, id int64, patch model.TaskPatch) (model.Task, error) {
	if patch.IsEmpty() {
		return model.Task{}, invalid("No fields to update")
	}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return model.Task{}, invalid("Title cannot be empty")
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return model.Task{}, invalid("Invalid status")
	}
	if patch.Priority != nil && !patch.Priority.Valid() {
		return model.Task{}, invalid("Invalid priority")
	}
	return s.repo.Update(ctx, ownerID, id, patch)
}

func (s *TaskService) Delete(ctx context.Context, ownerID, id int64) error {
	return s.repo.Delete(ctx, ownerID, id)
}

func (s *TaskService) GetStats(ctx context.Context, ownerID int64) (model.TaskStats, error) {
	return s.repo.GetStats(ctx, ownerID)
}

func (s *TaskService) validate(t model.Task) error {
	if strings.TrimSpace(t.Title) == "" {
		return invalid("Title is required")
	}
	if !t.Status.Valid() {
		return invalid("Invalid status")
	}
	if !t.Priority.Valid() {
		return invalid("Invalid priority")
	}
	return nil
}
