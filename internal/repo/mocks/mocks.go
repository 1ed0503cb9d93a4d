// Package mocks holds testify mocks of the repository interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/BuzzLyutic/task-tracker-api/internal/model"
)

// TaskRepository - мок репозитория задач
type TaskRepository struct {
	mock.Mock
}

func (m *TaskRepository) Create(ctx context.Context, t model.Task) (model.Task, error) {
	args := m.Called(ctx, t)
	return args.Get(0).(model.Task), args.Error(1)
}

func (m *TaskRepository) Get(ctx context.Context, ownerID, id int64) (model.Task, error) {
	args := m.Called(ctx, ownerID, id)
	return args.Get(0).(model.Task), args.Error(1)
}

func (m *TaskRepository) List(ctx context.Context, ownerID int64, filter model.TaskFilter, page model.Page) ([]model.Task, error) {
	args := m.Called(ctx, ownerID, filter, page)
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *TaskRepository) Update(ctx context.Context, ownerID, id int64, patch model.TaskPatch) (model.Task, error) {
	args := m.Called(ctx, ownerID, id, patch)
	return args.Get(0).(model.Task), args.Error(1)
}

func (m *TaskRepository) Delete(ctx context.Context, ownerID, id int64) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

func (m *TaskRepository) SaveIdempotencyKey(ctx context.Context, ownerID int64, key string, taskID int64) error {
	args := m.Called(ctx, ownerID, key, taskID)
	return args.Error(0)
}

func (m *TaskRepository) GetIdempotencyKey(ctx context.Context, ownerID int64, key string) (int64, error) {
	args := m.Called(ctx, ownerID, key)
	return args.Get(0).(int64), args.Error(1)
}

func (m *TaskRepository) GetStats(ctx context.Context, ownerID int64) (model.TaskStats, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(model.TaskStats), args.Error(1)
}

// UserRepository - мок хранилища пользователей
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, u model.User) (model.User, error) {
	args := m.Called(ctx, u)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserRepository) GetByLogin(ctx context.Context, login string) (model.User, error) {
	args := m.Called(ctx, login)
	return args.Get(0).(model.User), args.Error(1)
}
