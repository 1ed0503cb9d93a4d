package seed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/BuzzLyutic/task-tracker-api/internal/auth"
	"github.com/BuzzLyutic/task-tracker-api/internal/model"
	"github.com/BuzzLyutic/task-tracker-api/internal/repo"
	"github.com/BuzzLyutic/task-tracker-api/internal/repo/mocks"
	"github.com/BuzzLyutic/task-tracker-api/internal/service"
)

func newServices(users *mocks.UserRepository, tasks *mocks.TaskRepository) (*service.AuthService, *service.TaskService) {
	logger := zap.NewNop()
	authSvc := service.NewAuthService(users,
		auth.NewTokenManager("seed-secret", time.Hour),
		auth.NewPasswordHasher(bcrypt.MinCost),
		logger,
	)
	return authSvc, service.NewTaskService(tasks)
}

func TestRun(t *testing.T) {
	t.Run("seeds demo user and tasks", func(t *testing.T) {
		users, tasks := new(mocks.UserRepository), new(mocks.TaskRepository)
		authSvc, taskSvc := newServices(users, tasks)

		users.On("Create", mock.Anything, mock.MatchedBy(func(u model.User) bool {
			return u.Username == DemoUsername && u.Email == DemoEmail &&
				bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(DemoPassword)) == nil
		})).Return(model.User{ID: 1, Username: DemoUsername, Email: DemoEmail}, nil)

		var titles []string
		tasks.On("Create", mock.Anything, mock.MatchedBy(func(task model.Task) bool {
			return task.UserID == 1
		})).Run(func(args mock.Arguments) {
			titles = append(titles, args.Get(1).(model.Task).Title)
		}).Return(model.Task{ID: 1}, nil)

		require.NoError(t, Run(context.Background(), authSvc, taskSvc, zap.NewNop()))

		assert.Len(t, titles, len(samples))
		assert.Equal(t, "Setup Development Environment", titles[0])
		tasks.AssertNumberOfCalls(t, "Create", len(samples))
		users.AssertExpectations(t)
	})

	t.Run("existing demo user is left alone", func(t *testing.T) {
		users, tasks := new(mocks.UserRepository), new(mocks.TaskRepository)
		authSvc, taskSvc := newServices(users, tasks)

		users.On("Create", mock.Anything, mock.Anything).Return(model.User{}, repo.ErrorConflict)

		require.NoError(t, Run(context.Background(), authSvc, taskSvc, zap.NewNop()))
		tasks.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("task failure is returned", func(t *testing.T) {
		users, tasks := new(mocks.UserRepository), new(mocks.TaskRepository)
		authSvc, taskSvc := newServices(users, tasks)

		boom := errors.New("db down")
		users.On("Create", mock.Anything, mock.Anything).Return(model.User{ID: 1}, nil)
		tasks.On("Create", mock.Anything, mock.Anything).Return(model.Task{}, boom)

		err := Run(context.Background(), authSvc, taskSvc, zap.NewNop())
		assert.ErrorIs(t, err, boom)
		tasks.AssertNumberOfCalls(t, "Create", 1)
	})
}
