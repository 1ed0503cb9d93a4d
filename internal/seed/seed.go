// Package seed loads the demo account and its sample tasks.
package seed

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-tracker-api/internal/model"
	"github.com/BuzzLyutic/task-tracker-api/internal/service"
)

const (
	DemoUsername = "admin"
	DemoEmail    = "admin@example.com"
	DemoPassword = "password123"
)

type sample struct {
	title, description string
	status             model.Status
	priority           model.Priority
}

var samples = []sample{
	{"Setup Development Environment", "Configure the toolchain and the database", model.StatusCompleted, model.PriorityHigh},
	{"Implement Authentication", "Create login and registration", model.StatusInProgress, model.PriorityHigh},
	{"Design API Endpoints", "Define REST API structure", model.StatusPending, model.PriorityMedium},
	{"Create Frontend Components", "Build the dashboard UI", model.StatusPending, model.PriorityMedium},
	{"Setup Database", "Create users and tasks tables", model.StatusCompleted, model.PriorityHigh},
}

// Run registers the demo user and its tasks. If the user already exists
// nothing is written, so Run is safe on every start.
func Run(ctx context.Context, authSvc *service.AuthService, taskSvc *service.TaskService, logger *zap.Logger) error {
	res, err := authSvc.Register(ctx, DemoUsername, DemoEmail, DemoPassword)
	if errors.Is(err, service.ErrDuplicateIdentity) {
		logger.Info("demo data already present")
		return nil
	}
	if err != nil {
		return err
	}

	for _, s := range samples {
		desc := s.description
		if _, err := taskSvc.Create(ctx, res.User.ID, model.Task{
			Title:       s.title,
			Description: &desc,
			Status:      s.status,
			Priority:    s.priority,
		}, ""); err != nil {
			return err
		}
	}

	logger.Info("demo data seeded", zap.Int64("user_id", res.User.ID), zap.Int("tasks", len(samples)))
	return nil
}
