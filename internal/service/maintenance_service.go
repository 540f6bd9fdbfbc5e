package service

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/JuanTorresCortes/auth-server/internal/pkg/timeutil"
	"github.com/JuanTorresCortes/auth-server/internal/repo"
)

// MaintenanceService rebuilds the per-user task_ids collections from the
// authoritative owner field on tasks. The collection is only a derived
// index, so staleness is repaired here instead of being treated as fatal.
type MaintenanceService struct {
	users *repo.UserRepo
	tasks *repo.TaskRepo
}

func NewMaintenanceService(users *repo.UserRepo, tasks *repo.TaskRepo) *MaintenanceService {
	return &MaintenanceService{users: users, tasks: tasks}
}

func (s *MaintenanceService) ReconcileTaskRefs(ctx context.Context) error {
	userIDs, err := s.users.ListIDs(ctx)
	if err != nil {
		return err
	}
	var repaired int
	for _, userID := range userIDs {
		taskIDs, err := s.tasks.ListIDsByOwner(ctx, userID)
		if err != nil {
			logutil.GetLogger(ctx).Warn("list task ids failed",
				zap.String("user_id", userID), zap.Error(err))
			continue
		}
		if err := s.users.RebuildTaskRefs(ctx, userID, taskIDs, timeutil.NowUnix()); err != nil {
			logutil.GetLogger(ctx).Warn("rebuild task refs failed",
				zap.String("user_id", userID), zap.Error(err))
			continue
		}
		repaired++
	}
	logutil.GetLogger(ctx).Info("task ref reconcile done",
		zap.Int("users", len(userIDs)), zap.Int("rebuilt", repaired))
	return nil
}
