package service

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/JuanTorresCortes/auth-server/internal/model"
	appErr "github.com/JuanTorresCortes/auth-server/internal/pkg/errors"
	"github.com/JuanTorresCortes/auth-server/internal/pkg/timeutil"
	"github.com/JuanTorresCortes/auth-server/internal/repo"
)

type TaskService struct {
	tasks *repo.TaskRepo
	users *repo.UserRepo
}

func NewTaskService(tasks *repo.TaskRepo, users *repo.UserRepo) *TaskService {
	return &TaskService{tasks: tasks, users: users}
}

type TaskCreateInput struct {
	Title       string
	Description string
	Priority    model.Priority
}

// TaskPatch enumerates the mutable fields of a task. Owner and identity
// fields are deliberately not representable here.
type TaskPatch struct {
	Title       *string
	Description *string
	Priority    *model.Priority
	Completed   *bool
}

func (s *TaskService) Create(ctx context.Context, ownerID string, in TaskCreateInput) (*model.Task, error) {
	if in.Title == "" || in.Description == "" {
		return nil, appErr.ErrInvalid
	}
	priority := in.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !priority.Valid() {
		return nil, appErr.ErrInvalid
	}
	now := timeutil.NowUnix()
	task := &model.Task{
		ID:          newID(),
		Owner:       ownerID,
		Title:       in.Title,
		Description: in.Description,
		Priority:    priority,
		Completed:   false,
		Ctime:       now,
		Mtime:       now,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	// The owner's task_ids collection is a derived index; a failure here
	// must not fail the create. The reconcile job repairs any drift.
	if err := s.users.AddTaskRef(ctx, ownerID, task.ID, now); err != nil {
		logutil.GetLogger(ctx).Warn("add task ref failed",
			zap.String("user_id", ownerID),
			zap.String("task_id", task.ID),
			zap.Error(err),
		)
	}
	return task, nil
}

func (s *TaskService) List(ctx context.Context, ownerID string) ([]model.Task, error) {
	return s.tasks.ListByOwner(ctx, ownerID)
}

func (s *TaskService) Update(ctx context.Context, taskID, requesterID string, patch TaskPatch) (*model.Task, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.Owner != requesterID {
		return nil, appErr.ErrForbidden
	}
	if patch.Title != nil {
		if *patch.Title == "" {
			return nil, appErr.ErrInvalid
		}
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		if *patch.Description == "" {
			return nil, appErr.ErrInvalid
		}
		task.Description = *patch.Description
	}
	if patch.Priority != nil {
		if !patch.Priority.Valid() {
			return nil, appErr.ErrInvalid
		}
		task.Priority = *patch.Priority
	}
	now := timeutil.NowUnix()
	if patch.Completed != nil {
		task.Completed = *patch.Completed
		if *patch.Completed {
			task.CompletedAt = now
		} else {
			// Reopening a task clears the completion timestamp so the
			// two fields never disagree.
			task.CompletedAt = 0
		}
	}
	task.Mtime = now
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, taskID, requesterID string) (*model.Task, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.Owner != requesterID {
		return nil, appErr.ErrForbidden
	}
	if err := s.tasks.Delete(ctx, taskID, requesterID); err != nil {
		return nil, err
	}
	if err := s.users.RemoveTaskRef(ctx, requesterID, taskID, timeutil.NowUnix()); err != nil {
		logutil.GetLogger(ctx).Warn("remove task ref failed",
			zap.String("user_id", requesterID),
			zap.String("task_id", taskID),
			zap.Error(err),
		)
	}
	return task, nil
}
