package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/JuanTorresCortes/auth-server/internal/model"
	"github.com/JuanTorresCortes/auth-server/internal/pkg/dbutil"
	appErr "github.com/JuanTorresCortes/auth-server/internal/pkg/errors"
)

var taskColumns = []string{"id", "owner", "title", "description", "priority", "completed", "completed_at", "ctime", "mtime"}

type TaskRepo struct {
	db *sql.DB
}

func NewTaskRepo(db *sql.DB) *TaskRepo {
	return &TaskRepo{db: db}
}

func (r *TaskRepo) Create(ctx context.Context, task *model.Task) error {
	data := map[string]interface{}{
		"id":           task.ID,
		"owner":        task.Owner,
		"title":        task.Title,
		"description":  task.Description,
		"priority":     string(task.Priority),
		"completed":    task.Completed,
		"completed_at": task.CompletedAt,
		"ctime":        task.Ctime,
		"mtime":        task.Mtime,
	}
	sqlStr, args, err := builder.BuildInsert("tasks", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *TaskRepo) GetByID(ctx context.Context, taskID string) (*model.Task, error) {
	where := map[string]interface{}{"id": taskID}
	sqlStr, args, err := builder.BuildSelect("tasks", where, taskColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	if !rows.Next() {
		return nil, appErr.ErrNotFound
	}
	task, err := scanTask(rows)
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (r *TaskRepo) ListByOwner(ctx context.Context, ownerID string) ([]model.Task, error) {
	where := map[string]interface{}{
		"owner":    ownerID,
		"_orderby": "ctime asc",
	}
	sqlStr, args, err := builder.BuildSelect("tasks", where, taskColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	tasks := make([]model.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

func (r *TaskRepo) ListIDsByOwner(ctx context.Context, ownerID string) ([]string, error) {
	where := map[string]interface{}{
		"owner":    ownerID,
		"_orderby": "ctime asc",
	}
	sqlStr, args, err := builder.BuildSelect("tasks", where, []string{"id"})
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Update writes the mutable fields of task, keyed by id AND owner. A
// concurrent delete between the caller's ownership check and this write
// surfaces as ErrNotFound instead of touching another user's row.
func (r *TaskRepo) Update(ctx context.Context, task *model.Task) error {
	where := map[string]interface{}{
		"id":    task.ID,
		"owner": task.Owner,
	}
	update := map[string]interface{}{
		"title":        task.Title,
		"description":  task.Description,
		"priority":     string(task.Priority),
		"completed":    task.Completed,
		"completed_at": task.CompletedAt,
		"mtime":        task.Mtime,
	}
	sqlStr, args, err := builder.BuildUpdate("tasks", where, update)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}

func (r *TaskRepo) Delete(ctx context.Context, taskID, ownerID string) error {
	where := map[string]interface{}{
		"id":    taskID,
		"owner": ownerID,
	}
	sqlStr, args, err := builder.BuildDelete("tasks", where)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}

func scanTask(rows *sql.Rows) (*model.Task, error) {
	var task model.Task
	var priority string
	if err := rows.Scan(&task.ID, &task.Owner, &task.Title, &task.Description, &priority, &task.Completed, &task.CompletedAt, &task.Ctime, &task.Mtime); err != nil {
		return nil, err
	}
	task.Priority = model.Priority(priority)
	return &task, nil
}
