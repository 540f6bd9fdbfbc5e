package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"
	"github.com/lib/pq"

	"github.com/JuanTorresCortes/auth-server/internal/model"
	"github.com/JuanTorresCortes/auth-server/internal/pkg/dbutil"
	appErr "github.com/JuanTorresCortes/auth-server/internal/pkg/errors"
)

var userColumns = []string{"id", "email", "password_hash", "task_ids", "ctime", "mtime"}

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Create(ctx context.Context, user *model.User) error {
	data := map[string]interface{}{
		"id":            user.ID,
		"email":         user.Email,
		"password_hash": user.PasswordHash,
		"task_ids":      pq.Array(user.TaskIDs),
		"ctime":         user.Ctime,
		"mtime":         user.Mtime,
	}
	sqlStr, args, err := builder.BuildInsert("users", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		if dbutil.IsConflict(err) {
			return appErr.ErrConflict
		}
		return err
	}
	return nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getOne(ctx, map[string]interface{}{"email": email})
}

func (r *UserRepo) GetByID(ctx context.Context, userID string) (*model.User, error) {
	return r.getOne(ctx, map[string]interface{}{"id": userID})
}

func (r *UserRepo) getOne(ctx context.Context, where map[string]interface{}) (*model.User, error) {
	sqlStr, args, err := builder.BuildSelect("users", where, userColumns)
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
	var user model.User
	if err := rows.Scan(&user.ID, &user.Email, &user.PasswordHash, pq.Array(&user.TaskIDs), &user.Ctime, &user.Mtime); err != nil {
		return nil, err
	}
	return &user, nil
}

// AddTaskRef appends taskID to the owner's denormalized reference collection.
// The containment guard makes the append idempotent and the single UPDATE
// keeps it atomic under concurrent mutation of the same user row.
func (r *UserRepo) AddTaskRef(ctx context.Context, userID, taskID string, mtime int64) error {
	sqlStr := `UPDATE users SET task_ids = array_append(task_ids, ?), mtime = ? WHERE id = ? AND NOT (task_ids @> ARRAY[?]::text[])`
	args := []interface{}{taskID, mtime, userID, taskID}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	return r.checkUserExists(ctx, result, userID)
}

// RemoveTaskRef removes taskID from the owner's reference collection.
// array_remove is a no-op when the reference is already gone.
func (r *UserRepo) RemoveTaskRef(ctx context.Context, userID, taskID string, mtime int64) error {
	sqlStr := `UPDATE users SET task_ids = array_remove(task_ids, ?), mtime = ? WHERE id = ?`
	args := []interface{}{taskID, mtime, userID}
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

// RebuildTaskRefs replaces the owner's reference collection wholesale. Used
// by the reconciliation job to repair drift against the tasks table.
func (r *UserRepo) RebuildTaskRefs(ctx context.Context, userID string, taskIDs []string, mtime int64) error {
	where := map[string]interface{}{"id": userID}
	update := map[string]interface{}{
		"task_ids": pq.Array(taskIDs),
		"mtime":    mtime,
	}
	sqlStr, args, err := builder.BuildUpdate("users", where, update)
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

func (r *UserRepo) ListIDs(ctx context.Context) ([]string, error) {
	sqlStr, args, err := builder.BuildSelect("users", map[string]interface{}{"_orderby": "ctime asc"}, []string{"id"})
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *UserRepo) checkUserExists(ctx context.Context, result sql.Result, userID string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected > 0 {
		return nil
	}
	// The guarded UPDATE also affects zero rows when the reference is
	// already present, so distinguish that from a missing user row.
	if _, err := r.GetByID(ctx, userID); err != nil {
		return err
	}
	return nil
}
