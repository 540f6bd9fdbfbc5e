package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/JuanTorresCortes/auth-server/internal/model"
	appErr "github.com/JuanTorresCortes/auth-server/internal/pkg/errors"
	"github.com/JuanTorresCortes/auth-server/internal/testutil"
)

func newTestUser(id, email string) *model.User {
	return &model.User{
		ID:           id,
		Email:        email,
		PasswordHash: "$2a$10$fakefakefakefakefakefake",
		TaskIDs:      []string{},
		Ctime:        100,
		Mtime:        100,
	}
}

func TestUserRepoCreateAndGet(t *testing.T) {
	conn, cleanup := testutil.OpenTestDB(t)
	defer cleanup()
	repo := NewUserRepo(conn)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTestUser("u1", "a@x.com")))

	user, err := repo.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.Equal(t, "u1", user.ID)
	require.Empty(t, user.TaskIDs)

	user, err = repo.GetByID(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "a@x.com", user.Email)

	_, err = repo.GetByEmail(ctx, "missing@x.com")
	require.ErrorIs(t, err, appErr.ErrNotFound)
}

func TestUserRepoDuplicateEmail(t *testing.T) {
	conn, cleanup := testutil.OpenTestDB(t)
	defer cleanup()
	repo := NewUserRepo(conn)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTestUser("u1", "a@x.com")))
	err := repo.Create(ctx, newTestUser("u2", "a@x.com"))
	require.ErrorIs(t, err, appErr.ErrConflict)
}

func TestUserRepoTaskRefs(t *testing.T) {
	conn, cleanup := testutil.OpenTestDB(t)
	defer cleanup()
	repo := NewUserRepo(conn)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTestUser("u1", "a@x.com")))

	require.NoError(t, repo.AddTaskRef(ctx, "u1", "t1", 101))
	// A repeated append must not duplicate the reference.
	require.NoError(t, repo.AddTaskRef(ctx, "u1", "t1", 102))
	require.NoError(t, repo.AddTaskRef(ctx, "u1", "t2", 103))

	user, err := repo.GetByID(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, []string{"t1", "t2"}, user.TaskIDs)

	require.NoError(t, repo.RemoveTaskRef(ctx, "u1", "t1", 104))
	require.NoError(t, repo.RemoveTaskRef(ctx, "u1", "t1", 105))

	user, err = repo.GetByID(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, []string{"t2"}, user.TaskIDs)

	require.ErrorIs(t, repo.AddTaskRef(ctx, "missing", "t9", 106), appErr.ErrNotFound)
	require.ErrorIs(t, repo.RemoveTaskRef(ctx, "missing", "t9", 107), appErr.ErrNotFound)
}

func TestUserRepoRebuildTaskRefs(t *testing.T) {
	conn, cleanup := testutil.OpenTestDB(t)
	defer cleanup()
	repo := NewUserRepo(conn)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTestUser("u1", "a@x.com")))
	require.NoError(t, repo.AddTaskRef(ctx, "u1", "stale", 101))

	require.NoError(t, repo.RebuildTaskRefs(ctx, "u1", []string{"t1", "t2"}, 102))
	user, err := repo.GetByID(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, []string{"t1", "t2"}, user.TaskIDs)

	ids, err := repo.ListIDs(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"u1"}, ids)
}
