// Package taskgroup implements CRUD for task groups, the columns a
// workspace's tasks are organized into.
package taskgroup

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dmc0125/task-app/internal/db"
)

var (
	// ErrNotFound means the task group does not exist for the addressed
	// user.
	ErrNotFound = errors.New("taskgroup: not found")
	// ErrWorkspaceNotFound means the target workspace does not exist for
	// the addressed user.
	ErrWorkspaceNotFound = errors.New("taskgroup: workspace not found")
)

type Store interface {
	Create(ctx context.Context, userID, workspaceID int64, title string) error
	Rename(ctx context.Context, userID, groupID int64, title string) error
	Delete(ctx context.Context, userID, groupID int64) error
}

type DBStore struct {
	db *db.DB
}

func NewDBStore(db *db.DB) *DBStore {
	return &DBStore{db: db}
}

func (s *DBStore) Create(ctx context.Context, userID, workspaceID int64, title string) error {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO task_groups (workspace_id, user_id, title)
		SELECT w.id, $2, $3
		FROM workspaces w
		WHERE w.id = $1 AND w.user_id = $2
		RETURNING id
	`, workspaceID, userID, title).Scan(&id)

	if errors.Is(err, sql.ErrNoRows) {
		return ErrWorkspaceNotFound
	}
	return err
}

func (s *DBStore) Rename(ctx context.Context, userID, groupID int64, title string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE task_groups
		SET title = $3
		WHERE id = $1 AND user_id = $2
	`, groupID, userID, title)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// Delete removes the group and every task in it. Tasks cascade on the
// task_group_id foreign key, so a single delete suffices.
func (s *DBStore) Delete(ctx context.Context, userID, groupID int64) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM task_groups
		WHERE id = $1 AND user_id = $2
	`, groupID, userID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
